package kinds

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/ast"
)

func tc(name string) *ast.TypeCon { return &ast.TypeCon{Name: name} }
func tv(name string) *ast.TypeVar { return &ast.TypeVar{Name: name} }

func TestArityToKind(t *testing.T) {
	require.Equal(t, "*", ArityToKind(0).String())
	require.Equal(t, "(* -> *)", ArityToKind(1).String())
	require.Equal(t, "(* -> (* -> *))", ArityToKind(2).String())
}

func TestCheckModuleDataDecl(t *testing.T) {
	m := &ast.Module{
		Decls: []ast.Decl{
			&ast.DataDecl{
				Name:   "Box",
				TyVars: []string{"a"},
				Constructors: []*ast.ConstructorDecl{
					{Name: "MkBox", Fields: []ast.FieldDecl{{Type: tv("a")}}},
				},
			},
		},
	}
	c := NewChecker()
	tce, errs := c.CheckModule(m)
	require.Empty(t, errs)
	k, ok := tce.Lookup("Box")
	require.True(t, ok)
	require.Equal(t, "(* -> *)", k.String())
}

func TestCheckModuleAcceptsAppliedTyVar(t *testing.T) {
	// data Bad a = MkBad (a Int)   -- `a` used both as a type var and
	// applied to an argument, but a has no declared higher kind here: this
	// should still succeed since `a` is fresh and gets inferred as (* -> *).
	m := &ast.Module{
		Decls: []ast.Decl{
			&ast.DataDecl{
				Name:   "Bad",
				TyVars: []string{"a"},
				Constructors: []*ast.ConstructorDecl{
					{Name: "MkBad", Fields: []ast.FieldDecl{{Type: &ast.TypeApp{Func: tv("a"), Arg: tc("Int")}}}},
				},
			},
		},
	}
	c := NewChecker()
	_, errs := c.CheckModule(m)
	require.Empty(t, errs)
}

func TestInstanceHeadLegalShape(t *testing.T) {
	require.True(t, isInstanceHeadShapeLegal(&ast.TypeApp{Func: tc("Maybe"), Arg: tv("a")}))
	require.False(t, isInstanceHeadShapeLegal(&ast.TypeApp{Func: tc("Maybe"), Arg: tc("Int")}))
	require.False(t, isInstanceHeadShapeLegal(&ast.TypeApp{
		Func: &ast.TypeApp{Func: tc("Either"), Arg: tv("a")}, Arg: tv("a"),
	}))
}

func TestCheckModuleInstanceHeadIllegal(t *testing.T) {
	m := &ast.Module{
		Decls: []ast.Decl{
			&ast.InstanceDecl{Class: "Eq", Head: tc("Int")},
			&ast.InstanceDecl{Class: "Show", Head: &ast.TypeApp{Func: tc("Maybe"), Arg: tc("Int")}},
		},
	}
	c := NewChecker()
	_, errs := c.CheckModule(m)
	require.Len(t, errs, 1)
	require.Equal(t, "InstanceHeadIllegal", string(errs[0].Kind))
}

func TestDefaultReplacesUnresolvedVar(t *testing.T) {
	v := NewVar(1, "x")
	require.Equal(t, "*", Default(v).String())
}
