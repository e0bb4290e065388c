package elaborate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/errors"
	"github.com/karolisr/hindley/internal/rename"
	"github.com/karolisr/hindley/internal/token"
	"github.com/karolisr/hindley/internal/typedast"
	"github.com/karolisr/hindley/internal/types"
)

func varExpr(name string) *ast.Var { return &ast.Var{Name: ast.Name{Text: name}} }

func intLit(s string) *ast.Lit { return &ast.Lit{Kind: ast.LitInt, Value: s} }

func appExpr(f ast.Expr, args ...ast.Expr) ast.Expr {
	e := f
	for _, a := range args {
		e = &ast.App{Func: e, Arg: a}
	}
	return e
}

func unconditional(body ast.Expr) []ast.GuardedRHS {
	return []ast.GuardedRHS{{Body: body}}
}

func fun(name string, params []ast.Pattern, body ast.Expr) *ast.FunBind {
	return &ast.FunBind{Name: name, Params: params, Guards: unconditional(body)}
}

func patBind(pat ast.Pattern, body ast.Expr) *ast.PatBind {
	return &ast.PatBind{Lhs: pat, Guards: unconditional(body)}
}

// numClassEnv registers the built-in-ish Num class with an Int
// instance, the minimum a module that uses integer literals needs for
// defaulting to succeed — mirroring the small bootstrap classenv_test.go
// builds by hand rather than loading any real prelude.
func numClassEnv() *types.ClassEnv {
	ce := types.NewClassEnv()
	_ = ce.AddClass(token.Pos{}, &types.Class{Name: "Num", TyVar: "a", Methods: map[string]*types.Scheme{}})
	_ = ce.AddInstance(token.Pos{}, types.NewStore(), &types.Instance{Class: "Num", Head: types.TInt})
	return ce
}

// bareNumClassEnv declares the Num class with no instances at all, so a
// constraint against it can never be discharged by instance resolution —
// used by tests that want a Num constraint to survive untouched into a
// binding's generalized scheme rather than being resolved against a
// concrete instance.
func bareNumClassEnv() *types.ClassEnv {
	ce := types.NewClassEnv()
	_ = ce.AddClass(token.Pos{}, &types.Class{Name: "Num", TyVar: "a", Methods: map[string]*types.Scheme{}})
	return ce
}

func TestElaborateGeneralizesPolymorphicIdentity(t *testing.T) {
	// id x = x
	m := &ast.Module{Decls: []ast.Decl{
		fun("id", []ast.Pattern{&ast.VarPattern{Name: "x"}}, varExpr("x")),
	}}
	prog, errs := Elaborate(m, numClassEnv())
	require.Empty(t, errs)
	require.Len(t, prog.Binds, 1)
	bind := prog.Binds[0]
	require.Equal(t, "id", bind.Name)
	require.Len(t, bind.Scheme.Vars, 1, "id should generalize over one free type variable")
	require.Empty(t, bind.Scheme.Constraints)
	require.Empty(t, bind.DictParams)
}

func TestElaborateMonomorphismRestrictionDefaultsSimpleBinding(t *testing.T) {
	// x = 1   (a PatBind with no parameters: the monomorphism restriction
	// applies, so the Num constraint on the literal is resolved to a
	// concrete Int rather than generalized over.)
	m := &ast.Module{Decls: []ast.Decl{
		patBind(&ast.VarPattern{Name: "x"}, intLit("1")),
	}}
	prog, errs := Elaborate(m, numClassEnv())
	require.Empty(t, errs)
	require.Len(t, prog.Binds, 1)
	bind := prog.Binds[0]
	require.Equal(t, "x", bind.Name)
	require.Empty(t, bind.Scheme.Vars)
	require.Empty(t, bind.Scheme.Constraints)
	require.True(t, types.TInt.Equals(bind.Scheme.Type))
}

func TestElaborateGeneralizesConstraintOverNonSimpleBinding(t *testing.T) {
	// double x = x + x   -- a function binding (one parameter, so the
	// monomorphism restriction does not apply) that uses an overloaded
	// "+" : forall a. Num a => a -> a -> a pulled straight from the
	// environment, the way a prelude operator would be bound.
	m := &ast.Module{Decls: []ast.Decl{
		fun("double", []ast.Pattern{&ast.VarPattern{Name: "x"}},
			appExpr(varExpr("+"), varExpr("x"), varExpr("x"))),
	}}
	ctx := &InferenceContext{store: types.NewStore(), classEnv: bareNumClassEnv(), lie: types.NewLIE()}
	gve := types.NewEnv()
	gve.Bind("+", &types.Scheme{
		Vars:        []string{"a"},
		Constraints: []types.Constraint{{Class: "Num", Type: types.Var{Name: "a"}}},
		Type:        types.Fun{Domain: types.Var{Name: "a"}, Range: types.Fun{Domain: types.Var{Name: "a"}, Range: types.Var{Name: "a"}}},
	})

	groups := rename.Collect(m)
	require.Len(t, groups, 1)
	binds := ctx.elaborateGroup(gve, groups[0])
	require.Empty(t, ctx.errs)
	require.Len(t, binds, 1)
	bind := binds[0]
	require.Len(t, bind.Scheme.Constraints, 1)
	require.Equal(t, "Num", bind.Scheme.Constraints[0].Class)
	require.Len(t, bind.DictParams, 1)
	dictAbs, ok := bind.Value.(*typedast.DictAbs)
	require.True(t, ok, "a constrained binding's body should be wrapped in a DictAbs")
	require.Equal(t, bind.DictParams, dictAbs.Params)
}

func TestElaborateUnknownNameReportsDiagnostic(t *testing.T) {
	m := &ast.Module{Decls: []ast.Decl{
		fun("bad", nil, varExpr("nowhere")),
	}}
	_, errs := Elaborate(m, numClassEnv())
	require.NotEmpty(t, errs)
	require.Equal(t, errors.UnknownName, errs[0].Kind)
}
