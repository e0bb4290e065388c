package rename

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/ast"
)

func varExpr(name string) *ast.Var { return &ast.Var{Name: ast.Name{Text: name}} }

func fun(name string, body ast.Expr) *ast.FunBind {
	return &ast.FunBind{Name: name, Guards: []ast.GuardedRHS{{Body: body}}}
}

func TestCollectOrdersDependencyFirst(t *testing.T) {
	// f = g + 1 ; g = 1   -- f depends on g, g has no signature
	m := &ast.Module{Decls: []ast.Decl{
		fun("f", varExpr("g")),
		fun("g", &ast.Lit{Kind: ast.LitInt, Value: "1"}),
	}}
	groups := Collect(m)
	require.Len(t, groups, 2)
	require.Equal(t, []string{"g"}, groups[0].Bindings[0].Names)
	require.Equal(t, []string{"f"}, groups[1].Bindings[0].Names)
}

func TestCollectGroupsMutualRecursion(t *testing.T) {
	// even = odd ; odd = even  (mutually recursive, no signatures)
	m := &ast.Module{Decls: []ast.Decl{
		fun("even", varExpr("odd")),
		fun("odd", varExpr("even")),
	}}
	groups := Collect(m)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Bindings, 2)
}

func TestSignatureBreaksCycleIntoSingletons(t *testing.T) {
	// f :: Int ; f = g ; g = f   -- f has a signature, so the f<->g cycle
	// must not be grouped: f and g each get their own singleton group.
	m := &ast.Module{Decls: []ast.Decl{
		&ast.TypeSigDecl{Names: []string{"f"}, Type: &ast.TypeCon{Name: "Int"}},
		fun("f", varExpr("g")),
		fun("g", varExpr("f")),
	}}
	groups := Collect(m)
	require.Len(t, groups, 2)
	for _, g := range groups {
		require.Len(t, g.Bindings, 1)
	}
}

func TestCollectPatBindMultiName(t *testing.T) {
	m := &ast.Module{Decls: []ast.Decl{
		&ast.PatBind{
			Lhs: &ast.TuplePattern{Elements: []ast.Pattern{
				&ast.VarPattern{Name: "a"}, &ast.VarPattern{Name: "b"},
			}},
			Guards: []ast.GuardedRHS{{Body: &ast.Lit{Kind: ast.LitInt, Value: "1"}}},
		},
	}}
	groups := Collect(m)
	require.Len(t, groups, 1)
	require.ElementsMatch(t, []string{"a", "b"}, groups[0].Bindings[0].Names)
}
