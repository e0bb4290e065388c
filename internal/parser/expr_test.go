package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/ast"
)

func firstFunBind(t *testing.T, m *ast.Module) *ast.FunBind {
	t.Helper()
	for _, d := range m.Decls {
		if fb, ok := d.(*ast.FunBind); ok {
			return fb
		}
	}
	t.Fatal("no FunBind found")
	return nil
}

func TestParseLambda(t *testing.T) {
	m, errs := parseSrc(t, "f = \\x y -> x\n")
	require.Empty(t, errs)
	fb := firstFunBind(t, m)
	lam, ok := fb.Guards[0].Body.(*ast.Lambda)
	require.True(t, ok)
	require.Len(t, lam.Params, 2)
}

func TestParseLetIn(t *testing.T) {
	m, errs := parseSrc(t, "f = let y = 1 in y\n")
	require.Empty(t, errs)
	fb := firstFunBind(t, m)
	let, ok := fb.Guards[0].Body.(*ast.Let)
	require.True(t, ok)
	require.Len(t, let.Decls, 1)
}

func TestParseIfThenElse(t *testing.T) {
	m, errs := parseSrc(t, "f x = if x then 1 else 2\n")
	require.Empty(t, errs)
	fb := firstFunBind(t, m)
	ifExpr, ok := fb.Guards[0].Body.(*ast.If)
	require.True(t, ok)
	require.NotNil(t, ifExpr.Cond)
}

func TestParseCaseOf(t *testing.T) {
	src := `f x = case x of
  0 -> 1
  n -> n
`
	m, errs := parseSrc(t, src)
	require.Empty(t, errs)
	fb := firstFunBind(t, m)
	c, ok := fb.Guards[0].Body.(*ast.Case)
	require.True(t, ok)
	require.Len(t, c.Alts, 2)
}

func TestParseTupleAndList(t *testing.T) {
	m, errs := parseSrc(t, "f = (1, 2, 3)\ng = [1, 2, 3]\n")
	require.Empty(t, errs)
	var tuple *ast.Tuple
	var list *ast.List
	for _, d := range m.Decls {
		fb := d.(*ast.FunBind)
		switch body := fb.Guards[0].Body.(type) {
		case *ast.Tuple:
			tuple = body
		case *ast.List:
			list = body
		}
	}
	require.NotNil(t, tuple)
	require.Len(t, tuple.Elements, 3)
	require.NotNil(t, list)
	require.Len(t, list.Elements, 3)
}

func TestParseAnnotatedExpr(t *testing.T) {
	m, errs := parseSrc(t, "f = (1 :: Int)\n")
	require.Empty(t, errs)
	fb := firstFunBind(t, m)
	_, ok := fb.Guards[0].Body.(*ast.Annot)
	require.True(t, ok)
}

func TestParseGuardedFunctionBinding(t *testing.T) {
	src := `abs x
  | x < 0 = negate x
  | otherwise = x
`
	m, errs := parseSrc(t, src)
	require.Empty(t, errs)
	fb := firstFunBind(t, m)
	require.Len(t, fb.Guards, 2)
	require.NotNil(t, fb.Guards[0].Guard)
}

func TestParseWhereClause(t *testing.T) {
	src := `f x = y
  where y = x
`
	m, errs := parseSrc(t, src)
	require.Empty(t, errs)
	fb := firstFunBind(t, m)
	require.Len(t, fb.Where, 1)
}
