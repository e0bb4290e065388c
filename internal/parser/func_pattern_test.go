package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/ast"
)

func TestParseConstructorPattern(t *testing.T) {
	src := `f (Just x) = x
f Nothing = 0
`
	m, errs := parseSrc(t, src)
	require.Empty(t, errs)
	fb, ok := m.Decls[0].(*ast.FunBind)
	require.True(t, ok)
	cp, ok := fb.Params[0].(*ast.ConstructorPattern)
	require.True(t, ok)
	require.Equal(t, "Just", cp.Name)
	require.Len(t, cp.Args, 1)
}

func TestParseConsPattern(t *testing.T) {
	m, errs := parseSrc(t, "f (x:xs) = x\n")
	require.Empty(t, errs)
	fb := m.Decls[0].(*ast.FunBind)
	_, ok := fb.Params[0].(*ast.ConsPattern)
	require.True(t, ok)
}

func TestParseAsPattern(t *testing.T) {
	m, errs := parseSrc(t, "f all@(x:xs) = all\n")
	require.Empty(t, errs)
	fb := m.Decls[0].(*ast.FunBind)
	asP, ok := fb.Params[0].(*ast.AsPattern)
	require.True(t, ok)
	require.Equal(t, "all", asP.Name)
}

func TestParseTuplePatternBinding(t *testing.T) {
	m, errs := parseSrc(t, "(a, b) = (1, 2)\n")
	require.Empty(t, errs)
	pb, ok := m.Decls[0].(*ast.PatBind)
	require.True(t, ok)
	_, ok = pb.Lhs.(*ast.TuplePattern)
	require.True(t, ok)
}

func TestParseWildcardAndLiteralPatterns(t *testing.T) {
	src := `f _ 0 = 1
f _ n = n
`
	m, errs := parseSrc(t, src)
	require.Empty(t, errs)
	fb := m.Decls[0].(*ast.FunBind)
	_, ok := fb.Params[0].(*ast.WildcardPattern)
	require.True(t, ok)
	_, ok = fb.Params[1].(*ast.LitPattern)
	require.True(t, ok)
}

func TestParseBangAndLazyPatterns(t *testing.T) {
	m, errs := parseSrc(t, "f !x ~y = x\n")
	require.Empty(t, errs)
	fb := m.Decls[0].(*ast.FunBind)
	_, ok := fb.Params[0].(*ast.BangPattern)
	require.True(t, ok)
	_, ok = fb.Params[1].(*ast.LazyPattern)
	require.True(t, ok)
}

func TestParseSigPattern(t *testing.T) {
	m, errs := parseSrc(t, "f (x :: Int) = x\n")
	require.Empty(t, errs)
	fb := m.Decls[0].(*ast.FunBind)
	sp, ok := fb.Params[0].(*ast.SigPattern)
	require.True(t, ok)
	_, ok = sp.Pattern.(*ast.VarPattern)
	require.True(t, ok)
}
