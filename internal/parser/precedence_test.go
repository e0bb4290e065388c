package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/ast"
)

func TestPrecedenceMultiplyBindsTighterThanPlus(t *testing.T) {
	m, errs := parseSrc(t, "f = 1 + 2 * 3\n")
	require.Empty(t, errs)
	fb := firstFunBind(t, m)
	top, ok := fb.Guards[0].Body.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "+", top.Op.Text)
	rhs, ok := top.Right.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "*", rhs.Op.Text)
}

func TestPrecedenceLeftAssociativeMinus(t *testing.T) {
	m, errs := parseSrc(t, "f = 1 - 2 - 3\n")
	require.Empty(t, errs)
	fb := firstFunBind(t, m)
	top, ok := fb.Guards[0].Body.(*ast.BinOp)
	require.True(t, ok)
	lhs, ok := top.Left.(*ast.BinOp)
	require.True(t, ok, "left-associative: left child should itself be a BinOp")
	require.Equal(t, "1", lhs.Left.(*ast.Lit).Value)
}

func TestPrecedenceRightAssociativeDollar(t *testing.T) {
	// '$' is right-associative, so `a $ b $ c` groups as `a $ (b $ c)`.
	m, errs := parseSrc(t, "f = a $ b $ c\n")
	require.Empty(t, errs)
	fb := firstFunBind(t, m)
	top, ok := fb.Guards[0].Body.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "$", top.Op.Text)
	rhs, ok := top.Right.(*ast.BinOp)
	require.True(t, ok, "right-associative: right child should itself be a BinOp")
	require.Equal(t, "$", rhs.Op.Text)
}

func TestPrecedenceComparisonParsesAsBinOp(t *testing.T) {
	m, errs := parseSrc(t, "f = a == b\n")
	require.Empty(t, errs)
	fb := firstFunBind(t, m)
	top, ok := fb.Guards[0].Body.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "==", top.Op.Text)
}
