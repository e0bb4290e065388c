package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/token"
)

func kinds(t []token.Token) []token.Kind {
	ks := make([]token.Kind, len(t))
	for i, tok := range t {
		ks[i] = tok.Kind
	}
	return ks
}

func TestTokenizeSimpleBinding(t *testing.T) {
	toks, err := Tokenize("t.hs", []byte("x = 1 + y"))
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.VARID, token.OpEquals, token.INT, token.VARSYM, token.VARID, token.EOF,
	}, kinds(toks))
}

func TestTokenizeLineComment(t *testing.T) {
	toks, err := Tokenize("t.hs", []byte("x = 1 -- trailing comment\ny = 2"))
	require.NoError(t, err)
	require.Equal(t, token.VARID, toks[0].Kind)
	// "-- trailing comment" must be fully skipped, leaving y=2 on its own line
	require.Contains(t, kinds(toks), token.VSemi)
}

func TestTokenizeDashOperatorNotComment(t *testing.T) {
	toks, err := Tokenize("t.hs", []byte("x = 1 --> 2"))
	require.NoError(t, err)
	require.Equal(t, token.VARSYM, toks[3].Kind)
	require.Equal(t, "-->", toks[3].Literal)
}

func TestTokenizeLayoutWhereBlock(t *testing.T) {
	src := "f x = y\n  where\n    y = x\n    z = 1\n"
	toks, err := Tokenize("t.hs", []byte(src))
	require.NoError(t, err)
	ks := kinds(toks)
	require.Contains(t, ks, token.VLBrace)
	require.Contains(t, ks, token.VSemi)
	require.Contains(t, ks, token.VRBrace)
}

func TestTokenizeQualifiedName(t *testing.T) {
	toks, err := Tokenize("t.hs", []byte("Data.Map.lookup"))
	require.NoError(t, err)
	require.Equal(t, token.VARID, toks[0].Kind)
	require.Equal(t, "Data.Map.lookup", toks[0].Literal)
}

func TestTokenizeCharAndString(t *testing.T) {
	toks, err := Tokenize("t.hs", []byte(`'a' "hi\n"`))
	require.NoError(t, err)
	require.Equal(t, token.CHAR, toks[0].Kind)
	require.Equal(t, "a", toks[0].Literal)
	require.Equal(t, token.STRING, toks[1].Kind)
	require.Equal(t, "hi\n", toks[1].Literal)
}

func TestTokenizeBlockComment(t *testing.T) {
	toks, err := Tokenize("t.hs", []byte("x {- nested {- comment -} still -} = 1"))
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.VARID, token.OpEquals, token.INT, token.EOF}, kinds(toks))
}
