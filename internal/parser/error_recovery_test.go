package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/lexer"
)

func declName(d ast.Decl) string {
	switch dd := d.(type) {
	case *ast.FunBind:
		return dd.Name
	case *ast.TypeSigDecl:
		if len(dd.Names) > 0 {
			return dd.Names[0]
		}
	}
	return ""
}

// TestErrorRecoverySkipsMalformedDeclAndContinues verifies the single
// recovered-error-mode policy: one ParseError per malformed top-level
// construct, then resynchronization at the next statement so later,
// well-formed declarations still parse.
func TestErrorRecoverySkipsMalformedDeclAndContinues(t *testing.T) {
	src := `module M where
bad = =
good = 1
`
	toks, err := lexer.Tokenize("test.hs", []byte(src))
	require.NoError(t, err)
	m, errs := ParseModule(toks)
	require.NotEmpty(t, errs)
	var foundGood bool
	for _, d := range m.Decls {
		if declName(d) == "good" {
			foundGood = true
		}
	}
	require.True(t, foundGood, "parser should recover and still find the 'good' binding")
}

func TestErrorRecoveryUnclosedParenReportsAndStops(t *testing.T) {
	toks, err := lexer.Tokenize("test.hs", []byte("f = (1 + 2\n"))
	require.NoError(t, err)
	_, errs := ParseModule(toks)
	require.NotEmpty(t, errs)
}

func TestErrorRecoveryMultipleMalformedDecls(t *testing.T) {
	src := `a = )
b = )
c = 1
`
	toks, err := lexer.Tokenize("test.hs", []byte(src))
	require.NoError(t, err)
	m, errs := ParseModule(toks)
	require.GreaterOrEqual(t, len(errs), 2)
	var foundC bool
	for _, d := range m.Decls {
		if declName(d) == "c" {
			foundC = true
		}
	}
	require.True(t, foundC)
}
