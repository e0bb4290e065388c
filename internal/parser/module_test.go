package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/lexer"
)

func parseSrc(t *testing.T, src string) (*ast.Module, []string) {
	t.Helper()
	toks, err := lexer.Tokenize("test.hs", []byte(src))
	require.NoError(t, err)
	m, errs := ParseModule(toks)
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return m, msgs
}

func TestParseModuleHeaderAndExports(t *testing.T) {
	src := `module Demo (f, g) where
f x = x
g y = y
`
	m, errs := parseSrc(t, src)
	require.Empty(t, errs)
	require.Equal(t, "Demo", m.Name)
	require.Equal(t, []string{"f", "g"}, m.Exports)
	require.Len(t, m.Decls, 2)
}

func TestParseModuleWithoutHeaderDefaultsToMain(t *testing.T) {
	m, errs := parseSrc(t, "x = 1\n")
	require.Empty(t, errs)
	require.Equal(t, "Main", m.Name)
}

func TestParseImportQualifiedAsHiding(t *testing.T) {
	src := `module M where
import qualified Data.Map as Map
import Prelude hiding (map)
x = 1
`
	m, errs := parseSrc(t, src)
	require.Empty(t, errs)
	require.Len(t, m.Imports, 2)
	require.True(t, m.Imports[0].Qualified)
	require.Equal(t, "Map", m.Imports[0].As)
	require.True(t, m.Imports[1].Hiding)
}

func TestParseDefaultDecl(t *testing.T) {
	src := `module M where
default (Int, Double)
x = 1
`
	m, errs := parseSrc(t, src)
	require.Empty(t, errs)
	require.NotNil(t, m.Default)
	require.Len(t, m.Default.Types, 2)
}

func TestParseFixityDeclUpdatesTable(t *testing.T) {
	src := `module M where
infixl 5 >>>
x = 1
`
	m, errs := parseSrc(t, src)
	require.Empty(t, errs)
	require.Len(t, m.Fixities, 1)
	require.Equal(t, 5, m.Fixities[0].Precedence)
}
