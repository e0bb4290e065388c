package main

import (
	"fmt"
	"os"

	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/elaborate"
	"github.com/karolisr/hindley/internal/errors"
	"github.com/karolisr/hindley/internal/kinds"
	"github.com/karolisr/hindley/internal/lexer"
	"github.com/karolisr/hindley/internal/parser"
	"github.com/karolisr/hindley/internal/token"
	"github.com/karolisr/hindley/internal/typedast"
	"github.com/karolisr/hindley/internal/types"
)

// parseFile runs the lexer and parser over the file at path, returning its
// module and any parse diagnostics.
func parseFile(path string) (*ast.Module, errors.List) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.List{errors.NewParseError(token.Pos{}, fmt.Sprintf("cannot read %s: %v", path, err))}
	}
	return parseSource(path, content)
}

func parseSource(file string, content []byte) (*ast.Module, errors.List) {
	normalized := lexer.Normalize(content)
	toks, err := lexer.Tokenize(file, normalized)
	if err != nil {
		if r, ok := errors.AsReport(err); ok {
			return nil, errors.List{r}
		}
		return nil, errors.List{errors.NewParseError(token.Pos{}, err.Error())}
	}
	return parser.ParseModule(toks)
}

// kindCheck runs the kind checker over m, grounding its type-constructor
// environment before any elaboration is attempted.
func kindCheck(m *ast.Module) (*kinds.TCE, errors.List) {
	return kinds.NewChecker().CheckModule(m)
}

// typeCheck runs the full parse -> kind-check -> elaborate pipeline over
// the file at path, stopping at the first phase that reports diagnostics.
func typeCheck(path string, classEnv *types.ClassEnv) (*ast.Module, *typedast.Program, errors.List) {
	m, errs := parseFile(path)
	if len(errs) > 0 {
		return nil, nil, errs
	}
	if _, errs := kindCheck(m); len(errs) > 0 {
		return m, nil, errs
	}
	prog, errs := elaborate.Elaborate(m, classEnv)
	return m, prog, errs
}
