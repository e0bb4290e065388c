package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/token"
)

func TestNameString(t *testing.T) {
	require.Equal(t, "foo", Name{Text: "foo"}.String())
	require.Equal(t, "Data.Map.foo", Name{Qualifier: "Data.Map", Text: "foo"}.String())
}

func TestFuncTypeString(t *testing.T) {
	ft := &FuncType{
		Domain: &TypeCon{Name: "Int"},
		Range:  &TypeCon{Name: "Bool"},
	}
	require.Equal(t, "(Int -> Bool)", ft.String())
}

func TestDeclNodesImplementDecl(t *testing.T) {
	var decls []Decl
	decls = append(decls,
		&FixityDecl{Assoc: AssocLeft, Precedence: 6, Ops: []string{"+"}},
		&TypeSigDecl{Names: []string{"f"}, Type: &TypeCon{Name: "Int"}},
		&FunBind{Name: "f"},
		&DataDecl{Name: "Maybe"},
		&NewtypeDecl{Name: "Age"},
		&TypeSynonymDecl{Name: "Name"},
		&ClassDecl{Name: "Eq", TyVar: "a"},
		&InstanceDecl{Class: "Eq", Head: &TypeCon{Name: "Int"}},
		&DefaultDecl{Types: []Type{&TypeCon{Name: "Int"}}},
	)
	require.Len(t, decls, 9)
	for _, d := range decls {
		require.NotEmpty(t, d.String())
	}
}

func TestPatternsImplementPattern(t *testing.T) {
	var pats []Pattern = []Pattern{
		&VarPattern{Name: "x"},
		&WildcardPattern{},
		&LitPattern{Kind: LitInt, Value: "1"},
		&ConstructorPattern{Name: "Just", Args: []Pattern{&VarPattern{Name: "x"}}},
		&TuplePattern{},
		&ListPattern{},
		&ConsPattern{Head: &VarPattern{Name: "x"}, Tail: &VarPattern{Name: "xs"}},
		&AsPattern{Name: "all", Pattern: &WildcardPattern{}},
		&LazyPattern{Pattern: &WildcardPattern{}},
		&BangPattern{Pattern: &WildcardPattern{}},
		&SigPattern{Pattern: &WildcardPattern{}, Type: &TypeCon{Name: "Int"}},
	}
	require.Len(t, pats, 11)
}

func TestPosPropagation(t *testing.T) {
	p := token.Pos{File: "t.hs", Line: 3, Column: 5}
	v := &Var{Pos: p, Name: Name{Text: "x"}}
	require.Equal(t, p, v.Position())
}
