package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/ast"
)

func TestParseSimpleTypeSig(t *testing.T) {
	m, errs := parseSrc(t, "id :: a -> a\nid x = x\n")
	require.Empty(t, errs)
	var sig *ast.TypeSigDecl
	for _, d := range m.Decls {
		if s, ok := d.(*ast.TypeSigDecl); ok {
			sig = s
		}
	}
	require.NotNil(t, sig)
	fn, ok := sig.Type.(*ast.FuncType)
	require.True(t, ok)
	_, ok = fn.Domain.(*ast.TypeVar)
	require.True(t, ok)
}

func TestParseMultiNameSig(t *testing.T) {
	m, errs := parseSrc(t, "x, y :: Int\nx = 1\ny = 2\n")
	require.Empty(t, errs)
	var sig *ast.TypeSigDecl
	for _, d := range m.Decls {
		if s, ok := d.(*ast.TypeSigDecl); ok {
			sig = s
		}
	}
	require.NotNil(t, sig)
	require.Equal(t, []string{"x", "y"}, sig.Names)
}

func TestParseContextInTypeSig(t *testing.T) {
	m, errs := parseSrc(t, "eq :: Eq a => a -> a -> Bool\neq x y = True\n")
	require.Empty(t, errs)
	var sig *ast.TypeSigDecl
	for _, d := range m.Decls {
		if s, ok := d.(*ast.TypeSigDecl); ok {
			sig = s
		}
	}
	require.NotNil(t, sig)
	c, ok := sig.Type.(*ast.ConstrainedType)
	require.True(t, ok)
	require.Len(t, c.Context, 1)
	require.Equal(t, "Eq", c.Context[0].Class)
}

func TestParseTupleAndListTypes(t *testing.T) {
	m, errs := parseSrc(t, "p :: (Int, Bool)\np = (1, True)\nq :: [Int]\nq = [1]\n")
	require.Empty(t, errs)
	var tupSig, listSig *ast.TypeSigDecl
	for _, d := range m.Decls {
		if s, ok := d.(*ast.TypeSigDecl); ok {
			switch s.Type.(type) {
			case *ast.TupleType:
				tupSig = s
			case *ast.ListType:
				listSig = s
			}
		}
	}
	require.NotNil(t, tupSig)
	require.NotNil(t, listSig)
}

func TestParseDataDeclWithConstructors(t *testing.T) {
	m, errs := parseSrc(t, "data Maybe a = Nothing | Just a\n")
	require.Empty(t, errs)
	dd, ok := m.Decls[0].(*ast.DataDecl)
	require.True(t, ok)
	require.Equal(t, []string{"a"}, dd.TyVars)
	require.Len(t, dd.Constructors, 2)
	require.Equal(t, "Just", dd.Constructors[1].Name)
	require.Len(t, dd.Constructors[1].Fields, 1)
}

func TestParseRecordDataDecl(t *testing.T) {
	m, errs := parseSrc(t, "data Point = Point { x :: Int, y :: Int }\n")
	require.Empty(t, errs)
	dd, ok := m.Decls[0].(*ast.DataDecl)
	require.True(t, ok)
	require.True(t, dd.Constructors[0].Record)
	require.Len(t, dd.Constructors[0].Fields, 2)
}

func TestParseClassAndInstance(t *testing.T) {
	src := `class Eq a where
  eq :: a -> a -> Bool
instance Eq Int where
  eq x y = True
`
	m, errs := parseSrc(t, src)
	require.Empty(t, errs)
	var class *ast.ClassDecl
	var inst *ast.InstanceDecl
	for _, d := range m.Decls {
		switch dd := d.(type) {
		case *ast.ClassDecl:
			class = dd
		case *ast.InstanceDecl:
			inst = dd
		}
	}
	require.NotNil(t, class)
	require.Len(t, class.Signatures, 1)
	require.NotNil(t, inst)
	require.Equal(t, "Eq", inst.Class)
	require.Len(t, inst.Methods, 1)
}
