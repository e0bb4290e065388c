package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/token"
)

func eqClassEnv() *ClassEnv {
	ce := NewClassEnv()
	_ = ce.AddClass(token.Pos{}, &Class{Name: "Eq", Methods: map[string]*Scheme{}})
	_ = ce.AddClass(token.Pos{}, &Class{Name: "Ord", Supers: []string{"Eq"}, Methods: map[string]*Scheme{}})
	_ = ce.AddInstance(token.Pos{}, NewStore(), &Instance{Class: "Eq", Head: TInt})
	_ = ce.AddInstance(token.Pos{}, NewStore(), &Instance{Class: "Ord", Head: TInt})
	return ce
}

func TestBySuperIncludesSuperclasses(t *testing.T) {
	ce := eqClassEnv()
	cs := ce.BySuper(Constraint{Class: "Ord", Type: TInt})
	require.Len(t, cs, 2)
}

func TestEntailViaInstance(t *testing.T) {
	ce := eqClassEnv()
	s := NewStore()
	require.True(t, ce.Entail(s, nil, Constraint{Class: "Eq", Type: TInt}))
	require.False(t, ce.Entail(s, nil, Constraint{Class: "Eq", Type: TBool}))
}

func TestEntailViaSuperclassOfKnown(t *testing.T) {
	ce := eqClassEnv()
	s := NewStore()
	known := []Constraint{{Class: "Ord", Type: TInt}}
	require.True(t, ce.Entail(s, known, Constraint{Class: "Eq", Type: TInt}))
}

func TestSuperclassCycleRejected(t *testing.T) {
	ce := NewClassEnv()
	require.NoError(t, ce.AddClass(token.Pos{}, &Class{Name: "A", Supers: []string{"B"}}))
	err := ce.AddClass(token.Pos{}, &Class{Name: "B", Supers: []string{"A"}})
	require.Error(t, err)
}

func TestAddInstanceRejectsOverlap(t *testing.T) {
	ce := NewClassEnv()
	require.NoError(t, ce.AddClass(token.Pos{}, &Class{Name: "Eq"}))
	require.NoError(t, ce.AddInstance(token.Pos{}, NewStore(), &Instance{Class: "Eq", Head: List{Elem: Var{Name: "a"}}}))
	err := ce.AddInstance(token.Pos{}, NewStore(), &Instance{Class: "Eq", Head: List{Elem: Var{Name: "b"}}})
	require.Error(t, err)
}

func TestReduceDropsEntailedConstraint(t *testing.T) {
	ce := eqClassEnv()
	s := NewStore()
	// Ord a entails Eq a (Eq is Ord's superclass), so { Ord a, Eq a }
	// simplifies to { Ord a }.
	reduced, err := ce.Reduce(token.Pos{}, s, []Constraint{
		{Class: "Ord", Type: Var{Name: "a"}}, {Class: "Eq", Type: Var{Name: "a"}},
	})
	require.NoError(t, err)
	require.Len(t, reduced, 1)
	require.Equal(t, "Ord", reduced[0].Class)
}

func TestToHnfKeepsVarHeaded(t *testing.T) {
	ce := eqClassEnv()
	s := NewStore()
	hnf, err := ce.ToHnf(token.Pos{}, s, Constraint{Class: "Eq", Type: Var{Name: "a"}})
	require.NoError(t, err)
	require.Len(t, hnf, 1)
}

func TestToHnfNoInstance(t *testing.T) {
	ce := eqClassEnv()
	s := NewStore()
	_, err := ce.ToHnf(token.Pos{}, s, Constraint{Class: "Eq", Type: TBool})
	require.Error(t, err)
}
