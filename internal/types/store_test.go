package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/token"
)

func TestUnifyFillsMeta(t *testing.T) {
	s := NewStore()
	m := s.Fresh("a")
	err := s.Unify(token.Pos{}, m, TInt)
	require.NoError(t, err)
	require.True(t, s.Prune(m).Equals(TInt))
}

func TestUnifyMismatch(t *testing.T) {
	s := NewStore()
	err := s.Unify(token.Pos{}, TInt, TBool)
	require.Error(t, err)
}

func TestUnifyFunctionTypes(t *testing.T) {
	s := NewStore()
	a := s.Fresh("a")
	b := s.Fresh("b")
	f1 := Fun{Domain: a, Range: TInt}
	f2 := Fun{Domain: TBool, Range: b}
	require.NoError(t, s.Unify(token.Pos{}, f1, f2))
	require.True(t, s.Prune(a).Equals(TBool))
	require.True(t, s.Prune(b).Equals(TInt))
}

func TestOccursCheckFails(t *testing.T) {
	s := NewStore()
	m := s.Fresh("a")
	err := s.Unify(token.Pos{}, m, List{Elem: m})
	require.Error(t, err)
}

func TestZonkResolvesNestedMetas(t *testing.T) {
	s := NewStore()
	m := s.Fresh("a")
	require.NoError(t, s.Unify(token.Pos{}, m, TInt))
	z := s.Zonk(Tuple{Elems: []Type{m, TBool}})
	require.Equal(t, "(Int, Bool)", z.String())
}

func TestFreeMetasSkipsFilled(t *testing.T) {
	s := NewStore()
	m1 := s.Fresh("a")
	m2 := s.Fresh("b")
	require.NoError(t, s.Unify(token.Pos{}, m1, TInt))
	free := s.FreeMetas(Fun{Domain: m1, Range: m2})
	require.Len(t, free, 1)
}
