package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLIEPushPopIsolatesFrames(t *testing.T) {
	l := NewLIE()
	l.Want(Constraint{Class: "Eq", Type: TInt})
	l.Push()
	l.Want(Constraint{Class: "Ord", Type: TBool})
	inner := l.Pop()
	require.Len(t, inner, 1)
	require.Equal(t, "Ord", inner[0].Class)
	outer := l.Pop()
	require.Len(t, outer, 1)
	require.Equal(t, "Eq", outer[0].Class)
}

func TestLIEWantAll(t *testing.T) {
	l := NewLIE()
	l.WantAll([]Constraint{{Class: "Eq", Type: TInt}, {Class: "Ord", Type: TInt}})
	require.Len(t, l.Pop(), 2)
}
