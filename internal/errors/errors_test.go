package errors

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/token"
)

func TestReportErrorFormatsPositionAndMessage(t *testing.T) {
	pos := token.Pos{File: "t.hs", Line: 2, Column: 3}
	r := NewTypeMismatch(pos, []string{"f", "body"}, "Int", "Bool")
	msg := r.Error()
	require.Contains(t, msg, "t.hs:2:3")
	require.Contains(t, msg, "TypeMismatch")
	require.Contains(t, msg, "expected Int, got Bool")
	require.Contains(t, msg, "f -> body")
}

func TestWrapAndAsReportRoundTrip(t *testing.T) {
	r := NewUnknownName(token.Pos{Line: 1, Column: 1}, "foo")
	err := Wrap(r)
	got, ok := AsReport(err)
	require.True(t, ok)
	require.Equal(t, r, got)
}

func TestAmbiguousConstraintCarriesCandidates(t *testing.T) {
	r := NewAmbiguousConstraint(token.Pos{}, "a", []string{"Num", "Show"},
		[]string{"Int: no Show instance", "Double: no Show instance"})
	require.Len(t, r.Candidates, 2)
	require.Contains(t, r.Error(), "rejected default: Int: no Show instance")
}

func TestListErrorNumbersEntries(t *testing.T) {
	l := List{
		NewParseError(token.Pos{Line: 1, Column: 1}, "unexpected token"),
		NewKindMismatch(token.Pos{Line: 2, Column: 1}, nil, "*", "* -> *"),
	}
	msg := l.Error()
	require.Contains(t, msg, "1) ")
	require.Contains(t, msg, "2) ")
	require.True(t, l.HasErrors())
}

func TestReportToJSONRoundTrips(t *testing.T) {
	r := NewNoInstance(token.Pos{Line: 5, Column: 1}, "Ord", "Maybe a")
	js, err := r.ToJSON(false)
	require.NoError(t, err)
	require.Contains(t, js, `"kind":"NoInstance"`)
	require.Contains(t, js, `"schema":"corec.diagnostic/v1"`)
}
