package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karolisr/hindley/internal/errors"
	"github.com/karolisr/hindley/internal/token"
)

func numClassEnv() *ClassEnv {
	ce := NewClassEnv()
	_ = ce.AddClass(token.Pos{}, &Class{Name: "Num"})
	_ = ce.AddClass(token.Pos{}, &Class{Name: "Show"})
	_ = ce.AddInstance(token.Pos{}, NewStore(), &Instance{Class: "Num", Head: TInt})
	_ = ce.AddInstance(token.Pos{}, NewStore(), &Instance{Class: "Num", Head: TInteger})
	_ = ce.AddInstance(token.Pos{}, NewStore(), &Instance{Class: "Num", Head: TDouble})
	_ = ce.AddInstance(token.Pos{}, NewStore(), &Instance{Class: "Show", Head: TInteger})
	_ = ce.AddInstance(token.Pos{}, NewStore(), &Instance{Class: "Show", Head: TDouble})
	return ce
}

func TestDefaultingPicksFirstSatisfyingCandidate(t *testing.T) {
	ce := numClassEnv()
	s := NewStore()
	v := s.Fresh("a")
	traces, err := ce.Defaulting(s, []AmbiguousGroup{
		{Var: v, Constraints: []Constraint{{Class: "Num", Type: v}}},
	})
	require.NoError(t, err)
	require.Len(t, traces, 1)
	require.True(t, s.Prune(v).Equals(TInt))
}

func TestDefaultingFailsWithoutNumConstraint(t *testing.T) {
	ce := numClassEnv()
	s := NewStore()
	v := s.Fresh("a")
	_, err := ce.Defaulting(s, []AmbiguousGroup{
		{Var: v, Constraints: []Constraint{{Class: "Show", Type: v}}},
	})
	require.Error(t, err)
}

func TestDefaultingSkipsCandidateMissingSecondClass(t *testing.T) {
	ce := numClassEnv()
	_ = ce.AddClass(token.Pos{}, &Class{Name: "Fractional"})
	_ = ce.AddInstance(token.Pos{}, NewStore(), &Instance{Class: "Fractional", Head: TDouble})
	ce.SetDefaults([]Type{TInteger, TDouble})
	s := NewStore()
	v := s.Fresh("a")
	traces, err := ce.Defaulting(s, []AmbiguousGroup{
		{Var: v, Constraints: []Constraint{{Class: "Num", Type: v}, {Class: "Fractional", Type: v}}},
	})
	require.NoError(t, err)
	require.True(t, s.Prune(v).Equals(TDouble))
	require.Equal(t, TDouble, traces[0].Default)
}

func TestDefaultingExhaustsCandidatesAndReportsReasons(t *testing.T) {
	ce := numClassEnv()
	_ = ce.AddClass(token.Pos{}, &Class{Name: "Floating"})
	// no Floating instance for either default candidate: must fail, and the
	// report should carry one rejection reason per candidate tried.
	ce.SetDefaults([]Type{TInteger, TDouble})
	s := NewStore()
	v := s.Fresh("a")
	_, err := ce.Defaulting(s, []AmbiguousGroup{
		{Var: v, Constraints: []Constraint{{Class: "Num", Type: v}, {Class: "Floating", Type: v}}},
	})
	require.Error(t, err)
	rep, ok := errors.AsReport(err)
	require.True(t, ok)
	require.Len(t, rep.Candidates, 2)
}
