package types

import (
	"fmt"

	"github.com/karolisr/hindley/internal/errors"
	"github.com/karolisr/hindley/internal/token"
)

// defaultableClasses are the standard classes §4.4.9's defaulting rule is
// allowed to fire for; at least one of a group's classes must be Num.
var defaultableClasses = map[string]bool{
	"Num": true, "Integral": true, "Fractional": true, "Real": true,
	"RealFrac": true, "Floating": true, "Eq": true, "Ord": true, "Show": true,
}

// AmbiguousGroup is one ambiguous meta-variable together with every
// constraint accumulated against it once generalization decided not to
// quantify over it (spec §4.4.9: it appears in the LIE but not in the
// type being generalized).
type AmbiguousGroup struct {
	Var         *Meta
	Constraints []Constraint
	Pos         token.Pos
}

// Trace records one resolved defaulting decision, for diagnostics/REPL
// `:type` display.
type Trace struct {
	Var     string
	Default Type
	Classes []string
}

// Defaulting resolves every group in groups against ce's fallback default
// list, filling each meta-variable's cell with the first candidate type
// that satisfies every constraint in the group. Returns the defaulting
// trace for diagnostics, or an AmbiguousConstraint report (with one
// rejection reason per candidate tried) on the first unresolvable group.
func (ce *ClassEnv) Defaulting(store *Store, groups []AmbiguousGroup) ([]Trace, error) {
	var traces []Trace
	for _, g := range groups {
		classes := SortedClassNames(g.Constraints)
		if !isDefaultableGroup(g.Constraints) {
			return traces, errors.Wrap(errors.NewAmbiguousConstraint(g.Pos, g.Var.String(), classes, nil))
		}
		var candidateReasons []string
		resolved := false
		for _, cand := range ce.defaults {
			ok, reason := ce.candidateSatisfies(store, cand, g.Constraints)
			if ok {
				if err := store.bind(g.Pos, g.Var, cand); err != nil {
					return traces, err
				}
				traces = append(traces, Trace{Var: g.Var.String(), Default: cand, Classes: classes})
				resolved = true
				break
			}
			candidateReasons = append(candidateReasons, reason)
		}
		if !resolved {
			return traces, errors.Wrap(errors.NewAmbiguousConstraint(g.Pos, g.Var.String(), classes, candidateReasons))
		}
	}
	return traces, nil
}

func isDefaultableGroup(cs []Constraint) bool {
	sawNum := false
	for _, c := range cs {
		if !defaultableClasses[c.Class] {
			return false
		}
		if c.Class == "Num" {
			sawNum = true
		}
	}
	return sawNum
}

// candidateSatisfies checks whether cand has an instance for every class in
// cs, returning a human-readable rejection reason for the first class it
// fails (used to build the AmbiguousConstraint candidate list per
// SPEC_FULL.md §7's default.cc-derived per-candidate accumulation).
func (ce *ClassEnv) candidateSatisfies(store *Store, cand Type, cs []Constraint) (bool, string) {
	for _, c := range cs {
		if !ce.Entail(store, nil, Constraint{Class: c.Class, Type: cand}) {
			return false, fmt.Sprintf("%s: no %s instance", cand, c.Class)
		}
	}
	return true, ""
}
