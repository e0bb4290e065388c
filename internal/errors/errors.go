// Package errors defines the structured diagnostic kinds produced by every
// diagnosing phase of the pipeline (parser, kind checker, elaborator) as
// typed, source-located values rather than bare error strings.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/karolisr/hindley/internal/token"
)

// Kind identifies the category of a diagnostic.
type Kind string

const (
	ParseError                     Kind = "ParseError"
	KindMismatch                   Kind = "KindMismatch"
	TypeMismatch                   Kind = "TypeMismatch"
	OccursCheck                    Kind = "OccursCheck"
	UnknownName                    Kind = "UnknownName"
	AmbiguousConstraint            Kind = "AmbiguousConstraint"
	NoInstance                     Kind = "NoInstance"
	MonomorphismRestrictionViolated Kind = "MonomorphismRestrictionViolated"
	InstanceHeadIllegal             Kind = "InstanceHeadIllegal"
	SuperclassCycle                 Kind = "SuperclassCycle"
)

// phaseOf maps each Kind to the pipeline phase that raises it, for the
// "phase" field of Report's JSON rendering.
var phaseOf = map[Kind]string{
	ParseError:                      "parser",
	KindMismatch:                    "kinds",
	TypeMismatch:                    "typecheck",
	OccursCheck:                     "typecheck",
	UnknownName:                     "typecheck",
	AmbiguousConstraint:             "typecheck",
	NoInstance:                      "typecheck",
	MonomorphismRestrictionViolated: "typecheck",
	InstanceHeadIllegal:             "kinds",
	SuperclassCycle:                 "typecheck",
}

// Report is the canonical structured diagnostic. Every constructor in this
// package returns one, and it always travels wrapped as an error via
// ReportError so it survives errors.As() unwrapping.
type Report struct {
	Schema     string         `json:"schema"`
	Kind       Kind           `json:"kind"`
	Phase      string         `json:"phase"`
	Message    string         `json:"message"`
	Pos        *token.Pos     `json:"pos,omitempty"`
	Path       []string       `json:"path,omitempty"`
	Expected   string         `json:"expected,omitempty"`
	Actual     string         `json:"actual,omitempty"`
	Suggestion string         `json:"suggestion,omitempty"`
	Candidates []string       `json:"candidates,omitempty"` // AmbiguousConstraint: one rejection reason per default candidate tried
	Data       map[string]any `json:"data,omitempty"`
}

const schemaTag = "corec.diagnostic/v1"

// ReportError wraps a *Report as an error.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Error()
}

// Error renders a Report as a single human-readable line.
func (r *Report) Error() string {
	var b strings.Builder
	if r.Pos != nil {
		fmt.Fprintf(&b, "%s: ", r.Pos)
	}
	fmt.Fprintf(&b, "%s: %s", r.Kind, r.Message)
	if r.Expected != "" || r.Actual != "" {
		fmt.Fprintf(&b, " (expected %s, got %s)", r.Expected, r.Actual)
	}
	if len(r.Path) > 0 {
		fmt.Fprintf(&b, " in %s", strings.Join(r.Path, " -> "))
	}
	if r.Suggestion != "" {
		fmt.Fprintf(&b, "\n  suggestion: %s", r.Suggestion)
	}
	for _, c := range r.Candidates {
		fmt.Fprintf(&b, "\n  rejected default: %s", c)
	}
	return b.String()
}

// ToJSON renders the Report as deterministic JSON.
func (r *Report) ToJSON(indent bool) (string, error) {
	var data []byte
	var err error
	if indent {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = json.Marshal(r)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Wrap returns r as an error.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// AsReport extracts a *Report from err's chain, if any.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if stderrors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

func newReport(kind Kind, pos token.Pos, msg string) *Report {
	return &Report{Schema: schemaTag, Kind: kind, Phase: phaseOf[kind], Message: msg, Pos: &pos}
}

// NewParseError reports a malformed surface-syntax construct.
func NewParseError(pos token.Pos, msg string) *Report {
	return newReport(ParseError, pos, msg)
}

// NewKindMismatch reports two kinds that failed to unify.
func NewKindMismatch(pos token.Pos, path []string, expected, actual string) *Report {
	r := newReport(KindMismatch, pos, fmt.Sprintf("kind mismatch: expected %s, got %s", expected, actual))
	r.Path = path
	r.Expected = expected
	r.Actual = actual
	return r
}

// NewTypeMismatch reports two types that failed to unify.
func NewTypeMismatch(pos token.Pos, path []string, expected, actual string) *Report {
	r := newReport(TypeMismatch, pos, fmt.Sprintf("couldn't match expected type %s with actual type %s", expected, actual))
	r.Path = path
	r.Expected = expected
	r.Actual = actual
	return r
}

// NewOccursCheck reports a meta-variable that would need to unify with a
// type containing itself.
func NewOccursCheck(pos token.Pos, varName, occursIn string) *Report {
	r := newReport(OccursCheck, pos, fmt.Sprintf("occurs check: cannot construct infinite type %s ~ %s", varName, occursIn))
	r.Expected = varName
	r.Actual = occursIn
	return r
}

// NewUnknownName reports a reference to a name absent from every
// environment (GVE/LVE/CVE) in scope.
func NewUnknownName(pos token.Pos, name string) *Report {
	r := newReport(UnknownName, pos, fmt.Sprintf("%q is not in scope", name))
	r.Suggestion = "check for a typo, or a missing import"
	return r
}

// NewAmbiguousConstraint reports a defaulting failure; candidates holds one
// rejection reason per type tried from the module's (or the built-in)
// default list, per the BAli-Phy-derived accumulation behaviour.
func NewAmbiguousConstraint(pos token.Pos, tyVar string, classes []string, candidates []string) *Report {
	r := newReport(AmbiguousConstraint, pos, fmt.Sprintf("ambiguous type variable %s arising from constraints (%s)", tyVar, strings.Join(classes, ", ")))
	r.Candidates = candidates
	return r
}

// NewNoInstance reports a constraint with no matching instance declaration.
func NewNoInstance(pos token.Pos, class, typeStr string) *Report {
	r := newReport(NoInstance, pos, fmt.Sprintf("no instance for %s %s", class, typeStr))
	r.Expected = class
	r.Actual = typeStr
	return r
}

// NewMonomorphismRestrictionViolated reports a binding that the
// monomorphism restriction forbids generalizing over its constraints.
func NewMonomorphismRestrictionViolated(pos token.Pos, name string, constraints []string) *Report {
	r := newReport(MonomorphismRestrictionViolated, pos, fmt.Sprintf("the monomorphism restriction prevents generalizing %s over (%s)", name, strings.Join(constraints, ", ")))
	r.Suggestion = "add a type signature to generalize this binding explicitly"
	return r
}

// NewInstanceHeadIllegal reports an instance head that isn't of the form
// `Class (T a1 ... an)` with distinct type variables a1..an.
func NewInstanceHeadIllegal(pos token.Pos, class, head string) *Report {
	return newReport(InstanceHeadIllegal, pos, fmt.Sprintf("illegal instance head: %s %s", class, head))
}

// NewSuperclassCycle reports a class hierarchy containing a cycle.
func NewSuperclassCycle(pos token.Pos, cycle []string) *Report {
	r := newReport(SuperclassCycle, pos, fmt.Sprintf("superclass cycle: %s", strings.Join(cycle, " -> ")))
	r.Path = cycle
	return r
}

// List aggregates multiple diagnostics raised from one compilation pass.
type List []*Report

func (l List) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	var b strings.Builder
	for i, r := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d) %s", i+1, r.Error())
	}
	return b.String()
}

func (l List) HasErrors() bool { return len(l) > 0 }
