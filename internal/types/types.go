// Package types implements the elaborator's type representation: the
// Type/Kind algebra, the mutable meta-variable arena (Store), unification,
// the class and instance environments, and the LIE (local instance
// environment) used while solving class constraints.
//
// Unlike the teacher's internal/types, which threads an immutable
// Substitution map[string]Type through every call, meta-variables here are
// mutable single-assignment cells living in a Store (see store.go) — the
// representation spec.md's data model names explicitly. The surface
// conventions (switch-per-constructor Unify, a separate occurs-check
// helper, Equals/String on every Type) are kept the same as the teacher's.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is implemented by every member of the elaborator's internal type
// representation.
type Type interface {
	fmt.Stringer
	Equals(Type) bool
	typeNode()
}

// Meta is a mutable meta-variable: an unfilled placeholder, or a filled
// cell forwarding to its representative Type. Always allocated by a
// Store so Prune/Unify can find it.
type Meta struct {
	id    int
	name  string
	cell  *cell
}

type cell struct {
	filled bool
	value  Type
}

func (m *Meta) typeNode() {}

// ID returns m's arena-unique identifier, used outside the package only to
// compare a candidate generalization variable against the set already
// pinned by an enclosing environment (internal/types.Env.FreeMetas).
func (m *Meta) ID() int { return m.id }
func (m *Meta) String() string {
	if m.cell.filled {
		return m.cell.value.String()
	}
	return "t" + fmt.Sprint(m.id)
}
func (m *Meta) Equals(o Type) bool {
	if m.cell.filled {
		return m.cell.value.Equals(o)
	}
	om, ok := o.(*Meta)
	return ok && !om.cell.filled && om.id == m.id
}

// Var is a rigid (skolem) type variable — a name bound by generalization
// or an explicit `forall`, never unified away.
type Var struct {
	Name string
	id   int // disambiguates two rigid vars with the same surface name
}

func (v Var) typeNode()         {}
func (v Var) String() string    { return v.Name }
func (v Var) Equals(o Type) bool {
	ov, ok := o.(Var)
	return ok && ov.Name == v.Name && ov.id == v.id
}

// Con is a nullary or to-be-applied type constructor.
type Con struct {
	Name string
}

func (c Con) typeNode()         {}
func (c Con) String() string    { return c.Name }
func (c Con) Equals(o Type) bool {
	oc, ok := o.(Con)
	return ok && oc.Name == c.Name
}

// App is type-constructor application `Func Arg`.
type App struct {
	Func Type
	Arg  Type
}

func (a App) typeNode() {}
func (a App) String() string {
	return fmt.Sprintf("(%s %s)", a.Func, a.Arg)
}
func (a App) Equals(o Type) bool {
	oa, ok := o.(App)
	return ok && a.Func.Equals(oa.Func) && a.Arg.Equals(oa.Arg)
}

// Fun is the function type `Domain -> Range`.
type Fun struct {
	Domain Type
	Range  Type
}

func (f Fun) typeNode() {}
func (f Fun) String() string {
	return fmt.Sprintf("(%s -> %s)", f.Domain, f.Range)
}
func (f Fun) Equals(o Type) bool {
	of, ok := o.(Fun)
	return ok && f.Domain.Equals(of.Domain) && f.Range.Equals(of.Range)
}

// Tuple is an n-ary tuple type.
type Tuple struct {
	Elems []Type
}

func (t Tuple) typeNode() {}
func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
func (t Tuple) Equals(o Type) bool {
	ot, ok := o.(Tuple)
	if !ok || len(ot.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equals(ot.Elems[i]) {
			return false
		}
	}
	return true
}

// List is `[Elem]`.
type List struct {
	Elem Type
}

func (l List) typeNode()         {}
func (l List) String() string    { return fmt.Sprintf("[%s]", l.Elem) }
func (l List) Equals(o Type) bool {
	ol, ok := o.(List)
	return ok && l.Elem.Equals(ol.Elem)
}

// Predefined nullary type constructors.
var (
	TInt     = Con{Name: "Int"}
	TInteger = Con{Name: "Integer"}
	TDouble  = Con{Name: "Double"}
	TChar    = Con{Name: "Char"}
	TBool    = Con{Name: "Bool"}
	TString  = Con{Name: "String"}
	TUnit    = Con{Name: "()"}
)

// Constraint is a single class-constraint `Class Type`.
type Constraint struct {
	Class string
	Type  Type
}

func (c Constraint) String() string { return fmt.Sprintf("%s %s", c.Class, c.Type) }

func (c Constraint) Equals(o Constraint) bool {
	return c.Class == o.Class && c.Type.Equals(o.Type)
}

// Scheme is a generalized, possibly-qualified type: `forall vars. ctx => ty`.
type Scheme struct {
	Vars        []string
	Constraints []Constraint
	Type        Type
}

// Instantiate replaces every quantified variable in s with a fresh meta
// variable from store, returning the instantiated (monomorphic) type and
// constraints.
func (s *Scheme) Instantiate(store *Store) (Type, []Constraint) {
	sub := make(map[string]Type, len(s.Vars))
	for _, v := range s.Vars {
		sub[v] = store.Fresh(v)
	}
	return substitute(s.Type, sub), substituteConstraints(s.Constraints, sub)
}

func substitute(t Type, sub map[string]Type) Type {
	switch tt := t.(type) {
	case Var:
		if r, ok := sub[tt.Name]; ok {
			return r
		}
		return tt
	case App:
		return App{Func: substitute(tt.Func, sub), Arg: substitute(tt.Arg, sub)}
	case Fun:
		return Fun{Domain: substitute(tt.Domain, sub), Range: substitute(tt.Range, sub)}
	case Tuple:
		elems := make([]Type, len(tt.Elems))
		for i, e := range tt.Elems {
			elems[i] = substitute(e, sub)
		}
		return Tuple{Elems: elems}
	case List:
		return List{Elem: substitute(tt.Elem, sub)}
	default:
		return t
	}
}

func substituteConstraints(cs []Constraint, sub map[string]Type) []Constraint {
	out := make([]Constraint, len(cs))
	for i, c := range cs {
		out[i] = Constraint{Class: c.Class, Type: substitute(c.Type, sub)}
	}
	return out
}

// FreeVars returns the rigid type variables free in t, in first-occurrence
// order (used to build a Scheme's Vars list during generalization).
func FreeVars(t Type) []string {
	seen := map[string]bool{}
	var order []string
	var walk func(Type)
	walk = func(t Type) {
		switch tt := t.(type) {
		case Var:
			if !seen[tt.Name] {
				seen[tt.Name] = true
				order = append(order, tt.Name)
			}
		case App:
			walk(tt.Func)
			walk(tt.Arg)
		case Fun:
			walk(tt.Domain)
			walk(tt.Range)
		case Tuple:
			for _, e := range tt.Elems {
				walk(e)
			}
		case List:
			walk(tt.Elem)
		}
	}
	walk(t)
	return order
}

// SortedClassNames returns classes sorted for deterministic diagnostic
// rendering (defaulting's ambiguity report, dictionary-parameter naming).
func SortedClassNames(cs []Constraint) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Class
	}
	sort.Strings(names)
	return names
}
