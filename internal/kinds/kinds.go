// Package kinds implements the kind algebra and the kind checker that
// builds the type-constructor environment (TCE) from data/newtype/class/
// instance/type-synonym headers.
package kinds

import "fmt"

// Kind is implemented by every kind-algebra member: ★ | Constraint | κ→κ |
// κvar.
type Kind interface {
	kind()
	String() string
	Equals(Kind) bool
}

// Star is the kind of ordinary (boxed, lifted) types.
type Star struct{}

func (Star) kind()            {}
func (Star) String() string    { return "*" }
func (Star) Equals(k Kind) bool {
	_, ok := Prune(k).(Star)
	return ok
}

// ConstraintKind is the kind of a class-constraint application (e.g. `Eq a`).
type ConstraintKind struct{}

func (ConstraintKind) kind()             {}
func (ConstraintKind) String() string    { return "Constraint" }
func (ConstraintKind) Equals(k Kind) bool {
	_, ok := Prune(k).(ConstraintKind)
	return ok
}

// Arrow is a kind-level function κ1 → κ2, the kind of a type constructor
// that still needs an argument.
type Arrow struct {
	From Kind
	To   Kind
}

func (Arrow) kind() {}
func (a Arrow) String() string {
	return fmt.Sprintf("(%s -> %s)", a.From, a.To)
}
func (a Arrow) Equals(k Kind) bool {
	o, ok := Prune(k).(Arrow)
	if !ok {
		return false
	}
	return a.From.Equals(o.From) && a.To.Equals(o.To)
}

// Var is a kind variable, used while inferring the kinds of mutually
// recursive type constructors before defaulting unconstrained variables
// to Star at the end of checking a declaration group.
type Var struct {
	id   int
	name string
	ref  *Kind // filled in by Unify; nil while unresolved
}

func NewVar(id int, name string) *Var { return &Var{id: id, name: name} }

func (v *Var) kind() {}
func (v *Var) String() string {
	if v.ref != nil {
		return (*v.ref).String()
	}
	return "k" + v.name
}
func (v *Var) Equals(k Kind) bool {
	if v.ref != nil {
		return (*v.ref).Equals(k)
	}
	o, ok := Prune(k).(*Var)
	return ok && o.id == v.id
}

// Prune follows a chain of filled kind variables to the representative
// kind, mirroring internal/types' Store.Prune for meta-variables.
func Prune(k Kind) Kind {
	for {
		v, ok := k.(*Var)
		if !ok || v.ref == nil {
			return k
		}
		k = *v.ref
	}
}

// ArityToKind builds the kind `★ -> ★ -> ... -> ★` for a type constructor
// declared with n type-variable parameters, all parameters and the result
// defaulted to Star (the checker only builds richer kinds, e.g. with
// Constraint components, for class/instance heads).
func ArityToKind(arity int) Kind {
	k := Kind(Star{})
	for i := 0; i < arity; i++ {
		k = Arrow{From: Star{}, To: k}
	}
	return k
}
