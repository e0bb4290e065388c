package types

import (
	"fmt"

	"github.com/karolisr/hindley/internal/errors"
	"github.com/karolisr/hindley/internal/token"
)

// Class is one type-class declaration's elaborated shape: its superclasses
// and the class-polymorphic scheme of each method (quantified over the
// class's own type variable plus any the method itself introduces).
type Class struct {
	Name    string
	TyVar   string
	Supers  []string
	Methods map[string]*Scheme
}

// Instance is one elaborated instance declaration.
type Instance struct {
	Class   string
	Head    Type
	Context []Constraint
}

// ClassEnv is the class environment plus the instance environment — spec.md
// lists them as two environments, kept here as one type for the operations
// (entailment, HNF reduction) that need both together.
type ClassEnv struct {
	classes   map[string]*Class
	instances map[string][]*Instance
	defaults  []Type
}

func NewClassEnv() *ClassEnv {
	return &ClassEnv{
		classes:   map[string]*Class{},
		instances: map[string][]*Instance{},
		defaults:  []Type{TInt, TDouble},
	}
}

// SetDefaults overrides the numeric-defaulting fallback list; Elaborate
// calls it with a module's source-level `default (...)` declaration.
func (ce *ClassEnv) SetDefaults(ts []Type) { ce.defaults = ts }
func (ce *ClassEnv) Defaults() []Type      { return ce.defaults }

// AddClass registers c, after checking that its superclass chain doesn't
// cycle back to c.
func (ce *ClassEnv) AddClass(pos token.Pos, c *Class) error {
	ce.classes[c.Name] = c
	if cyc := ce.findSuperclassCycle(c.Name, map[string]bool{}); cyc != nil {
		return errors.Wrap(errors.NewSuperclassCycle(pos, cyc))
	}
	return nil
}

func (ce *ClassEnv) findSuperclassCycle(name string, onPath map[string]bool) []string {
	if onPath[name] {
		return []string{name}
	}
	c, ok := ce.classes[name]
	if !ok {
		return nil
	}
	onPath[name] = true
	for _, s := range c.Supers {
		if cyc := ce.findSuperclassCycle(s, onPath); cyc != nil {
			return append([]string{name}, cyc...)
		}
	}
	delete(onPath, name)
	return nil
}

func (ce *ClassEnv) Class(name string) (*Class, bool) {
	c, ok := ce.classes[name]
	return c, ok
}

// AddInstance registers inst, rejecting it if its head would overlap
// (unify, after renaming type variables apart) with an existing instance
// of the same class — see DESIGN.md's Open Questions for why overlap is
// rejected outright rather than resolved by declaration order.
func (ce *ClassEnv) AddInstance(pos token.Pos, store *Store, inst *Instance) error {
	for _, existing := range ce.instances[inst.Class] {
		if headsOverlap(store, existing.Head, inst.Head) {
			return errors.Wrap(errors.NewInstanceHeadIllegal(pos, inst.Class,
				fmt.Sprintf("%s overlaps with existing instance %s", inst.Head, existing.Head)))
		}
	}
	ce.instances[inst.Class] = append(ce.instances[inst.Class], inst)
	return nil
}

// headsOverlap reports whether a and b can unify once their rigid type
// variables are renamed apart, using a scratch Store so the check has no
// side effect on the caller's meta-variables.
func headsOverlap(_ *Store, a, b Type) bool {
	scratch := NewStore()
	renamed := renameApart(scratch, b, map[string]Type{})
	err := scratch.Unify(token.Pos{}, a, renamed)
	return err == nil
}

func renameApart(store *Store, t Type, seen map[string]Type) Type {
	switch tt := t.(type) {
	case Var:
		if m, ok := seen[tt.Name]; ok {
			return m
		}
		m := store.Fresh(tt.Name)
		seen[tt.Name] = m
		return m
	case App:
		return App{Func: renameApart(store, tt.Func, seen), Arg: renameApart(store, tt.Arg, seen)}
	case Fun:
		return Fun{Domain: renameApart(store, tt.Domain, seen), Range: renameApart(store, tt.Range, seen)}
	case Tuple:
		elems := make([]Type, len(tt.Elems))
		for i, e := range tt.Elems {
			elems[i] = renameApart(store, e, seen)
		}
		return Tuple{Elems: elems}
	case List:
		return List{Elem: renameApart(store, tt.Elem, seen)}
	default:
		return t
	}
}

func (ce *ClassEnv) InstancesOf(class string) []*Instance { return ce.instances[class] }

// BySuper returns c together with every constraint entailed by c's class's
// superclasses, transitively — `Ord a` entails `Eq a`, for instance.
func (ce *ClassEnv) BySuper(c Constraint) []Constraint {
	out := []Constraint{c}
	if cls, ok := ce.classes[c.Class]; ok {
		for _, super := range cls.Supers {
			out = append(out, ce.BySuper(Constraint{Class: super, Type: c.Type})...)
		}
	}
	return out
}

// ByInst tries every instance of c's class, attempting to unify the
// instance head with c's type; on the first match it returns the (fresh,
// instantiated) instance context as new constraints to discharge.
func (ce *ClassEnv) ByInst(store *Store, c Constraint) ([]Constraint, bool) {
	for _, inst := range ce.instances[c.Class] {
		scratch := map[string]Type{}
		head := renameApart(store, inst.Head, scratch)
		ctx := make([]Constraint, len(inst.Context))
		for i, ic := range inst.Context {
			ctx[i] = Constraint{Class: ic.Class, Type: renameApart(store, ic.Type, scratch)}
		}
		checkpoint := store.counter
		if err := store.Unify(token.Pos{}, head, c.Type); err == nil {
			return ctx, true
		}
		_ = checkpoint // meta vars allocated during a failed attempt are harmless, just unused
	}
	return nil, false
}

// Entail reports whether constraint c is a logical consequence of the
// known constraints, either directly via superclass projection or by
// instance resolution.
func (ce *ClassEnv) Entail(store *Store, known []Constraint, c Constraint) bool {
	for _, k := range known {
		for _, sk := range ce.BySuper(k) {
			if sk.Class == c.Class && store.Prune(sk.Type).Equals(store.Prune(c.Type)) {
				return true
			}
		}
	}
	ctx, ok := ce.ByInst(store, c)
	if !ok {
		return false
	}
	for _, sub := range ctx {
		if !ce.Entail(store, known, sub) {
			return false
		}
	}
	return true
}

// InHnf reports whether c is already in head-normal form: its type's spine
// head is a rigid variable or an unresolved meta-variable, rather than a
// type constructor that instance resolution could act on.
func InHnf(store *Store, c Constraint) bool {
	t := store.Prune(c.Type)
	for {
		switch tt := t.(type) {
		case App:
			t = store.Prune(tt.Func)
		case Var:
			return true
		case *Meta:
			return true
		default:
			_ = tt
			return false
		}
	}
}

// ToHnf reduces c to a set of head-normal-form constraints, resolving one
// instance step at a time. Returns a NoInstance report if no instance
// matches a non-HNF constraint.
func (ce *ClassEnv) ToHnf(pos token.Pos, store *Store, c Constraint) ([]Constraint, error) {
	if InHnf(store, c) {
		return []Constraint{c}, nil
	}
	ctx, ok := ce.ByInst(store, c)
	if !ok {
		return nil, errors.Wrap(errors.NewNoInstance(pos, c.Class, store.Prune(c.Type).String()))
	}
	var out []Constraint
	for _, sub := range ctx {
		hnf, err := ce.ToHnf(pos, store, sub)
		if err != nil {
			return nil, err
		}
		out = append(out, hnf...)
	}
	return out, nil
}

// Reduce normalizes cs to head-normal form and then simplifies away any
// constraint entailed by the rest (superclass simplification), the
// classic Jones `reduce = simplify . toHnfs` pipeline.
func (ce *ClassEnv) Reduce(pos token.Pos, store *Store, cs []Constraint) ([]Constraint, error) {
	var hnfs []Constraint
	for _, c := range cs {
		h, err := ce.ToHnf(pos, store, c)
		if err != nil {
			return nil, err
		}
		hnfs = append(hnfs, h...)
	}
	return ce.simplify(store, hnfs), nil
}

func (ce *ClassEnv) simplify(store *Store, cs []Constraint) []Constraint {
	var kept []Constraint
	for i, c := range cs {
		rest := make([]Constraint, 0, len(cs)-1)
		rest = append(rest, kept...)
		rest = append(rest, cs[i+1:]...)
		if !ce.Entail(store, rest, c) {
			kept = append(kept, c)
		}
	}
	return dedupeConstraints(store, kept)
}

func dedupeConstraints(store *Store, cs []Constraint) []Constraint {
	var out []Constraint
	for _, c := range cs {
		dup := false
		for _, o := range out {
			if c.Class == o.Class && store.Prune(c.Type).Equals(store.Prune(o.Type)) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}
