package types

import (
	"github.com/karolisr/hindley/internal/errors"
	"github.com/karolisr/hindley/internal/token"
)

// Store is the process-wide arena of meta-variable cells for one module
// elaboration (spec §5's parallel-by-module note: allocate one Store per
// module being elaborated concurrently).
type Store struct {
	cells   []*cell
	counter int
}

func NewStore() *Store {
	return &Store{}
}

// Fresh allocates a new unfilled meta-variable. name is carried only for
// diagnostic rendering (e.g. "t14").
func (s *Store) Fresh(name string) *Meta {
	s.counter++
	c := &cell{}
	s.cells = append(s.cells, c)
	return &Meta{id: s.counter, name: name, cell: c}
}

// Prune follows filled cells to the representative Type, path-compressing
// every cell visited along the way so future lookups are O(1).
func (s *Store) Prune(t Type) Type {
	m, ok := t.(*Meta)
	if !ok || !m.cell.filled {
		return t
	}
	rep := s.Prune(m.cell.value)
	m.cell.value = rep
	return rep
}

// bind fills m's cell with t, after an occurs check.
func (s *Store) bind(pos token.Pos, m *Meta, t Type) error {
	if occurs(m, t) {
		return errors.Wrap(errors.NewOccursCheck(pos, m.String(), t.String()))
	}
	m.cell.filled = true
	m.cell.value = t
	return nil
}

func occurs(m *Meta, t Type) bool {
	switch tt := t.(type) {
	case *Meta:
		if tt.cell.filled {
			return occurs(m, tt.cell.value)
		}
		return tt.id == m.id
	case App:
		return occurs(m, tt.Func) || occurs(m, tt.Arg)
	case Fun:
		return occurs(m, tt.Domain) || occurs(m, tt.Range)
	case Tuple:
		for _, e := range tt.Elems {
			if occurs(m, e) {
				return true
			}
		}
		return false
	case List:
		return occurs(m, tt.Elem)
	default:
		return false
	}
}

// Unify unifies t1 and t2 in place, mutating whichever meta-variable cells
// need filling. Reports a TypeMismatch (or OccursCheck) via errors.Report
// on failure.
func (s *Store) Unify(pos token.Pos, t1, t2 Type) error {
	a := s.Prune(t1)
	b := s.Prune(t2)

	if am, ok := a.(*Meta); ok {
		if bm, ok := b.(*Meta); ok && bm.id == am.id {
			return nil
		}
		return s.bind(pos, am, b)
	}
	if bm, ok := b.(*Meta); ok {
		return s.bind(pos, bm, a)
	}

	switch at := a.(type) {
	case Var:
		bt, ok := b.(Var)
		if !ok || at.Name != bt.Name || at.id != bt.id {
			return errors.Wrap(errors.NewTypeMismatch(pos, nil, a.String(), b.String()))
		}
		return nil
	case Con:
		bt, ok := b.(Con)
		if !ok || at.Name != bt.Name {
			return errors.Wrap(errors.NewTypeMismatch(pos, nil, a.String(), b.String()))
		}
		return nil
	case App:
		bt, ok := b.(App)
		if !ok {
			return errors.Wrap(errors.NewTypeMismatch(pos, nil, a.String(), b.String()))
		}
		if err := s.Unify(pos, at.Func, bt.Func); err != nil {
			return err
		}
		return s.Unify(pos, at.Arg, bt.Arg)
	case Fun:
		bt, ok := b.(Fun)
		if !ok {
			return errors.Wrap(errors.NewTypeMismatch(pos, nil, a.String(), b.String()))
		}
		if err := s.Unify(pos, at.Domain, bt.Domain); err != nil {
			return err
		}
		return s.Unify(pos, at.Range, bt.Range)
	case Tuple:
		bt, ok := b.(Tuple)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return errors.Wrap(errors.NewTypeMismatch(pos, nil, a.String(), b.String()))
		}
		for i := range at.Elems {
			if err := s.Unify(pos, at.Elems[i], bt.Elems[i]); err != nil {
				return err
			}
		}
		return nil
	case List:
		bt, ok := b.(List)
		if !ok {
			return errors.Wrap(errors.NewTypeMismatch(pos, nil, a.String(), b.String()))
		}
		return s.Unify(pos, at.Elem, bt.Elem)
	default:
		return errors.Wrap(errors.NewTypeMismatch(pos, nil, a.String(), b.String()))
	}
}

// Zonk fully dereferences every meta variable reachable from t, returning a
// Type with no remaining filled Meta nodes (unfilled Metas are left as-is,
// representing still-ambiguous or still-polymorphic positions until
// defaulting/generalization resolves them).
func (s *Store) Zonk(t Type) Type {
	t = s.Prune(t)
	switch tt := t.(type) {
	case App:
		return App{Func: s.Zonk(tt.Func), Arg: s.Zonk(tt.Arg)}
	case Fun:
		return Fun{Domain: s.Zonk(tt.Domain), Range: s.Zonk(tt.Range)}
	case Tuple:
		elems := make([]Type, len(tt.Elems))
		for i, e := range tt.Elems {
			elems[i] = s.Zonk(e)
		}
		return Tuple{Elems: elems}
	case List:
		return List{Elem: s.Zonk(tt.Elem)}
	default:
		return tt
	}
}

// Generalize turns t (plus its owned constraints) into a Scheme, binding
// every still-unfilled meta-variable free in t — except the ones present in
// exclude, which are pinned by an enclosing scope and must stay monomorphic
// — to a fresh rigid Var. Binding the meta's cell (rather than just
// recording its name) means every other still-live reference to the same
// meta-variable, anywhere else in the binding being generalized, observes
// the same rigid variable.
func (s *Store) Generalize(t Type, cs []Constraint, exclude map[int]*Meta) *Scheme {
	var vars []string
	for _, m := range s.FreeMetas(t) {
		if _, skip := exclude[m.ID()]; skip {
			continue
		}
		name := genVarName(len(vars))
		vars = append(vars, name)
		m.cell.filled = true
		m.cell.value = Var{Name: name, id: m.id}
	}
	return &Scheme{Vars: vars, Constraints: s.zonkConstraints(cs), Type: s.Zonk(t)}
}

func (s *Store) zonkConstraints(cs []Constraint) []Constraint {
	out := make([]Constraint, len(cs))
	for i, c := range cs {
		out[i] = Constraint{Class: c.Class, Type: s.Zonk(c.Type)}
	}
	return out
}

// genVarName produces successive generalized type-variable names (a, b,
// ..., z, a1, b1, ...), matching the teacher's generalization output style.
func genVarName(i int) string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	letter := string(letters[i%26])
	if i < 26 {
		return letter
	}
	return letter + itoa(i/26)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

// FreeMetas collects the still-unfilled meta variables reachable from t,
// in first-occurrence order — the candidate set for generalization.
func (s *Store) FreeMetas(t Type) []*Meta {
	var out []*Meta
	seen := map[int]bool{}
	var walk func(Type)
	walk = func(t Type) {
		t = s.Prune(t)
		switch tt := t.(type) {
		case *Meta:
			if !seen[tt.id] {
				seen[tt.id] = true
				out = append(out, tt)
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
	return out
}
