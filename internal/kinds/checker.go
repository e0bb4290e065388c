package kinds

import (
	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/errors"
	"github.com/karolisr/hindley/internal/token"
)

// TCE is the type-constructor environment: the kind assigned to every
// declared type constructor and type-class name.
type TCE struct {
	cons map[string]Kind
}

func NewTCE() *TCE {
	t := &TCE{cons: map[string]Kind{}}
	// built-in nullary type constructors
	for _, name := range []string{"Int", "Integer", "Double", "Char", "Bool", "String", "()"} {
		t.cons[name] = Star{}
	}
	t.cons["[]"] = Arrow{From: Star{}, To: Star{}}
	t.cons["->"] = Arrow{From: Star{}, To: Arrow{From: Star{}, To: Star{}}}
	return t
}

func (t *TCE) Lookup(name string) (Kind, bool) {
	k, ok := t.cons[name]
	return k, ok
}

func (t *TCE) Bind(name string, k Kind) { t.cons[name] = k }

// Checker performs the two-pass kind check described by SPEC_FULL.md §4.2:
// collect a fresh kind variable (and declared arity) per type constructor
// first, then unify kind uses across every header, finally defaulting
// unconstrained kind variables to Star.
type Checker struct {
	tce     *TCE
	nextVar int
	errs    errors.List
}

func NewChecker() *Checker {
	return &Checker{tce: NewTCE()}
}

func (c *Checker) fresh(name string) *Var {
	c.nextVar++
	return NewVar(c.nextVar, name)
}

// CheckModule runs both passes over m's declarations and returns the
// resulting TCE plus any accumulated diagnostics.
func (c *Checker) CheckModule(m *ast.Module) (*TCE, errors.List) {
	c.collectHeaders(m)
	c.checkHeaders(m)
	return c.tce, c.errs
}

// collectHeaders is pass 1: bind every declared type constructor to an
// arrow-of-Star kind built from its declared arity, and every class to
// `* -> Constraint` (class parameters are fixed to Star, Haskell 2010's
// default without -XConstraintKinds/-XKindSignatures).
func (c *Checker) collectHeaders(m *ast.Module) {
	for _, d := range m.Decls {
		switch decl := d.(type) {
		case *ast.DataDecl:
			c.tce.Bind(decl.Name, ArityToKind(len(decl.TyVars)))
		case *ast.NewtypeDecl:
			c.tce.Bind(decl.Name, ArityToKind(len(decl.TyVars)))
		case *ast.TypeSynonymDecl:
			c.tce.Bind(decl.Name, ArityToKind(len(decl.TyVars)))
		case *ast.ClassDecl:
			c.tce.Bind(decl.Name, Arrow{From: Star{}, To: ConstraintKind{}})
		}
	}
}

// checkHeaders is pass 2: walk every type appearing in a header and unify
// constructor applications against the TCE, defaulting any leftover kind
// variable to Star once the declaration group has been walked.
func (c *Checker) checkHeaders(m *ast.Module) {
	for _, d := range m.Decls {
		switch decl := d.(type) {
		case *ast.DataDecl:
			env := c.tyVarEnv(decl.TyVars)
			for _, ctor := range decl.Constructors {
				for _, f := range ctor.Fields {
					c.checkType(f.Type, env)
				}
			}
		case *ast.NewtypeDecl:
			env := c.tyVarEnv(decl.TyVars)
			if decl.Constructor != nil {
				for _, f := range decl.Constructor.Fields {
					c.checkType(f.Type, env)
				}
			}
		case *ast.TypeSynonymDecl:
			env := c.tyVarEnv(decl.TyVars)
			c.checkType(decl.RHS, env)
		case *ast.ClassDecl:
			env := c.tyVarEnv([]string{decl.TyVar})
			for _, sig := range decl.Signatures {
				c.checkType(sig.Type, env)
			}
		case *ast.InstanceDecl:
			c.checkInstanceHead(decl)
		case *ast.TypeSigDecl:
			c.checkType(decl.Type, map[string]Kind{})
		}
	}
}

func (c *Checker) tyVarEnv(vars []string) map[string]Kind {
	env := map[string]Kind{}
	for _, v := range vars {
		env[v] = c.fresh(v)
	}
	return env
}

// checkType infers the kind of a surface type t under env (a map from
// in-scope type-variable name to its kind variable) and returns it,
// unifying applications against each head's declared kind and reporting a
// KindMismatch on failure.
func (c *Checker) checkType(t ast.Type, env map[string]Kind) Kind {
	switch ty := t.(type) {
	case *ast.TypeVar:
		if k, ok := env[ty.Name]; ok {
			return k
		}
		k := c.fresh(ty.Name)
		env[ty.Name] = k
		return k
	case *ast.TypeCon:
		if k, ok := c.tce.Lookup(ty.Name); ok {
			return k
		}
		// unknown constructor: the renamer/GVE lookup reports UnknownName;
		// the kind checker still needs *a* kind to keep walking.
		return c.fresh(ty.Name)
	case *ast.TypeApp:
		funcKind := c.checkType(ty.Func, env)
		argKind := c.checkType(ty.Arg, env)
		result := c.fresh("r")
		c.unify(ty.Pos, funcKind, Arrow{From: argKind, To: result})
		return result
	case *ast.FuncType:
		c.unify(ty.Pos, c.checkType(ty.Domain, env), Star{})
		c.unify(ty.Pos, c.checkType(ty.Range, env), Star{})
		return Star{}
	case *ast.TupleType:
		for _, e := range ty.Elements {
			c.unify(ty.Pos, c.checkType(e, env), Star{})
		}
		return Star{}
	case *ast.ListType:
		c.unify(ty.Pos, c.checkType(ty.Element, env), Star{})
		return Star{}
	case *ast.ForallType:
		inner := map[string]Kind{}
		for k, v := range env {
			inner[k] = v
		}
		for _, v := range ty.TyVars {
			inner[v] = c.fresh(v)
		}
		return c.checkType(ty.Body, inner)
	case *ast.ConstrainedType:
		for _, ctx := range ty.Context {
			for _, a := range ctx.Args {
				c.unify(ty.Pos, c.checkType(a, env), Star{})
			}
		}
		return c.checkType(ty.Body, env)
	case *ast.StrictType:
		return c.checkType(ty.Elem, env)
	case *ast.LazyType:
		return c.checkType(ty.Elem, env)
	default:
		return Star{}
	}
}

func (c *Checker) checkInstanceHead(decl *ast.InstanceDecl) {
	env := map[string]Kind{}
	headKind := c.checkType(decl.Head, env)
	c.unify(decl.Pos, headKind, Star{})
	for _, ctx := range decl.Context {
		for _, a := range ctx.Args {
			c.unify(decl.Pos, c.checkType(a, env), Star{})
		}
	}
	if !isInstanceHeadShapeLegal(decl.Head) {
		c.errs = append(c.errs, errors.NewInstanceHeadIllegal(decl.Pos, decl.Class, decl.Head.String()))
	}
}

// isInstanceHeadShapeLegal requires `Class (T a1 ... an)` with T a type
// constructor applied only to distinct type variables (Haskell 2010
// §4.3.2's instance-head restriction). Whether T is declared is not
// checked here.
func isInstanceHeadShapeLegal(head ast.Type) bool {
	seen := map[string]bool{}
	var walk func(t ast.Type) (sawCon bool, ok bool)
	walk = func(t ast.Type) (bool, bool) {
		switch ty := t.(type) {
		case *ast.TypeCon:
			return true, true
		case *ast.TypeApp:
			sawFunc, okFunc := walk(ty.Func)
			v, isVar := ty.Arg.(*ast.TypeVar)
			if !isVar || seen[v.Name] {
				return sawFunc, false
			}
			seen[v.Name] = true
			return sawFunc, okFunc
		case *ast.ListType:
			_, isVar := ty.Element.(*ast.TypeVar)
			return true, isVar
		case *ast.TupleType:
			ok := true
			for _, e := range ty.Elements {
				v, isVar := e.(*ast.TypeVar)
				if !isVar || seen[v.Name] {
					ok = false
					continue
				}
				seen[v.Name] = true
			}
			return true, ok
		default:
			return false, false
		}
	}
	sawCon, ok := walk(head)
	return sawCon && ok
}

// unify performs first-order kind unification, filling kind variables by
// mutation (mirroring internal/types' mutable meta-variable Store).
func (c *Checker) unify(pos token.Pos, a, b Kind) {
	a, b = Prune(a), Prune(b)
	if a.Equals(b) {
		return
	}
	if v, ok := a.(*Var); ok {
		kb := b
		v.ref = &kb
		return
	}
	if v, ok := b.(*Var); ok {
		ka := a
		v.ref = &ka
		return
	}
	aa, aok := a.(Arrow)
	bb, bok := b.(Arrow)
	if aok && bok {
		c.unify(pos, aa.From, bb.From)
		c.unify(pos, aa.To, bb.To)
		return
	}
	c.errs = append(c.errs, errors.NewKindMismatch(pos, nil, a.String(), b.String()))
}

// Default replaces every still-unresolved kind variable reachable from k
// with Star, per §4.2's closing-defaulting step.
func Default(k Kind) Kind {
	switch kk := Prune(k).(type) {
	case *Var:
		s := Kind(Star{})
		kk.ref = &s
		return s
	case Arrow:
		return Arrow{From: Default(kk.From), To: Default(kk.To)}
	default:
		return kk
	}
}
