package elaborate

import (
	"fmt"

	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/errors"
	"github.com/karolisr/hindley/internal/rename"
	"github.com/karolisr/hindley/internal/token"
	"github.com/karolisr/hindley/internal/typedast"
	"github.com/karolisr/hindley/internal/types"
)

// elaborateGroup infers and generalizes one dependency-ordered strongly
// connected component of value bindings together: every name the group
// introduces is bound to a fresh placeholder before any body is inferred,
// so mutually recursive references between group members resolve to the
// same meta-variable their own inference later refines — then, once every
// member's body has been checked, the group's collected wanted constraints
// are reduced and either attached to each member's generalized scheme or,
// for a group the monomorphism restriction applies to, defaulted/reported
// instead of generalized.
func (ctx *InferenceContext) elaborateGroup(env *types.Env, g rename.Group) []*typedast.GenBind {
	child := env.Child()
	placeholders := map[string]types.Type{}
	var sigChecks []sigCheck
	for _, b := range g.Bindings {
		for _, n := range b.Names {
			if b.HasSig {
				if sch, ok := env.Lookup(n); ok {
					ty, givens, skolems := ctx.skolemize(sch)
					placeholders[n] = ty
					child.Bind(n, sch)
					sigChecks = append(sigChecks, sigCheck{pos: b.Decl.Position(), givens: givens, skolems: skolems})
					continue
				}
			}
			m := ctx.store.Fresh(n)
			placeholders[n] = m
			child.Bind(n, &types.Scheme{Type: m})
		}
	}

	ctx.lie.Push()
	occStart := len(ctx.occurrences)

	var results []groupResult
	for _, b := range g.Bindings {
		switch decl := b.Decl.(type) {
		case *ast.FunBind:
			node, ty := ctx.inferFunBind(child, decl)
			ctx.unify(decl.Pos, placeholders[decl.Name], ty)
			results = append(results, groupResult{name: decl.Name, value: node, ty: ty, simple: len(decl.Params) == 0})
		case *ast.PatBind:
			body, pat, varTys := ctx.inferPatBind(child, decl)
			if vp, ok := pat.(*typedast.VarPattern); ok && len(b.Names) == 1 {
				ctx.unify(decl.Pos, placeholders[vp.Name], varTys[vp.Name])
				results = append(results, groupResult{name: vp.Name, value: body, ty: varTys[vp.Name], simple: true})
				continue
			}
			for _, n := range b.Names {
				ctx.unify(decl.Pos, placeholders[n], varTys[n])
				sel := selectorNode(ctx, decl.Pos, body, pat, n, varTys[n])
				results = append(results, groupResult{name: n, value: sel, ty: varTys[n], simple: true})
			}
		}
	}

	wanted := ctx.lie.Pop()
	pos := g.Bindings[0].Decl.Position()

	reduced, err := ctx.classEnv.Reduce(pos, ctx.store, wanted)
	if err != nil {
		if r, ok := errors.AsReport(err); ok {
			ctx.fail(r)
		}
	}
	reduced = ctx.checkSignatureEntailment(reduced, sigChecks)

	envMetas := env.FreeMetas(ctx.store)

	resultMetas := map[int]bool{}
	for _, r := range results {
		for _, m := range ctx.store.FreeMetas(r.ty) {
			resultMetas[m.ID()] = true
		}
	}

	var owned, ambiguous []types.Constraint
	for _, c := range reduced {
		connected := false
		for _, m := range ctx.store.FreeMetas(c.Type) {
			if resultMetas[m.ID()] {
				connected = true
			}
		}
		if connected {
			owned = append(owned, c)
		} else {
			ambiguous = append(ambiguous, c)
		}
	}
	if len(ambiguous) > 0 {
		if _, derr := ctx.classEnv.Defaulting(ctx.store, groupConstraintsByMeta(ctx.store, ambiguous, pos)); derr != nil {
			if r, ok := errors.AsReport(derr); ok {
				ctx.fail(r)
			}
		}
	}

	restricted := false
	for _, r := range results {
		if r.simple {
			restricted = true
		}
	}

	if restricted && len(owned) > 0 {
		if _, derr := ctx.classEnv.Defaulting(ctx.store, groupConstraintsByMeta(ctx.store, owned, pos)); derr != nil {
			for _, r := range results {
				ctx.fail(errors.NewMonomorphismRestrictionViolated(pos, r.name, types.SortedClassNames(owned)))
			}
		}
		owned = nil
	}

	binds := make([]*typedast.GenBind, 0, len(results))
	schemeFor := map[string]*types.Scheme{}
	for _, r := range results {
		b := findBinding(g, r.name)
		if b != nil && b.HasSig {
			sch, _ := env.Lookup(r.name)
			schemeFor[r.name] = sch
			continue
		}
		sch := ctx.store.Generalize(r.ty, owned, envMetas)
		schemeFor[r.name] = sch
	}

	var dictParams []string
	if len(owned) > 0 {
		// Every non-signatured binding in the group shares the same owned
		// constraint set, so one canonical dictionary-parameter naming
		// serves the whole group.
		if sch, ok := firstGeneralizedScheme(results, schemeFor); ok {
			dictParams = dictParamNames(sch.Constraints)
		}
	}

	paramFor := map[string]string{}
	for i, c := range owned {
		if i < len(dictParams) {
			paramFor[constraintKey(ctx.store, c)] = dictParams[i]
		}
	}

	for _, r := range results {
		sch := schemeFor[r.name]
		var params []string
		if len(sch.Constraints) > 0 {
			params = dictParams
		}
		binds = append(binds, &typedast.GenBind{Pos: pos, Name: r.name, Scheme: sch, DictParams: params, Value: r.value})
	}

	ctx.resolveDictionaries(binds, occStart, paramFor)
	return binds
}

// groupResult is one group member's inferred (not yet generalized) body and
// type, plus whether it counts as "simple" for the monomorphism restriction
// (a pattern binding, or a function binding with zero parameters).
type groupResult struct {
	name   string
	value  typedast.Node
	ty     types.Type
	simple bool
}

// sigCheck records one signatured binding's "check, don't infer" obligation:
// givens is the context the signature declares (what the body is allowed to
// assume), and skolems is the set of fresh rigid variable names its
// quantified variables were instantiated to, used to recognize which of the
// group's reduced constraints this binding is actually responsible for.
type sigCheck struct {
	pos     token.Pos
	givens  []types.Constraint
	skolems map[string]bool
}

// skolemize instantiates sch's quantified variables to fresh rigid type
// variables rather than mutable metas: checking a declared signature against
// its inferred body means the body must type-check for an arbitrary, fixed
// choice of each variable, not one unification is free to narrow down to
// whatever happens to satisfy the body (which is what Instantiate's fresh
// metas would allow, defeating the point of writing a signature at all).
func (ctx *InferenceContext) skolemize(sch *types.Scheme) (ty types.Type, givens []types.Constraint, skolems map[string]bool) {
	sub := make(map[string]types.Type, len(sch.Vars))
	skolems = make(map[string]bool, len(sch.Vars))
	for _, v := range sch.Vars {
		name := fmt.Sprintf("%s$%d", v, ctx.freshID())
		sub[v] = types.Var{Name: name}
		skolems[name] = true
	}
	return substituteVars(sch.Type, sub), substituteConstraintVars(sch.Constraints, sub), skolems
}

// checkSignatureEntailment removes from reduced every constraint owned by a
// signatured binding (one whose zonked type mentions that binding's skolem
// variables) and checks it against that binding's declared context, failing
// with NoInstance when the signature doesn't actually entail what the body
// requires — spec.md §4.4.8's special case, and the only place a signatured
// binding's declared context is ever verified rather than just trusted.
func (ctx *InferenceContext) checkSignatureEntailment(reduced []types.Constraint, sigChecks []sigCheck) []types.Constraint {
	if len(sigChecks) == 0 {
		return reduced
	}
	var rest []types.Constraint
outer:
	for _, c := range reduced {
		zonked := ctx.store.Zonk(c.Type)
		for _, sc := range sigChecks {
			owned := false
			for _, v := range types.FreeVars(zonked) {
				if sc.skolems[v] {
					owned = true
					break
				}
			}
			if !owned {
				continue
			}
			if !ctx.classEnv.Entail(ctx.store, sc.givens, c) {
				ctx.fail(errors.NewNoInstance(sc.pos, c.Class, zonked.String()))
			}
			continue outer
		}
		rest = append(rest, c)
	}
	return rest
}

func firstGeneralizedScheme(results []groupResult, schemeFor map[string]*types.Scheme) (*types.Scheme, bool) {
	for _, r := range results {
		if sch, ok := schemeFor[r.name]; ok && len(sch.Constraints) > 0 {
			return sch, true
		}
	}
	return nil, false
}

func findBinding(g rename.Group, name string) *rename.Binding {
	for _, b := range g.Bindings {
		for _, n := range b.Names {
			if n == name {
				return b
			}
		}
	}
	return nil
}

func dictParamNames(cs []types.Constraint) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = fmt.Sprintf("d%s%d", c.Class, i)
	}
	return names
}

func constraintKey(store *types.Store, c types.Constraint) string {
	return c.Class + ":" + store.Zonk(c.Type).String()
}

// groupConstraintsByMeta partitions cs by the single unfilled meta-variable
// each constraint's type reduces to, the shape internal/types.ClassEnv's
// Defaulting expects. A constraint whose type is already concrete (no
// longer a bare meta) is dropped — it was resolved during reduction and
// needs no defaulting decision.
func groupConstraintsByMeta(store *types.Store, cs []types.Constraint, pos token.Pos) []types.AmbiguousGroup {
	byMeta := map[int]*types.AmbiguousGroup{}
	var order []int
	for _, c := range cs {
		m, ok := store.Prune(c.Type).(*types.Meta)
		if !ok {
			continue
		}
		g, exists := byMeta[m.ID()]
		if !exists {
			g = &types.AmbiguousGroup{Var: m, Pos: pos}
			byMeta[m.ID()] = g
			order = append(order, m.ID())
		}
		g.Constraints = append(g.Constraints, c)
	}
	out := make([]types.AmbiguousGroup, len(order))
	for i, id := range order {
		out[i] = *byMeta[id]
	}
	return out
}

// selectorNode desugars one name bound by a destructuring pattern binding
// into `case <body> of <pat> -> name`, the standard account of how a
// pattern binding like `(x, y) = pair` gives each of x and y its own
// independently generalizable definition.
func selectorNode(ctx *InferenceContext, pos token.Pos, scrutinee typedast.Node, pat typedast.Pattern, name string, ty types.Type) typedast.Node {
	return &typedast.Case{
		Base:      typedast.Base{ID: ctx.freshID(), Pos: pos, Type: ty},
		Scrutinee: scrutinee,
		Alts: []typedast.CaseAlt{{
			Pattern: pat,
			Body:    &typedast.Var{Base: typedast.Base{ID: ctx.freshID(), Pos: pos, Type: ty}, Name: name},
		}},
	}
}

// elaborateWhere elaborates a FunBind/PatBind's local `where` block the same
// way a `let`'s declarations are grouped and generalized, returning the
// resulting bindings for the caller to splice in as a wrapping Let.
func (ctx *InferenceContext) elaborateWhere(env *types.Env, decls []ast.Decl) []*typedast.GenBind {
	if len(decls) == 0 {
		return nil
	}
	registerLocalSignatures(decls, env)
	groups := rename.Collect(&ast.Module{Decls: decls})
	var binds []*typedast.GenBind
	for _, g := range groups {
		newBinds := ctx.elaborateGroup(env, g)
		for _, b := range newBinds {
			env.Bind(b.Name, b.Scheme)
		}
		binds = append(binds, newBinds...)
	}
	return binds
}

// registerLocalSignatures binds every `name :: Type` declared inside a
// let/where block into env, mirroring registerSignatures for module-level
// signatures — needed so internal/rename's signature-breaks-cycle rule and
// this file's HasSig-skips-generalization rule both see the declared type.
func registerLocalSignatures(decls []ast.Decl, env *types.Env) {
	for _, d := range decls {
		sig, ok := d.(*ast.TypeSigDecl)
		if !ok {
			continue
		}
		ty, cs := astTypeToScheme(sig.Type)
		vars := types.FreeVars(ty)
		for _, n := range sig.Names {
			env.Bind(n, &types.Scheme{Vars: vars, Constraints: cs, Type: ty})
		}
	}
}
