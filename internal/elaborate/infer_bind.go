package elaborate

import (
	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/token"
	"github.com/karolisr/hindley/internal/typedast"
	"github.com/karolisr/hindley/internal/types"
)

// inferGuardedRHS elaborates a binding's right-hand side: the common
// unconditional `= expr` case returns expr's own elaboration directly, and
// a `| g1 = e1 | g2 = e2 ...` guard chain desugars to a one-alternative
// case over a dummy unit scrutinee, reusing typedast.Case's existing
// guard-per-alternative shape instead of inventing a parallel construct.
func (ctx *InferenceContext) inferGuardedRHS(env *types.Env, guards []ast.GuardedRHS, pos token.Pos) (typedast.Node, types.Type) {
	resultTy := ctx.store.Fresh("r")
	if len(guards) == 1 && guards[0].Guard == nil {
		body, bodyTy := ctx.inferExpr(env, guards[0].Body)
		ctx.unify(pos, bodyTy, resultTy)
		return body, resultTy
	}
	scrut := &typedast.Lit{Base: typedast.Base{ID: ctx.freshID(), Pos: pos, Type: types.TUnit}, Kind: int(ast.LitInt), Value: "()"}
	alts := make([]typedast.CaseAlt, len(guards))
	for i, g := range guards {
		var guardNode typedast.Node
		if g.Guard != nil {
			gn, gTy := ctx.inferExpr(env, g.Guard)
			ctx.unify(pos, gTy, types.TBool)
			guardNode = gn
		}
		body, bodyTy := ctx.inferExpr(env, g.Body)
		ctx.unify(pos, bodyTy, resultTy)
		alts[i] = typedast.CaseAlt{Pattern: &typedast.WildcardPattern{PatBase: typedast.PatBase{Type: types.TUnit}}, Guard: guardNode, Body: body}
	}
	return &typedast.Case{Base: typedast.Base{ID: ctx.freshID(), Pos: pos, Type: resultTy}, Scrutinee: scrut, Alts: alts}, resultTy
}

// inferFunBind elaborates one equation `name pat1 pat2 = rhs [where ...]`
// into nested Lambdas, one per surface parameter.
func (ctx *InferenceContext) inferFunBind(env *types.Env, fb *ast.FunBind) (typedast.Node, types.Type) {
	child := env.Child()
	paramTys := make([]types.Type, len(fb.Params))
	params := make([]typedast.Pattern, len(fb.Params))
	for i, p := range fb.Params {
		paramTys[i] = ctx.store.Fresh("p")
		params[i] = ctx.inferPattern(child, p, paramTys[i])
	}
	whereBinds := ctx.elaborateWhere(child, fb.Where)
	body, bodyTy := ctx.inferGuardedRHS(child, fb.Guards, fb.Pos)
	if len(whereBinds) > 0 {
		body = &typedast.Let{Base: typedast.Base{ID: ctx.freshID(), Pos: fb.Pos, Type: bodyTy}, Bindings: whereBinds, Body: body}
	}
	node := body
	ty := bodyTy
	for i := len(params) - 1; i >= 0; i-- {
		fnTy := types.Fun{Domain: paramTys[i], Range: ty}
		node = &typedast.Lambda{Base: typedast.Base{ID: ctx.freshID(), Pos: fb.Pos, Type: fnTy}, Param: params[i], Body: node}
		ty = fnTy
	}
	return node, ty
}

// inferPatBind elaborates a pattern binding's shared right-hand side and
// the pattern it's matched against, leaving per-name selection
// (internal/elaborate/generalize.go's selectorNode) to the caller — a
// PatBind's names generalize independently of one another.
func (ctx *InferenceContext) inferPatBind(env *types.Env, pb *ast.PatBind) (typedast.Node, typedast.Pattern, map[string]types.Type) {
	whereBinds := ctx.elaborateWhere(env, pb.Where)
	body, bodyTy := ctx.inferGuardedRHS(env, pb.Guards, pb.Pos)
	if len(whereBinds) > 0 {
		body = &typedast.Let{Base: typedast.Base{ID: ctx.freshID(), Pos: pb.Pos, Type: bodyTy}, Bindings: whereBinds, Body: body}
	}
	pat := ctx.inferPattern(env, pb.Lhs, bodyTy)
	tys := map[string]types.Type{}
	for _, n := range patternVars(pb.Lhs) {
		if sch, ok := env.Lookup(n); ok {
			tys[n] = sch.Type
		}
	}
	return body, pat, tys
}
