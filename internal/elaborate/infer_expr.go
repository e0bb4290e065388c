package elaborate

import (
	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/errors"
	"github.com/karolisr/hindley/internal/token"
	"github.com/karolisr/hindley/internal/typedast"
	"github.com/karolisr/hindley/internal/types"
)

// inferExpr type-checks one surface expression against env, threading
// wanted constraints onto ctx.lie's current frame, and returns the
// elaborated node alongside its (possibly still meta-variable-containing)
// type.
func (ctx *InferenceContext) inferExpr(env *types.Env, e ast.Expr) (typedast.Node, types.Type) {
	switch ee := e.(type) {
	case *ast.Var:
		return ctx.inferVar(env, ee)
	case *ast.Lit:
		return ctx.inferLit(ee)
	case *ast.BinOp:
		return ctx.inferBinOp(env, ee)
	case *ast.UnOp:
		return ctx.inferUnOp(env, ee)
	case *ast.App:
		return ctx.inferApp(env, ee)
	case *ast.Lambda:
		return ctx.inferLambda(env, ee)
	case *ast.Let:
		return ctx.inferLet(env, ee)
	case *ast.If:
		return ctx.inferIf(env, ee)
	case *ast.Case:
		return ctx.inferCase(env, ee)
	case *ast.Tuple:
		return ctx.inferTuple(env, ee)
	case *ast.List:
		return ctx.inferList(env, ee)
	case *ast.Annot:
		return ctx.inferAnnot(env, ee)
	case *ast.InfixExp:
		ctx.fail(unexpected(ee.Pos, "unresolved infix chain"))
		return ctx.errorNode(ee.Pos), ctx.store.Fresh("t")
	default:
		ctx.fail(unexpected(e.Position(), "expression"))
		return ctx.errorNode(e.Position()), ctx.store.Fresh("t")
	}
}

func (ctx *InferenceContext) errorNode(pos token.Pos) *typedast.Var {
	return &typedast.Var{Base: typedast.Base{ID: ctx.freshID(), Pos: pos}, Name: "<error>"}
}

func (ctx *InferenceContext) inferVar(env *types.Env, v *ast.Var) (typedast.Node, types.Type) {
	scheme, ok := env.Lookup(v.Name.String())
	if !ok {
		ctx.fail(errors.NewUnknownName(v.Pos, v.Name.String()))
		ty := ctx.store.Fresh("t")
		return &typedast.Var{Base: typedast.Base{ID: ctx.freshID(), Pos: v.Pos, Type: ty}, Name: v.Name.String()}, ty
	}
	ty, cs := scheme.Instantiate(ctx.store)
	node := &typedast.Var{Base: typedast.Base{ID: ctx.freshID(), Pos: v.Pos, Type: ty}, Name: v.Name.String()}
	if len(cs) == 0 {
		return node, ty
	}
	ctx.lie.WantAll(cs)
	dictApp := &typedast.DictApp{Base: typedast.Base{ID: ctx.freshID(), Pos: v.Pos, Type: ty}, Func: node}
	ctx.occurrences = append(ctx.occurrences, occurrence{node: dictApp, constraints: cs})
	return dictApp, ty
}

func (ctx *InferenceContext) inferLit(l *ast.Lit) (typedast.Node, types.Type) {
	var ty types.Type
	switch l.Kind {
	case ast.LitInt:
		m := ctx.store.Fresh("n")
		ctx.lie.Want(types.Constraint{Class: "Num", Type: m})
		ty = m
	case ast.LitFrac:
		ty = types.TDouble
	case ast.LitChar:
		ty = types.TChar
	case ast.LitString:
		ty = types.TString
	default:
		ty = types.TUnit
	}
	return &typedast.Lit{Base: typedast.Base{ID: ctx.freshID(), Pos: l.Pos, Type: ty}, Kind: int(l.Kind), Value: l.Value}, ty
}

func (ctx *InferenceContext) inferApp(env *types.Env, a *ast.App) (typedast.Node, types.Type) {
	fn, fnTy := ctx.inferExpr(env, a.Func)
	arg, argTy := ctx.inferExpr(env, a.Arg)
	result := ctx.store.Fresh("r")
	ctx.unify(a.Pos, fnTy, types.Fun{Domain: argTy, Range: result})
	return &typedast.App{Base: typedast.Base{ID: ctx.freshID(), Pos: a.Pos, Type: result}, Func: fn, Arg: arg}, result
}

// inferBinOp elaborates a resolved binary operator as ordinary function
// application of the (possibly overloaded, e.g. `+` :: Num a => a -> a ->
// a) operator variable — it is looked up in env exactly like any other
// Var, so class-method resolution and literal defaulting apply uniformly.
func (ctx *InferenceContext) inferBinOp(env *types.Env, b *ast.BinOp) (typedast.Node, types.Type) {
	opNode, opTy := ctx.inferVar(env, &ast.Var{Pos: b.Pos, Name: b.Op})
	left, leftTy := ctx.inferExpr(env, b.Left)
	right, rightTy := ctx.inferExpr(env, b.Right)
	mid := ctx.store.Fresh("r")
	result := ctx.store.Fresh("r")
	ctx.unify(b.Pos, opTy, types.Fun{Domain: leftTy, Range: types.Fun{Domain: rightTy, Range: mid}})
	ctx.unify(b.Pos, mid, result)
	app1 := &typedast.App{Base: typedast.Base{ID: ctx.freshID(), Pos: b.Pos, Type: types.Fun{Domain: rightTy, Range: result}}, Func: opNode, Arg: left}
	return &typedast.App{Base: typedast.Base{ID: ctx.freshID(), Pos: b.Pos, Type: result}, Func: app1, Arg: right}, result
}

func (ctx *InferenceContext) inferUnOp(env *types.Env, u *ast.UnOp) (typedast.Node, types.Type) {
	opNode, opTy := ctx.inferVar(env, &ast.Var{Pos: u.Pos, Name: ast.Name{Text: "negate"}})
	operand, operandTy := ctx.inferExpr(env, u.Operand)
	result := ctx.store.Fresh("r")
	ctx.unify(u.Pos, opTy, types.Fun{Domain: operandTy, Range: result})
	return &typedast.App{Base: typedast.Base{ID: ctx.freshID(), Pos: u.Pos, Type: result}, Func: opNode, Arg: operand}, result
}

func (ctx *InferenceContext) inferLambda(env *types.Env, l *ast.Lambda) (typedast.Node, types.Type) {
	child := env.Child()
	paramTys := make([]types.Type, len(l.Params))
	params := make([]typedast.Pattern, len(l.Params))
	for i, p := range l.Params {
		paramTys[i] = ctx.store.Fresh("p")
		params[i] = ctx.inferPattern(child, p, paramTys[i])
	}
	body, bodyTy := ctx.inferExpr(child, l.Body)
	resultTy := bodyTy
	for i := len(paramTys) - 1; i >= 0; i-- {
		resultTy = types.Fun{Domain: paramTys[i], Range: resultTy}
	}
	node := body
	ty := bodyTy
	for i := len(params) - 1; i >= 0; i-- {
		fnTy := types.Fun{Domain: paramTys[i], Range: ty}
		node = &typedast.Lambda{Base: typedast.Base{ID: ctx.freshID(), Pos: l.Pos, Type: fnTy}, Param: params[i], Body: node}
		ty = fnTy
	}
	return node, ty
}

func (ctx *InferenceContext) inferIf(env *types.Env, i *ast.If) (typedast.Node, types.Type) {
	cond, condTy := ctx.inferExpr(env, i.Cond)
	ctx.unify(i.Pos, condTy, types.TBool)
	then, thenTy := ctx.inferExpr(env, i.Then)
	els, elsTy := ctx.inferExpr(env, i.Else)
	ctx.unify(i.Pos, thenTy, elsTy)
	return &typedast.If{Base: typedast.Base{ID: ctx.freshID(), Pos: i.Pos, Type: thenTy}, Cond: cond, Then: then, Else: els}, thenTy
}

func (ctx *InferenceContext) inferCase(env *types.Env, c *ast.Case) (typedast.Node, types.Type) {
	scrut, scrutTy := ctx.inferExpr(env, c.Scrutinee)
	resultTy := ctx.store.Fresh("r")
	var alts []typedast.CaseAlt
	for _, alt := range c.Alts {
		child := env.Child()
		pat := ctx.inferPattern(child, alt.Pattern, scrutTy)
		for _, g := range alt.Guards {
			var guardNode typedast.Node
			if g.Guard != nil {
				gn, gTy := ctx.inferExpr(child, g.Guard)
				ctx.unify(alt.Pattern.Position(), gTy, types.TBool)
				guardNode = gn
			}
			body, bodyTy := ctx.inferExpr(child, g.Body)
			ctx.unify(alt.Pattern.Position(), bodyTy, resultTy)
			alts = append(alts, typedast.CaseAlt{Pattern: pat, Guard: guardNode, Body: body})
		}
	}
	return &typedast.Case{Base: typedast.Base{ID: ctx.freshID(), Pos: c.Pos, Type: resultTy}, Scrutinee: scrut, Alts: alts}, resultTy
}

func (ctx *InferenceContext) inferTuple(env *types.Env, t *ast.Tuple) (typedast.Node, types.Type) {
	elems := make([]typedast.Node, len(t.Elements))
	tys := make([]types.Type, len(t.Elements))
	for i, e := range t.Elements {
		elems[i], tys[i] = ctx.inferExpr(env, e)
	}
	ty := types.Tuple{Elems: tys}
	return &typedast.Tuple{Base: typedast.Base{ID: ctx.freshID(), Pos: t.Pos, Type: ty}, Elements: elems}, ty
}

func (ctx *InferenceContext) inferList(env *types.Env, l *ast.List) (typedast.Node, types.Type) {
	elemTy := ctx.store.Fresh("a")
	elems := make([]typedast.Node, len(l.Elements))
	for i, e := range l.Elements {
		node, ty := ctx.inferExpr(env, e)
		ctx.unify(l.Pos, ty, elemTy)
		elems[i] = node
	}
	ty := types.List{Elem: elemTy}
	return &typedast.ListLit{Base: typedast.Base{ID: ctx.freshID(), Pos: l.Pos, Type: ty}, Elements: elems}, ty
}

func (ctx *InferenceContext) inferAnnot(env *types.Env, a *ast.Annot) (typedast.Node, types.Type) {
	node, ty := ctx.inferExpr(env, a.Expr)
	declared, cs := astTypeToScheme(a.Type)
	ctx.lie.WantAll(cs)
	ctx.unify(a.Pos, ty, declared)
	return node, ty
}

func (ctx *InferenceContext) inferLet(env *types.Env, l *ast.Let) (typedast.Node, types.Type) {
	child := env.Child()
	binds := ctx.elaborateWhere(child, l.Decls)
	body, bodyTy := ctx.inferExpr(child, l.Body)
	return &typedast.Let{Base: typedast.Base{ID: ctx.freshID(), Pos: l.Pos, Type: bodyTy}, Bindings: binds, Body: body}, bodyTy
}

// patternVars collects every variable a pattern binds, in left-to-right
// occurrence order (distinct from internal/rename's sorted variant, since
// binding order here must match environment shadowing, not graph-building).
func patternVars(p ast.Pattern) []string {
	var out []string
	var walk func(ast.Pattern)
	walk = func(p ast.Pattern) {
		switch pp := p.(type) {
		case *ast.VarPattern:
			out = append(out, pp.Name)
		case *ast.AsPattern:
			out = append(out, pp.Name)
			walk(pp.Pattern)
		case *ast.ConstructorPattern:
			for _, a := range pp.Args {
				walk(a)
			}
		case *ast.TuplePattern:
			for _, e := range pp.Elements {
				walk(e)
			}
		case *ast.ListPattern:
			for _, e := range pp.Elements {
				walk(e)
			}
		case *ast.ConsPattern:
			walk(pp.Head)
			walk(pp.Tail)
		case *ast.LazyPattern:
			walk(pp.Pattern)
		case *ast.BangPattern:
			walk(pp.Pattern)
		case *ast.SigPattern:
			walk(pp.Pattern)
		}
	}
	walk(p)
	return out
}
