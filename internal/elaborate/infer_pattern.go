package elaborate

import (
	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/errors"
	"github.com/karolisr/hindley/internal/typedast"
	"github.com/karolisr/hindley/internal/types"
)

// inferPattern type-checks a pattern against an expected type, binding any
// variables it introduces into env (a child scope the caller already
// pushed), and returns the elaborated pattern.
func (ctx *InferenceContext) inferPattern(env *types.Env, p ast.Pattern, expected types.Type) typedast.Pattern {
	switch pp := p.(type) {
	case *ast.VarPattern:
		env.Bind(pp.Name, &types.Scheme{Type: expected})
		return &typedast.VarPattern{PatBase: typedast.PatBase{Type: expected}, Name: pp.Name}
	case *ast.WildcardPattern:
		return &typedast.WildcardPattern{PatBase: typedast.PatBase{Type: expected}}
	case *ast.LitPattern:
		lt := litType(pp.Kind)
		ctx.unify(pp.Pos, lt, expected)
		return &typedast.LitPattern{PatBase: typedast.PatBase{Type: expected}, Value: pp.Value}
	case *ast.ConstructorPattern:
		return ctx.inferConstructorPattern(env, pp, expected)
	case *ast.TuplePattern:
		elemTys := make([]types.Type, len(pp.Elements))
		for i := range elemTys {
			elemTys[i] = ctx.store.Fresh("t")
		}
		ctx.unify(pp.Pos, types.Tuple{Elems: elemTys}, expected)
		elems := make([]typedast.Pattern, len(pp.Elements))
		for i, e := range pp.Elements {
			elems[i] = ctx.inferPattern(env, e, elemTys[i])
		}
		return &typedast.TuplePattern{PatBase: typedast.PatBase{Type: expected}, Elements: elems}
	case *ast.ListPattern:
		elemTy := ctx.store.Fresh("a")
		ctx.unify(pp.Pos, types.List{Elem: elemTy}, expected)
		elems := make([]typedast.Pattern, len(pp.Elements))
		for i, e := range pp.Elements {
			elems[i] = ctx.inferPattern(env, e, elemTy)
		}
		return &typedast.ConstructorPattern{PatBase: typedast.PatBase{Type: expected}, Name: "[]", Args: elems}
	case *ast.ConsPattern:
		elemTy := ctx.store.Fresh("a")
		ctx.unify(pp.Pos, types.List{Elem: elemTy}, expected)
		head := ctx.inferPattern(env, pp.Head, elemTy)
		tail := ctx.inferPattern(env, pp.Tail, expected)
		return &typedast.ConstructorPattern{PatBase: typedast.PatBase{Type: expected}, Name: ":", Args: []typedast.Pattern{head, tail}}
	case *ast.AsPattern:
		env.Bind(pp.Name, &types.Scheme{Type: expected})
		inner := ctx.inferPattern(env, pp.Pattern, expected)
		return inner
	case *ast.LazyPattern:
		return ctx.inferPattern(env, pp.Pattern, expected)
	case *ast.BangPattern:
		return ctx.inferPattern(env, pp.Pattern, expected)
	case *ast.SigPattern:
		declared, _ := astTypeToScheme(pp.Type)
		ctx.unify(pp.Pos, declared, expected)
		return ctx.inferPattern(env, pp.Pattern, expected)
	default:
		ctx.fail(unexpected(p.Position(), "pattern"))
		return &typedast.WildcardPattern{PatBase: typedast.PatBase{Type: expected}}
	}
}

func (ctx *InferenceContext) inferConstructorPattern(env *types.Env, pp *ast.ConstructorPattern, expected types.Type) typedast.Pattern {
	scheme, ok := env.Lookup(pp.Name)
	if !ok {
		ctx.fail(errors.NewUnknownName(pp.Pos, pp.Name))
		return &typedast.WildcardPattern{PatBase: typedast.PatBase{Type: expected}}
	}
	ty, _ := scheme.Instantiate(ctx.store)
	argTys := make([]types.Type, len(pp.Args))
	result := ty
	for i := range pp.Args {
		f, ok := ctx.store.Prune(result).(types.Fun)
		if !ok {
			ctx.fail(errors.NewTypeMismatch(pp.Pos, []string{pp.Name}, "function type", result.String()))
			break
		}
		argTys[i] = f.Domain
		result = f.Range
	}
	ctx.unify(pp.Pos, result, expected)
	args := make([]typedast.Pattern, len(pp.Args))
	for i, a := range pp.Args {
		if argTys[i] == nil {
			argTys[i] = ctx.store.Fresh("t")
		}
		args[i] = ctx.inferPattern(env, a, argTys[i])
	}
	return &typedast.ConstructorPattern{PatBase: typedast.PatBase{Type: expected}, Name: pp.Name, Args: args}
}

// litType gives each literal pattern a concrete type rather than a fresh
// Num-constrained meta: a pattern is an equality test, not a generalized
// binding, so there is no Scheme to attach a constraint to. Integer
// literal patterns use TInt, matching the numeric default applied to
// unconstrained integer literals elsewhere once defaulting runs.
func litType(k ast.LitKind) types.Type {
	switch k {
	case ast.LitInt:
		return types.TInt
	case ast.LitFrac:
		return types.TDouble
	case ast.LitChar:
		return types.TChar
	case ast.LitString:
		return types.TString
	default:
		return types.TUnit
	}
}
