// Package elaborate is the type-checking and dictionary-passing
// elaborator: it consumes a renamed, kind-checked internal/ast.Module and
// produces an internal/typedast.Program, discharging every class
// constraint it can and reporting the rest as diagnostics.
//
// Grounded on the teacher's internal/elaborate/elaborate.go (the
// Elaborator struct, a single entry-point method, per-construct
// normalize*/elaborate* dispatch) and internal/types/typechecker_core.go's
// `inferX(ctx *InferenceContext, node X) (typedast.TypedX, *TypeEnv, error)`
// naming convention, adapted here to return `(typedast.Node, types.Type)`
// pairs and to push wanted constraints onto an `internal/types.LIE` frame
// instead of threading a TypeEnv substitution. Dictionary elaboration
// (`dictionaries.go`) mirrors the teacher's two-pass design
// (`ElaborateWithDictionaries` run after type checking, keyed by node ID)
// rather than its single-pass inliner.
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

// InferenceContext carries everything one elaboration run threads through
// every inferX call: the meta-variable arena, the class/instance tables,
// the current LIE frame stack, and accumulated diagnostics. Value
// environments are not stored here: each call takes its *types.Env, the
// GVE (signatures, bindings and data constructors) or a child scope
// pushed per lambda/case-alt/let.
type InferenceContext struct {
	store    *types.Store
	classEnv *types.ClassEnv
	lie      *types.LIE
	errs     errors.List
	nextID   uint64

	// occurrences records, for each Var node whose scheme instantiation
	// produced non-empty constraints, which constraints to resolve once
	// the enclosing GenBind's LIE frame is reduced (dictionaries.go).
	occurrences []occurrence

	instanceMethods []*typedast.InstanceMethod
}

// occurrence records one overloaded variable reference: inferVar already
// wrapped it in a DictApp with empty Args, and dictionaries.go fills Args
// in once the enclosing binding group's constraints are resolved.
type occurrence struct {
	node        *typedast.DictApp
	constraints []types.Constraint
}

func (ctx *InferenceContext) freshID() uint64 {
	ctx.nextID++
	return ctx.nextID
}

func (ctx *InferenceContext) fail(r *errors.Report) {
	ctx.errs = append(ctx.errs, r)
}

// unify attempts to unify a and b, recording any failure as a diagnostic
// rather than aborting the whole elaboration run — one malformed
// expression should not prevent the rest of a module from being checked.
func (ctx *InferenceContext) unify(pos token.Pos, a, b types.Type) {
	if err := ctx.store.Unify(pos, a, b); err != nil {
		if r, ok := errors.AsReport(err); ok {
			ctx.fail(r)
			return
		}
		ctx.fail(errors.NewTypeMismatch(pos, nil, a.String(), b.String()))
	}
}

// Elaborate type-checks and elaborates an entire module: it registers
// classes/instances/constructors into the global environment, collects
// dependency-ordered binding groups via internal/rename, and
// let-generalizes each group in turn.
func Elaborate(m *ast.Module, classEnv *types.ClassEnv) (*typedast.Program, errors.List) {
	ctx := &InferenceContext{store: types.NewStore(), classEnv: classEnv, lie: types.NewLIE()}
	gve := types.NewEnv()

	if m.Default != nil {
		ts := make([]types.Type, len(m.Default.Types))
		for i, t := range m.Default.Types {
			ts[i] = astTypeOnly(t)
		}
		classEnv.SetDefaults(ts)
	}

	registerClassesAndInstances(ctx, m, gve)
	registerConstructors(ctx, m, gve)
	registerSignatures(ctx, m, gve)

	groups := rename.Collect(m)

	prog := &typedast.Program{Instances: ctx.instanceMethods}
	for _, g := range groups {
		binds := ctx.elaborateGroup(gve, g)
		for _, b := range binds {
			gve.Bind(b.Name, schemeOf(b))
			prog.Binds = append(prog.Binds, b)
		}
	}
	return prog, ctx.errs
}

func schemeOf(b *typedast.GenBind) *types.Scheme { return b.Scheme }

func registerSignatures(ctx *InferenceContext, m *ast.Module, gve *types.Env) {
	for _, d := range m.Decls {
		sig, ok := d.(*ast.TypeSigDecl)
		if !ok {
			continue
		}
		ty, cs := astTypeToScheme(sig.Type)
		vars := types.FreeVars(ty)
		for _, n := range sig.Names {
			gve.Bind(n, &types.Scheme{Vars: vars, Constraints: cs, Type: ty})
		}
	}
}

// registerConstructors binds every data/newtype constructor into gve with
// its full arrow-typed scheme, e.g. `Just :: forall a. a -> Maybe a`.
func registerConstructors(ctx *InferenceContext, m *ast.Module, gve *types.Env) {
	for _, d := range m.Decls {
		switch dd := d.(type) {
		case *ast.DataDecl:
			result := dataResultType(dd.Name, dd.TyVars)
			for _, c := range dd.Constructors {
				gve.Bind(c.Name, constructorScheme(dd.TyVars, c.Fields, result))
			}
		case *ast.NewtypeDecl:
			result := dataResultType(dd.Name, dd.TyVars)
			gve.Bind(dd.Constructor.Name, constructorScheme(dd.TyVars, dd.Constructor.Fields, result))
		}
	}
}

func dataResultType(name string, tyVars []string) types.Type {
	var t types.Type = types.Con{Name: name}
	for _, v := range tyVars {
		t = types.App{Func: t, Arg: types.Var{Name: v}}
	}
	return t
}

func constructorScheme(tyVars []string, fields []ast.FieldDecl, result types.Type) *types.Scheme {
	t := result
	for i := len(fields) - 1; i >= 0; i-- {
		argTy, _ := astTypeToScheme(stripFieldAnnot(fields[i].Type))
		t = types.Fun{Domain: argTy, Range: t}
	}
	return &types.Scheme{Vars: append([]string{}, tyVars...), Type: t}
}

func stripFieldAnnot(t ast.Type) ast.Type {
	switch tt := t.(type) {
	case *ast.StrictType:
		return tt.Elem
	case *ast.LazyType:
		return tt.Elem
	default:
		return t
	}
}

func unexpected(pos token.Pos, what string) *errors.Report {
	return errors.NewUnknownName(pos, fmt.Sprintf("<%s>", what))
}
