package elaborate

import (
	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/errors"
	"github.com/karolisr/hindley/internal/typedast"
	"github.com/karolisr/hindley/internal/types"
)

// registerClassesAndInstances walks m's class and instance declarations
// before any value binding is inferred: every class method becomes a
// class-polymorphic scheme in gve (qualified by `Class tyvar`), every
// instance registers its head and context into ctx.classEnv, and every
// instance method body is checked against its class signature specialized
// to the instance's head type.
func registerClassesAndInstances(ctx *InferenceContext, m *ast.Module, gve *types.Env) {
	for _, d := range m.Decls {
		cd, ok := d.(*ast.ClassDecl)
		if !ok {
			continue
		}
		methods := map[string]*types.Scheme{}
		for _, sig := range cd.Signatures {
			ty, cs := astTypeToScheme(sig.Type)
			vars := types.FreeVars(ty)
			cs = append(append([]types.Constraint{}, cs...), types.Constraint{Class: cd.Name, Type: types.Var{Name: cd.TyVar}})
			for _, n := range sig.Names {
				sch := &types.Scheme{Vars: vars, Constraints: cs, Type: ty}
				methods[n] = sch
				gve.Bind(n, sch)
			}
		}
		supers := make([]string, len(cd.Supers))
		for i, s := range cd.Supers {
			supers[i] = s.Class
		}
		if err := ctx.classEnv.AddClass(cd.Pos, &types.Class{Name: cd.Name, TyVar: cd.TyVar, Supers: supers, Methods: methods}); err != nil {
			if r, ok := errors.AsReport(err); ok {
				ctx.fail(r)
			}
		}
	}

	for _, d := range m.Decls {
		id, ok := d.(*ast.InstanceDecl)
		if !ok {
			continue
		}
		head := astTypeOnly(id.Head)
		instCtx := make([]types.Constraint, 0, len(id.Context))
		for _, c := range id.Context {
			for _, a := range c.Args {
				instCtx = append(instCtx, types.Constraint{Class: c.Class, Type: astTypeOnly(a)})
			}
		}
		inst := &types.Instance{Class: id.Class, Head: head, Context: instCtx}
		if err := ctx.classEnv.AddInstance(id.Pos, ctx.store, inst); err != nil {
			if r, ok := errors.AsReport(err); ok {
				ctx.fail(r)
			}
			continue
		}
		ctx.checkInstanceMethods(gve, id, head)
	}
}

// checkInstanceMethods type-checks each method body against the class's
// declared signature for that method, with the class type variable
// substituted for the instance's head type — it doesn't register the
// method anywhere callable, since this module elaborates to a
// dictionary-passing IR rather than a runtime method table.
func (ctx *InferenceContext) checkInstanceMethods(gve *types.Env, id *ast.InstanceDecl, head types.Type) {
	class, ok := ctx.classEnv.Class(id.Class)
	if !ok {
		return
	}
	for _, fb := range id.Methods {
		sig, ok := class.Methods[fb.Name]
		if !ok {
			continue
		}
		expected := substituteClassVar(sig.Type, class.TyVar, head)
		env := gve.Child()
		node, ty := ctx.inferFunBind(env, fb)
		ctx.unify(fb.Pos, ty, expected)
		ctx.instanceMethods = append(ctx.instanceMethods, &typedast.InstanceMethod{
			Pos: fb.Pos, Class: id.Class, TypeHead: headName(ctx.store.Zonk(head)), Name: fb.Name, Value: node,
		})
	}
}

// substituteClassVar replaces every occurrence of name in t with replacement
// — a narrow one-variable substitution, since an instance head fixes only
// the class's own type variable, never a method's additional polymorphism.
func substituteClassVar(t types.Type, name string, replacement types.Type) types.Type {
	return substituteVars(t, map[string]types.Type{name: replacement})
}
