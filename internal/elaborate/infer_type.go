package elaborate

import (
	"github.com/karolisr/hindley/internal/ast"
	"github.com/karolisr/hindley/internal/types"
)

// astTypeToScheme converts a surface type signature into a types.Type plus
// the constraints from any leading context, stripping an outer `forall`
// (the quantified variables are recovered separately via types.FreeVars
// once the whole scheme is built, so a ForallType's explicit variable list
// is only used for documentation/ordering, not re-derived here).
func astTypeToScheme(t ast.Type) (types.Type, []types.Constraint) {
	switch tt := t.(type) {
	case *ast.ForallType:
		return astTypeToScheme(tt.Body)
	case *ast.ConstrainedType:
		body, cs := astTypeToScheme(tt.Body)
		return body, append(constraintsOf(tt.Context), cs...)
	default:
		return astTypeOnly(t), nil
	}
}

func constraintsOf(cs []ast.ClassConstraint) []types.Constraint {
	var out []types.Constraint
	for _, c := range cs {
		for _, a := range c.Args {
			out = append(out, types.Constraint{Class: c.Class, Type: astTypeOnly(a)})
		}
	}
	return out
}

// astTypeOnly converts a surface type with no surrounding context/forall.
func astTypeOnly(t ast.Type) types.Type {
	switch tt := t.(type) {
	case *ast.TypeVar:
		return types.Var{Name: tt.Name}
	case *ast.TypeCon:
		return namedCon(tt.Name)
	case *ast.TypeApp:
		return types.App{Func: astTypeOnly(tt.Func), Arg: astTypeOnly(tt.Arg)}
	case *ast.FuncType:
		return types.Fun{Domain: astTypeOnly(tt.Domain), Range: astTypeOnly(tt.Range)}
	case *ast.TupleType:
		elems := make([]types.Type, len(tt.Elements))
		for i, e := range tt.Elements {
			elems[i] = astTypeOnly(e)
		}
		return types.Tuple{Elems: elems}
	case *ast.ListType:
		return types.List{Elem: astTypeOnly(tt.Element)}
	case *ast.StrictType:
		return astTypeOnly(tt.Elem)
	case *ast.LazyType:
		return astTypeOnly(tt.Elem)
	case *ast.ForallType:
		return astTypeOnly(tt.Body)
	case *ast.ConstrainedType:
		return astTypeOnly(tt.Body)
	default:
		return types.Con{Name: "<bad-type>"}
	}
}

// substituteVars simultaneously replaces every type variable named in sub
// throughout t — the multi-variable generalization of substituteClassVar
// (classes.go), needed wherever a whole scheme's quantified variables are
// renamed at once rather than a single class type variable.
func substituteVars(t types.Type, sub map[string]types.Type) types.Type {
	switch tt := t.(type) {
	case types.Var:
		if r, ok := sub[tt.Name]; ok {
			return r
		}
		return tt
	case types.App:
		return types.App{Func: substituteVars(tt.Func, sub), Arg: substituteVars(tt.Arg, sub)}
	case types.Fun:
		return types.Fun{Domain: substituteVars(tt.Domain, sub), Range: substituteVars(tt.Range, sub)}
	case types.Tuple:
		elems := make([]types.Type, len(tt.Elems))
		for i, e := range tt.Elems {
			elems[i] = substituteVars(e, sub)
		}
		return types.Tuple{Elems: elems}
	case types.List:
		return types.List{Elem: substituteVars(tt.Elem, sub)}
	default:
		return t
	}
}

func substituteConstraintVars(cs []types.Constraint, sub map[string]types.Type) []types.Constraint {
	out := make([]types.Constraint, len(cs))
	for i, c := range cs {
		out[i] = types.Constraint{Class: c.Class, Type: substituteVars(c.Type, sub)}
	}
	return out
}

func namedCon(name string) types.Type {
	switch name {
	case "Int":
		return types.TInt
	case "Integer":
		return types.TInteger
	case "Double":
		return types.TDouble
	case "Char":
		return types.TChar
	case "Bool":
		return types.TBool
	case "String":
		return types.TString
	case "()":
		return types.TUnit
	default:
		return types.Con{Name: name}
	}
}
