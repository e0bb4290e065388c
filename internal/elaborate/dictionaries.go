package elaborate

import (
	"github.com/karolisr/hindley/internal/token"
	"github.com/karolisr/hindley/internal/typedast"
	"github.com/karolisr/hindley/internal/types"
)

// resolveDictionaries discharges every overloaded Var occurrence recorded
// since occStart (one elaborateGroup call's worth), now that the group's
// constraints have been reduced and partitioned into paramFor (resolves to
// a DictVar referencing one of the group's own dictionary parameters) or
// left to be resolved against a concrete instance (a DictInstance). It
// mirrors the teacher's ElaborateWithDictionaries pass, run once per
// binding group rather than once for the whole program, and keyed by the
// DictApp node the occurrence already wraps (inferVar built it eagerly)
// rather than rewriting the tree in place.
func (ctx *InferenceContext) resolveDictionaries(binds []*typedast.GenBind, occStart int, paramFor map[string]string) {
	for _, occ := range ctx.occurrences[occStart:] {
		args := make([]typedast.Node, len(occ.constraints))
		for i, c := range occ.constraints {
			args[i] = ctx.resolveConstraint(occ.node.Pos, c, paramFor)
		}
		occ.node.Args = args
	}
	ctx.occurrences = ctx.occurrences[:occStart]

	for _, b := range binds {
		if len(b.DictParams) > 0 {
			b.Value = &typedast.DictAbs{Base: typedast.Base{ID: ctx.freshID(), Pos: b.Pos, Type: b.Scheme.Type}, Params: b.DictParams, Body: b.Value}
		}
	}
}

// resolveConstraint produces the evidence term for one wanted constraint: a
// reference to an in-scope dictionary parameter if the group generalized
// over it, otherwise a direct reference to the (by now concrete) instance's
// method table.
func (ctx *InferenceContext) resolveConstraint(pos token.Pos, c types.Constraint, paramFor map[string]string) typedast.Node {
	key := constraintKey(ctx.store, c)
	if name, ok := paramFor[key]; ok {
		return &typedast.DictVar{Base: typedast.Base{ID: ctx.freshID(), Pos: pos}, Name: name}
	}
	head := ctx.store.Zonk(c.Type)
	return &typedast.DictInstance{Base: typedast.Base{ID: ctx.freshID(), Pos: pos}, Class: c.Class, TypeHead: headName(head)}
}

// headName names the outermost type constructor of a (by now hopefully
// concrete) constraint type, e.g. `Maybe Int` -> "Maybe" — the key instance
// tables are indexed by.
func headName(t types.Type) string {
	switch tt := t.(type) {
	case types.Con:
		return tt.Name
	case types.App:
		return headName(tt.Func)
	default:
		return t.String()
	}
}
