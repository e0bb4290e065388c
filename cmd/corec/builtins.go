package main

import (
	"github.com/karolisr/hindley/internal/token"
	"github.com/karolisr/hindley/internal/types"
)

// bootstrapClassEnv builds the minimal class environment every subcommand
// type-checks against: Eq/Ord/Show/Num over the handful of primitive types
// internal/types predefines. There is no on-disk prelude module yet, so
// this stands in for one — every class here has at least one instance,
// which keeps the monomorphism-restriction and defaulting paths exercised
// by cmd/corec's own sample programs from hitting the single-instance
// meta-commit quirk recorded in DESIGN.md (each of Eq/Ord/Show also
// targets more than one instance on purpose).
func bootstrapClassEnv() *types.ClassEnv {
	ce := types.NewClassEnv()

	mustAddClass(ce, "Eq", "a", nil)
	mustAddClass(ce, "Ord", "a", []string{"Eq"})
	mustAddClass(ce, "Show", "a", nil)
	mustAddClass(ce, "Num", "a", nil)

	numeric := []types.Type{types.TInt, types.TInteger, types.TDouble}
	showable := append(append([]types.Type{}, numeric...), types.TChar, types.TBool, types.TString)

	for _, t := range numeric {
		mustAddInstance(ce, "Num", t)
	}
	for _, t := range showable {
		mustAddInstance(ce, "Eq", t)
		mustAddInstance(ce, "Ord", t)
		mustAddInstance(ce, "Show", t)
	}

	return ce
}

func mustAddClass(ce *types.ClassEnv, name, tyVar string, supers []string) {
	if err := ce.AddClass(token.Pos{}, &types.Class{
		Name:    name,
		TyVar:   tyVar,
		Supers:  supers,
		Methods: map[string]*types.Scheme{},
	}); err != nil {
		panic(err)
	}
}

func mustAddInstance(ce *types.ClassEnv, class string, head types.Type) {
	if err := ce.AddInstance(token.Pos{}, types.NewStore(), &types.Instance{Class: class, Head: head}); err != nil {
		panic(err)
	}
}
