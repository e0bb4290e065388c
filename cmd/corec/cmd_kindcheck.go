package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karolisr/hindley/internal/ast"
)

// declTypeConName returns the type constructor name d introduces, or "" if
// d doesn't introduce one.
func declTypeConName(d ast.Decl) string {
	switch dd := d.(type) {
	case *ast.DataDecl:
		return dd.Name
	case *ast.NewtypeDecl:
		return dd.Name
	case *ast.TypeSynonymDecl:
		return dd.Name
	case *ast.ClassDecl:
		return dd.Name
	default:
		return ""
	}
}

func newKindCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kindcheck <file>",
		Short: "Parse a module and check the kinds of its type constructors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, errs := parseFile(args[0])
			if printDiagnostics(errs) {
				return errSilent
			}
			tce, errs := kindCheck(m)
			if printDiagnostics(errs) {
				return errSilent
			}
			for _, d := range m.Decls {
				name := declTypeConName(d)
				if name == "" {
					continue
				}
				if k, ok := tce.Lookup(name); ok {
					fmt.Printf("%s :: %s\n", cyan(name), k)
				}
			}
			fmt.Printf("%s no kind errors\n", green("✓"))
			return nil
		},
	}
}
