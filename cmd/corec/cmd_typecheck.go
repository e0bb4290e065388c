package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karolisr/hindley/internal/types"
)

func newTypeCheckCmd() *cobra.Command {
	var showDicts bool
	cmd := &cobra.Command{
		Use:   "typecheck <file>",
		Short: "Run the full parse, kind-check, and elaborate pipeline over a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prog, errs := typeCheck(args[0], bootstrapClassEnv())
			if printDiagnostics(errs) {
				return errSilent
			}
			for _, b := range prog.Binds {
				fmt.Printf("%s :: %s\n", cyan(b.Name), yellow(schemeString(b.Scheme)))
				if showDicts && len(b.DictParams) > 0 {
					fmt.Printf("  %s %v\n", dim("dictionaries:"), b.DictParams)
				}
			}
			fmt.Printf("%s no type errors\n", green("✓"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDicts, "show-dictionaries", false, "print resolved dictionary parameters for each binding")
	return cmd
}

// schemeString renders a generalized scheme the way a REPL ":type" result
// would: constraints rendered as a context, a bare type when there are none.
func schemeString(s *types.Scheme) string {
	var b strings.Builder
	if len(s.Vars) > 0 {
		fmt.Fprintf(&b, "forall %s. ", strings.Join(s.Vars, " "))
	}
	if len(s.Constraints) > 0 {
		parts := make([]string, len(s.Constraints))
		for i, c := range s.Constraints {
			parts[i] = c.String()
		}
		fmt.Fprintf(&b, "(%s) => ", strings.Join(parts, ", "))
	}
	b.WriteString(s.Type.String())
	return b.String()
}
