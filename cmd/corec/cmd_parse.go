package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a module and print its declaration count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, errs := parseFile(args[0])
			if printDiagnostics(errs) {
				return errSilent
			}
			fmt.Printf("%s parsed %d declaration(s)\n", green("✓"), len(m.Decls))
			return nil
		},
	}
}
