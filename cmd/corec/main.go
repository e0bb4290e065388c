// Command corec drives the parse/kind-check/type-check pipeline over a
// single module file, plus an interactive REPL for the same pipeline.
//
// Grounded on the teacher's cmd/ailang/main.go (version/help flags,
// colorized error printing) and internal/repl/repl.go (liner-backed REPL,
// Config struct), switched from the teacher's own stdlib `flag` to
// spf13/cobra subcommands — see SPEC_FULL.md §4 for why cobra, an unused
// indirect teacher dependency, is wired in here instead.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// errSilent signals that diagnostics were already printed by the command
// itself (colorized, one per report) — cobra's own error line would just
// repeat the same failure in a plainer format.
var errSilent = errors.New("")

var (
	// version is set by ldflags during build.
	version = "dev"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

func main() {
	root := &cobra.Command{
		Use:           "corec",
		Short:         "Parser, kind checker, and type checker for a lazy functional core language",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newKindCheckCmd())
	root.AddCommand(newTypeCheckCmd())
	root.AddCommand(newREPLCmd())

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		}
		os.Exit(1)
	}
}
