package main

import (
	"fmt"
	"os"

	"github.com/karolisr/hindley/internal/errors"
)

// printDiagnostics renders each report the way the teacher's printParserErrors
// does (one colorized line per error), and returns whether any were printed.
func printDiagnostics(errs errors.List) bool {
	if len(errs) == 0 {
		return false
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(fmt.Sprintf("%d error(s):", len(errs))))
	for _, r := range errs {
		fmt.Fprintf(os.Stderr, "  %s %s\n", red("•"), r.Error())
	}
	return true
}
