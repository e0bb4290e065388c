package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/karolisr/hindley/internal/config"
	"github.com/karolisr/hindley/internal/elaborate"
	"github.com/karolisr/hindley/internal/types"
)

func newREPLCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-typecheck loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			runREPL(cfg)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a corec.yaml configuration document")
	return cmd
}

// replSession holds the state one REPL invocation accumulates across
// inputs: every previously typed binding stays in scope for the next line,
// the way a `let` at the top of a fresh module would.
type replSession struct {
	classEnv  *types.ClassEnv
	source    strings.Builder
	seenBinds int
	out       io.Writer
}

// runREPL mirrors the teacher's internal/repl/repl.go Start loop: a
// liner.Liner for history/line-editing, a `:`-prefixed command dispatch,
// and every plain input re-run through the full pipeline with the
// accumulated session source prepended so earlier bindings stay visible.
func runREPL(cfg *config.Config) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(true)

	historyFile := cfg.REPL.HistoryFile
	if historyFile == "" {
		historyFile = filepath.Join(os.TempDir(), ".corec_history")
	}
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(in string) (c []string) {
		if !strings.HasPrefix(in, ":") {
			return nil
		}
		for _, cmd := range []string{":help", ":quit", ":type", ":reset", ":clear"} {
			if strings.HasPrefix(cmd, in) {
				c = append(c, cmd)
			}
		}
		return c
	})

	sess := &replSession{classEnv: bootstrapClassEnv(), out: os.Stdout}

	fmt.Printf("%s %s\n", bold("corec"), dim("interactive core-language session"))
	fmt.Println(dim("Enter top-level bindings (e.g. `double x = x + x`); :help for commands, :quit to exit"))
	fmt.Println()

	for {
		input, err := line.Prompt("corec> ")
		if err == io.EOF {
			fmt.Println(green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if handleREPLCommand(sess, input) {
				break
			}
			continue
		}

		sess.evalLine(input)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// handleREPLCommand dispatches a `:`-prefixed command, returning true if
// the session should end.
func handleREPLCommand(sess *replSession, cmd string) bool {
	parts := strings.Fields(cmd)
	switch parts[0] {
	case ":help", ":h":
		fmt.Println("Commands:")
		fmt.Println("  :help, :h     Show this help")
		fmt.Println("  :quit, :q     Exit the session")
		fmt.Println("  :reset        Forget every binding entered so far")
		fmt.Println("  :clear        Clear the screen")
	case ":quit", ":q", ":exit":
		fmt.Println(green("Goodbye!"))
		return true
	case ":reset":
		sess.source.Reset()
		sess.seenBinds = 0
		fmt.Println(dim("session cleared"))
	case ":clear":
		fmt.Print("\033[H\033[2J")
	default:
		fmt.Printf("unknown command: %s (try :help)\n", cmd)
	}
	return false
}

// evalLine appends line to the session's accumulated source and re-runs the
// full pipeline over the result, printing the type of every binding past
// those already printed for earlier lines (the count restarts at :reset).
func (sess *replSession) evalLine(line string) {
	sess.source.WriteString(line)
	sess.source.WriteByte('\n')

	m, errs := parseSource("<repl>", []byte(sess.source.String()))
	if printDiagnostics(errs) {
		trimLastLine(&sess.source)
		return
	}
	if _, errs := kindCheck(m); printDiagnostics(errs) {
		trimLastLine(&sess.source)
		return
	}
	prog, errs := elaborate.Elaborate(m, sess.classEnv)
	if printDiagnostics(errs) {
		trimLastLine(&sess.source)
		return
	}
	for _, b := range prog.Binds[sess.seenBinds:] {
		fmt.Fprintf(sess.out, "%s :: %s\n", cyan(b.Name), yellow(schemeString(b.Scheme)))
	}
	sess.seenBinds = len(prog.Binds)
}

// trimLastLine drops the most recently appended line from src, so a failed
// input doesn't poison every input that follows it in the session.
func trimLastLine(src *strings.Builder) {
	s := src.String()
	s = strings.TrimSuffix(s, "\n")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		src.Reset()
		src.WriteString(s[:i+1])
		return
	}
	src.Reset()
}
