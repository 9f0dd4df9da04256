// Command orcrepl loads an OIL program, compiles it for a chosen target,
// and lets a user step through the resulting assembly text one
// instruction at a time from a raw terminal — grounded on the teacher's
// cmd/repl/main.go, which puts the terminal in raw mode the same way to
// read single keystrokes without waiting on Enter. Where the teacher's
// REPL drives a live Z80 emulator session, this viewer only needs to walk
// a fixed, already-compiled line list, so it carries none of the
// assembler/emulator/history machinery that session demands.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/orc-lang/orc/pkg/compiler"
	"github.com/orc-lang/orc/pkg/ir"
	"github.com/orc-lang/orc/pkg/oil"
	"github.com/orc-lang/orc/pkg/target"
)

var targetName string

var rootCmd = &cobra.Command{
	Use:   "orcrepl [source.oil]",
	Short: "Step through a compiled kernel's emitted assembly interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&targetName, "target", "t", "x86", "compile target (x86, altivec, arm, c)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(sourceFile string) error {
	f, err := os.Open(sourceFile)
	if err != nil {
		return err
	}
	defer f.Close()

	program, err := oil.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", sourceFile, err)
	}

	t := target.GetTarget(targetName)
	if t == nil {
		return fmt.Errorf("unknown target %q", targetName)
	}

	if result := compiler.Compile(program, t, 0); result != ir.ResultOK {
		return fmt.Errorf("compile failed: %s", result)
	}

	lines := strings.Split(strings.TrimRight(program.AsmCode, "\n"), "\n")
	v := &viewer{programName: program.Name, targetName: targetName, lines: lines}
	return v.run()
}

// viewer walks a fixed line list one instruction at a time, reading raw
// single keystrokes when stdin is a terminal and falling back to a plain
// line-buffered prompt otherwise (piped input, non-interactive CI runs).
type viewer struct {
	programName string
	targetName  string
	lines       []string
	pos         int
	oldState    *term.State
}

func (v *viewer) run() error {
	v.banner()
	v.show()

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return v.runLineMode()
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return v.runLineMode()
	}
	v.oldState = oldState
	defer v.restore()

	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return nil
		}
		switch buf[0] {
		case 'n', ' ':
			v.step(1)
		case 'p':
			v.step(-1)
		case 'l':
			v.list()
		case 'q', 3: // q or Ctrl-C
			return nil
		}
	}
}

func (v *viewer) restore() {
	if v.oldState != nil {
		term.Restore(int(os.Stdin.Fd()), v.oldState)
		v.oldState = nil
	}
}

// runLineMode is the fallback for non-terminal stdin: a plain prompt
// reading whole commands, used by tests and piped sessions where raw mode
// has nothing to grab control of.
func (v *viewer) runLineMode() error {
	var cmd string
	for {
		fmt.Print("orcrepl> ")
		if _, err := fmt.Scanln(&cmd); err != nil {
			return nil
		}
		switch cmd {
		case "n", "next":
			v.step(1)
		case "p", "prev":
			v.step(-1)
		case "l", "list":
			v.list()
		case "q", "quit":
			return nil
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func (v *viewer) banner() {
	crlf("orcrepl - %s compiled for %s (%d lines of assembly)", v.programName, v.targetName, len(v.lines))
	crlf("keys: n/space next, p prev, l list, q quit")
}

func (v *viewer) step(delta int) {
	next := v.pos + delta
	if next < 0 || next >= len(v.lines) {
		return
	}
	v.pos = next
	v.show()
}

func (v *viewer) show() {
	if len(v.lines) == 0 {
		crlf("(no assembly emitted)")
		return
	}
	crlf("%4d: %s", v.pos+1, v.lines[v.pos])
}

func (v *viewer) list() {
	for i, line := range v.lines {
		marker := " "
		if i == v.pos {
			marker = ">"
		}
		crlf("%s%4d: %s", marker, i+1, line)
	}
}

// crlf prints a line ending in \r\n — raw terminal mode doesn't translate
// a bare \n into a carriage return, so every line written while the
// terminal may be raw needs one explicitly.
func crlf(format string, args ...interface{}) {
	fmt.Printf(format+"\r\n", args...)
}
