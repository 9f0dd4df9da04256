// Command orcc is Orc's compiler driver CLI: parse an OIL source file,
// compile it for a chosen target, and write out the emitted assembly
// (or, on request, dump the raw IR). Silent on success, like the teacher's
// own mz driver — verbose output is opt-in via -d/--debug or
// ORC_CODE=debug.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orc-lang/orc/pkg/compiler"
	"github.com/orc-lang/orc/pkg/ir"
	"github.com/orc-lang/orc/pkg/oil"
	"github.com/orc-lang/orc/pkg/target"
	"github.com/orc-lang/orc/pkg/version"
)

var (
	targetName      string
	outputFile      string
	debug           bool
	listTargets     bool
	dumpAsm         bool
	dumpIR          bool
	showVersion     bool
	showVersionFull bool
)

var rootCmd = &cobra.Command{
	Use:   "orcc [source.oil]",
	Short: "Orc JIT compiler driver",
	Long: `orcc compiles an OIL-format kernel program for a chosen hardware
target and writes the resulting assembly text (use -o to redirect it to a
file instead of stdout).

TARGETS:
  x86      - MMX/SSE
  altivec  - PowerPC AltiVec
  arm      - ARM NEON
  c        - portable C99

EXAMPLES:
  orcc kernel.oil                  # compile for x86, print assembly
  orcc kernel.oil -t altivec -o k.s # compile for AltiVec, write to file
  orcc --list-targets               # list every registered target
  orcc kernel.oil --dump-ir         # print the parsed variable/instruction table`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if showVersionFull {
			fmt.Println(version.GetFullVersion())
			return
		}
		if showVersion {
			fmt.Println(version.GetVersion())
			return
		}
		if listTargets {
			for _, name := range target.ListTargets() {
				fmt.Println(name)
			}
			return
		}
		if len(args) == 0 {
			cmd.Help()
			os.Exit(0)
		}
		if err := run(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "orcc: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVarP(&targetName, "target", "t", "x86", "compile target (x86, altivec, arm, c)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug tracing")
	rootCmd.Flags().BoolVar(&listTargets, "list-targets", false, "list registered targets and exit")
	rootCmd.Flags().BoolVar(&dumpAsm, "dump-asm", true, "print the compiled assembly text")
	rootCmd.Flags().BoolVar(&dumpIR, "dump-ir", false, "print the parsed variable/instruction table instead of compiling")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version and exit")
	rootCmd.Flags().BoolVar(&showVersionFull, "version-full", false, "show detailed version info and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "orcc: %v\n", err)
		os.Exit(1)
	}
}

func run(sourceFile string) error {
	if debug {
		os.Setenv("ORC_CODE", "debug")
	}

	f, err := os.Open(sourceFile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", sourceFile, err)
	}
	defer f.Close()

	program, err := oil.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", sourceFile, err)
	}

	if dumpIR {
		return dumpProgramIR(program)
	}

	t := target.GetTarget(targetName)
	if t == nil {
		return fmt.Errorf("unknown target %q (see --list-targets)", targetName)
	}

	result := compiler.Compile(program, t, 0)
	if result != ir.ResultOK {
		return fmt.Errorf("compile failed: %s", result)
	}

	out := os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outputFile, err)
		}
		defer file.Close()
		out = file
	}
	if dumpAsm {
		fmt.Fprint(out, program.AsmCode)
	}
	return nil
}

func dumpProgramIR(program *ir.Program) error {
	type insnIR struct {
		Op   string
		Dest []int
		Src  []int
	}
	view := struct {
		Name  string
		Vars  []ir.Variable
		Insns []insnIR
	}{Name: program.Name, Vars: program.Vars}
	for _, inst := range program.Insns {
		view.Insns = append(view.Insns, insnIR{Op: inst.Op.Name, Dest: inst.Dest[:], Src: inst.Src[:]})
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(view)
}
