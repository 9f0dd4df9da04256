package target_test

import (
	"testing"

	"github.com/orc-lang/orc/pkg/compiler"
	"github.com/orc-lang/orc/pkg/ir"
	"github.com/orc-lang/orc/pkg/target"
)

// smallestValidProgram is a single copyw from a Src buffer into a Dest
// buffer — scenario 1, run against every registered target's real
// register file.
func smallestValidProgram() *ir.Program {
	inst := ir.NewInstruction(ir.OpCopyW)
	inst.Dest[0] = 1
	inst.Src[0] = 0
	return &ir.Program{
		Name: "copy_kernel",
		Vars: []ir.Variable{
			ir.NewVariable("S1", 2, ir.Src),
			ir.NewVariable("D1", 2, ir.Dest),
		},
		Insns: []ir.Instruction{inst},
	}
}

func TestEveryRegisteredTargetCompilesSmallestProgram(t *testing.T) {
	for _, name := range target.ListTargets() {
		name := name
		t.Run(name, func(t *testing.T) {
			tgt := target.GetTarget(name)
			if tgt == nil {
				t.Fatalf("target %q vanished from the registry", name)
			}

			program := smallestValidProgram()
			result := compiler.Compile(program, tgt, 0)

			if result != ir.ResultOK {
				t.Fatalf("target %q: expected ResultOK, got %s", name, result)
			}
			if program.CodeSize <= 0 {
				t.Fatalf("target %q: expected a nonzero code size", name)
			}
			if program.AsmCode == "" {
				t.Fatalf("target %q: expected non-empty assembly text", name)
			}
		})
	}
}
