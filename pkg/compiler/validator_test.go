package compiler

import (
	"strings"
	"testing"

	"github.com/orc-lang/orc/pkg/ir"
)

func newInsn(op *ir.OpcodeDescriptor, dest []int, src []int) ir.Instruction {
	inst := ir.NewInstruction(op)
	for i, d := range dest {
		inst.Dest[i] = d
	}
	for i, s := range src {
		inst.Src[i] = s
	}
	return inst
}

func TestCheckSizesDestMismatch(t *testing.T) {
	ctx := ir.NewContext(&ir.Program{
		Vars: []ir.Variable{
			ir.NewVariable("S1", 2, ir.Src),
			ir.NewVariable("D1", 1, ir.Dest), // wrong size: copyw wants 2
		},
		Insns: []ir.Instruction{newInsn(ir.OpCopyW, []int{1}, []int{0})},
	})

	if err := checkSizes(ctx); err == nil {
		t.Fatal("expected a size-mismatch error")
	}
	if !ctx.Error || ctx.Result != ir.ResultUnknownParse {
		t.Fatalf("expected latched unknown_parse, got error=%v result=%s", ctx.Error, ctx.Result)
	}
}

func TestCheckSizesConstExemptFromEquality(t *testing.T) {
	c := ir.NewVariable("C1", 0, ir.Const) // size 0, deliberately mismatched
	c.Value = 7
	ctx := ir.NewContext(&ir.Program{
		Vars: []ir.Variable{
			ir.NewVariable("D1", 2, ir.Dest),
			ir.NewVariable("S1", 2, ir.Src),
			c,
		},
		Insns: []ir.Instruction{newInsn(ir.OpMulW, []int{0}, []int{1, 2})},
	})

	if err := checkSizes(ctx); err != nil {
		t.Fatalf("Const source should be size-exempt, got: %v", err)
	}
}

func TestCheckSizesScalarRejectsVectorSecondSource(t *testing.T) {
	// Scenario 3: mulw D1, S1, S2 where S2 is Src, not Const/Param.
	ctx := ir.NewContext(&ir.Program{
		Vars: []ir.Variable{
			ir.NewVariable("D1", 2, ir.Dest),
			ir.NewVariable("S1", 2, ir.Src),
			ir.NewVariable("S2", 2, ir.Src),
		},
		Insns: []ir.Instruction{newInsn(ir.OpMulW, []int{0}, []int{1, 2})},
	})

	if err := checkSizes(ctx); err == nil {
		t.Fatal("expected scalar-opcode violation")
	}
	if ctx.Result != ir.ResultUnknownParse {
		t.Fatalf("expected unknown_parse, got %s", ctx.Result)
	}
}

func TestCheckSizesAbortsOnFirstError(t *testing.T) {
	// insn 0 has a dest-size mismatch; insn 1 is a scalar-opcode
	// violation. The returned error must be insn 0's size mismatch: a
	// validator that went on to insn 1 would report the scalar error.
	ctx := ir.NewContext(&ir.Program{
		Vars: []ir.Variable{
			ir.NewVariable("D1", 1, ir.Dest), // mismatch: copyw wants 2
			ir.NewVariable("S1", 2, ir.Src),
			ir.NewVariable("D2", 2, ir.Dest),
			ir.NewVariable("S2", 2, ir.Src),
		},
		Insns: []ir.Instruction{
			newInsn(ir.OpCopyW, []int{0}, []int{1}),
			newInsn(ir.OpMulW, []int{2}, []int{3, 1}), // mulw D2, S2, S1: S1 is not Const/Param
		},
	})

	err := checkSizes(ctx)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "size mismatch") {
		t.Fatalf("expected insn 0's size mismatch to be reported, got: %v", err)
	}
	if ctx.Result != ir.ResultUnknownParse {
		t.Fatalf("expected unknown_parse, got %s", ctx.Result)
	}
}
