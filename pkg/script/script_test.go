package script

import (
	"strings"
	"testing"

	"github.com/orc-lang/orc/pkg/ir"
)

func TestRunGeneratesCopyKernel(t *testing.T) {
	e := NewEvaluator()
	defer e.Close()

	program, err := e.Run(`
		orc.program("generated_copy")
		orc.var("src", "S1", "word")
		orc.var("dest", "D1", "word")
		orc.insn("copyw", "D1", "S1")
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if program.Name != "generated_copy" {
		t.Fatalf("expected generated_copy, got %q", program.Name)
	}
	if len(program.Insns) != 1 || program.Insns[0].Op != ir.OpCopyW {
		t.Fatalf("expected one copyw instruction, got %+v", program.Insns)
	}
}

// TestRunLoopGeneratesRepeatedPattern exercises the actual convenience
// this package exists for: a Lua for-loop emitting a chain of
// instructions too repetitive to hand-write.
func TestRunLoopGeneratesRepeatedPattern(t *testing.T) {
	e := NewEvaluator()
	defer e.Close()

	program, err := e.Run(`
		orc.program("chain")
		orc.var("src", "S1", "word")
		orc.var("temp", "T1", "word")
		orc.var("dest", "D1", "word")

		orc.insn("copyw", "T1", "S1")
		for i = 1, 3 do
			orc.insn("addw", "T1", "T1", "S1")
		end
		orc.insn("copyw", "D1", "T1")
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(program.Insns) != 5 {
		t.Fatalf("expected 1 + 3 + 1 = 5 instructions, got %d", len(program.Insns))
	}
	for _, i := range []int{1, 2, 3} {
		if program.Insns[i].Op != ir.OpAddW {
			t.Fatalf("expected insn %d to be addw, got %q", i, program.Insns[i].Op.Name)
		}
	}
}

func TestRunConstLiteral(t *testing.T) {
	e := NewEvaluator()
	defer e.Close()

	program, err := e.Run(`
		orc.program("scale")
		orc.var("src", "S1", "word")
		orc.var("dest", "D1", "word")
		orc.var("const", "C1", "word", 42)
		orc.insn("mulw", "D1", "S1", "C1")
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var c *ir.Variable
	for i := range program.Vars {
		if program.Vars[i].Name == "C1" {
			c = &program.Vars[i]
		}
	}
	if c == nil || c.Value != 42 {
		t.Fatalf("expected C1 to carry 42, got %+v", c)
	}
}

func TestGenerateSourceWithoutParsing(t *testing.T) {
	e := NewEvaluator()
	defer e.Close()

	src, err := e.GenerateSource(`orc.program("p")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(src, "program p") {
		t.Fatalf("expected generated source to declare the program, got %q", src)
	}
}

func TestRunLuaSyntaxError(t *testing.T) {
	e := NewEvaluator()
	defer e.Close()

	if _, err := e.Run(`this is not lua (`); err == nil {
		t.Fatal("expected a Lua syntax error")
	}
}
