package oil

import (
	"strings"
	"testing"

	"github.com/orc-lang/orc/pkg/ir"
)

const copyKernel = `
program copy_kernel

src S1 word
dest D1 word

copyw D1, S1
`

func TestParseSimpleKernel(t *testing.T) {
	program, err := ParseString(copyKernel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if program.Name != "copy_kernel" {
		t.Fatalf("expected program name copy_kernel, got %q", program.Name)
	}
	if len(program.Vars) != 2 {
		t.Fatalf("expected 2 vars, got %d", len(program.Vars))
	}
	if len(program.Insns) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(program.Insns))
	}
	inst := program.Insns[0]
	if inst.Op != ir.OpCopyW {
		t.Fatalf("expected the copyw descriptor, got %q", inst.Op.Name)
	}
	if inst.Dest[0] != 1 || inst.Src[0] != 0 {
		t.Fatalf("expected D1 (idx 1) <- S1 (idx 0), got dest=%v src=%v", inst.Dest, inst.Src)
	}
}

const constKernel = `
program scale_kernel

src S1 word
dest D1 word
const C1 word 0x2A

mulw D1, S1, C1
`

func TestParseConstLiteral(t *testing.T) {
	program, err := ParseString(constKernel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var c *ir.Variable
	for i := range program.Vars {
		if program.Vars[i].Name == "C1" {
			c = &program.Vars[i]
		}
	}
	if c == nil {
		t.Fatal("C1 not found in variable table")
	}
	if c.Value != 0x2A {
		t.Fatalf("expected C1 to carry 0x2A, got %#x", c.Value)
	}
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	src := `
; a leading comment
program commented // trailing comment too

src S1 word   ; declares a source
dest D1 word

copyw D1, S1
`
	program, err := ParseString(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if program.Name != "commented" {
		t.Fatalf("expected name 'commented', got %q", program.Name)
	}
}

func TestParseUnknownOpcode(t *testing.T) {
	src := `
program bad
src S1 word
dest D1 word
bogus D1, S1
`
	if _, err := ParseString(src); err == nil {
		t.Fatal("expected an error for an unregistered opcode")
	}
}

func TestParseUndeclaredVariable(t *testing.T) {
	src := `
program bad
dest D1 word
copyw D1, S1
`
	_, err := ParseString(src)
	if err == nil {
		t.Fatal("expected an error for an undeclared variable")
	}
	if !strings.Contains(err.Error(), "undeclared") {
		t.Fatalf("expected an 'undeclared variable' error, got: %v", err)
	}
}

func TestParseWrongOperandCount(t *testing.T) {
	src := `
program bad
src S1 word
dest D1 word
copyw D1, S1, S1
`
	if _, err := ParseString(src); err == nil {
		t.Fatal("expected an error for too many operands")
	}
}

func TestParseMissingProgramDecl(t *testing.T) {
	src := `
src S1 word
dest D1 word
copyw D1, S1
`
	if _, err := ParseString(src); err == nil {
		t.Fatal("expected an error for a missing program declaration")
	}
}

func TestParseDuplicateVariable(t *testing.T) {
	src := `
program bad
src S1 word
src S1 word
`
	if _, err := ParseString(src); err == nil {
		t.Fatal("expected an error for a duplicate variable declaration")
	}
}
