// Package interpreter is the emulator external collaborator (spec §1, "Out
// of scope"; §6, Program → Compiler boundary default). A Program with no
// backup function has its Code run here whenever compilation does not
// succeed (no target rule for one of its opcodes, or any other failure);
// a Program with a backup function runs that instead. Every opcode's
// Emulate function exists for exactly this purpose.
//
// Grounded on the teacher's pkg/interpreter/mir_interpreter.go: a small
// struct owning per-run scratch state, a single Execute-style entry point,
// and instruction-count limiting to keep a malformed or looping program
// from hanging the caller.
package interpreter

import (
	"encoding/binary"
	"fmt"

	"github.com/orc-lang/orc/pkg/ir"
)

// maxInstructions bounds a single Run — Orc programs are straight-line
// (spec §1 Non-goals: "dataflow across basic blocks"), so there is no
// legitimate reason for one to need more steps than it has instructions,
// but a malformed interpreter target shouldn't be able to spin forever.
const maxInstructions = 1 << 20

// Run emulates program against regs, the flat register file a compiled
// Program's CodeFunc is invoked with: one uint32 per Src/Param variable on
// entry, one uint32 per Dest variable on exit, in variable-table order.
// Const values come from the variable table itself, never from regs.
func Run(program *ir.Program, regs []uint32) error {
	e := &emulator{program: program, mem: make([][]byte, len(program.Vars))}
	return e.run(regs)
}

type emulator struct {
	program *ir.Program
	mem     [][]byte
	regPos  int
}

func (e *emulator) run(regs []uint32) error {
	for i, v := range e.program.Vars {
		size := v.Size
		if size == 0 {
			size = 4
		}
		buf := make([]byte, size)
		var word [4]byte
		switch v.Kind {
		case ir.Const:
			binary.LittleEndian.PutUint32(word[:], v.Value)
		case ir.Src, ir.Param:
			if e.regPos >= len(regs) {
				return fmt.Errorf("interpreter: %q: not enough input registers supplied", v.Name)
			}
			binary.LittleEndian.PutUint32(word[:], regs[e.regPos])
			e.regPos++
		}
		copy(buf, word[:])
		e.mem[i] = buf
	}

	if len(e.program.Insns) > maxInstructions {
		return fmt.Errorf("interpreter: %q: %d instructions exceeds the emulation limit",
			e.program.Name, len(e.program.Insns))
	}

	for _, inst := range e.program.Insns {
		if err := e.step(&inst); err != nil {
			return fmt.Errorf("interpreter: %q: %w", e.program.Name, err)
		}
	}

	outPos := 0
	for i, v := range e.program.Vars {
		if v.Kind != ir.Dest {
			continue
		}
		if outPos >= len(regs) {
			break
		}
		var word [4]byte
		copy(word[:], e.mem[i])
		regs[outPos] = binary.LittleEndian.Uint32(word[:])
		outPos++
	}
	return nil
}

func (e *emulator) step(inst *ir.Instruction) error {
	op := inst.Op
	if op.Emulate == nil {
		return fmt.Errorf("opcode %q has no emulation function", op.Name)
	}

	var src [][]byte
	var imm uint32
	haveImm := false
	for slot, idx := range inst.Src {
		if op.SrcSizes[slot] == 0 || idx == ir.NoSlot {
			continue
		}
		v := e.program.Vars[idx]
		if v.Kind == ir.Const && !haveImm {
			imm = v.Value
			haveImm = true
		}
		src = append(src, e.mem[idx])
	}

	var dest [][]byte
	for slot, idx := range inst.Dest {
		if op.DestSizes[slot] == 0 || idx == ir.NoSlot {
			continue
		}
		dest = append(dest, e.mem[idx])
	}

	op.Emulate(dest, src, imm)
	return nil
}
