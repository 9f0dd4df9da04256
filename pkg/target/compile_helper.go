package target

import (
	"fmt"
	"strings"

	"github.com/orc-lang/orc/pkg/ir"
)

// RunInstructions walks ctx.Insns in order and invokes each one's bound
// rule. Every concrete target's Compile delegates to this — the only
// thing that differs between targets is what each rule's Emit callback
// actually writes.
func RunInstructions(ctx *ir.Context) error {
	for i := range ctx.Insns {
		inst := &ctx.Insns[i]
		if inst.Rule == nil {
			return fmt.Errorf("orc: instruction %d (%s) has no bound rule at compile time", i, inst.Op.Name)
		}
		if err := inst.Rule.Emit(ctx, inst); err != nil {
			return fmt.Errorf("orc: compiling instruction %d (%s): %w", i, inst.Op.Name, err)
		}
	}
	return nil
}

// pruneRegisters sets Valid[r] to true for every register inside
// [gpBase, gpBase+gpCount) ∪ [dataBase, dataBase+dataCount) and to false
// for every other one, and sets Save for the offsets listed in gpSaved
// (relative to gpBase) and dataSaved (relative to dataBase). Shared by
// every concrete target's CompilerInit.
func pruneRegisters(ctx *ir.Context, gpBase, dataBase int, gpCount, dataCount int, gpSaved, dataSaved []int) {
	for r := 0; r < ir.NReg; r++ {
		inGP := r >= gpBase && r < gpBase+gpCount
		inData := r >= dataBase && r < dataBase+dataCount
		ctx.Valid[r] = inGP || inData
	}
	for _, r := range gpSaved {
		ctx.Save[gpBase+r] = true
	}
	for _, r := range dataSaved {
		ctx.Save[dataBase+r] = true
	}
}

// genericRule builds a Rule whose Emit prints one assembly line (mnemonic
// plus the instruction's operands, in dest-then-src order, register names
// resolved through regName) and appends opByte as a placeholder encoding
// byte per instruction. Real binary encoding is backend instruction
// selection, itself an out-of-scope external collaborator (spec §1); this
// keeps code_size tracking instruction count in a way every concrete
// target can share, rather than reimplementing operand formatting four
// times over.
func genericRule(mnemonic string, opByte byte, regName func(r int) string) *ir.Rule {
	return &ir.Rule{Emit: func(ctx *ir.Context, inst *ir.Instruction) error {
		op := inst.Op
		var operands []string
		var ptrNotes []string

		for slot, declared := range op.DestSizes {
			if declared == 0 {
				continue
			}
			v := ctx.Vars[inst.Dest[slot]]
			operands = append(operands, regName(v.Alloc))
			if v.Kind == ir.Dest {
				ptrNotes = append(ptrNotes, fmt.Sprintf("%s via %s", v.Name, regName(v.PtrReg)))
			}
		}
		for slot, declared := range op.SrcSizes {
			if declared == 0 {
				continue
			}
			v := ctx.Vars[inst.Src[slot]]
			switch v.Kind {
			case ir.Const, ir.Param:
				operands = append(operands, fmt.Sprintf("#%d", v.Value))
			default:
				operands = append(operands, regName(v.Alloc))
			}
			if v.Kind == ir.Src {
				ptrNotes = append(ptrNotes, fmt.Sprintf("%s via %s", v.Name, regName(v.PtrReg)))
			}
		}

		line := fmt.Sprintf("    %-8s %s", mnemonic, strings.Join(operands, ", "))
		if len(ptrNotes) > 0 {
			line += "  ; " + strings.Join(ptrNotes, ", ")
		}
		ctx.AppendCode("%s", line)
		ctx.EmitByte(opByte)
		return nil
	}}
}
