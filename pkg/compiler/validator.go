package compiler

import (
	"fmt"

	"github.com/orc-lang/orc/pkg/ir"
)

// checkSizes validates every instruction's operand sizes against its
// opcode's static signature (spec §4.2). It aborts on the first error —
// unlike the liveness pass, which latches and continues for richer
// diagnostics — because a size mismatch makes every later pass's output
// meaningless.
func checkSizes(ctx *ir.Context) error {
	for i := range ctx.Insns {
		inst := &ctx.Insns[i]
		op := inst.Op

		for slot, declared := range op.DestSizes {
			if declared == 0 {
				continue
			}
			v := &ctx.Vars[inst.Dest[slot]]
			if v.Size != declared {
				return sizeMismatch(ctx, op.Name, "dest", slot, declared, v.Size)
			}
		}

		for slot, declared := range op.SrcSizes {
			if declared == 0 {
				continue
			}
			v := &ctx.Vars[inst.Src[slot]]
			if v.Kind == ir.Const || v.Kind == ir.Param {
				// Size is a property of the broadcast, not the storage.
				continue
			}
			if v.Size != declared {
				return sizeMismatch(ctx, op.Name, "src", slot, declared, v.Size)
			}
		}

		if op.IsScalar() {
			for slot := 1; slot < ir.NSrcSlotsPerInsn; slot++ {
				if op.SrcSizes[slot] == 0 && inst.Src[slot] == ir.NoSlot {
					continue
				}
				if inst.Src[slot] == ir.NoSlot {
					continue
				}
				v := &ctx.Vars[inst.Src[slot]]
				if v.Kind != ir.Const && v.Kind != ir.Param {
					compilerError(ctx, ir.ResultUnknownParse,
						"%s: scalar opcode src slot %d must be Const or Param, got %s",
						op.Name, slot, v.Kind)
					return fmt.Errorf("orc: %s: scalar opcode src slot %d must be Const or Param, got %s",
						op.Name, slot, v.Kind)
				}
			}
		}
	}
	return nil
}

func sizeMismatch(ctx *ir.Context, opName, slotKind string, slot, declared, actual int) error {
	compilerError(ctx, ir.ResultUnknownParse,
		"%s: %s slot %d size mismatch: declared %d, variable is %d",
		opName, slotKind, slot, declared, actual)
	return fmt.Errorf("orc: %s: %s slot %d size mismatch: declared %d, variable is %d",
		opName, slotKind, slot, declared, actual)
}
