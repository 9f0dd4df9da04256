package compiler

import (
	"github.com/orc-lang/orc/pkg/ir"
)

// localRegAlloc is rewrite_vars2, the local register allocation pass (spec
// §4.5). It walks every instruction once more, this time allocating and
// freeing data registers on the fly: a variable is born the instruction it
// is first used and dies the instruction it is last used, so the pool
// churns continuously rather than handing out one fixed register per
// variable for the program's whole lifetime — that's what lets a kernel
// with many short-lived temporaries run in a 32-register window.
func localRegAlloc(ctx *ir.Context) {
	for j := range ctx.Insns {
		inst := &ctx.Insns[j]
		op := inst.Op

		chainingOpportunity(ctx, inst, op, j)
		clearImmediateSentinel(ctx, inst)
		birth(ctx, j)
		death(ctx, j)
	}
}

// chainingOpportunity implements step 1: a single-destination,
// non-accumulator instruction whose first source dies on this instruction
// can just inherit that source's register for its destination instead of
// allocating a fresh one and emitting a move.
func chainingOpportunity(ctx *ir.Context, inst *ir.Instruction, op *ir.OpcodeDescriptor, j int) {
	if op.IsAccumulator() || op.DestSizes[1] != 0 {
		return
	}
	src1 := inst.Src[0]
	dest := inst.Dest[0]
	if src1 == ir.NoSlot || dest == ir.NoSlot {
		return
	}
	if ctx.Vars[src1].LastUse != j {
		return
	}

	if ctx.Vars[src1].FirstUse == j && ctx.Vars[src1].Alloc == 0 {
		r, err := allocReg(ctx, true)
		if err != nil {
			return
		}
		ctx.Vars[src1].Alloc = r
	}

	ctx.Alloc[ctx.Vars[src1].Alloc]++
	ctx.Vars[dest].Alloc = ctx.Vars[src1].Alloc
}

// clearImmediateSentinel implements step 2: src_args[1].alloc == 1 is an
// upstream sentinel meaning "this is an inline immediate, do not load it
// into a register" — it must not survive into a pass that reads alloc as a
// real register number.
func clearImmediateSentinel(ctx *ir.Context, inst *ir.Instruction) {
	src2 := inst.Src[1]
	if src2 == ir.NoSlot {
		return
	}
	if ctx.Vars[src2].Alloc == 1 {
		ctx.Vars[src2].Alloc = 0
	}
}

// birth implements step 3: every named variable first used on instruction
// j that hasn't yet been allocated gets a data register now.
func birth(ctx *ir.Context, j int) {
	for i := range ctx.Vars {
		v := &ctx.Vars[i]
		if v.Name == "" || v.FirstUse != j || v.Alloc != 0 {
			continue
		}
		r, err := allocReg(ctx, true)
		if err != nil {
			return
		}
		v.Alloc = r
	}
}

// death implements step 4: every named variable last used on instruction j
// releases its register's refcount. A variable born and dying on the same
// instruction is allocated by birth above and freed here in the same pass
// over j, never surviving past its one live instruction.
func death(ctx *ir.Context, j int) {
	for i := range ctx.Vars {
		v := &ctx.Vars[i]
		if v.Name == "" || v.LastUse != j {
			continue
		}
		freeReg(ctx, v.Alloc)
	}
}
