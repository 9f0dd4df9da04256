package compiler

import (
	"fmt"

	"github.com/orc-lang/orc/pkg/ir"
)

// rewriteVars is the liveness / Temp-renaming pass (spec §4.4). It walks
// every instruction exactly once in program order, resolving each operand
// through any existing rename link, marking first_use/last_use, and
// splitting a Temp variable into a fresh duplicate the moment it is written
// a second time — the only renaming this compiler ever does, and the only
// reason any variable acquires more than one live range.
//
// Unlike checkSizes, errors here are latched and the pass keeps going: a
// single undefined-variable reference shouldn't hide every other mistake in
// the same program from the caller.
func rewriteVars(ctx *ir.Context) {
	// resolveAt follows rename links only to duplicates defined before j (or
	// at j, for a destination), so a rerun of the pass rewrites nothing.
	resolveAt := func(idx, j int, isDest bool) int {
		for ctx.Vars[idx].Replaced {
			next := ctx.Vars[idx].Replacement
			if f := ctx.Vars[next].FirstUse; f > j || (f == j && !isDest) {
				break
			}
			idx = next
		}
		return idx
	}

	for j := range ctx.Insns {
		inst := &ctx.Insns[j]
		op := inst.Op

		for slot, declared := range op.SrcSizes {
			if declared == 0 {
				continue
			}
			idx := inst.Src[slot]
			if idx == ir.NoSlot {
				continue
			}
			resolved := resolveAt(idx, j, false)

			if ctx.Vars[resolved].Kind == ir.Dest {
				inst.LoadDest = true
			}
			inst.Src[slot] = resolved

			switch ctx.Vars[resolved].Kind {
			case ir.Const, ir.Param, ir.Accumulator:
				// These kinds are live throughout the program (spec §8
				// invariant 3: first_use/last_use stay -1,-1) — mark used,
				// but never stamp an instruction index on them.
				ctx.Vars[resolved].Used = true
			default:
				if !ctx.Vars[resolved].Used {
					if ctx.Vars[resolved].Kind == ir.Temp {
						compilerError(ctx, ir.ResultUnknownParse,
							"%s: src slot %d (%s) used before defined",
							op.Name, slot, ctx.Vars[resolved].Name)
						continue
					}
					ctx.Vars[resolved].Used = true
					ctx.Vars[resolved].FirstUse = j
				}
				ctx.Vars[resolved].LastUse = j
			}
		}

		for slot, declared := range op.DestSizes {
			if declared == 0 {
				continue
			}
			idx := inst.Dest[slot]
			if idx == ir.NoSlot {
				continue
			}
			resolved := resolveAt(idx, j, true)
			kind := ctx.Vars[resolved].Kind

			if kind == ir.Src || kind == ir.Const || kind == ir.Param {
				compilerError(ctx, ir.ResultUnknownParse,
					"%s: dest slot %d (%s) has illegal destination kind %s",
					op.Name, slot, ctx.Vars[resolved].Name, kind)
				continue
			}
			if op.IsAccumulator() && kind != ir.Accumulator {
				compilerError(ctx, ir.ResultUnknownParse,
					"%s: accumulator opcode must write an Accumulator destination, got %s",
					op.Name, kind)
				continue
			}
			if !op.IsAccumulator() && kind == ir.Accumulator {
				compilerError(ctx, ir.ResultUnknownParse,
					"%s: non-accumulator opcode must not write an Accumulator destination",
					op.Name)
				continue
			}

			if kind == ir.Accumulator {
				// Live throughout (spec §8 invariant 3): mark used, never
				// stamp an instruction index, never duplicate — an
				// accumulator is by definition written repeatedly.
				ctx.Vars[resolved].Used = true
				inst.Dest[slot] = resolved
				continue
			}

			if !ctx.Vars[resolved].Used {
				ctx.Vars[resolved].Used = true
				ctx.Vars[resolved].FirstUse = j
				inst.Dest[slot] = resolved
			} else if kind == ir.Temp && ctx.Vars[resolved].FirstUse != j {
				dupIdx := dupTemporary(ctx, resolved, j)
				ctx.Vars[resolved].Replaced = true
				ctx.Vars[resolved].Replacement = dupIdx
				inst.Dest[slot] = dupIdx
				ctx.Vars[dupIdx].Used = true
				ctx.Vars[dupIdx].FirstUse = j
				resolved = dupIdx
			} else {
				// Re-definition of a non-Temp destination (e.g. a Dest
				// variable written more than once): allowed, just another
				// definition point. See DESIGN.md, Open Questions. A Temp
				// whose recorded definition is this very instruction (a
				// rerun of the pass) also lands here.
				inst.Dest[slot] = resolved
			}
			ctx.Vars[resolved].LastUse = j
		}
	}
}

// dupTemporary splits a Temp variable's live range by appending a fresh
// Temp variable to the end of ctx.Vars. The duplicate's slot is
// len(ctx.Vars) at the time of the call: after every declared variable
// and every earlier duplicate. Variables are kept in declaration order
// (see pkg/oil), so this is not a fixed offset into a reserved Temp range
// and need not follow the last original Temp directly.
func dupTemporary(ctx *ir.Context, orig, j int) int {
	donor := ctx.Vars[orig]
	dup := ir.NewVariable(fmt.Sprintf("%s.dup%d", donor.Name, j), donor.Size, ir.Temp)
	newIdx := len(ctx.Vars)
	ctx.Vars = append(ctx.Vars, dup)
	ctx.NDupVars++
	return newIdx
}
