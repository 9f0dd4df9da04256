package compiler

import (
	"github.com/orc-lang/orc/pkg/ir"
)

// globalRegAlloc is the global register allocation pass (spec §4.5). It
// dispatches once per variable on Kind — Const/Param/Accumulator each get
// one data register up front (they live throughout the program); Src/Dest
// get the GP pointer-register bundle their memory traffic needs; Temp gets
// nothing here, deferred entirely to the local pass, where its register
// lifetime is actually bounded.
func globalRegAlloc(ctx *ir.Context) {
	for i := range ctx.Vars {
		v := &ctx.Vars[i]
		if v.Name == "" {
			continue
		}

		switch v.Kind {
		case ir.Const, ir.Param, ir.Accumulator:
			r, err := allocReg(ctx, true)
			if err != nil {
				return
			}
			v.Alloc = r

		case ir.Src:
			r, err := allocReg(ctx, false)
			if err != nil {
				return
			}
			v.PtrReg = r
			if ctx.NeedMaskRegs {
				maskReg, err := allocReg(ctx, true)
				if err != nil {
					return
				}
				v.MaskReg = maskReg
				offReg, err := allocReg(ctx, false)
				if err != nil {
					return
				}
				v.PtrOffset = offReg
				aligned, err := allocReg(ctx, true)
				if err != nil {
					return
				}
				v.AlignedData = aligned
			}

		case ir.Dest:
			r, err := allocReg(ctx, false)
			if err != nil {
				return
			}
			v.PtrReg = r

		case ir.Temp:
			// Nothing here; see regalloc_local.go.

		default:
			compilerError(ctx, ir.ResultUnknownParse, "variable %q has unrecognized kind %s", v.Name, v.Kind)
			return
		}
	}

	if ctx.AllocLoopCounter && !ctx.Error {
		r, err := allocReg(ctx, false)
		if err != nil {
			forgiveLoopCounterExhaustion(ctx)
			return
		}
		ctx.LoopCounterReg = r
	}
}

// forgiveLoopCounterExhaustion implements the one documented quirk in the
// global pass (spec §9): at least one backend links only if loop-counter
// exhaustion is silently forgiven rather than surfaced as a compile error.
// allocReg has already latched error=true and raised result to
// unknown_compile by the time this runs; both are rolled back here, and
// nowhere else — this is the single site that relies on the quirk.
func forgiveLoopCounterExhaustion(ctx *ir.Context) {
	ctx.Error = false
	ctx.Result = ir.ResultOK
	ctx.LoopCounterReg = 0
}
