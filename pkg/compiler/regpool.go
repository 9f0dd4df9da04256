package compiler

import (
	"fmt"

	"github.com/orc-lang/orc/pkg/ir"
)

// allocReg implements the register pool's two-pass allocation policy
// (spec §4.5): first scan the 32-register window looking for a free,
// non-callee-saved register; if none is free, scan again ignoring Save
// (the backend will save/restore whatever callee-saved register it ends
// up with). Register 0 is never a legal register number (it is the
// "unallocated" sentinel on Variable.Alloc), so pools always start above
// it — see ir.GPBase / ir.Context.DataRegisterOffset.
func allocReg(ctx *ir.Context, isData bool) (int, error) {
	base := ir.GPBase
	if isData {
		base = ctx.DataRegisterOffset
	}

	// Preferred pass: valid, not callee-saved, unused.
	for r := base; r < base+ir.PoolSize; r++ {
		if ctx.Valid[r] && !ctx.Save[r] && ctx.Alloc[r] == 0 {
			return takeReg(ctx, r), nil
		}
	}
	// Fallback pass: valid and unused, Save or not.
	for r := base; r < base+ir.PoolSize; r++ {
		if ctx.Valid[r] && ctx.Alloc[r] == 0 {
			return takeReg(ctx, r), nil
		}
	}

	pool := "gp"
	if isData {
		pool = "vector"
	}
	compilerError(ctx, ir.ResultUnknownCompile, "register overflow in %s pool", pool)
	return 0, fmt.Errorf("orc: register overflow in %s pool", pool)
}

func takeReg(ctx *ir.Context, r int) int {
	ctx.Alloc[r]++
	ctx.Used[r] = true
	return r
}

// freeReg decrements a register's live-range refcount. Freeing register 0
// (the unallocated sentinel) is a no-op — callers don't need to guard
// every call site against "was this variable ever allocated".
func freeReg(ctx *ir.Context, r int) {
	if r == 0 {
		return
	}
	if ctx.Alloc[r] > 0 {
		ctx.Alloc[r]--
	}
}
