package compiler

import (
	"testing"

	"github.com/orc-lang/orc/pkg/ir"
)

// TestGlobalRegAllocInvariants covers spec §8 invariants 4 and 5: Const,
// Param and Accumulator variables always land in the data pool with a
// nonzero register, and Src/Dest variables always get a nonzero pointer
// register in the GP pool.
func TestGlobalRegAllocInvariants(t *testing.T) {
	c := ir.NewVariable("C1", 2, ir.Const)
	p := ir.NewVariable("P1", 2, ir.Param)
	a := ir.NewVariable("A1", 2, ir.Accumulator)
	ctx := ir.NewContext(&ir.Program{
		Vars: []ir.Variable{
			c, p, a,
			ir.NewVariable("S1", 2, ir.Src),
			ir.NewVariable("D1", 2, ir.Dest),
		},
	})

	globalRegAlloc(ctx)
	if ctx.Error {
		t.Fatalf("unexpected error")
	}

	for _, idx := range []int{0, 1, 2} {
		if ctx.Vars[idx].Alloc == 0 {
			t.Fatalf("var %q should have a nonzero data register, got 0", ctx.Vars[idx].Name)
		}
		if !ctx.Valid[ctx.Vars[idx].Alloc] {
			t.Fatalf("var %q's allocated register %d should be Valid", ctx.Vars[idx].Name, ctx.Vars[idx].Alloc)
		}
	}
	if ctx.Vars[3].PtrReg == 0 {
		t.Fatal("Src variable should have a nonzero pointer register")
	}
	if ctx.Vars[4].PtrReg == 0 {
		t.Fatal("Dest variable should have a nonzero pointer register")
	}
}

// TestForgiveLoopCounterExhaustion exercises the documented quirk (spec
// §9): when the loop counter can't be allocated, the compile error it
// raised is rolled back rather than propagated.
func TestForgiveLoopCounterExhaustion(t *testing.T) {
	ctx := ir.NewContext(&ir.Program{
		Vars: []ir.Variable{
			ir.NewVariable("S1", 2, ir.Src),
		},
	})
	// Restrict the GP pool down to a single register so the one Src
	// pointer register exhausts it before the loop counter is requested.
	for r := ir.GPBase + 1; r < ir.GPBase+ir.PoolSize; r++ {
		ctx.Valid[r] = false
	}
	ctx.AllocLoopCounter = true

	globalRegAlloc(ctx)

	if ctx.Error {
		t.Fatalf("expected the loop-counter exhaustion to be forgiven, still latched: %v", ctx.Result)
	}
	if ctx.Result != ir.ResultOK {
		t.Fatalf("expected ResultOK after forgiveness, got %s", ctx.Result)
	}
	if ctx.LoopCounterReg != 0 {
		t.Fatalf("expected LoopCounterReg to stay 0, got %d", ctx.LoopCounterReg)
	}
}

// TestLocalRegAllocChaining is scenario 4: a single-destination,
// non-accumulator instruction whose sole source dies in the same
// instruction reuses that source's register for its destination instead
// of allocating a fresh one.
func TestLocalRegAllocChaining(t *testing.T) {
	ctx := ir.NewContext(&ir.Program{
		Vars: []ir.Variable{
			ir.NewVariable("C1", 2, ir.Const),
			ir.NewVariable("T1", 2, ir.Temp),
			ir.NewVariable("D1", 2, ir.Dest),
		},
		Insns: []ir.Instruction{
			newInsn(ir.OpCopyW, []int{1}, []int{0}), // copyw T1, C1
			newInsn(ir.OpCopyW, []int{2}, []int{1}), // copyw D1, T1
		},
	})

	rewriteVars(ctx)
	if ctx.Error {
		t.Fatalf("unexpected liveness error")
	}
	globalRegAlloc(ctx)
	if ctx.Error {
		t.Fatalf("unexpected global alloc error")
	}
	localRegAlloc(ctx)
	if ctx.Error {
		t.Fatalf("unexpected local alloc error")
	}

	tempReg := ctx.Vars[1].Alloc
	destReg := ctx.Vars[2].Alloc
	if tempReg == 0 || destReg == 0 {
		t.Fatalf("expected both T1 and D1 to get a register, got %d and %d", tempReg, destReg)
	}
	if tempReg != destReg {
		t.Fatalf("expected D1 to chain onto T1's register, got %d vs %d", tempReg, destReg)
	}
	if ctx.Alloc[tempReg] != 0 {
		t.Fatalf("expected the chained register's refcount to reach 0 after both die, got %d",
			ctx.Alloc[tempReg])
	}
}

// TestLocalRegAllocTempFreedAfterDeath confirms a Temp's register is
// released once its last use passes, independent of any chaining.
func TestLocalRegAllocTempFreedAfterDeath(t *testing.T) {
	ctx := ir.NewContext(&ir.Program{
		Vars: []ir.Variable{
			ir.NewVariable("S1", 2, ir.Src),
			ir.NewVariable("S2", 2, ir.Src),
			ir.NewVariable("T1", 2, ir.Temp),
			ir.NewVariable("D1", 2, ir.Dest),
			ir.NewVariable("D2", 2, ir.Dest),
		},
		Insns: []ir.Instruction{
			newInsn(ir.OpCopyW, []int{2}, []int{0}),    // copyw T1, S1
			newInsn(ir.OpCopyW, []int{3}, []int{2}),    // copyw D1, T1 (T1 dies, chains)
			newInsn(ir.OpCopyW, []int{4}, []int{1}),    // copyw D2, S2 (unrelated insn after)
		},
	})

	rewriteVars(ctx)
	globalRegAlloc(ctx)
	localRegAlloc(ctx)
	if ctx.Error {
		t.Fatalf("unexpected error")
	}

	tempReg := ctx.Vars[2].Alloc
	if ctx.Alloc[tempReg] != 0 {
		t.Fatalf("expected T1's chained register to be fully freed by the end of the program, got refcount %d",
			ctx.Alloc[tempReg])
	}
}
