package compiler

import (
	"testing"

	"github.com/orc-lang/orc/pkg/envflags"
	"github.com/orc-lang/orc/pkg/ir"
	"github.com/orc-lang/orc/pkg/target"
)

func smallestValidProgram() *ir.Program {
	return &ir.Program{
		Name: "copy_kernel",
		Vars: []ir.Variable{
			ir.NewVariable("S1", 2, ir.Src),
			ir.NewVariable("D1", 2, ir.Dest),
		},
		Insns: []ir.Instruction{
			newInsn(ir.OpCopyW, []int{1}, []int{0}),
		},
	}
}

// TestCompileBackupDisabledByEnvFirstCall is scenario 5: ORC_CODE=backup
// disables compilation in favor of a program's backup function. Every
// Compile call reads envflags.Get(), whose sync.Once latches on the first
// call in the test binary, so this test is declared first to make that
// first call with ORC_CODE=backup set.
func TestCompileBackupDisabledByEnvFirstCall(t *testing.T) {
	t.Setenv("ORC_CODE", "backup")

	backup := func(regs []uint32) error { return nil }
	program := smallestValidProgram()
	program.BackupFunc = backup

	c := target.GetTarget("c")
	result := Compile(program, c, 0)

	if result != ir.ResultUnknownCompile {
		t.Fatalf("expected ResultUnknownCompile when backup is forced, got %s", result)
	}
	got := envflags.Get()
	if !got.Backup {
		t.Fatal("expected ORC_CODE=backup to be observed")
	}
}

// TestCompileSmallestValidProgram is scenario 1: the smallest valid
// program, compiled end to end against a real target.
func TestCompileSmallestValidProgram(t *testing.T) {
	program := smallestValidProgram()
	c := target.GetTarget("c")
	if c == nil {
		t.Fatal("c target not registered")
	}

	result := Compile(program, c, 0)
	if result != ir.ResultOK {
		t.Fatalf("expected ResultOK, got %s", result)
	}
	if program.CodeSize <= 0 {
		t.Fatalf("expected a nonzero code size, got %d", program.CodeSize)
	}
	if program.AsmCode == "" {
		t.Fatal("expected non-empty assembly text")
	}
	if program.Code == nil {
		t.Fatal("expected program.Code to be set")
	}
}

// TestCompileNilTarget is the "target == nil" boundary case: fatal
// unknown_compile, no pass ever runs.
func TestCompileNilTarget(t *testing.T) {
	program := smallestValidProgram()
	result := Compile(program, nil, 0)
	if result != ir.ResultUnknownCompile {
		t.Fatalf("expected ResultUnknownCompile, got %s", result)
	}
}

// TestCompileMissingRuleIsRecoverable exercises assignRules' missing-rule
// path: the arm target deliberately has no rule for OpAvgW.
func TestCompileMissingRuleIsRecoverable(t *testing.T) {
	arm := target.GetTarget("arm")
	if arm == nil {
		t.Fatal("arm target not registered")
	}
	program := &ir.Program{
		Name: "avg_kernel",
		Vars: []ir.Variable{
			ir.NewVariable("S1", 2, ir.Src),
			ir.NewVariable("S2", 2, ir.Src),
			ir.NewVariable("D1", 2, ir.Dest),
		},
		Insns: []ir.Instruction{
			newInsn(ir.OpAvgW, []int{2}, []int{0, 1}),
		},
	}

	result := Compile(program, arm, 0)
	if result != ir.ResultUnknownCompile {
		t.Fatalf("expected ResultUnknownCompile for a missing rule, got %s", result)
	}
	if program.Code == nil {
		t.Fatal("expected the interpreter fallback to still be installed in program.Code")
	}
}

// TestCompileBackupDisabledByEnv is scenario 5: ORC_CODE=backup disables
// compilation in favor of a program's backup function. Every Compile call
// reads envflags.Get(), whose sync.Once latches on the first call in the
// test binary; TestCompileBackupDisabledByEnvFirstCall, declared first in
// this file, makes that call with ORC_CODE=backup set.
func TestCompileBackupDisabledByEnv(t *testing.T) {
	t.Setenv("ORC_CODE", "backup")

	backup := func(regs []uint32) error { return nil }
	program := smallestValidProgram()
	program.BackupFunc = backup

	c := target.GetTarget("c")
	result := Compile(program, c, 0)

	if result != ir.ResultUnknownCompile {
		t.Fatalf("expected ResultUnknownCompile when backup is forced, got %s", result)
	}
	got := envflags.Get()
	if !got.Backup {
		t.Fatal("expected ORC_CODE=backup to be observed")
	}
}

// TestFinishPromotesZeroResult is the "zero-result promoted to
// unknown_compile" defensive behavior: finish() never reports ResultOK
// once ctx.Error is set, even if nothing along the way raised severity.
func TestFinishPromotesZeroResult(t *testing.T) {
	ctx := ir.NewContext(&ir.Program{})
	ctx.Error = true
	ctx.Result = ir.ResultOK

	if got := finish(ctx); got != ir.ResultUnknownCompile {
		t.Fatalf("expected ResultUnknownCompile, got %s", got)
	}
}
