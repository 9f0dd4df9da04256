package compiler

import (
	"github.com/orc-lang/orc/pkg/codemem"
	"github.com/orc-lang/orc/pkg/debugtrace"
	"github.com/orc-lang/orc/pkg/envflags"
	"github.com/orc-lang/orc/pkg/interpreter"
	"github.com/orc-lang/orc/pkg/ir"
	"github.com/orc-lang/orc/pkg/target"
)

// Compile is the driver (spec §4.1): it sequences every pass, hands the
// annotated context to the target's backend, and publishes the result back
// onto program. It never panics — every failure path is a ResultCode, and
// the program is left callable (via backup or the interpreter) even when
// compilation itself fails.
func Compile(program *ir.Program, t target.Target, flags target.Flags) ir.ResultCode {
	debugtrace.Printf("compile %s: starting", program.Name)
	ctx := ir.NewContext(program)

	// Step 1: default runnable code, so a compile failure never leaves a
	// program with nothing to call.
	if program.BackupFunc != nil {
		program.Code = program.BackupFunc
	} else {
		program.Code = func(regs []uint32) error { return interpreter.Run(program, regs) }
	}

	// Step 2: backup + disable-compilation short-circuit.
	if program.BackupFunc != nil && envflags.Get().Backup {
		return ir.ResultUnknownCompile
	}

	// Step 3: target is required.
	if t == nil {
		compilerError(ctx, ir.ResultUnknownCompile, "no target supplied")
		return finish(ctx)
	}
	ctx.TargetName = t.Name()
	debugtrace.Printf("compile %s: target %s", program.Name, ctx.TargetName)

	// Step 4: deep copies already made by NewContext; every register
	// starts valid, then the backend prunes down to its real ISA.
	ctx.DataRegisterOffset = t.DataRegisterOffset()
	t.CompilerInit(ctx)

	// Step 5: the pipeline.
	if err := checkSizes(ctx); err != nil {
		return finish(ctx)
	}
	debugtrace.Printf("compile %s: check_sizes ok", program.Name)

	if err := assignRules(ctx, t, flags); err != nil {
		return finish(ctx)
	}
	debugtrace.Printf("compile %s: assign_rules ok", program.Name)

	rewriteVars(ctx)
	if ctx.Error {
		return finish(ctx)
	}
	debugtrace.Printf("compile %s: rewrite_vars ok (%d vars, %d dup temps)",
		program.Name, len(ctx.Vars), ctx.NDupVars)

	globalRegAlloc(ctx)
	if ctx.Error {
		return finish(ctx)
	}
	debugtrace.Printf("compile %s: global_reg_alloc ok", program.Name)

	localRegAlloc(ctx)
	if ctx.Error {
		return finish(ctx)
	}
	debugtrace.Printf("compile %s: local_reg_alloc ok", program.Name)

	region, err := codemem.Allocate(codemem.DefaultSize)
	if err != nil {
		compilerError(ctx, ir.ResultUnknownCompile, "allocate_codemem: %v", err)
		return finish(ctx)
	}
	if err := t.Compile(ctx); err != nil {
		compilerError(ctx, ir.ResultUnknownCompile, "backend compile: %v", err)
		return finish(ctx)
	}
	n, err := region.Write(ctx.Code)
	if err != nil {
		compilerError(ctx, ir.ResultUnknownCompile, "allocate_codemem: %v", err)
		return finish(ctx)
	}
	if err := region.MakeExecutable(); err != nil {
		compilerError(ctx, ir.ResultUnknownCompile, "allocate_codemem: %v", err)
		return finish(ctx)
	}

	// Step 7: success — publish code, size, and assembly text, and
	// release the context.
	program.AsmCode = string(ctx.AsmCode)
	program.CodeSize = n
	program.Code = func(regs []uint32) error { return region.Call(regs) }
	debugtrace.Printf("compile %s: ok, %d bytes of code", program.Name, n)
	return ir.ResultOK
}

// finish implements step 6: a zero result at the error label is promoted
// to unknown_compile. ctx is discarded after this call; its assembly
// buffer and duplicated-name strings go with it (Go's GC, not an explicit
// free path, but the same lifetime discipline the spec describes).
func finish(ctx *ir.Context) ir.ResultCode {
	if ctx.Result == ir.ResultOK {
		ctx.Result = ir.ResultUnknownCompile
	}
	return ctx.Result
}
