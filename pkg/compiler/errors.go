// Package compiler implements the target-independent compiler pipeline:
// validation, rule binding, liveness/renaming, register allocation (global
// and local), and the driver that sequences them and hands off to a
// target's backend (spec §4).
package compiler

import (
	"fmt"

	"github.com/orc-lang/orc/pkg/debugtrace"
	"github.com/orc-lang/orc/pkg/ir"
)

// compilerError is ORC_COMPILER_ERROR (spec §6, "Error channel"): it
// latches ctx.Error, raises ctx.Result to at least severity, and writes an
// advisory diagnostic. The diagnostic is advisory only — callers must
// still check ctx.Error / ctx.Result, never parse the message.
func compilerError(ctx *ir.Context, severity ir.ResultCode, format string, args ...interface{}) {
	ctx.Error = true
	if severity > ctx.Result {
		ctx.Result = severity
	}
	debugtrace.Errorf("[%s] %s", ctx.TargetName, fmt.Sprintf(format, args...))
}
