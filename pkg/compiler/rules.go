package compiler

import (
	"fmt"

	"github.com/orc-lang/orc/pkg/ir"
	"github.com/orc-lang/orc/pkg/target"
)

// assignRules binds a target-specific rule to every instruction (spec
// §4.3). Lookup is by opcode descriptor identity, not by name. A missing
// or empty rule is recoverable — the interpreter can still run the
// program — so it latches ResultUnknownCompile and aborts the pass rather
// than panicking.
func assignRules(ctx *ir.Context, t target.Target, flags uint32) error {
	for i := range ctx.Insns {
		inst := &ctx.Insns[i]
		rule := t.GetRule(inst.Op, flags)
		if rule == nil || rule.Emit == nil {
			compilerError(ctx, ir.ResultUnknownCompile,
				"no rule for opcode %q on target %q", inst.Op.Name, t.Name())
			return fmt.Errorf("orc: no rule for opcode %q on target %q", inst.Op.Name, t.Name())
		}
		inst.Rule = rule
	}
	return nil
}
