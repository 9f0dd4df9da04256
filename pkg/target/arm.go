package target

import (
	"fmt"

	"github.com/orc-lang/orc/pkg/ir"
)

func armGPName(r int) string {
	if idx := r - ir.GPBase; idx >= 0 && idx < 13 {
		return fmt.Sprintf("r%d", idx)
	}
	return armVecName(r)
}

func armVecName(r int) string {
	base := ir.GPBase + ir.PoolSize
	if idx := r - base; idx >= 0 && idx < 16 {
		return fmt.Sprintf("q%d", idx)
	}
	return fmt.Sprintf("r%d", r)
}

// ARM is the ARM NEON target: 13 usable GP registers (R0..R12, with
// R4..R11 callee-saved per AAPCS) and 16 NEON quadword registers
// (Q0..Q15), none callee-saved. No masked-load support and no loop
// counter — NEON's alignment rules are laxer than AltiVec's.
//
// This target deliberately has no rule for OpAvgW — not every backend
// implements every opcode, and the rule binder's "no rule" path
// (ResultUnknownCompile, interpreter fallback) needs at least one real
// target that exercises it.
type ARM struct {
	BaseTarget
}

var armRules = map[*ir.OpcodeDescriptor]*ir.Rule{
	ir.OpCopyB:  genericRule("vmov", 0x01, armGPName),
	ir.OpCopyW:  genericRule("vmov", 0x01, armGPName),
	ir.OpCopyL:  genericRule("vmov", 0x01, armGPName),
	ir.OpAddB:   genericRule("vadd.i8", 0x08, armGPName),
	ir.OpAddW:   genericRule("vadd.i16", 0x10, armGPName),
	ir.OpAddL:   genericRule("vadd.i32", 0x20, armGPName),
	ir.OpSubB:   genericRule("vsub.i8", 0x28, armGPName),
	ir.OpSubW:   genericRule("vsub.i16", 0x30, armGPName),
	ir.OpSubL:   genericRule("vsub.i32", 0x38, armGPName),
	ir.OpMulW:   genericRule("vmul.i16", 0x48, armGPName),
	ir.OpAndW:   genericRule("vand", 0x50, armGPName),
	ir.OpOrW:    genericRule("vorr", 0x58, armGPName),
	ir.OpXorW:   genericRule("veor", 0x60, armGPName),
	ir.OpAccW:   genericRule("vadd.i16", 0x10, armGPName),
	ir.OpLoadW:  genericRule("vld1.16", 0x70, armGPName),
	ir.OpStoreW: genericRule("vst1.16", 0x78, armGPName),
	ir.OpSplatB: genericRule("vdup.8", 0x80, armGPName),
}

func init() {
	RegisterTarget("arm", NewARM())
}

// NewARM constructs the ARM NEON target.
func NewARM() *ARM {
	return &ARM{BaseTarget: NewBaseTarget()}
}

func (t *ARM) Name() string                 { return "arm" }
func (t *ARM) DataRegisterOffset() int       { return ir.GPBase + ir.PoolSize }
func (t *ARM) SupportsFeature(f string) bool { return t.CheckFeature(f) }

func (t *ARM) CompilerInit(ctx *ir.Context) {
	pruneRegisters(ctx, ir.GPBase, ir.GPBase+ir.PoolSize, 13, 16, []int{4, 5, 6, 7, 8, 9, 10, 11}, nil)
	ctx.NeedMaskRegs = false
	ctx.AllocLoopCounter = false
	ctx.TmpReg = ir.GPBase + ir.PoolSize
}

func (t *ARM) LoadConstant(ctx *ir.Context, reg int, size int, value uint32) error {
	ctx.AppendCode("    %-8s %s, #%d", "vmov.i32", armGPName(reg), value)
	ctx.EmitBytes(0x01, byte(value), byte(value>>8))
	return nil
}

func (t *ARM) Compile(ctx *ir.Context) error {
	return RunInstructions(ctx)
}

func (t *ARM) GetRule(op *ir.OpcodeDescriptor, flags uint32) *ir.Rule {
	return armRules[op]
}
