package target

import (
	"fmt"

	"github.com/orc-lang/orc/pkg/ir"
)

func altivecGPName(r int) string {
	if idx := r - ir.GPBase; idx >= 0 && idx < ir.PoolSize {
		return fmt.Sprintf("r%d", idx)
	}
	return altivecVecName(r)
}

func altivecVecName(r int) string {
	base := ir.GPBase + ir.PoolSize
	if idx := r - base; idx >= 0 && idx < ir.PoolSize {
		return fmt.Sprintf("v%d", idx)
	}
	return fmt.Sprintf("r%d", r)
}

// Altivec is the PowerPC AltiVec target: the full 32-register GP file
// (R13..R31 callee-saved per the PowerPC ABI) and 32 vector registers
// (V0..V31, none callee-saved). It requests an explicit loop counter,
// which exercises forgive_loop_counter_exhaustion on a tightly-constrained
// program — see regalloc_global.go.
type Altivec struct {
	BaseTarget
}

var altivecRules = map[*ir.OpcodeDescriptor]*ir.Rule{
	ir.OpCopyB:  genericRule("vor", 0x84, altivecGPName),
	ir.OpCopyW:  genericRule("vor", 0x84, altivecGPName),
	ir.OpCopyL:  genericRule("vor", 0x84, altivecGPName),
	ir.OpAddB:   genericRule("vaddubm", 0x00, altivecGPName),
	ir.OpAddW:   genericRule("vadduhm", 0x40, altivecGPName),
	ir.OpAddL:   genericRule("vadduwm", 0x80, altivecGPName),
	ir.OpSubB:   genericRule("vsububm", 0xC0, altivecGPName),
	ir.OpSubW:   genericRule("vsubuhm", 0xC1, altivecGPName),
	ir.OpSubL:   genericRule("vsubuwm", 0xC2, altivecGPName),
	ir.OpMulW:   genericRule("vmladduhm", 0x22, altivecGPName),
	ir.OpAndW:   genericRule("vand", 0x04, altivecGPName),
	ir.OpOrW:    genericRule("vor", 0x84, altivecGPName),
	ir.OpXorW:   genericRule("vxor", 0xC4, altivecGPName),
	ir.OpAvgW:   genericRule("vavguh", 0x42, altivecGPName),
	ir.OpAccW:   genericRule("vadduhm", 0x40, altivecGPName),
	ir.OpLoadW:  genericRule("lvx", 0xCE, altivecGPName),
	ir.OpStoreW: genericRule("stvx", 0xCE, altivecGPName),
	ir.OpSplatB: genericRule("vspltb", 0x0C, altivecGPName),
}

func init() {
	RegisterTarget("altivec", NewAltivec())
}

// NewAltivec constructs the PowerPC AltiVec target.
func NewAltivec() *Altivec {
	t := &Altivec{BaseTarget: NewBaseTarget()}
	t.SetFeature(FeatureMaskedLoads, true)
	t.SetFeature(FeatureLoopCounter, true)
	return t
}

func (t *Altivec) Name() string                 { return "altivec" }
func (t *Altivec) DataRegisterOffset() int       { return ir.GPBase + ir.PoolSize }
func (t *Altivec) SupportsFeature(f string) bool { return t.CheckFeature(f) }

func (t *Altivec) CompilerInit(ctx *ir.Context) {
	saved := make([]int, 0, 19)
	for r := 13; r <= 31; r++ {
		saved = append(saved, r)
	}
	pruneRegisters(ctx, ir.GPBase, ir.GPBase+ir.PoolSize, ir.PoolSize, ir.PoolSize, saved, nil)
	ctx.NeedMaskRegs = true
	ctx.AllocLoopCounter = true
	ctx.TmpReg = ir.GPBase + ir.PoolSize
}

func (t *Altivec) LoadConstant(ctx *ir.Context, reg int, size int, value uint32) error {
	ctx.AppendCode("    %-8s %s, #%d", "vspltisw", altivecGPName(reg), value)
	ctx.EmitBytes(0x10, byte(value), byte(value>>8), byte(value>>16))
	return nil
}

func (t *Altivec) Compile(ctx *ir.Context) error {
	return RunInstructions(ctx)
}

func (t *Altivec) GetRule(op *ir.OpcodeDescriptor, flags uint32) *ir.Rule {
	return altivecRules[op]
}
