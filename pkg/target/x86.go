package target

import (
	"fmt"

	"github.com/orc-lang/orc/pkg/ir"
)

// x86GPNames are the usable 32-bit GP registers, in preferred-allocation
// order — EAX first (never callee-saved), EBX/ESI/EDI last (all
// callee-saved, so the preferred pass skips them until nothing else is
// free). ESP/EBP are never offered; this target has no use for a frame
// pointer the way the register-window allocator models it.
var x86GPNames = []string{"eax", "ecx", "edx", "ebx", "esi", "edi"}

// x86VecNames are the MMX/SSE vector registers this target offers.
var x86VecNames = []string{"xmm0", "xmm1", "xmm2", "xmm3", "xmm4", "xmm5", "xmm6", "xmm7"}

func x86RegName(r int) string {
	if r == 0 {
		return "?"
	}
	if idx := r - ir.GPBase; idx >= 0 && idx < len(x86GPNames) {
		return x86GPNames[idx]
	}
	if idx := r - (ir.GPBase + ir.PoolSize); idx >= 0 && idx < len(x86VecNames) {
		return x86VecNames[idx]
	}
	return fmt.Sprintf("r%d", r)
}

// X86 is the MMX/SSE target: 6 usable GP registers (3 callee-saved per the
// cdecl/SysV convention) and 8 XMM vector registers, none callee-saved.
// Unaligned vector loads need masking, so NeedMaskRegs is set.
type X86 struct {
	BaseTarget
}

var x86Rules = map[*ir.OpcodeDescriptor]*ir.Rule{
	ir.OpCopyB:  genericRule("movb", 0x88, x86RegName),
	ir.OpCopyW:  genericRule("movw", 0x89, x86RegName),
	ir.OpCopyL:  genericRule("movl", 0x89, x86RegName),
	ir.OpAddB:   genericRule("paddb", 0xFC, x86RegName),
	ir.OpAddW:   genericRule("paddw", 0xFD, x86RegName),
	ir.OpAddL:   genericRule("paddd", 0xFE, x86RegName),
	ir.OpSubB:   genericRule("psubb", 0xF8, x86RegName),
	ir.OpSubW:   genericRule("psubw", 0xF9, x86RegName),
	ir.OpSubL:   genericRule("psubd", 0xFA, x86RegName),
	ir.OpMulW:   genericRule("pmullw", 0xD5, x86RegName),
	ir.OpAndW:   genericRule("pand", 0xDB, x86RegName),
	ir.OpOrW:    genericRule("por", 0xEB, x86RegName),
	ir.OpXorW:   genericRule("pxor", 0xEF, x86RegName),
	ir.OpAvgW:   genericRule("pavgw", 0xE3, x86RegName),
	ir.OpAccW:   genericRule("paddw", 0xFD, x86RegName),
	ir.OpLoadW:  genericRule("movdqu", 0x6F, x86RegName),
	ir.OpStoreW: genericRule("movdqu", 0x7F, x86RegName),
	ir.OpSplatB: genericRule("pshufb", 0x00, x86RegName),
}

func init() {
	RegisterTarget("x86", NewX86())
}

// NewX86 constructs the x86 target.
func NewX86() *X86 {
	t := &X86{BaseTarget: NewBaseTarget()}
	t.SetFeature(FeatureMaskedLoads, true)
	t.SetFeature(FeatureShuffle, true)
	return t
}

func (t *X86) Name() string                 { return "x86" }
func (t *X86) DataRegisterOffset() int       { return ir.GPBase + ir.PoolSize }
func (t *X86) SupportsFeature(f string) bool { return t.CheckFeature(f) }

func (t *X86) CompilerInit(ctx *ir.Context) {
	pruneRegisters(ctx, ir.GPBase, ir.GPBase+ir.PoolSize, len(x86GPNames), len(x86VecNames),
		[]int{3, 4, 5}, nil)
	ctx.NeedMaskRegs = true
	ctx.AllocLoopCounter = false
	ctx.TmpReg = ir.GPBase + ir.PoolSize // xmm0, reused as the constant-load scratch
}

func (t *X86) LoadConstant(ctx *ir.Context, reg int, size int, value uint32) error {
	ctx.AppendCode("    %-8s %s, #%d", movMnemonic(size), x86RegName(reg), value)
	ctx.EmitBytes(0xB8, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
	return nil
}

func (t *X86) Compile(ctx *ir.Context) error {
	return RunInstructions(ctx)
}

func (t *X86) GetRule(op *ir.OpcodeDescriptor, flags uint32) *ir.Rule {
	return x86Rules[op]
}

func movMnemonic(size int) string {
	switch size {
	case 1:
		return "movb"
	case 2:
		return "movw"
	default:
		return "movl"
	}
}
