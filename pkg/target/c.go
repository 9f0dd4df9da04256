package target

import (
	"fmt"

	"github.com/orc-lang/orc/pkg/ir"
)

func cGPName(r int) string {
	if idx := r - ir.GPBase; idx >= 0 && idx < ir.PoolSize {
		return fmt.Sprintf("gp%d", idx)
	}
	return cVecName(r)
}

func cVecName(r int) string {
	base := ir.GPBase + ir.PoolSize
	if idx := r - base; idx >= 0 && idx < ir.PoolSize {
		return fmt.Sprintf("vec%d", idx)
	}
	return fmt.Sprintf("gp%d", r)
}

// C is the portable backend: no real hardware registers, just named C
// locals (gp0..gp31, vec0..31) declared by the caller's generated function
// body — grounded on the teacher's c_backend.go, which emits C99 source
// text instead of machine bytes for exactly the same reason (portability
// over every other target's instruction set). No register is callee-saved
// because there is no call stack to save it on; a full window is offered
// in both pools.
type C struct {
	BaseTarget
}

var cRules = map[*ir.OpcodeDescriptor]*ir.Rule{
	ir.OpCopyB:  genericRule("=", 0x01, cGPName),
	ir.OpCopyW:  genericRule("=", 0x01, cGPName),
	ir.OpCopyL:  genericRule("=", 0x01, cGPName),
	ir.OpAddB:   genericRule("+=", 0x02, cGPName),
	ir.OpAddW:   genericRule("+=", 0x02, cGPName),
	ir.OpAddL:   genericRule("+=", 0x02, cGPName),
	ir.OpSubB:   genericRule("-=", 0x03, cGPName),
	ir.OpSubW:   genericRule("-=", 0x03, cGPName),
	ir.OpSubL:   genericRule("-=", 0x03, cGPName),
	ir.OpMulW:   genericRule("*=", 0x04, cGPName),
	ir.OpAndW:   genericRule("&=", 0x05, cGPName),
	ir.OpOrW:    genericRule("|=", 0x06, cGPName),
	ir.OpXorW:   genericRule("^=", 0x07, cGPName),
	ir.OpAvgW:   genericRule("avg", 0x08, cGPName),
	ir.OpAccW:   genericRule("+=", 0x02, cGPName),
	ir.OpLoadW:  genericRule("load", 0x09, cGPName),
	ir.OpStoreW: genericRule("store", 0x0A, cGPName),
	ir.OpSplatB: genericRule("splat", 0x0B, cGPName),
}

func init() {
	RegisterTarget("c", NewC())
}

// NewC constructs the portable C target.
func NewC() *C {
	return &C{BaseTarget: NewBaseTarget()}
}

func (t *C) Name() string                 { return "c" }
func (t *C) DataRegisterOffset() int       { return ir.GPBase + ir.PoolSize }
func (t *C) SupportsFeature(f string) bool { return t.CheckFeature(f) }

func (t *C) CompilerInit(ctx *ir.Context) {
	pruneRegisters(ctx, ir.GPBase, ir.GPBase+ir.PoolSize, ir.PoolSize, ir.PoolSize, nil, nil)
	ctx.NeedMaskRegs = false
	ctx.AllocLoopCounter = false
	ctx.TmpReg = ir.GPBase + ir.PoolSize
}

func (t *C) LoadConstant(ctx *ir.Context, reg int, size int, value uint32) error {
	ctx.AppendCode("    %s = %d;", cGPName(reg), value)
	ctx.EmitBytes(0x0D, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
	return nil
}

// Compile wraps the instruction stream in a C function skeleton. The body
// lines genericRule emits read as "op operands" rather than C expression
// syntax — uniformly rendering every opcode (including loadw/storew,
// which have no natural infix form) as a C statement would need a
// per-opcode expression template, which is instruction selection, the
// same out-of-scope concern the other three targets also only sketch.
func (t *C) Compile(ctx *ir.Context) error {
	ctx.AppendCode("void %s(void) {", ctx.Program.Name)
	if err := RunInstructions(ctx); err != nil {
		return err
	}
	ctx.AppendCode("}")
	return nil
}

func (t *C) GetRule(op *ir.OpcodeDescriptor, flags uint32) *ir.Rule {
	return cRules[op]
}
