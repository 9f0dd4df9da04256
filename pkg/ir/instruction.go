package ir

// Per-instruction operand-slot capacity — how many source/destination
// variable indices a single instruction can carry, independent of NVar
// (the program-wide variable table capacity).
const (
	NSrcSlotsPerInsn  = 4
	NDestSlotsPerInsn = 2
)

// Rule binds a target-specific emit callback (plus opaque user data) to an
// instruction once the rule binder has resolved it. Lookup that produces a
// Rule is by opcode descriptor identity and target flags, never by name.
type Rule struct {
	Emit     EmitFunc
	UserData interface{}
}

// EmitFunc emits code for one instruction under ctx, using whatever
// registers the allocator has already attached to its variables.
type EmitFunc func(ctx *Context, inst *Instruction) error

// Instruction is a single opcode invocation over variable-table slots.
// NoSlot (-1) marks an unused Src/Dest slot.
type Instruction struct {
	Op *OpcodeDescriptor

	Src  [NSrcSlotsPerInsn]int
	Dest [NDestSlotsPerInsn]int

	// Rule is bound by the rule-binder pass (assign_rules); nil until
	// then, and nil forever if no target rule matched.
	Rule *Rule

	// LoadDest is set during liveness analysis when a Src slot reads a
	// variable of Kind Dest — the backend must emit a load from the
	// destination's pointer before using it as a source.
	LoadDest bool
}

// NoSlot is the sentinel for an unused Src/Dest slot on an Instruction.
const NoSlot = -1

// NewInstruction returns an Instruction with every slot unused.
func NewInstruction(op *OpcodeDescriptor) Instruction {
	inst := Instruction{Op: op}
	for i := range inst.Src {
		inst.Src[i] = NoSlot
	}
	for i := range inst.Dest {
		inst.Dest[i] = NoSlot
	}
	return inst
}
