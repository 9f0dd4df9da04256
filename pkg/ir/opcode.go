package ir

import "fmt"

// OpcodeFlags are static properties of an opcode, independent of any
// target.
type OpcodeFlags uint32

const (
	// FlagAccumulator marks an opcode whose destination persists across
	// loop iterations and is only ever written by Accumulator-flagged
	// opcodes.
	FlagAccumulator OpcodeFlags = 1 << iota

	// FlagScalar marks an opcode whose source slots at index >= 1 must
	// be Const or Param — a scalar broadcast into the first source's
	// vector, never another vector variable.
	FlagScalar
)

// OpcodeDescriptor is the static, target-independent description of one
// opcode: its name, per-slot element sizes (0 = slot unused), flags, and
// the emulation function used only by the interpreter fallback. Rule
// lookup is by descriptor identity (pointer equality), never by name —
// two opcodes can share a name across tables without colliding.
type OpcodeDescriptor struct {
	Name string

	// SrcSizes/DestSizes are indexed by slot; 0 means the slot is unused
	// by this opcode.
	SrcSizes  [NSrcSlotsPerInsn]int
	DestSizes [NDestSlotsPerInsn]int

	Flags OpcodeFlags

	// Emulate runs this opcode against raw lane values; consumed only by
	// pkg/interpreter, never by the core pipeline.
	Emulate EmulateFunc
}

// EmulateFunc interprets one instruction's effect directly on lane values,
// given already-resolved source/destination byte slices sized per the
// descriptor's SrcSizes/DestSizes.
type EmulateFunc func(dest [][]byte, src [][]byte, imm uint32)

func (d *OpcodeDescriptor) IsAccumulator() bool { return d.Flags&FlagAccumulator != 0 }
func (d *OpcodeDescriptor) IsScalar() bool      { return d.Flags&FlagScalar != 0 }

// opcodeRegistry is the process-wide, write-once-at-init opcode table —
// the "opcode-table initialization" external collaborator given a concrete
// home here so the validator and every backend have real opcodes to agree
// on. Like the target registry (pkg/target), it is populated only from
// package init() functions and is read-only thereafter.
var opcodeRegistry = make(map[string]*OpcodeDescriptor)

// RegisterOpcode adds a descriptor to the process-wide table. Panics on a
// duplicate name — a programming error caught at init time, never at
// runtime on user input.
func RegisterOpcode(d *OpcodeDescriptor) *OpcodeDescriptor {
	if _, exists := opcodeRegistry[d.Name]; exists {
		panic(fmt.Sprintf("orc: duplicate opcode registration %q", d.Name))
	}
	opcodeRegistry[d.Name] = d
	return d
}

// LookupOpcode returns the descriptor for a registered opcode name, or nil.
func LookupOpcode(name string) *OpcodeDescriptor {
	return opcodeRegistry[name]
}

// ListOpcodes returns every registered opcode name.
func ListOpcodes() []string {
	names := make([]string, 0, len(opcodeRegistry))
	for name := range opcodeRegistry {
		names = append(names, name)
	}
	return names
}
