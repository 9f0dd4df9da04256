// Package target defines the narrow interface the target-independent
// compiler core consumes (spec §6, "Target interface (consumed)"), and
// hosts the process-wide, read-only-after-init registry of targets.
package target

import "github.com/orc-lang/orc/pkg/ir"

// Target is the boundary every backend implements. The core never
// branches on which target it is talking to; it only ever calls through
// this interface.
type Target interface {
	// Name identifies this target for diagnostics and CLI selection
	// (e.g. "x86", "altivec", "arm", "c").
	Name() string

	// DataRegisterOffset is the vector-pool base this target wants the
	// global allocator to use (conventionally ir.GPBase+ir.PoolSize).
	DataRegisterOffset() int

	// CompilerInit prunes ctx.Valid/ctx.Save down to this target's real
	// register file, sets ctx.TmpReg, and declares NeedMaskRegs /
	// AllocLoopCounter. Called once per compilation, before any pass.
	CompilerInit(ctx *ir.Context)

	// GetRule resolves the target-specific emit callback for an opcode
	// under the current flags. Lookup is by descriptor identity, not by
	// name. A nil return means "no rule" — recoverable, the interpreter
	// still works.
	GetRule(op *ir.OpcodeDescriptor, flags uint32) *ir.Rule

	// LoadConstant emits whatever this target needs to materialize value
	// (of the given element size) into reg — used by the constant pool
	// on a cache miss.
	LoadConstant(ctx *ir.Context, reg int, size int, value uint32) error

	// Compile consumes the fully annotated context (rules bound,
	// registers allocated) and appends code bytes + assembly text.
	Compile(ctx *ir.Context) error

	// SupportsFeature reports whether this target implements an optional
	// capability (see the Feature* constants below).
	SupportsFeature(feature string) bool
}

// Common target features, queried via SupportsFeature.
const (
	FeatureMaskedLoads  = "masked_loads"  // needs ptr-offset/mask/aligned-data regs
	FeatureLoopCounter  = "loop_counter"  // wants an implicit loop-counter register
	FeatureShuffle      = "shuffle"
	FeatureFusedMultAdd = "fused_mult_add"
)

// Flags passed through rule lookup — target-specific bit values a backend
// may interpret however it likes (e.g. "prefer unaligned loads").
type Flags = uint32

// registry is the process-wide set of targets, built up only from init()
// functions at program startup and never mutated afterward — concurrent
// compiles of distinct programs may safely read it without synchronization
// (spec §5, "Sharing").
var registry = make(map[string]Target)

// RegisterTarget adds a target to the registry under name. Call this only
// from an init() function.
func RegisterTarget(name string, t Target) {
	registry[name] = t
}

// GetTarget returns the registered target for name, or nil if none.
func GetTarget(name string) Target {
	return registry[name]
}

// ListTargets returns the names of every registered target.
func ListTargets() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
