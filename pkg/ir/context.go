package ir

// NReg is the size of each per-register state vector. The register space
// is split into fixed 32-register pools: general-purpose registers start
// at GPBase, vector registers start at whatever DataRegisterOffset the
// active target's CompilerInit sets (conventionally 64).
const (
	NReg     = 128
	GPBase   = 32
	PoolSize = 32
)

// ConstEntry is one entry in a compilation's constant pool, keyed by its
// canonicalized (splatted) 32-bit value.
type ConstEntry struct {
	Value    uint32
	Size     int
	UseCount int
	AllocReg int // 0 means "not yet assigned a register"
}

// Fixup is a deferred reference from a code-byte position to a label,
// resolved by the backend once every label's final position is known.
// The core never interprets Fixups; it only provides storage for them.
type Fixup struct {
	Pos   int
	Label int
}

// Context is the scratch state for exactly one compilation. It owns deep
// copies of the program's instructions and variables (so rewrites never
// mutate the source Program), the register-pool state, the constant pool,
// the emitted-assembly buffer, and the error/result pair. A Context is
// created fresh per compilation and discarded on every exit path — success
// or failure — after its results (if any) are published back to the
// Program.
type Context struct {
	Program *Program

	Insns []Instruction
	Vars  []Variable

	NTempVars int // original Temp slots, copied from Program
	NDupVars  int // Temp duplicates created by renaming

	// Register pool state, one slot per physical register number.
	Valid []bool // this target may ever use this register
	Save  []bool // callee-saved — prefer not to touch it
	Used  []bool // the allocator has touched it at least once
	Alloc []int  // current live-range refcount

	DataRegisterOffset int // vector pool base, set by Target.CompilerInit
	TmpReg             int // scratch register for constant loads
	NeedMaskRegs       bool
	AllocLoopCounter   bool
	LoopCounterReg     int

	ConstPool []ConstEntry

	AsmCode []byte

	Code   []byte // accumulated code bytes
	Fixups []Fixup
	Labels int

	Error  bool
	Result ResultCode

	TargetName string
}

// NewContext allocates a zero-initialized context and deep-copies the
// program's instructions and variables into it. Every register starts
// valid by default; the target's CompilerInit is responsible for pruning
// Valid/Save down to the real instruction set (driver step 4).
func NewContext(p *Program) *Context {
	ctx := &Context{
		Program:   p,
		Insns:     append([]Instruction(nil), p.Insns...),
		Vars:      append([]Variable(nil), p.Vars...),
		NTempVars: p.NTempVars,

		Valid: make([]bool, NReg),
		Save:  make([]bool, NReg),
		Used:  make([]bool, NReg),
		Alloc: make([]int, NReg),

		DataRegisterOffset: GPBase + PoolSize,
	}
	for i := range ctx.Valid {
		ctx.Valid[i] = true
	}
	return ctx
}

// resolvedVar follows a variable's rename links to its current definition,
// one hop at a time, without flattening them. Instruction slots are
// rewritten in place with the resolved index, but the links themselves
// are left as they are, so a Temp redefined n times is reached through a
// chain of n links.
func (c *Context) resolvedVar(idx int) int {
	for c.Vars[idx].Replaced {
		idx = c.Vars[idx].Replacement
	}
	return idx
}

// ResolveVar is the exported form of resolvedVar, used by every pass that
// must dereference a possibly-renamed variable slot.
func (c *Context) ResolveVar(idx int) int {
	return c.resolvedVar(idx)
}
