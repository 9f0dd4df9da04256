package ir

// VarKind is the tag of the variable sum type (design note: a tagged
// variant replaces an enum plus a grab-bag of per-kind optional fields —
// Src/Dest carry their pointer-register bundle, Const its literal,
// Accumulator its register. We still keep a
// single Variable struct, per the teacher's preference for flat structs
// over deep interface hierarchies in the hot compiler path, but the fields
// below are only ever populated per the kind that owns them).
type VarKind int

const (
	Temp VarKind = iota
	Src
	Dest
	Const
	Param
	Accumulator
)

func (k VarKind) String() string {
	switch k {
	case Temp:
		return "temp"
	case Src:
		return "src"
	case Dest:
		return "dest"
	case Const:
		return "const"
	case Param:
		return "param"
	case Accumulator:
		return "accumulator"
	default:
		return "invalid-kind"
	}
}

// NoIndex is the sentinel for "not indexed by an instruction" — used for
// FirstUse/LastUse of variables that are live throughout the program, and
// for Replacement on a Variable that hasn't been renamed.
const NoIndex = -1

// Variable is a single slot in a program's variable table. The reference
// layout D1-D4 (Dest), S1-S8 (Src), C1-C8 (Const), P1-P8 (Param), T1-T8
// (Temp) is described by the constants below, but nothing buckets
// variables by it: a table holds variables in declaration order, with
// renamed Temp duplicates appended at its end. A slot's index never
// changes once assigned.
type Variable struct {
	Name string
	Size int // element byte size
	Kind VarKind

	// Usage tracking, in instruction-index space.
	Used     bool
	FirstUse int // NoIndex if not yet used, or the global lifetime kinds
	LastUse  int // NoIndex for Const/Param/Accumulator (live throughout)

	// Rename link to the duplicate that took over this slot's later
	// definitions. Links are not flattened: a Temp written three times
	// forms a two-link chain, which Context.ResolveVar follows hop by hop.
	Replaced    bool
	Replacement int // index into the owning table, valid iff Replaced

	// Allocated register, valid kinds: Const, Param, Accumulator, Src,
	// Dest (via PtrReg below), and Temp (via the local pass).
	Alloc int

	// Auxiliary register bundle — populated only for Src/Dest.
	PtrReg      int // GP register holding the element pointer
	PtrOffset   int // GP register holding the unaligned-access offset
	MaskReg     int // vector register holding the unaligned-load mask
	AlignedData int // vector register holding the realigned data

	// Const literal value, populated only for Kind == Const.
	Value uint32
}

// NewVariable returns a zeroed Variable with sentinel usage fields — the
// state every slot starts in before the liveness pass touches it.
func NewVariable(name string, size int, kind VarKind) Variable {
	return Variable{
		Name:        name,
		Size:        size,
		Kind:        kind,
		FirstUse:    NoIndex,
		LastUse:     NoIndex,
		Replacement: NoIndex,
	}
}

// Reserved slot-table capacity and layout, mirroring the reference
// implementation so slot indices stay a stable ABI between the frontend
// and every backend.
const (
	NDestSlots  = 4
	NSrcSlots   = 8
	NConstSlots = 8
	NParamSlots = 8
	NTempSlots  = 8
	NVar        = NDestSlots + NSrcSlots + NConstSlots + NParamSlots + NTempSlots // 36

	DestBase  = 0
	SrcBase   = DestBase + NDestSlots
	ConstBase = SrcBase + NSrcSlots
	ParamBase = ConstBase + NConstSlots
	TempBase  = ParamBase + NParamSlots
)

// Program is the validated, target-independent input to the compiler: an
// ordered instruction list over a variable table, plus a diagnostic name
// and an optional native backup.
type Program struct {
	Name string

	Insns      []Instruction
	Vars       []Variable
	NTempVars  int // count of original (pre-rename) Temp slots

	// BackupFunc, if non-nil, is a pre-built native fallback the program
	// can run even when JIT compilation is disabled or fails recoverably.
	BackupFunc CodeFunc

	// Populated by the driver on success.
	Code     CodeFunc
	CodeSize int
	AsmCode  string
}

// CodeFunc is an opaque handle to runnable code — either backup-supplied
// native code, the emulator entry point, or (conceptually) a pointer into
// target-allocated executable memory. The core never calls through it; it
// only ever assigns it, per the driver's step 1.
type CodeFunc func(regs []uint32) error
