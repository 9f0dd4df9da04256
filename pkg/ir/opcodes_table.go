package ir

// The concrete opcode table every backend and the validator agree on.
// Kept intentionally small — enough to exercise every slot-size rule, the
// Scalar and Accumulator flags, and memory traffic through the Src/Dest
// pointer-register bundle — rather than an exhaustive instruction set.
//
// Slot sizes: 1 = byte, 2 = word, 4 = long. A 0 in a slot means that slot
// is unused by this opcode.

func sizes2(a, b int) [NSrcSlotsPerInsn]int {
	return [NSrcSlotsPerInsn]int{a, b, 0, 0}
}

func dsizes1(a int) [NDestSlotsPerInsn]int {
	return [NDestSlotsPerInsn]int{a, 0}
}

var (
	OpCopyB = RegisterOpcode(&OpcodeDescriptor{
		Name: "copyb", SrcSizes: sizes2(1, 0), DestSizes: dsizes1(1),
		Emulate: emulateCopy,
	})
	OpCopyW = RegisterOpcode(&OpcodeDescriptor{
		Name: "copyw", SrcSizes: sizes2(2, 0), DestSizes: dsizes1(2),
		Emulate: emulateCopy,
	})
	OpCopyL = RegisterOpcode(&OpcodeDescriptor{
		Name: "copyl", SrcSizes: sizes2(4, 0), DestSizes: dsizes1(4),
		Emulate: emulateCopy,
	})

	OpAddB = RegisterOpcode(&OpcodeDescriptor{
		Name: "addb", SrcSizes: sizes2(1, 1), DestSizes: dsizes1(1),
		Emulate: emulateAdd,
	})
	OpAddW = RegisterOpcode(&OpcodeDescriptor{
		Name: "addw", SrcSizes: sizes2(2, 2), DestSizes: dsizes1(2),
		Emulate: emulateAdd,
	})
	OpAddL = RegisterOpcode(&OpcodeDescriptor{
		Name: "addl", SrcSizes: sizes2(4, 4), DestSizes: dsizes1(4),
		Emulate: emulateAdd,
	})

	OpSubB = RegisterOpcode(&OpcodeDescriptor{
		Name: "subb", SrcSizes: sizes2(1, 1), DestSizes: dsizes1(1),
		Emulate: emulateSub,
	})
	OpSubW = RegisterOpcode(&OpcodeDescriptor{
		Name: "subw", SrcSizes: sizes2(2, 2), DestSizes: dsizes1(2),
		Emulate: emulateSub,
	})
	OpSubL = RegisterOpcode(&OpcodeDescriptor{
		Name: "subl", SrcSizes: sizes2(4, 4), DestSizes: dsizes1(4),
		Emulate: emulateSub,
	})

	// OpMulW is Scalar-flagged: src slot 1 must be Const or Param, never
	// another vector variable (spec §4.2).
	OpMulW = RegisterOpcode(&OpcodeDescriptor{
		Name: "mulw", SrcSizes: sizes2(2, 2), DestSizes: dsizes1(2),
		Flags: FlagScalar, Emulate: emulateMul,
	})

	OpAndW = RegisterOpcode(&OpcodeDescriptor{
		Name: "andw", SrcSizes: sizes2(2, 2), DestSizes: dsizes1(2),
		Emulate: emulateAnd,
	})
	OpOrW = RegisterOpcode(&OpcodeDescriptor{
		Name: "orw", SrcSizes: sizes2(2, 2), DestSizes: dsizes1(2),
		Emulate: emulateOr,
	})
	OpXorW = RegisterOpcode(&OpcodeDescriptor{
		Name: "xorw", SrcSizes: sizes2(2, 2), DestSizes: dsizes1(2),
		Emulate: emulateXor,
	})

	// OpAvgW averages two word vectors — an ordinary, non-Accumulator
	// binary op, provided alongside OpAccW so tests can tell the two
	// apart (the invariant we actually care about is the Accumulator
	// flag, not the arithmetic).
	OpAvgW = RegisterOpcode(&OpcodeDescriptor{
		Name: "avgw", SrcSizes: sizes2(2, 2), DestSizes: dsizes1(2),
		Emulate: emulateAvg,
	})

	// OpAccW is Accumulator-flagged: its destination must be of Kind
	// Accumulator (spec §4.4, "Accumulator ↔ accumulator-opcode
	// equivalence").
	OpAccW = RegisterOpcode(&OpcodeDescriptor{
		Name: "accw", SrcSizes: sizes2(2, 0), DestSizes: dsizes1(2),
		Flags: FlagAccumulator, Emulate: emulateCopy,
	})

	OpLoadW = RegisterOpcode(&OpcodeDescriptor{
		Name: "loadw", SrcSizes: sizes2(2, 0), DestSizes: dsizes1(2),
		Emulate: emulateCopy,
	})
	OpStoreW = RegisterOpcode(&OpcodeDescriptor{
		Name: "storew", SrcSizes: sizes2(2, 0), DestSizes: dsizes1(2),
		Emulate: emulateCopy,
	})

	// OpSplatB broadcasts a Const across vector lanes. Its source slot
	// still declares a non-zero size — 0 means "slot unused", not "size
	// unconstrained". The validator skips the Variable.Size equality
	// check there when the slot holds a Const or Param, as it does for any
	// source slot (spec §3 invariant: size there is a property of the
	// broadcast, not the storage); nothing requires this slot to hold a
	// Const, and any other kind is size-checked.
	OpSplatB = RegisterOpcode(&OpcodeDescriptor{
		Name: "splatb", SrcSizes: sizes2(1, 0), DestSizes: dsizes1(1),
		Emulate: emulateCopy,
	})
)

func emulateCopy(dest [][]byte, src [][]byte, imm uint32) {
	copy(dest[0], src[0])
}

func emulateAdd(dest [][]byte, src [][]byte, imm uint32) {
	byteOp(dest[0], src[0], src[1], func(a, b byte) byte { return a + b })
}

func emulateSub(dest [][]byte, src [][]byte, imm uint32) {
	byteOp(dest[0], src[0], src[1], func(a, b byte) byte { return a - b })
}

func emulateMul(dest [][]byte, src [][]byte, imm uint32) {
	byteOp(dest[0], src[0], src[1], func(a, b byte) byte { return a * b })
}

func emulateAnd(dest [][]byte, src [][]byte, imm uint32) {
	byteOp(dest[0], src[0], src[1], func(a, b byte) byte { return a & b })
}

func emulateOr(dest [][]byte, src [][]byte, imm uint32) {
	byteOp(dest[0], src[0], src[1], func(a, b byte) byte { return a | b })
}

func emulateXor(dest [][]byte, src [][]byte, imm uint32) {
	byteOp(dest[0], src[0], src[1], func(a, b byte) byte { return a ^ b })
}

func emulateAvg(dest [][]byte, src [][]byte, imm uint32) {
	byteOp(dest[0], src[0], src[1], func(a, b byte) byte { return byte((int(a) + int(b)) / 2) })
}

func byteOp(dest, a, b []byte, f func(a, b byte) byte) {
	for i := range dest {
		dest[i] = f(a[i], b[i])
	}
}
