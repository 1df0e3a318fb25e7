package isa

// ═══════════════════════════════════════════════════════════════════════════
// INSTRUCTION SET — 32-bit encoding, 16-bit datapath
// ───────────────────────────────────────────────────────────────────────────
// Encoding (high bit first):
//
//	bits 31-28  primary opcode  (4 bits)
//	bits 27-26  secondary       (2 bits)
//	bits 25-18  field A         (8 bits) - typically destination register
//	bits 17-10  field B         (8 bits) - typically first source register
//	bits  9-0   field C         (10 bits) - second source/immediate/address
//
// Grounded on SupraX.go's DecodeInstruction (shift-and-mask field decode)
// generalized from a flat 16-bit opcode space to the primary/secondary
// split this spec requires.
// ═══════════════════════════════════════════════════════════════════════════

// Primary opcodes.
const (
	PrimaryMemory   uint8 = 0x0
	PrimaryArith    uint8 = 0x1
	PrimaryLogical  uint8 = 0x2
	PrimaryBranch   uint8 = 0x3
	PrimaryJump     uint8 = 0x4
	PrimaryCompare  uint8 = 0x5
	PrimaryShift    uint8 = 0x6
	PrimaryStack    uint8 = 0x7
	PrimaryMove     uint8 = 0x8
	PrimaryComplex  uint8 = 0x9
	PrimaryHalt     uint8 = 0xE
	PrimaryNop      uint8 = 0xF
)

// Kind tags the decoded Instruction variant.
type Kind uint8

const (
	KindLoad Kind = iota
	KindLoadImm
	KindStore
	KindAdd
	KindSub
	KindAddImm
	KindSubImm
	KindMult
	KindMultImm
	KindDiv
	KindMod
	KindAnd
	KindOr
	KindXor
	KindNot
	KindBranchEqual
	KindBranchNotEqual
	KindBranchLessThan
	KindBranchGreaterThan
	KindJump
	KindJumpReg
	KindCmp
	KindCmpImm
	KindShiftLeft
	KindShiftRight
	KindPush
	KindPop
	KindMove
	KindMoveIfZero
	KindMoveIfNotZero
	KindHalt
	KindNop
)

// StackPointerReg is the architectural register Push/Pop treat as SP.
// The data model has no dedicated stack-pointer register, so register 255
// (the top of the general-purpose file) plays that role by convention.
const StackPointerReg uint8 = 255

// Instruction is a decoded instruction. Not every field is meaningful for
// every Kind; Decode shows which fields each Kind sets.
type Instruction struct {
	Kind Kind

	Dst  uint8 // destination register, where applicable
	Src1 uint8 // first source register, where applicable
	Src2 uint8 // second source register, where applicable (non-immediate forms)
	Base uint8 // base register for Load/Store addressing

	Imm    int16  // sign-extended immediate, where applicable
	Offset int16  // sign-extended Load/Store address offset
	Addr   uint16 // branch/jump target address

	Raw uint32 // the original 32-bit word, kept for diagnostics/round-trip tests
}

// signExtend10 treats bit 9 as the sign bit of a 10-bit field and extends
// it to 16 bits.
func signExtend10(field uint16) int16 {
	field &= 0x3FF
	if field&0x200 != 0 {
		return int16(field) - 1024
	}
	return int16(field)
}

// Encode packs an Instruction back into its 32-bit wire form. Encode and
// Decode must round-trip for every valid Instruction.
func Encode(i Instruction) uint32 {
	var primary, secondary uint8
	var a, b uint8
	var c uint16

	clamp10 := func(v int16) uint16 { return uint16(v) & 0x3FF }

	switch i.Kind {
	case KindLoad:
		primary, secondary = PrimaryMemory, 0
		a, b, c = i.Dst, i.Base, clamp10(i.Offset)
	case KindLoadImm:
		primary, secondary = PrimaryMemory, 1
		a, c = i.Dst, clamp10(i.Imm)
	case KindStore:
		primary, secondary = PrimaryMemory, 2
		a, b, c = i.Src1, i.Base, clamp10(i.Offset)
	case KindAdd:
		primary, secondary = PrimaryArith, 0
		a, b, c = i.Dst, i.Src1, uint16(i.Src2)
	case KindSub:
		primary, secondary = PrimaryArith, 1
		a, b, c = i.Dst, i.Src1, uint16(i.Src2)
	case KindAddImm:
		primary, secondary = PrimaryArith, 2
		a, b, c = i.Dst, i.Src1, clamp10(i.Imm)
	case KindSubImm:
		primary, secondary = PrimaryArith, 3
		a, b, c = i.Dst, i.Src1, clamp10(i.Imm)
	case KindMult:
		primary, secondary = PrimaryComplex, 0
		a, b, c = i.Dst, i.Src1, uint16(i.Src2)
	case KindMultImm:
		primary, secondary = PrimaryComplex, 1
		a, b, c = i.Dst, i.Src1, clamp10(i.Imm)
	case KindDiv:
		primary, secondary = PrimaryComplex, 2
		a, b, c = i.Dst, i.Src1, uint16(i.Src2)
	case KindMod:
		primary, secondary = PrimaryComplex, 3
		a, b, c = i.Dst, i.Src1, uint16(i.Src2)
	case KindAnd:
		primary, secondary = PrimaryLogical, 0
		a, b, c = i.Dst, i.Src1, uint16(i.Src2)
	case KindOr:
		primary, secondary = PrimaryLogical, 1
		a, b, c = i.Dst, i.Src1, uint16(i.Src2)
	case KindXor:
		primary, secondary = PrimaryLogical, 2
		a, b, c = i.Dst, i.Src1, uint16(i.Src2)
	case KindNot:
		primary, secondary = PrimaryLogical, 3
		a, b = i.Dst, i.Src1
	case KindBranchEqual:
		primary, secondary = PrimaryBranch, 0
		a, b, c = uint8(i.Addr), i.Src1, uint16(i.Src2)
	case KindBranchNotEqual:
		primary, secondary = PrimaryBranch, 1
		a, b, c = uint8(i.Addr), i.Src1, uint16(i.Src2)
	case KindBranchLessThan:
		primary, secondary = PrimaryBranch, 2
		a, b, c = uint8(i.Addr), i.Src1, uint16(i.Src2)
	case KindBranchGreaterThan:
		primary, secondary = PrimaryBranch, 3
		a, b, c = uint8(i.Addr), i.Src1, uint16(i.Src2)
	case KindJump:
		primary, secondary = PrimaryJump, 0
		c = i.Addr & 0x3FF
	case KindJumpReg:
		primary, secondary = PrimaryJump, 1
		b = i.Src1
	case KindCmp:
		primary, secondary = PrimaryCompare, 0
		a, b, c = i.Src1, i.Src2, 0
	case KindCmpImm:
		primary, secondary = PrimaryCompare, 1
		a, c = i.Src1, clamp10(i.Imm)
	case KindShiftLeft:
		primary, secondary = PrimaryShift, 0
		a, b, c = i.Dst, i.Src1, uint16(i.Src2)
	case KindShiftRight:
		primary, secondary = PrimaryShift, 1
		a, b, c = i.Dst, i.Src1, uint16(i.Src2)
	case KindPush:
		primary, secondary = PrimaryStack, 0
		a = i.Src1
	case KindPop:
		primary, secondary = PrimaryStack, 1
		a = i.Dst
	case KindMove:
		primary, secondary = PrimaryMove, 0
		a, b = i.Dst, i.Src1
	case KindMoveIfZero:
		primary, secondary = PrimaryMove, 1
		a, b = i.Dst, i.Src1
	case KindMoveIfNotZero:
		primary, secondary = PrimaryMove, 2
		a, b = i.Dst, i.Src1
	case KindHalt:
		primary = PrimaryHalt
	case KindNop:
		primary = PrimaryNop
	}

	word := uint32(primary&0xF) << 28
	word |= uint32(secondary&0x3) << 26
	word |= uint32(a) << 18
	word |= uint32(b) << 10
	word |= uint32(c) & 0x3FF
	return word
}
