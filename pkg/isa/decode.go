package isa

// ═══════════════════════════════════════════════════════════════════════════
// DECODER — raw 32-bit word -> Instruction, or decode failure
// ───────────────────────────────────────────────────────────────────────────
// Dispatch on primary opcode, then secondary within the group. Any unused
// primary or secondary selector makes Decode report failure (ok=false).
// There is no panic path: a bad word is data, not a programmer error, so
// failure is a return value.
// ═══════════════════════════════════════════════════════════════════════════

// Decode splits raw into its fields and dispatches on primary/secondary.
// The second return value is false if raw does not match any known
// opcode/secondary pair.
func Decode(raw uint32) (Instruction, bool) {
	primary := uint8((raw >> 28) & 0xF)
	secondary := uint8((raw >> 26) & 0x3)
	a := uint8((raw >> 18) & 0xFF)
	b := uint8((raw >> 10) & 0xFF)
	c := uint16(raw & 0x3FF)

	inst := Instruction{Raw: raw}

	switch primary {
	case PrimaryMemory:
		switch secondary {
		case 0:
			inst.Kind = KindLoad
			inst.Dst, inst.Base, inst.Offset = a, b, signExtend10(c)
		case 1:
			inst.Kind = KindLoadImm
			inst.Dst, inst.Imm = a, signExtend10(c)
		case 2:
			inst.Kind = KindStore
			inst.Src1, inst.Base, inst.Offset = a, b, signExtend10(c)
		default:
			return Instruction{}, false
		}

	case PrimaryArith:
		switch secondary {
		case 0:
			inst.Kind = KindAdd
			inst.Dst, inst.Src1, inst.Src2 = a, b, uint8(c)
		case 1:
			inst.Kind = KindSub
			inst.Dst, inst.Src1, inst.Src2 = a, b, uint8(c)
		case 2:
			inst.Kind = KindAddImm
			inst.Dst, inst.Src1, inst.Imm = a, b, signExtend10(c)
		case 3:
			inst.Kind = KindSubImm
			inst.Dst, inst.Src1, inst.Imm = a, b, signExtend10(c)
		default:
			return Instruction{}, false
		}

	case PrimaryComplex:
		switch secondary {
		case 0:
			inst.Kind = KindMult
			inst.Dst, inst.Src1, inst.Src2 = a, b, uint8(c)
		case 1:
			inst.Kind = KindMultImm
			inst.Dst, inst.Src1, inst.Imm = a, b, signExtend10(c)
		case 2:
			inst.Kind = KindDiv
			inst.Dst, inst.Src1, inst.Src2 = a, b, uint8(c)
		case 3:
			inst.Kind = KindMod
			inst.Dst, inst.Src1, inst.Src2 = a, b, uint8(c)
		default:
			return Instruction{}, false
		}

	case PrimaryLogical:
		switch secondary {
		case 0:
			inst.Kind = KindAnd
			inst.Dst, inst.Src1, inst.Src2 = a, b, uint8(c)
		case 1:
			inst.Kind = KindOr
			inst.Dst, inst.Src1, inst.Src2 = a, b, uint8(c)
		case 2:
			inst.Kind = KindXor
			inst.Dst, inst.Src1, inst.Src2 = a, b, uint8(c)
		case 3:
			inst.Kind = KindNot
			inst.Dst, inst.Src1 = a, b
		default:
			return Instruction{}, false
		}

	case PrimaryBranch:
		switch secondary {
		case 0:
			inst.Kind = KindBranchEqual
		case 1:
			inst.Kind = KindBranchNotEqual
		case 2:
			inst.Kind = KindBranchLessThan
		case 3:
			inst.Kind = KindBranchGreaterThan
		default:
			return Instruction{}, false
		}
		inst.Addr = uint16(a)
		inst.Src1, inst.Src2 = b, uint8(c)

	case PrimaryJump:
		switch secondary {
		case 0:
			inst.Kind = KindJump
			inst.Addr = c
		case 1:
			inst.Kind = KindJumpReg
			inst.Src1 = b
		default:
			return Instruction{}, false
		}

	case PrimaryCompare:
		switch secondary {
		case 0:
			inst.Kind = KindCmp
			inst.Src1, inst.Src2 = a, b
		case 1:
			inst.Kind = KindCmpImm
			inst.Src1, inst.Imm = a, signExtend10(c)
		default:
			return Instruction{}, false
		}

	case PrimaryShift:
		switch secondary {
		case 0:
			inst.Kind = KindShiftLeft
			inst.Dst, inst.Src1, inst.Src2 = a, b, uint8(c)
		case 1:
			inst.Kind = KindShiftRight
			inst.Dst, inst.Src1, inst.Src2 = a, b, uint8(c)
		default:
			return Instruction{}, false
		}

	case PrimaryStack:
		switch secondary {
		case 0:
			inst.Kind = KindPush
			inst.Src1 = a
		case 1:
			inst.Kind = KindPop
			inst.Dst = a
		default:
			return Instruction{}, false
		}

	case PrimaryMove:
		switch secondary {
		case 0:
			inst.Kind = KindMove
			inst.Dst, inst.Src1 = a, b
		case 1:
			inst.Kind = KindMoveIfZero
			inst.Dst, inst.Src1 = a, b
		case 2:
			inst.Kind = KindMoveIfNotZero
			inst.Dst, inst.Src1 = a, b
		default:
			return Instruction{}, false
		}

	case PrimaryHalt:
		if secondary != 0 {
			return Instruction{}, false
		}
		inst.Kind = KindHalt

	case PrimaryNop:
		if secondary != 0 {
			return Instruction{}, false
		}
		inst.Kind = KindNop

	default:
		return Instruction{}, false
	}

	return inst, true
}
