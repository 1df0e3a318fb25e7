// Package exec holds the single per-instruction architectural-effect
// function shared by the in-order engine and the out-of-order pipeline's
// Issue-stage fallback path, so the two engines can never compute two
// different answers for the same instruction. Grounded on
// oisee-z80-optimizer/pkg/cpu/exec.go's Exec(state, op, imm) shape: a flat
// switch over instruction kinds mutating a state struct in place.
package exec

import (
	"suprax16/pkg/alu"
	"suprax16/pkg/flags"
	"suprax16/pkg/isa"
	"suprax16/pkg/mem"
	"suprax16/pkg/regfile"
)

// Apply executes inst's full architectural effect: register writes, flag
// updates, memory effects and PC changes all happen immediately against
// the given state, exactly as the in-order engine requires. pc and halted
// are pointers because control-flow and Halt instructions mutate them.
func Apply(regs *regfile.RegisterFile, memory *mem.Memory, fl *flags.Flags, pc *uint32, halted *bool, inst isa.Instruction) {
	switch inst.Kind {
	case isa.KindLoad:
		addr := uint32(regs.Read(inst.Base)) + uint32(inst.Offset)
		regs.Write(inst.Dst, memory.LoadU16(addr))

	case isa.KindLoadImm:
		regs.Write(inst.Dst, uint16(inst.Imm))

	case isa.KindStore:
		addr := uint32(regs.Read(inst.Base)) + uint32(inst.Offset)
		memory.StoreU16(addr, regs.Read(inst.Src1))

	case isa.KindAdd:
		r, carry := alu.Add(regs.Read(inst.Src1), regs.Read(inst.Src2))
		regs.Write(inst.Dst, r)
		fl.Carry = carry
		fl.SetFromResult(r)

	case isa.KindSub:
		r, carry := alu.Sub(regs.Read(inst.Src1), regs.Read(inst.Src2))
		regs.Write(inst.Dst, r)
		fl.Carry = carry
		fl.SetFromResult(r)

	case isa.KindAddImm:
		r, carry := alu.Add(regs.Read(inst.Src1), uint16(inst.Imm))
		regs.Write(inst.Dst, r)
		fl.Carry = carry
		fl.SetFromResult(r)

	case isa.KindSubImm:
		r, carry := alu.Sub(regs.Read(inst.Src1), uint16(inst.Imm))
		regs.Write(inst.Dst, r)
		fl.Carry = carry
		fl.SetFromResult(r)

	case isa.KindMult:
		r := alu.Mul16(regs.Read(inst.Src1), regs.Read(inst.Src2))
		regs.Write(inst.Dst, r)
		fl.SetFromResult(r)

	case isa.KindMultImm:
		r := alu.Mul16(regs.Read(inst.Src1), uint16(inst.Imm))
		regs.Write(inst.Dst, r)
		fl.SetFromResult(r)

	case isa.KindDiv:
		r := alu.Udiv16(regs.Read(inst.Src1), regs.Read(inst.Src2))
		regs.Write(inst.Dst, r)
		fl.SetFromResult(r)

	case isa.KindMod:
		r := alu.Umod16(regs.Read(inst.Src1), regs.Read(inst.Src2))
		regs.Write(inst.Dst, r)
		fl.SetFromResult(r)

	case isa.KindAnd:
		r := alu.And(regs.Read(inst.Src1), regs.Read(inst.Src2))
		regs.Write(inst.Dst, r)
		fl.SetFromResult(r)

	case isa.KindOr:
		r := alu.Or(regs.Read(inst.Src1), regs.Read(inst.Src2))
		regs.Write(inst.Dst, r)
		fl.SetFromResult(r)

	case isa.KindXor:
		r := alu.Xor(regs.Read(inst.Src1), regs.Read(inst.Src2))
		regs.Write(inst.Dst, r)
		fl.SetFromResult(r)

	case isa.KindNot:
		r := alu.Not(regs.Read(inst.Src1))
		regs.Write(inst.Dst, r)
		fl.SetFromResult(r)

	case isa.KindBranchEqual:
		if regs.Read(inst.Src1) == regs.Read(inst.Src2) {
			*pc = uint32(inst.Addr)
		}

	case isa.KindBranchNotEqual:
		if regs.Read(inst.Src1) != regs.Read(inst.Src2) {
			*pc = uint32(inst.Addr)
		}

	case isa.KindBranchLessThan:
		if int16(regs.Read(inst.Src1)) < int16(regs.Read(inst.Src2)) {
			*pc = uint32(inst.Addr)
		}

	case isa.KindBranchGreaterThan:
		if int16(regs.Read(inst.Src1)) > int16(regs.Read(inst.Src2)) {
			*pc = uint32(inst.Addr)
		}

	case isa.KindJump:
		*pc = uint32(inst.Addr)

	case isa.KindJumpReg:
		*pc = uint32(regs.Read(inst.Src1))

	case isa.KindCmp:
		r, carry := alu.Sub(regs.Read(inst.Src1), regs.Read(inst.Src2))
		fl.Carry = carry
		fl.SetFromResult(r)

	case isa.KindCmpImm:
		r, carry := alu.Sub(regs.Read(inst.Src1), uint16(inst.Imm))
		fl.Carry = carry
		fl.SetFromResult(r)

	case isa.KindShiftLeft:
		r := alu.ShiftLeft(regs.Read(inst.Src1), regs.Read(inst.Src2))
		regs.Write(inst.Dst, r)
		fl.SetFromResult(r)

	case isa.KindShiftRight:
		r := alu.ShiftRight(regs.Read(inst.Src1), regs.Read(inst.Src2))
		regs.Write(inst.Dst, r)
		fl.SetFromResult(r)

	case isa.KindPush:
		sp := regs.Read(isa.StackPointerReg) - 2
		regs.Write(isa.StackPointerReg, sp)
		memory.StoreU16(uint32(sp), regs.Read(inst.Src1))

	case isa.KindPop:
		sp := regs.Read(isa.StackPointerReg)
		regs.Write(inst.Dst, memory.LoadU16(uint32(sp)))
		regs.Write(isa.StackPointerReg, sp+2)

	case isa.KindMove:
		regs.Write(inst.Dst, regs.Read(inst.Src1))

	case isa.KindMoveIfZero:
		if fl.Zero {
			regs.Write(inst.Dst, regs.Read(inst.Src1))
		}

	case isa.KindMoveIfNotZero:
		if !fl.Zero {
			regs.Write(inst.Dst, regs.Read(inst.Src1))
		}

	case isa.KindHalt:
		*halted = true

	case isa.KindNop:
		// no-op
	}
}
