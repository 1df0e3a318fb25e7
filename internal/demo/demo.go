// Package demo holds small embedded instruction images used by the CLI
// and by cross-engine equivalence tests. There is no assembler or file
// loader in this repository (program loading from a file and assemblers
// are explicit Non-goals); these programs are built directly out of
// isa.Instruction values and encoded once, at package init.
package demo

import "suprax16/pkg/isa"

func assemble(insts []isa.Instruction) []byte {
	out := make([]byte, 0, len(insts)*4)
	for _, inst := range insts {
		w := isa.Encode(inst)
		out = append(out,
			byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	return out
}

// Arithmetic is a short straight-line program exercising the ALU
// reservation-station path: a chain of register-dependent adds/subs/
// logicals that an out-of-order engine must reorder and rename correctly
// to match the in-order reference. r0 ends at a fixed, hand-checked value.
//
//	r1 = 10
//	r2 = 20
//	r3 = r1 + r2        ; = 30
//	r4 = r3 - r1         ; = 20
//	r5 = r3 & r4         ; = 20
//	r0 = r3 + r5         ; = 50
//	halt
func Arithmetic() []byte {
	return assemble([]isa.Instruction{
		{Kind: isa.KindLoadImm, Dst: 1, Imm: 10},
		{Kind: isa.KindLoadImm, Dst: 2, Imm: 20},
		{Kind: isa.KindAdd, Dst: 3, Src1: 1, Src2: 2},
		{Kind: isa.KindSub, Dst: 4, Src1: 3, Src2: 1},
		{Kind: isa.KindAnd, Dst: 5, Src1: 3, Src2: 4},
		{Kind: isa.KindAdd, Dst: 0, Src1: 3, Src2: 5},
		{Kind: isa.KindHalt},
	})
}

// MemoryRoundTrip exercises the load/store reservation stations: it
// writes a value through a computed base+offset address and reads it
// back into a different register.
//
//	r1 = 100            ; base
//	r2 = 0xFE34         ; value: low 10 bits of 0x1234 (0x234), sign-extended
//	store [r1+4] = r2
//	r3 = load [r1+4]
//	r0 = r3 + r3        ; = 0xFC68
//	halt
func MemoryRoundTrip() []byte {
	return assemble([]isa.Instruction{
		{Kind: isa.KindLoadImm, Dst: 1, Imm: 100},
		{Kind: isa.KindLoadImm, Dst: 2, Imm: 0x1234},
		{Kind: isa.KindStore, Src1: 2, Base: 1, Offset: 4},
		{Kind: isa.KindLoad, Dst: 3, Base: 1, Offset: 4},
		{Kind: isa.KindAdd, Dst: 0, Src1: 3, Src2: 3}, // r0 = 2*r3, sentinel check
		{Kind: isa.KindHalt},
	})
}

// BranchLoop counts r1 down from 5 to 0, accumulating into r0 — exercises
// the Issue-stage in-order fallback path (branches drain the ROB) wired
// up alongside OoO-scheduled arithmetic in the loop body.
//
//	r1 = 5
//	r0 = 0
//	r2 = 1
//	r3 = 0
// loop:
//	beq r1, r3, end
//	r0 = r0 + r1
//	r1 = r1 - r2
//	jmp loop
// end:
//	halt
func BranchLoop() []byte {
	const (
		instrSize = 4
		loopAt    = 4 * instrSize // index of the "beq" instruction below
		endAt     = 8 * instrSize // index of the final "halt"
	)
	insts := []isa.Instruction{
		{Kind: isa.KindLoadImm, Dst: 1, Imm: 5}, // 0
		{Kind: isa.KindLoadImm, Dst: 0, Imm: 0},  // 1
		{Kind: isa.KindLoadImm, Dst: 2, Imm: 1},  // 2
		{Kind: isa.KindLoadImm, Dst: 3, Imm: 0},  // 3
		{Kind: isa.KindBranchEqual, Src1: 1, Src2: 3, Addr: endAt}, // 4 (loop:)
		{Kind: isa.KindAdd, Dst: 0, Src1: 0, Src2: 1},              // 5
		{Kind: isa.KindSub, Dst: 1, Src1: 1, Src2: 2},              // 6
		{Kind: isa.KindJump, Addr: loopAt},                         // 7
		{Kind: isa.KindHalt},                                       // 8 (end:)
	}
	return assemble(insts)
}
