package alu

// ═══════════════════════════════════════════════════════════════════════════
// ARITHMETIC LOGIC UNIT — pure 16-bit primitives
// ───────────────────────────────────────────────────────────────────────────
// No side effects: every function here is a pure function of its operands.
// Flag updates are the caller's responsibility (see flags.go). This mirrors
// SupraX.go's ExecuteALU/BarrelShift split: the ALU itself never touches
// architectural state, only the engines that call it do.
// ═══════════════════════════════════════════════════════════════════════════

// Add returns a+b (wrapping mod 2^16) and the carry out of bit 15.
func Add(a, b uint16) (result uint16, carry bool) {
	sum := uint32(a) + uint32(b)
	return uint16(sum), sum > 0xFFFF
}

// Sub returns a-b (wrapping mod 2^16) and the borrow (a < b).
func Sub(a, b uint16) (result uint16, carry bool) {
	return a - b, a < b
}

// And, Or, Xor, Not are the bitwise primitives. No flags, no carry.
func And(a, b uint16) uint16 { return a & b }
func Or(a, b uint16) uint16  { return a | b }
func Xor(a, b uint16) uint16 { return a ^ b }
func Not(a uint16) uint16    { return ^a }

// ShiftLeft and ShiftRight are logical shifts. Amounts of 16 or more shift
// every bit out, per spec: "amounts >= 16 yield 0."
func ShiftLeft(a, amount uint16) uint16 {
	if amount >= 16 {
		return 0
	}
	return a << amount
}

func ShiftRight(a, amount uint16) uint16 {
	if amount >= 16 {
		return 0
	}
	return a >> amount
}

// Mul16 computes a 16-bit wraparound product.
func Mul16(a, b uint16) uint16 {
	return uint16(uint32(a) * uint32(b))
}

// Udiv16 and Umod16 are unsigned 16-bit divide/remainder. Division by zero
// yields 0 rather than panicking or raising — the exception bit is
// reserved and no current producer sets it.
func Udiv16(a, b uint16) uint16 {
	if b == 0 {
		return 0
	}
	return a / b
}

func Umod16(a, b uint16) uint16 {
	if b == 0 {
		return 0
	}
	return a % b
}
