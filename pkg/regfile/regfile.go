package regfile

// ═══════════════════════════════════════════════════════════════════════════
// REGISTER FILE — 256 × 16-bit general registers
// ───────────────────────────────────────────────────────────────────────────
// Grounded on SupraX.go's registers/rat arrays, generalized from 16 SuperH-
// style GPRs to a 256-entry file plus a 10-bit-addressed alias accessor
// (indices 256-1023 read as 0, writes discarded).
// ═══════════════════════════════════════════════════════════════════════════

const NumRegisters = 256

// RegisterFile is 256 16-bit entries, reset to all zeros.
type RegisterFile struct {
	regs [NumRegisters]uint16
}

// NewRegisterFile returns a zeroed register file.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

// Read never fails: index is a uint8, so it is always in range.
func (r *RegisterFile) Read(idx uint8) uint16 {
	return r.regs[idx]
}

// Write stores v into register idx.
func (r *RegisterFile) Write(idx uint8, v uint16) {
	r.regs[idx] = v
}

// Read10 aliases 0-255 onto the general register array; 256-1023 read as 0.
func (r *RegisterFile) Read10(idx uint16) uint16 {
	if idx < NumRegisters {
		return r.regs[idx]
	}
	return 0
}

// Write10 aliases 0-255; writes to 256-1023 are discarded.
func (r *RegisterFile) Write10(idx uint16, v uint16) {
	if idx < NumRegisters {
		r.regs[idx] = v
	}
}

// Reset zeros every register.
func (r *RegisterFile) Reset() {
	for i := range r.regs {
		r.regs[i] = 0
	}
}
