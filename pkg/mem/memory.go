package mem

// ═══════════════════════════════════════════════════════════════════════════
// MEMORY — flat 64KiB byte-addressed, little-endian
// ───────────────────────────────────────────────────────────────────────────
// Grounded on SupraX.go's Memory (flat slice, bounds-checked load/store) and
// generalized from 64-bit words down to byte-addressed accessors with
// explicit 16/32-bit little-endian packing.
// ═══════════════════════════════════════════════════════════════════════════

const MemorySize = 64 * 1024

// Memory is a 64KiB linear byte array. Out-of-bounds reads return 0;
// out-of-bounds writes are silently dropped. There is no error path here —
// clamping is the specified behavior, not a missing check.
type Memory struct {
	data [MemorySize]byte
}

// NewMemory returns a zeroed 64KiB memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Read returns the byte at addr, or 0 if addr is out of range.
func (m *Memory) Read(addr uint32) uint8 {
	if addr >= MemorySize {
		return 0
	}
	return m.data[addr]
}

// Write stores a byte at addr. Out-of-range writes are dropped.
func (m *Memory) Write(addr uint32, v uint8) {
	if addr >= MemorySize {
		return
	}
	m.data[addr] = v
}

// LoadU16 reads a little-endian 16-bit value: low byte at addr, high byte
// at addr+1 (each individually bounds-clamped, so a load straddling the
// top of memory reads 0 for the missing half rather than wrapping).
func (m *Memory) LoadU16(addr uint32) uint16 {
	lo := m.Read(addr)
	hi := m.Read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// StoreU16 writes v as a little-endian pair at addr/addr+1.
func (m *Memory) StoreU16(addr uint32, v uint16) {
	m.Write(addr, uint8(v))
	m.Write(addr+1, uint8(v>>8))
}

// Fetch reads a 32-bit little-endian instruction word at addr. An
// incomplete word at the tail of memory (addr > MemorySize-4) reads as 0,
// which Decode turns into Load r0, [r0+0] — callers must not special-case
// a short fetch.
func (m *Memory) Fetch(addr uint32) uint32 {
	if addr > MemorySize-4 {
		return 0
	}
	b0 := uint32(m.Read(addr))
	b1 := uint32(m.Read(addr + 1))
	b2 := uint32(m.Read(addr + 2))
	b3 := uint32(m.Read(addr + 3))
	return b0 | b1<<8 | b2<<16 | b3<<24
}

// LoadProgram copies bytes into memory starting at start, clipping any
// portion that would run past the end of the 64KiB array.
func (m *Memory) LoadProgram(bytes []byte, start uint32) {
	for i, b := range bytes {
		addr := start + uint32(i)
		if addr >= MemorySize {
			break
		}
		m.data[addr] = b
	}
}
