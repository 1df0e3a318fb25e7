package ooo

import "suprax16/pkg/isa"

// ═══════════════════════════════════════════════════════════════════════════
// REORDER BUFFER — circular FIFO, in-order commit
// ───────────────────────────────────────────────────────────────────────────
// Grounded on proto/ooo/ooo.go's circular InstructionWindow (slot index
// doubling as age), repurposed into a genuine head/tail FIFO: commit must
// happen strictly in program order, which an age-only window does not by
// itself guarantee without a head pointer. A ROB slot's index in the
// underlying array is also its tag, reused by the rename table and by
// reservation stations as the producer/consumer identifier.
// ═══════════════════════════════════════════════════════════════════════════

// DefaultCapacity is the ROB's default slot count.
const DefaultCapacity = 16

// Entry is one ROB slot.
type Entry struct {
	Valid  bool
	Ready  bool
	Tag    int
	Inst   isa.Instruction
	PC     uint32
	HasDst bool
	Dst    uint8

	Result    uint16
	HasResult bool
	Exception bool

	// Store-specific: populated at Write-Result, applied at Commit.
	IsStore    bool
	StoreAddr  uint32
	StoreValue uint16
}

// ROB is a fixed-capacity circular reorder buffer.
type ROB struct {
	entries  []Entry
	head     int // oldest, not-yet-committed slot
	tail     int // next slot to allocate into
	count    int
	capacity int
}

// NewROB returns an empty ROB with the given slot capacity.
func NewROB(capacity int) *ROB {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ROB{entries: make([]Entry, capacity), capacity: capacity}
}

// Capacity returns the ROB's fixed slot count.
func (r *ROB) Capacity() int { return r.capacity }

// Count returns the number of allocated, uncommitted entries.
func (r *ROB) Count() int { return r.count }

// Empty reports whether the ROB holds no in-flight entries. Used by the
// pipeline to decide when it is safe to drain into the in-order fallback
// path.
func (r *ROB) Empty() bool { return r.count == 0 }

// Full reports whether the ROB has no free slot left to allocate into.
func (r *ROB) Full() bool { return r.count == r.capacity }

// Allocate reserves the next slot for inst, returning its tag. ok is false
// if the ROB is full; callers must stall Issue in that case.
func (r *ROB) Allocate(inst isa.Instruction, dst uint8, hasDst bool, pc uint32) (tag int, ok bool) {
	if r.Full() {
		return 0, false
	}
	tag = r.tail
	r.entries[tag] = Entry{
		Valid:  true,
		Tag:    tag,
		Inst:   inst,
		PC:     pc,
		HasDst: hasDst,
		Dst:    dst,
	}
	r.tail = (r.tail + 1) % r.capacity
	r.count++
	return tag, true
}

// Complete marks tag's entry ready with a register result (ALU/Load ops).
func (r *ROB) Complete(tag int, result uint16) {
	e := &r.entries[tag]
	e.Ready = true
	e.Result = result
	e.HasResult = true
}

// CompleteStore marks tag's entry ready with a buffered store effect.
func (r *ROB) CompleteStore(tag int, addr uint32, value uint16) {
	e := &r.entries[tag]
	e.Ready = true
	e.IsStore = true
	e.StoreAddr = addr
	e.StoreValue = value
}

// PeekHead returns the oldest entry without removing it, for diagnostics
// and commit-order instrumentation.
func (r *ROB) PeekHead() (Entry, bool) {
	if r.count == 0 {
		return Entry{}, false
	}
	return r.entries[r.head], true
}

// CanCommit reports whether the oldest entry is present and ready.
func (r *ROB) CanCommit() bool {
	return r.count > 0 && r.entries[r.head].Ready
}

// Commit pops the head entry. Callers must check CanCommit first; Commit
// itself only ever removes the single oldest slot, enforcing in-order
// retirement.
func (r *ROB) Commit() (Entry, bool) {
	if !r.CanCommit() {
		return Entry{}, false
	}
	e := r.entries[r.head]
	r.entries[r.head] = Entry{}
	r.head = (r.head + 1) % r.capacity
	r.count--
	return e, true
}

// Tag reports whether tag currently names a live (allocated, uncommitted)
// entry in this ROB and returns a copy of it — used by the pipeline's
// resolveOperand to forward a completed but not yet committed result.
func (r *ROB) Tag(tag int) (Entry, bool) {
	if tag < 0 || tag >= r.capacity {
		return Entry{}, false
	}
	e := r.entries[tag]
	return e, e.Valid
}
