package ooo

// ═══════════════════════════════════════════════════════════════════════════
// COMMON DATA BUS — single broadcast slot per cycle
// ───────────────────────────────────────────────────────────────────────────
// Cleared at the start of Write-Result, written at most once that same
// stage, and consumed by every snooper before the cycle ends. Grounded on
// proto/ooo/ooo.go's pipeline-register discipline between its two
// scheduling half-cycles: a value is only ever visible for the cycle it
// was produced in.
// ═══════════════════════════════════════════════════════════════════════════

// NoTag marks an operand with no outstanding producer, or a CDB slot with
// nothing broadcast this cycle.
const NoTag = -1

// CDB is the single-slot common data bus. Tag is a ROB slot index.
type CDB struct {
	Valid bool
	Tag   int
	Value uint16
}

// Clear empties the bus. Called at the start of every Write-Result stage.
func (b *CDB) Clear() {
	b.Valid = false
	b.Tag = NoTag
	b.Value = 0
}

// Broadcast publishes (tag, value) for this cycle's snoopers.
func (b *CDB) Broadcast(tag int, value uint16) {
	b.Valid = true
	b.Tag = tag
	b.Value = value
}
