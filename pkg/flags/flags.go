package flags

// ═══════════════════════════════════════════════════════════════════════════
// STATUS FLAGS
// ───────────────────────────────────────────────────────────────────────────
// Four booleans, set from ALU results by the engine that owns them (the
// in-order engine directly; the OoO engine's reservation-station ALU ops
// never touch them, only its in-order fallback path does — see state.go
// and ooo/pipeline.go). Overflow is reserved: no current op writes it, so
// it exists only as a field for forward compatibility.
// ═══════════════════════════════════════════════════════════════════════════

type Flags struct {
	Zero     bool
	Negative bool
	Carry    bool
	Overflow bool
}

// SetFromResult updates Zero and Negative from a 16-bit result:
// zero <=> r==0, negative <=> (r as signed16) < 0.
func (f *Flags) SetFromResult(r uint16) {
	f.Zero = r == 0
	f.Negative = int16(r) < 0
}
