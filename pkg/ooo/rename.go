package ooo

import "suprax16/pkg/regfile"

// ═══════════════════════════════════════════════════════════════════════════
// RENAME TABLE — register alias table (RAT)
// ───────────────────────────────────────────────────────────────────────────
// One entry per architectural register: either "ready" (the architectural
// register file holds the current value) or "pending on tag T" (some
// in-flight ROB slot T will produce it). An entry stays pending for the
// whole lifetime of its producer, from Issue all the way through Commit —
// it is deliberately NOT cleared early when the producer broadcasts on the
// CDB at Write-Result, since the register file itself isn't written until
// Commit; a consumer resolving against a "ready" register in that window
// would read a stale value. Issue instead forwards straight from the ROB
// entry while a rename is still pending (see pipeline.go's resolveOperand).
// Grounded on SupraX.go's rat/ratValid arrays and its commit-time "clear
// only if I am still the one pointing at it" rule in Writeback, which
// prevents a younger instruction's rename from being clobbered by an
// older instruction that commits late.
// ═══════════════════════════════════════════════════════════════════════════

type renameEntry struct {
	ready    bool
	producer int
}

// RenameTable tracks, for every architectural register, whether its value
// is ready in the register file or still owed by an in-flight instruction.
type RenameTable struct {
	entries [regfile.NumRegisters]renameEntry
}

// NewRenameTable returns a table where every register is ready (names
// nothing in flight).
func NewRenameTable() *RenameTable {
	rt := &RenameTable{}
	rt.Reset()
	return rt
}

// Reset marks every register ready, discarding all in-flight renames.
func (rt *RenameTable) Reset() {
	for i := range rt.entries {
		rt.entries[i] = renameEntry{ready: true, producer: NoTag}
	}
}

// Rename marks reg as pending on tag: the next read of reg must resolve
// against tag (via the ROB, once available, or a later CDB snoop) rather
// than trust the architectural register file.
func (rt *RenameTable) Rename(reg uint8, tag int) {
	rt.entries[reg] = renameEntry{ready: false, producer: tag}
}

// Info reports whether reg's value is ready, and if not, which tag
// produces it.
func (rt *RenameTable) Info(reg uint8) (ready bool, producer int) {
	e := rt.entries[reg]
	return e.ready, e.producer
}

// ClearIfStillMine clears reg's pending rename at Commit, but only if tag
// is still the registered producer — a later instruction may have already
// renamed reg again in the meantime, and that newer rename must not be
// clobbered by an older instruction's belated commit.
func (rt *RenameTable) ClearIfStillMine(reg uint8, tag int) {
	e := &rt.entries[reg]
	if e.producer == tag {
		e.ready = true
		e.producer = NoTag
	}
}
