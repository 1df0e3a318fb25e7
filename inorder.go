package suprax

import (
	"fmt"

	"suprax16/pkg/exec"
	"suprax16/pkg/isa"
)

// ═══════════════════════════════════════════════════════════════════════════
// IN-ORDER ENGINE — fetch / decode / execute / PC update
// ───────────────────────────────────────────────────────────────────────────
// Grounded on SupraX.go's Cycle(): fetch, decode, dispatch-by-opcode,
// advance PC. This is both the reference engine (cross-engine equivalence
// tests check the OoO engine against it) and the engine whose per-instruction
// semantics
// (pkg/exec.Apply) the OoO pipeline's Issue-stage fallback calls into for
// control flow, stack, move and complex-arithmetic ops (see ooo/pipeline.go).
// ═══════════════════════════════════════════════════════════════════════════

// stepInOrder runs one fetch/decode/execute cycle of the in-order engine.
// Returns false (did no work) only when the CPU was already halted.
func stepInOrder(c *CpuState) bool {
	if c.Halted {
		return false
	}

	raw := c.Memory.Fetch(c.PC)
	inst, ok := isa.Decode(raw)
	if !ok {
		c.Halted = true
		c.DecodeErr = fmt.Errorf("%w: raw=%#08x pc=%#06x", ErrDecodeFailure, raw, c.PC)
		return true
	}

	pcBefore := c.PC
	exec.Apply(c.Regs, c.Memory, &c.Flags, &c.PC, &c.Halted, inst)

	// PC advances by 4 whenever the instruction itself did not redirect
	// it — branches and jumps set c.PC directly and suppress this step;
	// every other instruction, Halt included, falls through to the next
	// word's address.
	if c.PC == pcBefore {
		c.PC += 4
	}
	return true
}
