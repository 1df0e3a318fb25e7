package suprax

import (
	"fmt"

	"suprax16/pkg/flags"
	"suprax16/pkg/mem"
	"suprax16/pkg/ooo"
	"suprax16/pkg/regfile"
)

// ═══════════════════════════════════════════════════════════════════════════
// CPU STATE — architectural state plus the mode switch between engines
// ───────────────────────────────────────────────────────────────────────────
// Grounded on SupraX.go's SUPRAXCore aggregate (scheduler + memory + pc +
// registers + stats counters) and its Cycle()/Stats() pair as the model for
// Step/Run/RunCycles and the diagnostics surface below.
// ═══════════════════════════════════════════════════════════════════════════

// CpuState is the whole machine: architectural register file and memory,
// program counter and halt flag, status flags, and an out-of-order
// pipeline that sits alongside the architectural state whenever OoO mode
// is active.
type CpuState struct {
	Regs   *regfile.RegisterFile
	Memory *mem.Memory
	PC     uint32
	Halted bool
	Flags  flags.Flags

	Pipeline          *ooo.Pipeline
	OutOfOrderEnabled bool

	CyclesExecuted uint64

	// DecodeErr is set (wrapping ErrDecodeFailure) the moment either engine
	// halts because it fetched a word Decode rejects. Left nil otherwise.
	DecodeErr error
}

// NewCpuState returns a fresh machine in in-order mode, with a pipeline
// built but dormant (robCapacity 0 selects ooo.DefaultCapacity).
func NewCpuState(robCapacity int) *CpuState {
	return &CpuState{
		Regs:     regfile.NewRegisterFile(),
		Memory:   mem.NewMemory(),
		Pipeline: ooo.NewPipeline(robCapacity),
	}
}

// EnableOutOfOrder switches execution to the Tomasulo engine. Refused with
// ErrIllegalModeSwitch unless the pipeline is quiescent — which it always
// is coming from fresh in-order execution, since the in-order engine never
// touches the pipeline at all, but the check stays unconditional so the
// rule holds even if a future caller re-enables OoO mode after disabling
// it mid-run.
func (c *CpuState) EnableOutOfOrder() error {
	if c.OutOfOrderEnabled {
		return nil
	}
	if !c.Pipeline.Quiescent() {
		return ErrIllegalModeSwitch
	}
	c.OutOfOrderEnabled = true
	return nil
}

// DisableOutOfOrder switches execution back to the in-order engine.
// Refused with ErrIllegalModeSwitch while the pipeline still holds
// in-flight work (non-empty fetch queue, a busy reservation station, or a
// non-empty ROB) — there is nowhere for that work to go in in-order mode,
// and no rollback mechanism to discard it safely.
func (c *CpuState) DisableOutOfOrder() error {
	if !c.OutOfOrderEnabled {
		return nil
	}
	if !c.Pipeline.Quiescent() {
		return ErrIllegalModeSwitch
	}
	c.OutOfOrderEnabled = false
	return nil
}

// Step advances the machine by one cycle under whichever engine is
// active, and returns whether any work happened (false only once the
// machine is fully halted and drained).
func (c *CpuState) Step() bool {
	if c.OutOfOrderEnabled {
		if c.Halted && c.Pipeline.Quiescent() {
			return false
		}
		c.Pipeline.Step(c.Regs, c.Memory, &c.Flags, &c.PC, &c.Halted)
		c.CyclesExecuted++
		if c.Pipeline.DecodeFailed && c.DecodeErr == nil {
			c.DecodeErr = fmt.Errorf("%w: raw=%#08x pc=%#06x",
				ErrDecodeFailure, c.Pipeline.DecodeFailedWord, c.Pipeline.DecodeFailedPC)
		}
		return true
	}

	did := stepInOrder(c)
	if did {
		c.CyclesExecuted++
	}
	return did
}

// RunCycles steps the machine up to max times, stopping early once it has
// no more work to do. It returns the number of cycles actually executed.
func (c *CpuState) RunCycles(max uint32) uint32 {
	var executed uint32
	for executed < max {
		if !c.Step() {
			break
		}
		executed++
	}
	return executed
}

// Run steps the machine until it halts and drains, or until max cycles
// elapse, whichever comes first.
func (c *CpuState) Run(max uint32) uint32 {
	return c.RunCycles(max)
}

// Stats renders a one-line diagnostic summary, in the spirit of
// SupraX.go's Stats() string method.
func (c *CpuState) Stats() string {
	mode := "in-order"
	if c.OutOfOrderEnabled {
		mode = "out-of-order"
	}
	return fmt.Sprintf(
		"mode=%s cycles=%d pc=%#06x halted=%v flags={Z:%v N:%v C:%v} rob=%d/%d fetchq=%d",
		mode, c.CyclesExecuted, c.PC, c.Halted,
		c.Flags.Zero, c.Flags.Negative, c.Flags.Carry,
		c.Pipeline.Rob.Count(), c.Pipeline.Rob.Capacity(), len(c.Pipeline.FetchQueue),
	)
}
