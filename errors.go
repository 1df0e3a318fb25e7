package suprax

import "errors"

// Sentinel errors surfaced to callers. Resource exhaustion and out-of-bounds
// memory access are not errors — they stall or clamp silently and never
// reach this file.
var (
	// ErrDecodeFailure wraps a decode failure into a Go error value, set on
	// CpuState.DecodeErr when the in-order engine or the out-of-order
	// fetch stage hits a word Decode rejects. Decode itself still reports
	// failure with a plain bool — the CPU halts and PC does not advance —
	// this sentinel exists so callers have something to errors.Is against.
	ErrDecodeFailure = errors.New("suprax: instruction decode failed")

	// ErrIllegalModeSwitch is returned by EnableOutOfOrder/DisableOutOfOrder
	// when the OoO engine is not quiescent (non-empty fetch queue, a busy
	// reservation station, or a non-empty ROB).
	ErrIllegalModeSwitch = errors.New("suprax: mode switch refused, out-of-order engine is not quiescent")
)
