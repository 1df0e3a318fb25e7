package ooo

import "suprax16/pkg/isa"

// ═══════════════════════════════════════════════════════════════════════════
// RESERVATION STATIONS — ALU / Load / Store pools
// ───────────────────────────────────────────────────────────────────────────
// Grounded on SupraX.go's OutOfOrderScheduler.rs free-list-by-scan idiom
// and proto/ooo/ooo.go's ComputeReadyBitmap/BuildDependencyMatrix pattern
// of scanning a fixed-size slot array rather than maintaining a separate
// index. The *fields* here (Vj/Vk/Qj/Qk via the Operand type) follow a
// classical-Tomasulo contract rather than SupraX's own bitmap scheme,
// which has no per-operand tag capture.
// ═══════════════════════════════════════════════════════════════════════════

const (
	numALUStations   = 4
	numLoadStations  = 2
	numStoreStations = 2
)

// Latency, in cycles of Execute-stage countdown, per station kind.
const (
	aluLatency   = 1
	loadLatency  = 2
	storeLatency = 1
)

// StationKind distinguishes which pool a Station belongs to.
type StationKind uint8

const (
	KindALU StationKind = iota
	KindLoadStation
	KindStoreStation
)

// Operand is a single Vj/Vk-style operand slot: either a resolved value or
// a pending reference to the ROB tag that will produce it.
type Operand struct {
	Ready    bool
	Value    uint16
	Producer int // ROB tag, meaningful only when !Ready
}

// ResolvedOperand returns a ready operand holding v.
func ResolvedOperand(v uint16) Operand {
	return Operand{Ready: true, Value: v}
}

// PendingOperand returns an operand waiting on producer tag.
func PendingOperand(tag int) Operand {
	return Operand{Ready: false, Producer: tag}
}

// Station is one reservation-station slot. Op carries enough of the
// decoded instruction (kind, offset) to compute a result once Vj/Vk are
// both ready; the destination register is recorded in the ROB entry, not
// in the station.
type Station struct {
	Busy      bool
	Op        isa.Instruction
	Vj, Vk    Operand
	Tag       int // the ROB slot this station is computing for
	Remaining int // cycles left before the result is available
}

// StationPool is the fixed-size set of reservation stations: 4 ALU
// stations, 2 load stations, 2 store stations.
type StationPool struct {
	ALU   [numALUStations]Station
	Load  [numLoadStations]Station
	Store [numStoreStations]Station
}

// FindFreeALU returns the index of a free ALU station, scanning in array
// order (first-fit).
func (p *StationPool) FindFreeALU() (int, bool) {
	for i := range p.ALU {
		if !p.ALU[i].Busy {
			return i, true
		}
	}
	return 0, false
}

// FindFreeLoad returns the index of a free load station.
func (p *StationPool) FindFreeLoad() (int, bool) {
	for i := range p.Load {
		if !p.Load[i].Busy {
			return i, true
		}
	}
	return 0, false
}

// FindFreeStore returns the index of a free store station.
func (p *StationPool) FindFreeStore() (int, bool) {
	for i := range p.Store {
		if !p.Store[i].Busy {
			return i, true
		}
	}
	return 0, false
}

// StationRef identifies one station slot across the three pools.
type StationRef struct {
	Kind StationKind
	Idx  int
}

// station returns a pointer to the station a StationRef names.
func (p *StationPool) station(ref StationRef) *Station {
	switch ref.Kind {
	case KindALU:
		return &p.ALU[ref.Idx]
	case KindLoadStation:
		return &p.Load[ref.Idx]
	default:
		return &p.Store[ref.Idx]
	}
}

// GetReady returns every busy station whose operands are both resolved
// and whose execute countdown has reached zero, in ALU-then-Load-then-
// Store scan order (the order Write-Result picks from).
func (p *StationPool) GetReady() []StationRef {
	var out []StationRef
	for i := range p.ALU {
		if s := &p.ALU[i]; s.Busy && s.Vj.Ready && s.Vk.Ready && s.Remaining == 0 {
			out = append(out, StationRef{KindALU, i})
		}
	}
	for i := range p.Load {
		if s := &p.Load[i]; s.Busy && s.Vj.Ready && s.Remaining == 0 {
			out = append(out, StationRef{KindLoadStation, i})
		}
	}
	for i := range p.Store {
		if s := &p.Store[i]; s.Busy && s.Vj.Ready && s.Vk.Ready && s.Remaining == 0 {
			out = append(out, StationRef{KindStoreStation, i})
		}
	}
	return out
}

// Tick decrements the execute countdown of every busy, not-yet-ready
// station by one cycle (Execute stage).
func (p *StationPool) Tick() {
	tick := func(s *Station) {
		if s.Busy && s.Remaining > 0 {
			s.Remaining--
		}
	}
	for i := range p.ALU {
		tick(&p.ALU[i])
	}
	for i := range p.Load {
		tick(&p.Load[i])
	}
	for i := range p.Store {
		tick(&p.Store[i])
	}
}

// Snoop resolves any pending operand across every station whose producer
// tag matches, delivering value. Called once per cycle for the CDB's
// broadcast, if any.
func (p *StationPool) Snoop(tag int, value uint16) {
	snoop := func(op *Operand) {
		if !op.Ready && op.Producer == tag {
			op.Ready = true
			op.Value = value
		}
	}
	for i := range p.ALU {
		snoop(&p.ALU[i].Vj)
		snoop(&p.ALU[i].Vk)
	}
	for i := range p.Load {
		snoop(&p.Load[i].Vj)
	}
	for i := range p.Store {
		snoop(&p.Store[i].Vj)
		snoop(&p.Store[i].Vk)
	}
}

// Free clears a station back to its zero value, returning it to the pool.
func (p *StationPool) Free(ref StationRef) {
	*p.station(ref) = Station{}
}

// Get returns a copy of the station a StationRef names, for read-only
// inspection by the pipeline (result computation, diagnostics).
func (p *StationPool) Get(ref StationRef) Station {
	return *p.station(ref)
}
