package ooo

import (
	"suprax16/pkg/alu"
	"suprax16/pkg/exec"
	"suprax16/pkg/flags"
	"suprax16/pkg/isa"
	"suprax16/pkg/mem"
	"suprax16/pkg/regfile"
)

// ═══════════════════════════════════════════════════════════════════════════
// PIPELINE CONTROLLER — four stages run in reverse order each cycle
// ───────────────────────────────────────────────────────────────────────────
// Commit, Write-Result, Execute, Issue — in that order, every Step. Running
// the stages back-to-front within one cycle lets a result completed at
// Write-Result reach an instruction issued later the same cycle (through
// its ROB entry, see resolveOperand), and lets a completing station free up
// before Issue looks for a free one, without any of the stages needing to
// peek at what a later stage is about to do.
//
// Grounded on proto/ooo/ooo.go's two-phase OoOScheduler cycle driver
// (ScheduleCycle0/ScheduleCycle1/ScheduleComplete), generalized from two
// phases to four and reordered back-to-front.
// ═══════════════════════════════════════════════════════════════════════════

const fetchQueueCapacity = 4

// FetchEntry is one instruction sitting in the fetch queue, waiting to be
// issued.
type FetchEntry struct {
	Inst isa.Instruction
	PC   uint32
}

// Pipeline is the out-of-order engine's mutable state: fetch queue,
// reservation stations, ROB, rename table and CDB.
type Pipeline struct {
	Cycles     uint64
	FetchQueue []FetchEntry
	Stations   StationPool
	Rob        *ROB
	Rename     *RenameTable
	Cdb        CDB

	// DecodeFailed and the two fields below it record the word/address a
	// fetch could not decode, so a caller in another package (which owns
	// its own sentinel error type) can wrap them without this package
	// needing to know about that error.
	DecodeFailed     bool
	DecodeFailedWord uint32
	DecodeFailedPC   uint32

	storesInFlight int
}

// NewPipeline returns an empty pipeline with the given ROB capacity (0
// selects DefaultCapacity).
func NewPipeline(robCapacity int) *Pipeline {
	return &Pipeline{
		Rob:    NewROB(robCapacity),
		Rename: NewRenameTable(),
	}
}

// Quiescent reports whether the pipeline has no in-flight work: no queued
// fetches, no busy reservation station, no outstanding ROB entry. Mode
// switches refuse unless this holds (see ErrIllegalModeSwitch).
func (p *Pipeline) Quiescent() bool {
	if len(p.FetchQueue) != 0 || !p.Rob.Empty() {
		return false
	}
	for _, s := range p.Stations.ALU {
		if s.Busy {
			return false
		}
	}
	for _, s := range p.Stations.Load {
		if s.Busy {
			return false
		}
	}
	for _, s := range p.Stations.Store {
		if s.Busy {
			return false
		}
	}
	return true
}

// isOoOEligible reports whether kind is scheduled onto a reservation
// station (ALU/logical/shift/not/immediate-arithmetic, plus Load/Store).
// Everything else — LoadImm, branches, jumps, compare, stack, move family, complex
// arithmetic (Mult/Div/Mod family) and Halt/Nop — executes through the
// Issue-stage in-order fallback.
func isOoOEligible(k isa.Kind) bool {
	switch k {
	case isa.KindAdd, isa.KindSub, isa.KindAddImm, isa.KindSubImm,
		isa.KindAnd, isa.KindOr, isa.KindXor, isa.KindNot,
		isa.KindShiftLeft, isa.KindShiftRight,
		isa.KindLoad, isa.KindStore:
		return true
	default:
		return false
	}
}

func isImmediateKind(k isa.Kind) bool {
	switch k {
	case isa.KindAddImm, isa.KindSubImm:
		return true
	default:
		return false
	}
}

// Step runs Commit, Write-Result, Execute and Issue, in that order, and
// advances the pipeline's own cycle counter.
func (p *Pipeline) Step(regs *regfile.RegisterFile, memory *mem.Memory, fl *flags.Flags, pc *uint32, halted *bool) {
	p.commit(regs, memory)
	p.writeResult(memory)
	p.Stations.Tick()
	p.issue(regs, memory, fl, pc, halted)
	p.Cycles++
}

// resolveOperand captures reg's value now if it is architecturally ready,
// forwards it straight from the ROB if its producer has already computed a
// result but not yet committed, or otherwise returns a pending reference to
// the tag that will produce it.
//
// The ROB forwarding step matters: a producer's result becomes known at
// Write-Result, a cycle or more before Commit actually writes the register
// file. Trusting the rename table's "ready" bit alone and reading regs
// directly would hand a consumer issued in that window the stale
// pre-commit value. Reading the still-in-flight ROB entry's Result instead
// gives the same answer Commit will later write, without waiting for it.
func (p *Pipeline) resolveOperand(regs *regfile.RegisterFile, reg uint8) Operand {
	ready, tag := p.Rename.Info(reg)
	if ready {
		return ResolvedOperand(regs.Read(reg))
	}
	if e, ok := p.Rob.Tag(tag); ok && e.HasResult {
		return ResolvedOperand(e.Result)
	}
	return PendingOperand(tag)
}

// hasPendingFallback reports whether an in-order-fallback instruction is
// already sitting in the fetch queue, unissued. Fetch stalls while this
// holds, so no instruction is ever fetched down a path a not-yet-resolved
// branch might invalidate.
func (p *Pipeline) hasPendingFallback() bool {
	for _, fe := range p.FetchQueue {
		if !isOoOEligible(fe.Inst.Kind) {
			return true
		}
	}
	return false
}

func (p *Pipeline) issue(regs *regfile.RegisterFile, memory *mem.Memory, fl *flags.Flags, pc *uint32, halted *bool) {
	if !*halted && len(p.FetchQueue) < fetchQueueCapacity && !p.hasPendingFallback() {
		raw := memory.Fetch(*pc)
		inst, ok := isa.Decode(raw)
		if !ok {
			*halted = true
			p.DecodeFailed = true
			p.DecodeFailedWord = raw
			p.DecodeFailedPC = *pc
		} else {
			p.FetchQueue = append(p.FetchQueue, FetchEntry{Inst: inst, PC: *pc})
			*pc += 4
		}
	}

	if len(p.FetchQueue) == 0 {
		return
	}
	fe := p.FetchQueue[0]

	var issued bool
	switch {
	case fe.Inst.Kind == isa.KindLoad:
		issued = p.issueLoad(fe, regs)
	case fe.Inst.Kind == isa.KindStore:
		issued = p.issueStore(fe, regs)
	case isOoOEligible(fe.Inst.Kind):
		issued = p.issueALU(fe, regs)
	default:
		issued = p.issueFallback(fe, regs, memory, fl, pc, halted)
	}

	if issued {
		p.FetchQueue = p.FetchQueue[1:]
	}
}

func (p *Pipeline) issueALU(fe FetchEntry, regs *regfile.RegisterFile) bool {
	idx, ok := p.Stations.FindFreeALU()
	if !ok {
		return false
	}
	tag, ok := p.Rob.Allocate(fe.Inst, fe.Inst.Dst, true, fe.PC)
	if !ok {
		return false
	}

	vj := p.resolveOperand(regs, fe.Inst.Src1)
	var vk Operand
	switch {
	case isImmediateKind(fe.Inst.Kind):
		vk = ResolvedOperand(uint16(fe.Inst.Imm))
	case fe.Inst.Kind == isa.KindNot:
		vk = ResolvedOperand(0)
	default:
		vk = p.resolveOperand(regs, fe.Inst.Src2)
	}

	p.Stations.ALU[idx] = Station{Busy: true, Op: fe.Inst, Vj: vj, Vk: vk, Tag: tag, Remaining: aluLatency}
	p.Rename.Rename(fe.Inst.Dst, tag)
	return true
}

func (p *Pipeline) issueLoad(fe FetchEntry, regs *regfile.RegisterFile) bool {
	if p.storesInFlight > 0 {
		// No store-to-load forwarding or disambiguation: stall Issue of
		// any load while a store's address/value is still in flight.
		return false
	}
	idx, ok := p.Stations.FindFreeLoad()
	if !ok {
		return false
	}
	tag, ok := p.Rob.Allocate(fe.Inst, fe.Inst.Dst, true, fe.PC)
	if !ok {
		return false
	}

	vj := p.resolveOperand(regs, fe.Inst.Base)
	p.Stations.Load[idx] = Station{Busy: true, Op: fe.Inst, Vj: vj, Vk: ResolvedOperand(0), Tag: tag, Remaining: loadLatency}
	p.Rename.Rename(fe.Inst.Dst, tag)
	return true
}

func (p *Pipeline) issueStore(fe FetchEntry, regs *regfile.RegisterFile) bool {
	idx, ok := p.Stations.FindFreeStore()
	if !ok {
		return false
	}
	tag, ok := p.Rob.Allocate(fe.Inst, 0, false, fe.PC)
	if !ok {
		return false
	}

	vj := p.resolveOperand(regs, fe.Inst.Src1) // value to store
	vk := p.resolveOperand(regs, fe.Inst.Base) // base address
	p.Stations.Store[idx] = Station{Busy: true, Op: fe.Inst, Vj: vj, Vk: vk, Tag: tag, Remaining: storeLatency}
	p.storesInFlight++
	return true
}

// issueFallback executes an unsupported-for-OoO instruction directly,
// through the same per-instruction semantics the in-order engine uses.
// It only fires once the ROB has fully drained: a control-flow or
// complex-arithmetic instruction must not run ahead of older, still
// in-flight scheduled work, since there is no rollback mechanism to undo
// it if an older instruction turns out to have faulted or branched
// differently.
func (p *Pipeline) issueFallback(fe FetchEntry, regs *regfile.RegisterFile, memory *mem.Memory, fl *flags.Flags, pc *uint32, halted *bool) bool {
	if !p.Rob.Empty() {
		return false
	}
	exec.Apply(regs, memory, fl, pc, halted, fe.Inst)
	return true
}

// computeALUResult re-invokes the ALU primitive a station's opcode names,
// against its now-resolved Vj/Vk. OoO-scheduled ALU ops do not update
// status flags at Commit (unlike the in-order engine): commit only ever
// writes a destination register or buffered store, never a flag, so
// arithmetic issued through reservation stations leaves Flags untouched.
// Only fallback-path instructions (Cmp/CmpImm and the Mult/Div/Mod family)
// write flags in OoO mode.
func computeALUResult(inst isa.Instruction, vj, vk uint16) uint16 {
	switch inst.Kind {
	case isa.KindAdd, isa.KindAddImm:
		r, _ := alu.Add(vj, vk)
		return r
	case isa.KindSub, isa.KindSubImm:
		r, _ := alu.Sub(vj, vk)
		return r
	case isa.KindAnd:
		return alu.And(vj, vk)
	case isa.KindOr:
		return alu.Or(vj, vk)
	case isa.KindXor:
		return alu.Xor(vj, vk)
	case isa.KindNot:
		return alu.Not(vj)
	case isa.KindShiftLeft:
		return alu.ShiftLeft(vj, vk)
	case isa.KindShiftRight:
		return alu.ShiftRight(vj, vk)
	default:
		return 0
	}
}

func (p *Pipeline) writeResult(memory *mem.Memory) {
	p.Cdb.Clear()

	ready := p.Stations.GetReady()
	if len(ready) == 0 {
		return
	}
	ref := ready[0]
	st := p.Stations.Get(ref)

	switch ref.Kind {
	case KindALU:
		result := computeALUResult(st.Op, st.Vj.Value, st.Vk.Value)
		p.Rob.Complete(st.Tag, result)
		p.Cdb.Broadcast(st.Tag, result)

	case KindLoadStation:
		addr := uint32(st.Vj.Value) + uint32(st.Op.Offset)
		result := memory.LoadU16(addr)
		p.Rob.Complete(st.Tag, result)
		p.Cdb.Broadcast(st.Tag, result)

	case KindStoreStation:
		addr := uint32(st.Vk.Value) + uint32(st.Op.Offset)
		p.Rob.CompleteStore(st.Tag, addr, st.Vj.Value)
		p.Cdb.Broadcast(st.Tag, 0)
	}

	p.Stations.Free(ref)

	// Reservation-station operands snoop the CDB and wake up the same
	// cycle their producer broadcasts. The rename table does not: it stays
	// pointed at tag until Commit actually writes the register file (see
	// resolveOperand), so a consumer issued before Commit still resolves
	// through the ROB instead of a stale regs.Read.
	if p.Cdb.Valid {
		p.Stations.Snoop(p.Cdb.Tag, p.Cdb.Value)
	}
}

func (p *Pipeline) commit(regs *regfile.RegisterFile, memory *mem.Memory) bool {
	if !p.Rob.CanCommit() {
		return false
	}
	e, _ := p.Rob.Commit()

	if e.IsStore {
		memory.StoreU16(e.StoreAddr, e.StoreValue)
		p.storesInFlight--
		return true
	}
	if e.HasDst && e.HasResult {
		regs.Write(e.Dst, e.Result)
		p.Rename.ClearIfStillMine(e.Dst, e.Tag)
	}
	return true
}
