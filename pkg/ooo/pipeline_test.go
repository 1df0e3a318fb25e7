package ooo

import (
	"testing"

	"suprax16/pkg/flags"
	"suprax16/pkg/isa"
	"suprax16/pkg/mem"
	"suprax16/pkg/regfile"
)

func assemble(t *testing.T, insts []isa.Instruction) []byte {
	t.Helper()
	out := make([]byte, 0, len(insts)*4)
	for _, inst := range insts {
		w := isa.Encode(inst)
		out = append(out, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	return out
}

// runToQuiescence steps the pipeline until the CPU is halted and the
// pipeline has no in-flight work, or until maxCycles elapses (whichever
// comes first), returning the number of cycles actually run.
func runToQuiescence(p *Pipeline, regs *regfile.RegisterFile, memory *mem.Memory, fl *flags.Flags, pc *uint32, halted *bool, maxCycles int) int {
	n := 0
	for n < maxCycles {
		if *halted && p.Quiescent() {
			break
		}
		p.Step(regs, memory, fl, pc, halted)
		n++
	}
	return n
}

func TestPipelineALUChainCommitsAndHalts(t *testing.T) {
	regs := regfile.NewRegisterFile()
	memory := mem.NewMemory()
	var fl flags.Flags
	var pc uint32
	var halted bool

	prog := assemble(t, []isa.Instruction{
		{Kind: isa.KindLoadImm, Dst: 1, Imm: 10},
		{Kind: isa.KindLoadImm, Dst: 2, Imm: 20},
		{Kind: isa.KindAdd, Dst: 4, Src1: 1, Src2: 2},
		{Kind: isa.KindHalt},
	})
	memory.LoadProgram(prog, 0)

	p := NewPipeline(4)
	n := runToQuiescence(p, regs, memory, &fl, &pc, &halted, 100)
	if n >= 100 {
		t.Fatal("pipeline did not reach quiescence within 100 cycles")
	}
	if !halted {
		t.Fatal("CPU should be halted")
	}
	if got := regs.Read(4); got != 30 {
		t.Fatalf("r4 = %d, want 30", got)
	}
	if !p.Rob.Empty() {
		t.Fatal("ROB should be empty once quiescent")
	}
}

func TestPipelineLoadStoreRoundTrip(t *testing.T) {
	regs := regfile.NewRegisterFile()
	memory := mem.NewMemory()
	var fl flags.Flags
	var pc uint32
	var halted bool

	prog := assemble(t, []isa.Instruction{
		{Kind: isa.KindLoadImm, Dst: 1, Imm: 200},    // base
		{Kind: isa.KindLoadImm, Dst: 2, Imm: 0x1AA},  // value (fits the 10-bit immediate)
		{Kind: isa.KindStore, Src1: 2, Base: 1, Offset: 4},
		{Kind: isa.KindLoad, Dst: 3, Base: 1, Offset: 4},
		{Kind: isa.KindHalt},
	})
	memory.LoadProgram(prog, 0)

	p := NewPipeline(4)
	n := runToQuiescence(p, regs, memory, &fl, &pc, &halted, 100)
	if n >= 100 {
		t.Fatal("pipeline did not reach quiescence within 100 cycles")
	}
	if got := regs.Read(3); got != 0x1AA {
		t.Fatalf("r3 = %#04x, want 0x01aa", got)
	}
}

func TestPipelineLoadStallsWhileStoreInFlight(t *testing.T) {
	regs := regfile.NewRegisterFile()
	memory := mem.NewMemory()
	var fl flags.Flags
	var pc uint32
	var halted bool

	prog := assemble(t, []isa.Instruction{
		{Kind: isa.KindLoadImm, Dst: 1, Imm: 0},
		{Kind: isa.KindLoadImm, Dst: 2, Imm: 42},
		{Kind: isa.KindStore, Src1: 2, Base: 1, Offset: 0},
		{Kind: isa.KindLoad, Dst: 3, Base: 1, Offset: 0},
		{Kind: isa.KindHalt},
	})
	memory.LoadProgram(prog, 0)

	p := NewPipeline(4)
	sawStoreInFlight := false
	for i := 0; i < 30; i++ {
		p.Step(regs, memory, &fl, &pc, &halted)
		if p.storesInFlight > 0 {
			sawStoreInFlight = true
			for _, s := range p.Stations.Load {
				if s.Busy {
					t.Fatal("load must not issue while a store is still in flight")
				}
			}
		}
	}
	if !sawStoreInFlight {
		t.Fatal("expected to observe the store in flight at least once")
	}
}

func TestPipelineBranchLoopFallback(t *testing.T) {
	regs := regfile.NewRegisterFile()
	memory := mem.NewMemory()
	var fl flags.Flags
	var pc uint32
	var halted bool

	const instrSize = 4
	loopAt := uint16(4 * instrSize)
	endAt := uint16(8 * instrSize)
	prog := assemble(t, []isa.Instruction{
		{Kind: isa.KindLoadImm, Dst: 1, Imm: 5},
		{Kind: isa.KindLoadImm, Dst: 0, Imm: 0},
		{Kind: isa.KindLoadImm, Dst: 2, Imm: 1},
		{Kind: isa.KindLoadImm, Dst: 3, Imm: 0},
		{Kind: isa.KindBranchEqual, Src1: 1, Src2: 3, Addr: endAt},
		{Kind: isa.KindAdd, Dst: 0, Src1: 0, Src2: 1},
		{Kind: isa.KindSub, Dst: 1, Src1: 1, Src2: 2},
		{Kind: isa.KindJump, Addr: loopAt},
		{Kind: isa.KindHalt},
	})
	memory.LoadProgram(prog, 0)

	p := NewPipeline(4)
	n := runToQuiescence(p, regs, memory, &fl, &pc, &halted, 500)
	if n >= 500 {
		t.Fatal("branch loop did not reach quiescence in time")
	}
	if got := regs.Read(0); got != 15 { // 5+4+3+2+1
		t.Fatalf("r0 = %d, want 15", got)
	}
}

// TestPipelineConsumerDuringCommitLag pins down the window between a
// producer's Write-Result broadcast and its own Commit: a dependent
// instruction issued in that window must compute against the producer's
// real result, not a stale pre-commit register-file read.
func TestPipelineConsumerDuringCommitLag(t *testing.T) {
	regs := regfile.NewRegisterFile()
	memory := mem.NewMemory()
	var fl flags.Flags
	var pc uint32
	var halted bool

	prog := assemble(t, []isa.Instruction{
		{Kind: isa.KindLoadImm, Dst: 1, Imm: 10},
		{Kind: isa.KindLoadImm, Dst: 2, Imm: 20},
		{Kind: isa.KindAdd, Dst: 4, Src1: 1, Src2: 2},  // r4 = 30
		{Kind: isa.KindLoadImm, Dst: 3, Imm: 5},
		{Kind: isa.KindSub, Dst: 5, Src1: 3, Src2: 3},  // r5 = 0, independent
		{Kind: isa.KindAdd, Dst: 6, Src1: 4, Src2: 5},  // r6 depends on r4
		{Kind: isa.KindHalt},
	})
	memory.LoadProgram(prog, 0)

	p := NewPipeline(8)
	n := runToQuiescence(p, regs, memory, &fl, &pc, &halted, 200)
	if n >= 200 {
		t.Fatal("pipeline did not reach quiescence within 200 cycles")
	}
	if got := regs.Read(4); got != 30 {
		t.Fatalf("r4 = %d, want 30", got)
	}
	if got := regs.Read(6); got != 30 {
		t.Fatalf("r6 = %d, want 30 (r4 forwarded from the ROB before its Commit)", got)
	}
}

func TestPipelineQuiescentInitially(t *testing.T) {
	p := NewPipeline(4)
	if !p.Quiescent() {
		t.Fatal("a fresh pipeline should be quiescent")
	}
}

func TestPipelineCDBAtMostOneBroadcastPerCycle(t *testing.T) {
	regs := regfile.NewRegisterFile()
	memory := mem.NewMemory()
	var fl flags.Flags
	var pc uint32
	var halted bool

	// Four independent adds: all four ALU stations can be occupied at
	// once, but Write-Result must still only retire one per cycle.
	prog := assemble(t, []isa.Instruction{
		{Kind: isa.KindLoadImm, Dst: 1, Imm: 1},
		{Kind: isa.KindAdd, Dst: 2, Src1: 1, Src2: 1},
		{Kind: isa.KindAdd, Dst: 3, Src1: 1, Src2: 1},
		{Kind: isa.KindAdd, Dst: 4, Src1: 1, Src2: 1},
		{Kind: isa.KindAdd, Dst: 5, Src1: 1, Src2: 1},
		{Kind: isa.KindHalt},
	})
	memory.LoadProgram(prog, 0)

	p := NewPipeline(8)
	for i := 0; i < 200; i++ {
		if halted && p.Quiescent() {
			break
		}
		p.Step(regs, memory, &fl, &pc, &halted)
		if p.Cdb.Valid {
			// Exactly one broadcast is represented by the single CDB
			// slot itself; this assertion documents that invariant
			// rather than testing for a bug, since the type cannot
			// represent two simultaneous broadcasts.
			if p.Cdb.Tag == NoTag {
				t.Fatal("valid CDB slot must carry a real tag")
			}
		}
	}
	if !halted {
		t.Fatal("program should have halted")
	}
}
