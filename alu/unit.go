// Package alu implements the ALU functional unit: fixed per-issue-slot
// dispatch with a latency derived from the trace's ALU sub-kind. The unit
// makes no warp-resume callback: the owning Core resumes a fetch-stalled
// warp when it drains the eop trace from Out. Grounded on the Vortex simx
// AluUnit::tick() reference.
package alu

import (
	"gitlab.com/akita/rvgpusim/sim"
	"gitlab.com/akita/rvgpusim/trace"
	"gitlab.com/akita/rvgpusim/xlog"
)

// Latencies holds the configurable ALU sub-kind latencies; ARITH, BRANCH
// and SYSCALL are fixed at 4 cycles and are not configurable.
type Latencies struct {
	IMul int // combined with the unit's own dispatch, total = IMul + 2
	XLen int // IDIV total = XLen + 2
}

func latency(sub trace.AluType, lat Latencies) int {
	switch sub {
	case trace.AluArith, trace.AluBranch, trace.AluSyscall:
		return 4
	case trace.AluIMul:
		return lat.IMul + 2
	case trace.AluIDiv:
		return lat.XLen + 2
	default:
		return -1
	}
}

// Unit is one ALU issue slot's functional unit.
type Unit struct {
	sim.ComponentBase

	In  *sim.Port[*trace.Trace]
	Out *sim.Port[*trace.Trace]

	lat Latencies
	log *xlog.Logger
}

// NewUnit creates an ALU unit. Warp resume on a fetch-stalling trace's
// commit is handled by the owning Core when it drains Out, not here, so
// that resume fires exactly at commit time of the eop trace rather than
// at dispatch.
func NewUnit(engine *sim.Engine, name string, lat Latencies, log *xlog.Logger) *Unit {
	return &Unit{
		ComponentBase: sim.NewComponentBase(name),
		In:            sim.NewPort[*trace.Trace](engine, name+".in"),
		Out:           sim.NewPort[*trace.Trace](engine, name+".out"),
		lat:           lat,
		log:           log,
	}
}

// Reset clears both ports.
func (u *Unit) Reset() {
	u.In.Reset()
	u.Out.Reset()
}

// Tick admits at most one trace per cycle: one issue slot, one trace per
// cycle.
func (u *Unit) Tick(now uint64) bool {
	tr, ok := u.In.Front()
	if !ok || tr.Unit != trace.UnitALU {
		return false
	}
	u.In.Pop()

	delay := latency(tr.Alu, u.lat)
	if delay < 0 {
		u.log.Fatalf("alu: unknown sub-kind %v", tr.Alu)
	}

	u.Out.Push(tr, uint64(delay))
	return true
}
