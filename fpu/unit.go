// Package fpu implements the FPU functional unit. Same shape as alu, but
// floating-point traces never set fetch_stall in this design, so there is
// no warp-resume callback. Grounded on the Vortex simx FpuUnit::tick()
// reference.
package fpu

import (
	"gitlab.com/akita/rvgpusim/sim"
	"gitlab.com/akita/rvgpusim/trace"
	"gitlab.com/akita/rvgpusim/xlog"
)

// Latencies holds the configurable FPU sub-kind latencies; FNCP is fixed
// at 4 cycles.
type Latencies struct {
	Fma   int
	Fdiv  int
	Fsqrt int
	Fcvt  int
}

func latency(sub trace.FpuType, lat Latencies) int {
	switch sub {
	case trace.FpuFncp:
		return 4
	case trace.FpuFma:
		return lat.Fma + 2
	case trace.FpuFdiv:
		return lat.Fdiv + 2
	case trace.FpuFsqrt:
		return lat.Fsqrt + 2
	case trace.FpuFcvt:
		return lat.Fcvt + 2
	default:
		return -1
	}
}

// Unit is one FPU issue slot's functional unit.
type Unit struct {
	sim.ComponentBase

	In  *sim.Port[*trace.Trace]
	Out *sim.Port[*trace.Trace]

	lat Latencies
	log *xlog.Logger
}

// NewUnit creates an FPU unit.
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

// Tick admits at most one trace per cycle.
func (u *Unit) Tick(now uint64) bool {
	tr, ok := u.In.Front()
	if !ok || tr.Unit != trace.UnitFPU {
		return false
	}
	u.In.Pop()

	delay := latency(tr.Fpu, u.lat)
	if delay < 0 {
		u.log.Fatalf("fpu: unknown sub-kind %v", tr.Fpu)
	}

	u.Out.Push(tr, uint64(delay))
	return true
}
