package device

import (
	"gitlab.com/akita/rvgpusim/sim"
	"gitlab.com/akita/rvgpusim/trace"
)

// externalUnitStub stands in for a graphics coprocessor (texture,
// rasterizer, output-merge) that this simulator leaves out of scope;
// only the interface by which the SFU dispatches traces to it and
// receives them back is modeled. It simply echoes every trace it
// receives back out after a fixed latency, giving the SFU's RASTER/TEX/OM
// path somewhere real to round-trip through.
type externalUnitStub struct {
	sim.ComponentBase

	In      *sim.Port[*trace.Trace]
	Out     *sim.Port[*trace.Trace]
	latency uint64
}

func newExternalUnitStub(engine *sim.Engine, name string, latency uint64) *externalUnitStub {
	return &externalUnitStub{
		ComponentBase: sim.NewComponentBase(name),
		In:            sim.NewPort[*trace.Trace](engine, name+".in"),
		Out:           sim.NewPort[*trace.Trace](engine, name+".out"),
		latency:       latency,
	}
}

func (e *externalUnitStub) Reset() {
	e.In.Reset()
	e.Out.Reset()
}

func (e *externalUnitStub) Tick(now uint64) bool {
	tr, ok := e.In.Pop()
	if !ok {
		return false
	}
	e.Out.Push(tr, e.latency)
	return true
}
