// Package memsim provides a minimal fixed-latency memory responder used
// in place of the DRAM/cache hierarchy this simulator's scope excludes.
package memsim

import (
	"gitlab.com/akita/rvgpusim/memproto"
	"gitlab.com/akita/rvgpusim/sim"
)

// IdealMemory answers every MemReq with a MemRsp after a fixed latency,
// regardless of address or read/write. It exists only to give the LSU
// pipeline's request/response protocol somewhere to terminate in tests
// and demos; it is not a cache or DRAM model.
type IdealMemory struct {
	sim.ComponentBase

	In  *sim.Port[memproto.MemReq]
	Out *sim.Port[memproto.MemRsp]

	latency uint64
}

// NewIdealMemory creates an IdealMemory responding after latency cycles
// (>= 1).
func NewIdealMemory(engine *sim.Engine, name string, latency uint64) *IdealMemory {
	return &IdealMemory{
		ComponentBase: sim.NewComponentBase(name),
		In:            sim.NewPort[memproto.MemReq](engine, name+".in"),
		Out:           sim.NewPort[memproto.MemRsp](engine, name+".out"),
		latency:       latency,
	}
}

// Reset clears both ports.
func (m *IdealMemory) Reset() {
	m.In.Reset()
	m.Out.Reset()
}

// Tick admits at most one request per cycle and schedules its response.
func (m *IdealMemory) Tick(now uint64) bool {
	req, ok := m.In.Pop()
	if !ok {
		return false
	}
	m.Out.Push(memproto.MemRsp{Tag: req.Tag, CID: req.CID, UUID: req.UUID}, m.latency)
	return true
}
