// Package device wires together the cores, LSU memory path and shared
// external units that config.Config describes into one runnable
// simulation.
package device

import (
	"fmt"

	"gitlab.com/akita/rvgpusim/config"
	"gitlab.com/akita/rvgpusim/core"
	"gitlab.com/akita/rvgpusim/lsu"
	"gitlab.com/akita/rvgpusim/memproto"
	"gitlab.com/akita/rvgpusim/memsim"
	"gitlab.com/akita/rvgpusim/sim"
	"gitlab.com/akita/rvgpusim/trace"
	"gitlab.com/akita/rvgpusim/xlog"
)

// blockMemPath is the per-(core,block) memory path: demux, its two
// adapters, and their backing memories.
type blockMemPath struct {
	demux        *lsu.Demux
	localAdapter *lsu.Adapter
	cacheAdapter *lsu.Adapter
	localMems    []*memsim.IdealMemory
	cacheMems    []*memsim.IdealMemory
}

// Device is a fully wired simulator instance: N cores sharing a set of
// external graphics-unit stubs, each core's LSU blocks wired down through
// a demux/adapter/memory chain.
type Device struct {
	Engine *sim.Engine
	Cores  []*core.Core

	extStubs []*externalUnitStub
	paths    [][]blockMemPath // paths[coreIdx][blockIdx]

	log *xlog.Logger
}

// New builds a Device from cfg. The returned Engine has already had every
// component registered; callers must still call Engine.Reset() before
// the first RunCycle.
func New(cfg config.Config, log *xlog.Logger) *Device {
	engine := sim.NewEngine()
	d := &Device{Engine: engine, log: log}

	extOut := make([]*sim.Port[*trace.Trace], cfg.NumExternalUnits)
	extIn := make([]*sim.Port[*trace.Trace], cfg.NumExternalUnits)
	for i := 0; i < cfg.NumExternalUnits; i++ {
		stub := newExternalUnitStub(engine, fmt.Sprintf("ext%d", i), 2)
		engine.RegisterObject(stub)
		d.extStubs = append(d.extStubs, stub)
		extOut[i] = stub.In
		extIn[i] = stub.Out
	}

	d.Cores = make([]*core.Core, cfg.NumCores)
	d.paths = make([][]blockMemPath, cfg.NumCores)
	for ci := 0; ci < cfg.NumCores; ci++ {
		name := fmt.Sprintf("core%d", ci)
		c := core.New(engine, name, ci, cfg.NumWarps, cfg.NumThreads, cfg.IssueWidth,
			cfg.ALULatencies(), cfg.FPULatencies(),
			cfg.NumLsuBlocks, cfg.NumLsuLanes, cfg.LsuTableCap,
			extOut, extIn, log)
		d.Cores[ci] = c

		blocks := make([]blockMemPath, cfg.NumLsuBlocks)
		for bi := 0; bi < cfg.NumLsuBlocks; bi++ {
			blocks[bi] = d.wireBlock(engine, fmt.Sprintf("%s.lsu%d", name, bi), cfg, c.LSU, bi)
		}
		d.paths[ci] = blocks
	}

	return d
}

func (d *Device) wireBlock(engine *sim.Engine, name string, cfg config.Config, u *lsu.Unit, block int) blockMemPath {
	demux := lsu.NewDemux(engine, name+".demux", cfg.AddrSpace, 1)
	localAdapter := lsu.NewAdapter(engine, name+".localAdapter", cfg.NumLsuLanes, cfg.NumMemBanks, memproto.AddrShared)
	cacheAdapter := lsu.NewAdapter(engine, name+".cacheAdapter", cfg.NumLsuLanes, cfg.NumMemBanks, memproto.AddrGlobal)
	engine.RegisterObject(demux)
	engine.RegisterObject(localAdapter)
	engine.RegisterObject(cacheAdapter)

	u.ReqOut[block].Bind(demux.In)
	demux.Out.Bind(u.RspIn[block])
	demux.LocalReqOut.Bind(localAdapter.In)
	localAdapter.Out.Bind(demux.LocalRspIn)
	demux.CacheReqOut.Bind(cacheAdapter.In)
	cacheAdapter.Out.Bind(demux.CacheRspIn)

	path := blockMemPath{demux: demux, localAdapter: localAdapter, cacheAdapter: cacheAdapter}
	for bank := 0; bank < cfg.NumMemBanks; bank++ {
		lm := memsim.NewIdealMemory(engine, fmt.Sprintf("%s.localMem%d", name, bank), cfg.MemLatency)
		cm := memsim.NewIdealMemory(engine, fmt.Sprintf("%s.cacheMem%d", name, bank), cfg.MemLatency)
		engine.RegisterObject(lm)
		engine.RegisterObject(cm)
		localAdapter.ReqOut[bank].Bind(lm.In)
		lm.Out.Bind(localAdapter.RspIn[bank])
		cacheAdapter.ReqOut[bank].Bind(cm.In)
		cm.Out.Bind(cacheAdapter.RspIn[bank])
		path.localMems = append(path.localMems, lm)
		path.cacheMems = append(path.cacheMems, cm)
	}
	return path
}
