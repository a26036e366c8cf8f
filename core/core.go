package core

import (
	"gitlab.com/akita/rvgpusim/alu"
	"gitlab.com/akita/rvgpusim/fpu"
	"gitlab.com/akita/rvgpusim/lsu"
	"gitlab.com/akita/rvgpusim/sfu"
	"gitlab.com/akita/rvgpusim/sim"
	"gitlab.com/akita/rvgpusim/trace"
	"gitlab.com/akita/rvgpusim/xlog"
)

// Core owns one SIMT core's warp state, scheduler, barrier table and
// functional units, and is the Controller its SFUs call back into for
// resume/wspawn/barrier; ALU, FPU and LSU traces are resumed by Tick at
// commit instead. It is itself a sim.Object so the
// engine drains its commit log once per cycle; the functional units it
// owns are registered on the engine separately.
type Core struct {
	sim.ComponentBase

	ID int

	Warps     []*Warp
	Scheduler *Scheduler
	barriers  *BarrierTable

	ALU []*alu.Unit
	FPU []*fpu.Unit
	SFU []*sfu.Unit
	LSU *lsu.Unit

	Commit []*trace.Trace // traces committed this run, in drain order
	log    *xlog.Logger
}

// New creates a Core with issueWidth ALU/FPU/SFU units and one LSU,
// wired to ctrl callbacks implemented by Core itself. extOut/extIn are
// the device-wide external-unit ports shared by every core's SFU.
func New(engine *sim.Engine, name string, id, numWarps, numThreads, issueWidth int,
	aluLat alu.Latencies, fpuLat fpu.Latencies,
	numLsuBlocks, numLsuLanes, lsuTableCap int,
	extOut, extIn []*sim.Port[*trace.Trace], log *xlog.Logger) *Core {

	c := &Core{
		ComponentBase: sim.NewComponentBase(name),
		ID:            id,
		barriers:      NewBarrierTable(),
		log:           log,
	}
	c.Warps = make([]*Warp, numWarps)
	for i := range c.Warps {
		c.Warps[i] = NewWarp(numThreads)
	}
	c.Scheduler = NewScheduler(c.Warps)

	c.ALU = make([]*alu.Unit, issueWidth)
	c.FPU = make([]*fpu.Unit, issueWidth)
	c.SFU = make([]*sfu.Unit, issueWidth)
	for i := 0; i < issueWidth; i++ {
		c.ALU[i] = alu.NewUnit(engine, name+".alu", aluLat, log)
		c.FPU[i] = fpu.NewUnit(engine, name+".fpu", fpuLat, log)
		c.SFU[i] = sfu.NewUnit(engine, name+".sfu", id, extOut, extIn, c, log)
	}
	c.LSU = lsu.NewUnit(engine, name+".lsu", issueWidth, numLsuBlocks, numLsuLanes, lsuTableCap, log)

	for i := 0; i < issueWidth; i++ {
		engine.RegisterObject(c.ALU[i])
		engine.RegisterObject(c.FPU[i])
		engine.RegisterObject(c.SFU[i])
	}
	engine.RegisterObject(c.LSU)
	engine.RegisterObject(c)

	return c
}

// Dispatch places tr on the dispatch input of its target unit at the
// given issue slot: one port per (unit, issue-slot) pair.
func (c *Core) Dispatch(issueSlot int, tr *trace.Trace) {
	switch tr.Unit {
	case trace.UnitALU:
		c.ALU[issueSlot].In.Push(tr, 1)
	case trace.UnitFPU:
		c.FPU[issueSlot].In.Push(tr, 1)
	case trace.UnitSFU:
		c.SFU[issueSlot].In.Push(tr, 1)
	case trace.UnitLSU:
		c.LSU.In[issueSlot].Push(tr, 1)
	default:
		c.log.Fatalf("core: trace %d has unknown unit %v", tr.UUID, tr.Unit)
	}
}

// Resume implements sfu.Controller (and is called directly by Core.Tick
// for the generic commit-time case): it clears wid's
// stall so the scheduler may pick it again.
func (c *Core) Resume(cid, wid int) {
	if cid != c.ID {
		return
	}
	c.Warps[wid].Stalled = false
}

// Wspawn implements sfu.Controller: it activates numWarps warps starting
// at startPC and reports true so the spawning warp is released. Warps
// beyond the configured count are silently capped, since warp count is
// fixed at construction.
func (c *Core) Wspawn(cid, numWarps int, startPC uint64) bool {
	if cid != c.ID {
		return false
	}
	for i := 0; i < numWarps && i < len(c.Warps); i++ {
		w := c.Warps[i]
		w.Active = true
		w.PC = startPC
	}
	return true
}

// Barrier implements sfu.Controller: it latches wid's arrival and, once
// every expected warp has arrived, resumes every parked warp (including
// wid itself) and reports true so the caller's own resume is consistent
// with the others.
func (c *Core) Barrier(cid, barID, expectedCount, wid int) bool {
	if cid != c.ID {
		return false
	}
	released, parked := c.barriers.Arrive(barID, expectedCount, wid)
	if !released {
		return false
	}
	for _, w := range parked {
		c.Warps[w].Stalled = false
	}
	return true
}

// Reset rewinds the scheduler cursor, clears barrier state, deactivates
// every warp, and drops the commit log. Functional units reset
// themselves as separately registered engine objects.
func (c *Core) Reset() {
	c.Scheduler.Reset()
	c.barriers.Reset()
	for _, w := range c.Warps {
		w.Active = false
		w.Stalled = false
		w.PC = 0
	}
	c.Commit = nil
}

// sfuSelfResumes reports whether tr's SFU sub-kind already resumed its
// warp itself, at a time other than this plain commit: BAR only resumes
// when the barrier actually releases (not on every eop), WSPAWN resumes
// the spawning warp when Wspawn reports it released, and
// RASTER/TEX/OM resume from their own external-unit drain. Every other
// SFU sub-kind falls back to the same generic resume-at-commit rule as
// ALU and LSU traces.
func sfuSelfResumes(tr *trace.Trace) bool {
	switch tr.Sfu {
	case trace.SfuBar, trace.SfuWSpawn, trace.SfuRaster, trace.SfuTex, trace.SfuOM:
		return true
	default:
		return false
	}
}

// Tick drains every functional unit's commit output, recording trace
// failures and appending to the commit log. A trace with fetch_stall set
// clears its warp's stall exactly here, at commit, not when the trace
// was dispatched into its functional unit — except for the SFU
// sub-kinds that have their own bespoke release timing (see
// sfuSelfResumes).
func (c *Core) Tick(now uint64) bool {
	progress := false
	drain := func(p *sim.Port[*trace.Trace], selfResumes func(*trace.Trace) bool) {
		for {
			tr, ok := p.Pop()
			if !ok {
				return
			}
			if tr.Failed {
				c.log.Warnf("core %d: trace %d committed with failure flag set", c.ID, tr.UUID)
			}
			if tr.EOP && tr.FetchStall && (selfResumes == nil || !selfResumes(tr)) {
				c.Resume(tr.CID, tr.WID)
			}
			c.Commit = append(c.Commit, tr)
			progress = true
		}
	}
	for _, u := range c.ALU {
		drain(u.Out, nil)
	}
	for _, u := range c.FPU {
		drain(u.Out, nil)
	}
	for _, u := range c.SFU {
		drain(u.Out, sfuSelfResumes)
	}
	drain(c.LSU.Out, nil)
	return progress
}
