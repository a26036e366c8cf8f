// Package sfu implements the special-function unit: the long-tail and
// coprocessor opcodes, including the core-local barrier handshake and the
// external raster/tex/om round trip. Grounded on the Vortex simx
// SfuUnit::tick() reference.
package sfu

import (
	"gitlab.com/akita/rvgpusim/sim"
	"gitlab.com/akita/rvgpusim/trace"
	"gitlab.com/akita/rvgpusim/xlog"
)

// localLatency is the fixed completion latency for every sub-kind that
// never leaves the core.
const localLatency = 4

// externalDispatchDelay is the fixed delay routing a RASTER/OM/TEX trace
// to its external unit's input port.
const externalDispatchDelay = 2

// Controller is the callback surface the SFU needs from the owning core.
type Controller interface {
	Resume(cid, wid int)
	// Wspawn activates numWarps warps starting at startPC and reports
	// whether the spawning warp itself should be released.
	Wspawn(cid, numWarps int, startPC uint64) bool
	// Barrier latches wid's arrival at (barID, expectedCount) and reports
	// whether wid should be released this cycle.
	Barrier(cid, barID, expectedCount, wid int) bool
}

// Unit is the per-core SFU functional unit. ExtOut/ExtIn are indexed by
// external unit index (trace.SfuExternalData.UnitIdx).
type Unit struct {
	sim.ComponentBase

	CoreID int

	In  *sim.Port[*trace.Trace]
	Out *sim.Port[*trace.Trace]

	ExtOut []*sim.Port[*trace.Trace]
	ExtIn  []*sim.Port[*trace.Trace]

	ctrl Controller
	log  *xlog.Logger
}

// NewUnit creates an SFU for coreID. extOut/extIn are the dispatch and
// response ports of every external raster/tex/om unit the device exposes;
// these port slices are typically the very same port objects handed to
// every other core's SFU, with cid filtering at drain time standing in
// for per-core routing.
func NewUnit(engine *sim.Engine, name string, coreID int, extOut, extIn []*sim.Port[*trace.Trace], ctrl Controller, log *xlog.Logger) *Unit {
	return &Unit{
		ComponentBase: sim.NewComponentBase(name),
		CoreID:        coreID,
		In:            sim.NewPort[*trace.Trace](engine, name+".in"),
		Out:           sim.NewPort[*trace.Trace](engine, name+".out"),
		ExtOut:        extOut,
		ExtIn:         extIn,
		ctrl:          ctrl,
		log:           log,
	}
}

// Reset clears every port.
func (u *Unit) Reset() {
	u.In.Reset()
	u.Out.Reset()
	for _, p := range u.ExtOut {
		p.Reset()
	}
	for _, p := range u.ExtIn {
		p.Reset()
	}
}

// Tick drains external-unit returns before dispatching a new trace.
func (u *Unit) Tick(now uint64) bool {
	progress := false
	for i := range u.ExtIn {
		if u.tickDrain(i) {
			progress = true
		}
	}
	if u.tickDispatch() {
		progress = true
	}
	return progress
}

func (u *Unit) tickDrain(idx int) bool {
	p := u.ExtIn[idx]
	tr, ok := p.Front()
	if !ok || tr.CID != u.CoreID {
		return false
	}
	p.Pop()
	u.Out.Push(tr, 1)
	if tr.EOP && tr.FetchStall {
		u.ctrl.Resume(tr.CID, tr.WID)
	}
	return true
}

func (u *Unit) tickDispatch() bool {
	tr, ok := u.In.Front()
	if !ok || tr.Unit != trace.UnitSFU {
		return false
	}

	switch tr.Sfu {
	case trace.SfuRaster, trace.SfuOM, trace.SfuTex:
		data, _ := tr.Data.(*trace.SfuExternalData)
		if data == nil || data.UnitIdx < 0 || data.UnitIdx >= len(u.ExtOut) {
			u.log.Fatalf("sfu: trace %d targets invalid external unit", tr.UUID)
		}
		u.In.Pop()
		u.ExtOut[data.UnitIdx].Push(tr, externalDispatchDelay)
		return true

	case trace.SfuBar:
		u.In.Pop()
		u.Out.Push(tr, localLatency)
		if tr.EOP {
			args, _ := tr.Data.(*trace.SfuArgs)
			barID, expected := int(args.Arg1), int(args.Arg2)
			if u.ctrl.Barrier(tr.CID, barID, expected, tr.WID) {
				u.ctrl.Resume(tr.CID, tr.WID)
			}
		}
		return true

	case trace.SfuWSpawn:
		u.In.Pop()
		u.Out.Push(tr, localLatency)
		if tr.EOP {
			args, _ := tr.Data.(*trace.SfuArgs)
			if u.ctrl.Wspawn(tr.CID, int(args.Arg1), args.Arg2) {
				u.ctrl.Resume(tr.CID, tr.WID)
			}
		}
		return true

	case trace.SfuTMC, trace.SfuSplit, trace.SfuJoin, trace.SfuPred,
		trace.SfuCSRRW, trace.SfuCSRRS, trace.SfuCSRRC, trace.SfuCMov:
		// No resume call here: these sub-kinds commit via Core's drain at
		// the usual fixed latency, and Core.Tick performs the fetch-stall
		// resume itself exactly at that commit.
		u.In.Pop()
		u.Out.Push(tr, localLatency)
		return true

	default:
		u.log.Fatalf("sfu: unknown sub-kind %v", tr.Sfu)
		return false
	}
}
