// Package lsu implements the load/store functional unit: per-block fence
// tracking, request admission into a bounded pending-load table, and
// completion once every lane's response has arrived. Two phases run per
// cycle: drain responses first across every block, then admit one
// request per issue slot, generalized from a single block to NumBlocks.
package lsu

import (
	"gitlab.com/akita/rvgpusim/memproto"
	"gitlab.com/akita/rvgpusim/sim"
	"gitlab.com/akita/rvgpusim/trace"
	"gitlab.com/akita/rvgpusim/xlog"
)

// block holds the state private to one LSU block: its fence latch, its
// pending-load table, and a running in-flight-lane count kept for stats.
type block struct {
	fenceTrace  *trace.Trace
	fenceLocked bool
	table       *PendingTable
	pendingLoads int
}

// Unit is the per-core LSU functional unit, fed by NumIssueSlots issue
// slots round-robin assigned to NumBlocks independent blocks (issue slot
// iw belongs to block iw % NumBlocks).
type Unit struct {
	sim.ComponentBase

	In     []*sim.Port[*trace.Trace] // one per issue slot
	Out    *sim.Port[*trace.Trace]   // commit, shared across blocks
	ReqOut []*sim.Port[memproto.LsuReq]
	RspIn  []*sim.Port[memproto.LsuRsp]

	blocks   []*block
	numLanes int
	log      *xlog.Logger
}

// NewUnit creates an LSU with numIssueSlots issue-slot inputs spread over
// numBlocks blocks, each block's pending table sized tableCapacity.
func NewUnit(engine *sim.Engine, name string, numIssueSlots, numBlocks, numLanes, tableCapacity int, log *xlog.Logger) *Unit {
	u := &Unit{
		ComponentBase: sim.NewComponentBase(name),
		Out:           sim.NewPort[*trace.Trace](engine, name+".out"),
		numLanes:      numLanes,
		log:           log,
	}
	u.In = make([]*sim.Port[*trace.Trace], numIssueSlots)
	for i := range u.In {
		u.In[i] = sim.NewPort[*trace.Trace](engine, name+".in")
	}
	u.ReqOut = make([]*sim.Port[memproto.LsuReq], numBlocks)
	u.RspIn = make([]*sim.Port[memproto.LsuRsp], numBlocks)
	u.blocks = make([]*block, numBlocks)
	for b := 0; b < numBlocks; b++ {
		u.ReqOut[b] = sim.NewPort[memproto.LsuReq](engine, name+".reqOut")
		u.RspIn[b] = sim.NewPort[memproto.LsuRsp](engine, name+".rspIn")
		u.blocks[b] = &block{table: NewPendingTable(tableCapacity)}
	}
	return u
}

// NumBlocks returns the number of independent LSU blocks.
func (u *Unit) NumBlocks() int { return len(u.blocks) }

// PendingLoads returns block b's current in-flight load-lane count, for
// stats reporting.
func (u *Unit) PendingLoads(b int) int { return u.blocks[b].pendingLoads }

// Reset clears every block's fence latch, pending table, and ports.
func (u *Unit) Reset() {
	for _, b := range u.blocks {
		b.fenceTrace = nil
		b.fenceLocked = false
		b.pendingLoads = 0
		b.table.Clear()
	}
	for _, p := range u.In {
		p.Reset()
	}
	u.Out.Reset()
	for _, p := range u.ReqOut {
		p.Reset()
	}
	for _, p := range u.RspIn {
		p.Reset()
	}
}

// Tick runs the response phase across every block, then the request
// phase across every issue slot, in that fixed per-cycle order.
func (u *Unit) Tick(now uint64) bool {
	progress := false
	for b := range u.blocks {
		if u.tickResponse(b) {
			progress = true
		}
	}
	for iw := range u.In {
		if u.tickRequest(iw) {
			progress = true
		}
	}
	return progress
}

func (u *Unit) tickResponse(b int) bool {
	blk := u.blocks[b]
	rsp, ok := u.RspIn[b].Front()
	if !ok {
		return false
	}
	u.RspIn[b].Pop()

	entry, ok := blk.table.At(rsp.Tag)
	if !ok {
		u.log.Fatalf("lsu: response for tag %d not in block %d pending table", rsp.Tag, b)
		return true
	}
	if !memproto.MaskSubset(rsp.Mask, entry.Req.Mask) {
		u.log.Warnf("lsu: response mask not a subset of request mask for tag %d", rsp.Tag)
	}
	blk.pendingLoads -= memproto.MaskCount(rsp.Mask)
	if done := blk.table.Subtract(rsp.Tag, rsp.Mask); done {
		tr := entry.Trace
		blk.table.Release(rsp.Tag)
		u.Out.Push(tr, 1)
	}
	return true
}

func (u *Unit) tickRequest(iw int) bool {
	b := iw % len(u.blocks)
	blk := u.blocks[b]
	in := u.In[iw]

	if blk.fenceLocked {
		if blk.table.Empty() {
			u.Out.Push(blk.fenceTrace, 1)
			blk.fenceTrace = nil
			blk.fenceLocked = false
			return true
		}
		return false
	}

	tr, ok := in.Front()
	if !ok || tr.Unit != trace.UnitLSU {
		return false
	}

	if tr.Lsu == trace.LsuFence {
		in.Pop()
		blk.fenceTrace = tr
		blk.fenceLocked = true
		return true
	}

	data, _ := tr.Data.(*trace.LsuData)
	req := memproto.NewLsuReq(u.numLanes)
	req.CID = tr.CID
	req.UUID = tr.UUID
	for i := 0; i < u.numLanes && i < len(data.MemAddrs); i++ {
		lane := tr.PID*u.numLanes + i
		if lane < len(tr.TMask) && tr.TMask[lane] {
			req.Mask[i] = true
			req.Addrs[i] = data.MemAddrs[i].Addr
		}
	}

	if tr.Lsu == trace.LsuStore {
		req.Write = true
		req.Tag = 0
		in.Pop()
		u.Out.Push(tr, 1)
		u.ReqOut[b].Push(req, 1)
		return true
	}

	if blk.table.Full() {
		if prev := tr.LogOnce(true); !prev {
			u.log.Debugf("lsu: trace %d stalled, block %d pending table full", tr.UUID, b)
		}
		return false
	}
	tr.LogOnce(false)

	tag, ok := blk.table.Allocate(tr, req)
	if !ok {
		return false
	}
	req.Tag = tag
	blk.pendingLoads += memproto.MaskCount(req.Mask)

	in.Pop()
	u.ReqOut[b].Push(req, 1)
	return true
}
