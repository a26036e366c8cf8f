package lsu

import (
	"gitlab.com/akita/rvgpusim/memproto"
	"gitlab.com/akita/rvgpusim/sim"
)

// laneSlot remembers which lane and correlation fields an outstanding
// scalar MemReq belongs to, so the matching MemRsp (which carries only a
// tag) can be turned back into a one-lane LsuRsp. Slots are consumed in
// FIFO order per bank, relying on a bank's responses arriving in the
// order its requests were issued.
type laneSlot struct {
	lane  int
	tag   uint32
	cid   int
	uuid  uint64
	write bool
}

// Adapter is LsuMemAdapter: it fans a vector LsuReq out into up to
// NumLanes concurrent scalar MemReqs, one per valid lane, each placed on
// output bank `lane % NumBanks`. Responses are forwarded upward
// one-lane-at-a-time as they arrive rather than batched, since partial
// delivery to the LSU's pending table is explicitly permitted. Bank
// replies to write lanes are consumed here and not forwarded, since write
// requests share tag 0 with the first read tag.
type Adapter struct {
	sim.ComponentBase

	In  *sim.Port[memproto.LsuReq]
	Out *sim.Port[memproto.LsuRsp]

	ReqOut []*sim.Port[memproto.MemReq]
	RspIn  []*sim.Port[memproto.MemRsp]

	numLanes int
	kind     memproto.AddrType
	queues   [][]laneSlot // per bank, FIFO of slots awaiting a response
}

// NewAdapter creates an Adapter serving numLanes lanes over numBanks
// output ports, stamping every outgoing MemReq with kind (the address
// space this adapter's leg exclusively serves).
func NewAdapter(engine *sim.Engine, name string, numLanes, numBanks int, kind memproto.AddrType) *Adapter {
	a := &Adapter{
		ComponentBase: sim.NewComponentBase(name),
		In:            sim.NewPort[memproto.LsuReq](engine, name+".in"),
		Out:           sim.NewPort[memproto.LsuRsp](engine, name+".out"),
		numLanes:      numLanes,
		kind:          kind,
	}
	a.ReqOut = make([]*sim.Port[memproto.MemReq], numBanks)
	a.RspIn = make([]*sim.Port[memproto.MemRsp], numBanks)
	a.queues = make([][]laneSlot, numBanks)
	for b := 0; b < numBanks; b++ {
		a.ReqOut[b] = sim.NewPort[memproto.MemReq](engine, name+".reqOut")
		a.RspIn[b] = sim.NewPort[memproto.MemRsp](engine, name+".rspIn")
	}
	return a
}

// Reset drops every in-flight lane slot and clears all ports.
func (a *Adapter) Reset() {
	for b := range a.queues {
		a.queues[b] = nil
	}
	a.In.Reset()
	a.Out.Reset()
	for _, p := range a.ReqOut {
		p.Reset()
	}
	for _, p := range a.RspIn {
		p.Reset()
	}
}

// Tick drains bank responses before fanning out a new request, matching
// this pipeline's response-before-request phase convention.
func (a *Adapter) Tick(now uint64) bool {
	progress := false
	for b := range a.RspIn {
		if a.tickBankResponse(b) {
			progress = true
		}
	}
	if a.tickRequest() {
		progress = true
	}
	return progress
}

func (a *Adapter) tickBankResponse(b int) bool {
	rsp, ok := a.RspIn[b].Front()
	if !ok {
		return false
	}
	a.RspIn[b].Pop()

	q := a.queues[b]
	if len(q) == 0 {
		return true
	}
	slot := q[0]
	a.queues[b] = q[1:]
	if slot.write {
		return true
	}

	mask := make([]bool, a.numLanes)
	mask[slot.lane] = true
	a.Out.Push(memproto.LsuRsp{Mask: mask, Tag: slot.tag, CID: slot.cid, UUID: slot.uuid}, 1)
	_ = rsp
	return true
}

func (a *Adapter) tickRequest() bool {
	req, ok := a.In.Front()
	if !ok {
		return false
	}
	a.In.Pop()

	numBanks := len(a.ReqOut)
	for i := 0; i < a.numLanes && i < len(req.Mask); i++ {
		if !req.Mask[i] {
			continue
		}
		bank := i % numBanks
		a.ReqOut[bank].Push(memproto.MemReq{
			Addr:  req.Addrs[i],
			Write: req.Write,
			Type:  a.kind,
			Tag:   req.Tag,
			CID:   req.CID,
			UUID:  req.UUID,
		}, 1)
		a.queues[bank] = append(a.queues[bank], laneSlot{lane: i, tag: req.Tag, cid: req.CID, uuid: req.UUID, write: req.Write})
	}
	return true
}
