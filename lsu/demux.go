package lsu

import (
	"gitlab.com/akita/rvgpusim/memproto"
	"gitlab.com/akita/rvgpusim/sim"
)

// demuxEntry tracks one in-flight read request's expected and so-far-
// received lane mask, whether it was split across both legs or answered
// entirely by one, so a response is forwarded upward only once every
// expected lane has arrived.
type demuxEntry struct {
	total    []bool
	received []bool
	cid      int
	uuid     uint64
}

// Demux is LocalMemDemux: it inspects each lane of an outgoing LsuReq and
// routes it to the local/shared-memory port or the data-cache port by
// address, splitting mixed requests into two concurrent sub-requests that
// retain the original tag, cid and uuid. Write requests always carry tag
// 0, since no response correlation is needed for them, and are routed
// but never merged or forwarded upward.
type Demux struct {
	sim.ComponentBase

	In  *sim.Port[memproto.LsuReq]
	Out *sim.Port[memproto.LsuRsp]

	LocalReqOut *sim.Port[memproto.LsuReq]
	LocalRspIn  *sim.Port[memproto.LsuRsp]
	CacheReqOut *sim.Port[memproto.LsuReq]
	CacheRspIn  *sim.Port[memproto.LsuRsp]

	space memproto.AddrSpace
	delay uint64

	pending map[uint32]*demuxEntry
}

// NewDemux creates a Demux classifying addresses under space, forwarding
// every split leg with the given one-way delay (>= 1).
func NewDemux(engine *sim.Engine, name string, space memproto.AddrSpace, delay uint64) *Demux {
	return &Demux{
		ComponentBase: sim.NewComponentBase(name),
		In:            sim.NewPort[memproto.LsuReq](engine, name+".in"),
		Out:           sim.NewPort[memproto.LsuRsp](engine, name+".out"),
		LocalReqOut:   sim.NewPort[memproto.LsuReq](engine, name+".localReqOut"),
		LocalRspIn:    sim.NewPort[memproto.LsuRsp](engine, name+".localRspIn"),
		CacheReqOut:   sim.NewPort[memproto.LsuReq](engine, name+".cacheReqOut"),
		CacheRspIn:    sim.NewPort[memproto.LsuRsp](engine, name+".cacheRspIn"),
		space:         space,
		delay:         delay,
		pending:       make(map[uint32]*demuxEntry),
	}
}

// Reset drops every in-flight merge entry and clears all ports.
func (d *Demux) Reset() {
	d.pending = make(map[uint32]*demuxEntry)
	d.In.Reset()
	d.Out.Reset()
	d.LocalReqOut.Reset()
	d.LocalRspIn.Reset()
	d.CacheReqOut.Reset()
	d.CacheRspIn.Reset()
}

// Tick drains both response legs before admitting a new outgoing request,
// mirroring the response-before-request phase order used throughout this
// pipeline.
func (d *Demux) Tick(now uint64) bool {
	progress := false
	if d.tickLeg(d.LocalRspIn) {
		progress = true
	}
	if d.tickLeg(d.CacheRspIn) {
		progress = true
	}
	if d.tickRequest() {
		progress = true
	}
	return progress
}

func (d *Demux) tickLeg(leg *sim.Port[memproto.LsuRsp]) bool {
	rsp, ok := leg.Front()
	if !ok {
		return false
	}
	leg.Pop()
	e, ok := d.pending[rsp.Tag]
	if !ok {
		return true // no read is waiting on this tag (e.g. a write ack)
	}
	e.received = memproto.MaskOr(e.received, rsp.Mask)
	if memproto.MaskSubset(e.total, e.received) {
		d.Out.Push(memproto.LsuRsp{Mask: e.received, Tag: rsp.Tag, CID: e.cid, UUID: e.uuid}, 1)
		delete(d.pending, rsp.Tag)
	}
	return true
}

func (d *Demux) tickRequest() bool {
	req, ok := d.In.Front()
	if !ok {
		return false
	}
	d.In.Pop()

	localMask := make([]bool, len(req.Mask))
	cacheMask := make([]bool, len(req.Mask))
	for i, set := range req.Mask {
		if !set {
			continue
		}
		if d.space.Classify(req.Addrs[i]) == memproto.AddrShared {
			localMask[i] = true
		} else {
			cacheMask[i] = true
		}
	}

	if !req.Write {
		d.pending[req.Tag] = &demuxEntry{
			total:    req.Mask,
			received: make([]bool, len(req.Mask)),
			cid:      req.CID,
			uuid:     req.UUID,
		}
	}

	if !memproto.MaskIsZero(localMask) {
		sub := req
		sub.Mask = localMask
		d.LocalReqOut.Push(sub, d.delay)
	}
	if !memproto.MaskIsZero(cacheMask) {
		sub := req
		sub.Mask = cacheMask
		d.CacheReqOut.Push(sub, d.delay)
	}
	return true
}
