package arbiter

import "gitlab.com/akita/rvgpusim/sim"

// Switch is a bidirectional N-to-M arbiter: it forwards requests from N
// producers to M consumers the same way Mux does, but additionally
// prefixes each forwarded request's tag with the local index of its
// producer within its group of R = N/M, so that a later response carrying
// that tag can be decoded and routed back to the correct one of the N
// original producers. This is the generic shape behind routing LSU
// requests to multiple memory ports and demultiplexing their responses,
// grounded on the Vortex Switch<Req,Rsp> template.
type Switch[Req TaggedMessage, Rsp TaggedMessage] struct {
	sim.ComponentBase

	policy     Policy
	numInputs  int
	numOutputs int
	groupSize  int // R = numInputs / numOutputs
	lgGroup    int // ceil(log2(R)) bits reserved for the local index
	reqDelay   uint64

	reqIn   []*sim.Port[Req]
	reqOut  []*sim.Port[Req]
	rspIn   []*sim.Port[Rsp]
	rspOut  []*sim.Port[Rsp]
	cursors []int
	bypass  bool
}

// NewSwitch creates a Switch with numInputs request producers routed to
// numOutputs request consumers, and the matching reverse response path.
// Requests forward with reqDelay (>= 1); responses always forward with a
// fixed 1-cycle delay. numInputs must be an integer multiple of
// numOutputs.
func NewSwitch[Req TaggedMessage, Rsp TaggedMessage](engine *sim.Engine, name string, numInputs, numOutputs int, policy Policy, reqDelay uint64) *Switch[Req, Rsp] {
	if numInputs%numOutputs != 0 {
		panic("arbiter: Switch requires numInputs to be a multiple of numOutputs")
	}
	groupSize := numInputs / numOutputs
	s := &Switch[Req, Rsp]{
		ComponentBase: sim.NewComponentBase(name),
		policy:        policy,
		numInputs:     numInputs,
		numOutputs:    numOutputs,
		groupSize:     groupSize,
		lgGroup:       log2Ceil(groupSize),
		reqDelay:      reqDelay,
		bypass:        numInputs == numOutputs,
	}
	s.reqIn = make([]*sim.Port[Req], numInputs)
	s.rspOut = make([]*sim.Port[Rsp], numInputs)
	for i := range s.reqIn {
		s.reqIn[i] = sim.NewPort[Req](engine, name+".reqIn")
		s.rspOut[i] = sim.NewPort[Rsp](engine, name+".rspOut")
	}
	s.reqOut = make([]*sim.Port[Req], numOutputs)
	s.rspIn = make([]*sim.Port[Rsp], numOutputs)
	for o := range s.reqOut {
		s.reqOut[o] = sim.NewPort[Req](engine, name+".reqOut")
		s.rspIn[o] = sim.NewPort[Rsp](engine, name+".rspIn")
	}
	if s.bypass {
		for i := range s.reqIn {
			s.reqIn[i].Bind(s.reqOut[i])
			s.rspIn[i].Bind(s.rspOut[i])
		}
	}
	s.cursors = make([]int, numOutputs)
	return s
}

// ReqIn returns the i'th request input port (one per producer).
func (s *Switch[Req, Rsp]) ReqIn(i int) *sim.Port[Req] { return s.reqIn[i] }

// ReqOut returns the o'th request output port (one per consumer).
func (s *Switch[Req, Rsp]) ReqOut(o int) *sim.Port[Req] { return s.reqOut[o] }

// RspIn returns the o'th response input port, fed by consumer o.
func (s *Switch[Req, Rsp]) RspIn(o int) *sim.Port[Rsp] { return s.rspIn[o] }

// RspOut returns the i'th response output port, delivering back to
// producer i.
func (s *Switch[Req, Rsp]) RspOut(i int) *sim.Port[Rsp] { return s.rspOut[i] }

// Reset clears cursors and every port's queue. Bypass binds survive.
func (s *Switch[Req, Rsp]) Reset() {
	for i := range s.cursors {
		s.cursors[i] = 0
	}
	for _, p := range s.reqIn {
		p.Reset()
	}
	for _, p := range s.reqOut {
		p.Reset()
	}
	for _, p := range s.rspIn {
		p.Reset()
	}
	for _, p := range s.rspOut {
		p.Reset()
	}
}

// Tick arbitrates one request grant per output (tagging it with the
// winning producer's local index) and drains every pending response,
// decoding its local index to route it back to the originating producer.
// Responses are always forwarded with a 1-cycle delay, matching the
// Vortex reference's fixed RSP_DELAY.
func (s *Switch[Req, Rsp]) Tick(now uint64) bool {
	if s.bypass {
		return false
	}
	progress := s.tickRequests()
	if s.tickResponses() {
		progress = true
	}
	return progress
}

func (s *Switch[Req, Rsp]) tickRequests() bool {
	progress := false
	for o := 0; o < s.numOutputs; o++ {
		base := o * s.groupSize
		start := 0
		if s.policy == RoundRobin {
			start = s.cursors[o]
		}
		for k := 0; k < s.groupSize; k++ {
			idx := (start + k) % s.groupSize
			in := s.reqIn[base+idx]
			req, ok := in.Front()
			if !ok {
				continue
			}
			in.Pop()
			req.SetTag((req.GetTag() << uint(s.lgGroup)) | uint32(idx))
			s.reqOut[o].Push(req, s.reqDelay)
			if s.policy == RoundRobin {
				s.cursors[o] = (idx + 1) % s.groupSize
			}
			progress = true
			break
		}
	}
	return progress
}

func (s *Switch[Req, Rsp]) tickResponses() bool {
	progress := false
	mask := uint32(s.groupSize - 1)
	for o := 0; o < s.numOutputs; o++ {
		rsp, ok := s.rspIn[o].Front()
		if !ok {
			continue
		}
		s.rspIn[o].Pop()
		localIdx := rsp.GetTag() & mask
		rsp.SetTag(rsp.GetTag() >> uint(s.lgGroup))
		origin := o*s.groupSize + int(localIdx)
		s.rspOut[origin].Push(rsp, 1)
		progress = true
	}
	return progress
}
