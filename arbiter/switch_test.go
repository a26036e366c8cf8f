package arbiter_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gitlab.com/akita/rvgpusim/arbiter"
	"gitlab.com/akita/rvgpusim/memproto"
	"gitlab.com/akita/rvgpusim/sim"
)

var _ = Describe("Switch", func() {
	It("is a pure bypass when N == M", func() {
		engine := sim.NewEngine()
		s := arbiter.NewSwitch[*memproto.MemReq, *memproto.MemRsp](engine, "sw", 2, 2, arbiter.Priority, 1)
		engine.RegisterObject(s)
		engine.Reset()

		req := &memproto.MemReq{Addr: 0x100, Tag: 0x7}
		s.ReqIn(0).Push(req, 1)
		engine.RunCycle()

		got, ok := s.ReqOut(0).Pop()
		Expect(ok).To(BeTrue())
		Expect(got.Tag).To(Equal(uint32(0x7)))
	})

	It("prefix-encodes the local index on request and decodes it on response (S5)", func() {
		engine := sim.NewEngine()
		// R = numInputs/numOutputs = 2: inputs 0,1 share output 0.
		s := arbiter.NewSwitch[*memproto.MemReq, *memproto.MemRsp](engine, "sw", 2, 1, arbiter.Priority, 1)
		engine.RegisterObject(s)
		engine.Reset()

		req := &memproto.MemReq{Addr: 0x40, Tag: 0x5}
		s.ReqIn(1).Push(req, 1)
		engine.RunCycle() // cycle 1: request becomes visible to Tick, which
		// arbitrates it and re-pushes onto reqOut with a further reqDelay.
		engine.RunCycle() // cycle 2: the re-pushed request is now visible.

		outReq, ok := s.ReqOut(0).Pop()
		Expect(ok).To(BeTrue())
		// tag = (0x5 << 1) | 1 = 0xB
		Expect(outReq.Tag).To(Equal(uint32(0xB)))

		rsp := &memproto.MemRsp{Tag: outReq.Tag}
		s.RspIn(0).Push(rsp, 1)
		engine.RunCycle() // response becomes visible, Tick decodes and re-pushes
		engine.RunCycle() // the decoded response is now visible on rspOut

		outRsp, ok := s.RspOut(1).Pop()
		Expect(ok).To(BeTrue())
		Expect(outRsp.Tag).To(Equal(uint32(0x5)))

		_, wrongSide := s.RspOut(0).Pop()
		Expect(wrongSide).To(BeFalse())
	})

	It("round-trips every request to exactly one response at the originating input", func() {
		engine := sim.NewEngine()
		s := arbiter.NewSwitch[*memproto.MemReq, *memproto.MemRsp](engine, "sw", 4, 2, arbiter.RoundRobin, 2)
		engine.RegisterObject(s)
		engine.Reset()

		req0 := &memproto.MemReq{Addr: 0x10, Tag: 0x1}
		req2 := &memproto.MemReq{Addr: 0x20, Tag: 0x2}
		s.ReqIn(0).Push(req0, 1)
		s.ReqIn(2).Push(req2, 1)
		engine.RunCycle() // cycle 1: requests become visible, Tick arbitrates
		// and re-pushes each with reqDelay=2 cycles of further latency.
		engine.RunCycle() // cycle 2
		engine.RunCycle() // cycle 3: re-pushed requests are now visible

		out0, ok0 := s.ReqOut(0).Pop()
		Expect(ok0).To(BeTrue())
		out1, ok1 := s.ReqOut(1).Pop()
		Expect(ok1).To(BeTrue())

		s.RspIn(0).Push(&memproto.MemRsp{Tag: out0.Tag}, 1)
		s.RspIn(1).Push(&memproto.MemRsp{Tag: out1.Tag}, 1)
		engine.RunCycle() // responses become visible, Tick decodes and re-pushes
		engine.RunCycle() // decoded responses are now visible on rspOut

		rsp0, ok := s.RspOut(0).Pop()
		Expect(ok).To(BeTrue())
		Expect(rsp0.Tag).To(Equal(uint32(0x1)))

		rsp2, ok := s.RspOut(2).Pop()
		Expect(ok).To(BeTrue())
		Expect(rsp2.Tag).To(Equal(uint32(0x2)))
	})
})
