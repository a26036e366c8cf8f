package memsim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gitlab.com/akita/rvgpusim/memproto"
	"gitlab.com/akita/rvgpusim/memsim"
	"gitlab.com/akita/rvgpusim/sim"
)

var _ = Describe("IdealMemory", func() {
	It("answers a request with a tag-correlated response after its fixed latency", func() {
		engine := sim.NewEngine()
		m := memsim.NewIdealMemory(engine, "mem", 3)
		engine.RegisterObject(m)
		engine.Reset()

		m.In.Push(memproto.MemReq{Addr: 0x100, Tag: 9, CID: 2, UUID: 77}, 1)

		// Push visible at cycle 1, admitted and response scheduled for
		// cycle 1+3=4.
		for i := 0; i < 3; i++ {
			engine.RunCycle()
		}
		Expect(m.Out.Empty()).To(BeTrue())
		engine.RunCycle()

		rsp, ok := m.Out.Pop()
		Expect(ok).To(BeTrue())
		Expect(rsp).To(Equal(memproto.MemRsp{Tag: 9, CID: 2, UUID: 77}))
	})

	It("admits at most one request per cycle", func() {
		engine := sim.NewEngine()
		m := memsim.NewIdealMemory(engine, "mem", 1)
		engine.RegisterObject(m)
		engine.Reset()

		m.In.Push(memproto.MemReq{Addr: 0x0, Tag: 1}, 1)
		m.In.Push(memproto.MemReq{Addr: 0x8, Tag: 2}, 1)

		engine.RunCycle() // cycle 1: both visible on In, only one popped
		engine.RunCycle() // cycle 2: first response visible, second admitted

		rsp, ok := m.Out.Pop()
		Expect(ok).To(BeTrue())
		Expect(rsp.Tag).To(Equal(uint32(1)))
		Expect(m.Out.Empty()).To(BeTrue())

		engine.RunCycle() // cycle 3: second response visible
		rsp2, ok := m.Out.Pop()
		Expect(ok).To(BeTrue())
		Expect(rsp2.Tag).To(Equal(uint32(2)))
	})
})
