package arbiter_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gitlab.com/akita/rvgpusim/arbiter"
	"gitlab.com/akita/rvgpusim/sim"
)

var _ = Describe("Mux", func() {
	It("is a pure bypass when N == M", func() {
		engine := sim.NewEngine()
		m := arbiter.NewMux[int](engine, "mux", 2, 2, arbiter.Priority, 1)
		engine.RegisterObject(m)
		engine.Reset()

		m.In(0).Push(10, 1)
		m.In(1).Push(20, 1)
		engine.RunCycle()

		v0, ok0 := m.Out(0).Pop()
		v1, ok1 := m.Out(1).Pop()
		Expect(ok0).To(BeTrue())
		Expect(ok1).To(BeTrue())
		Expect(v0).To(Equal(10))
		Expect(v1).To(Equal(20))
	})

	It("gives every input equal service under RoundRobin over R cycles (S4)", func() {
		engine := sim.NewEngine()
		m := arbiter.NewMux[int](engine, "mux", 4, 1, arbiter.RoundRobin, 1)
		engine.RegisterObject(m)
		engine.Reset()

		counts := make([]int, 4)
		// Each cycle's grant becomes visible on Out one cycle later, so the
		// pop immediately following a RunCycle reports the *previous*
		// cycle's grant; one extra RunCycle flushes the 16th and final one.
		for cycle := 0; cycle < 16; cycle++ {
			for i := 0; i < 4; i++ {
				m.In(i).Push(i, 1)
			}
			engine.RunCycle()
			if v, ok := m.Out(0).Pop(); ok {
				counts[v]++
			}
		}
		engine.RunCycle()
		if v, ok := m.Out(0).Pop(); ok {
			counts[v]++
		}

		Expect(counts).To(Equal([]int{4, 4, 4, 4}))
	})

	It("always serves the lowest-index candidate under Priority", func() {
		engine := sim.NewEngine()
		m := arbiter.NewMux[int](engine, "mux", 4, 1, arbiter.Priority, 1)
		engine.RegisterObject(m)
		engine.Reset()

		for cycle := 0; cycle < 5; cycle++ {
			for i := 0; i < 4; i++ {
				m.In(i).Push(i, 1)
			}
			engine.RunCycle()
		}
		engine.RunCycle()
		v, ok := m.Out(0).Pop()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(0))
	})
})
