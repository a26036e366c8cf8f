package alu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gitlab.com/akita/rvgpusim/alu"
	"gitlab.com/akita/rvgpusim/sim"
	"gitlab.com/akita/rvgpusim/trace"
	"gitlab.com/akita/rvgpusim/xlog"
)

var _ = Describe("Unit", func() {
	It("dispatches ARITH at the fixed 4-cycle latency", func() {
		engine := sim.NewEngine()
		log := xlog.New("test", xlog.LevelError)

		u := alu.NewUnit(engine, "alu", alu.Latencies{IMul: 3, XLen: 32}, log)
		engine.RegisterObject(u)
		engine.Reset()

		tr := trace.New(0, 0, 0, []bool{true}, false, false)
		tr.Unit = trace.UnitALU
		tr.Alu = trace.AluArith
		u.In.Push(tr, 1)

		for i := 0; i < 4; i++ {
			engine.RunCycle()
		}
		Expect(u.Out.Empty()).To(BeTrue())
		engine.RunCycle()

		got, ok := u.Out.Pop()
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(tr))
	})

	It("adds the configured IMul latency on top of the base 2 cycles", func() {
		engine := sim.NewEngine()
		log := xlog.New("test", xlog.LevelError)

		u := alu.NewUnit(engine, "alu", alu.Latencies{IMul: 5, XLen: 32}, log)
		engine.RegisterObject(u)
		engine.Reset()

		tr := trace.New(0, 0, 0, []bool{true}, false, false)
		tr.Unit = trace.UnitALU
		tr.Alu = trace.AluIMul
		u.In.Push(tr, 1)

		// Dispatch happens on cycle 1 (the cycle the push becomes visible),
		// and IMul(5)+2 = 7 cycles later the result lands on Out: cycle 8.
		for i := 0; i < 7; i++ {
			engine.RunCycle()
		}
		Expect(u.Out.Empty()).To(BeTrue())
		engine.RunCycle()
		_, ok := u.Out.Pop()
		Expect(ok).To(BeTrue())
	})

	It("adds the configured IDiv latency derived from XLen", func() {
		engine := sim.NewEngine()
		log := xlog.New("test", xlog.LevelError)

		u := alu.NewUnit(engine, "alu", alu.Latencies{IMul: 3, XLen: 4}, log)
		engine.RegisterObject(u)
		engine.Reset()

		tr := trace.New(0, 0, 0, []bool{true}, false, false)
		tr.Unit = trace.UnitALU
		tr.Alu = trace.AluIDiv
		u.In.Push(tr, 1)

		// XLen(4)+2 = 6 cycles after cycle-1 dispatch: visible at cycle 7.
		for i := 0; i < 6; i++ {
			engine.RunCycle()
		}
		Expect(u.Out.Empty()).To(BeTrue())
		engine.RunCycle()
		_, ok := u.Out.Pop()
		Expect(ok).To(BeTrue())
	})
})
