package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gitlab.com/akita/rvgpusim/sim"
)

var _ = Describe("Engine and Port", func() {
	It("delivers a push after exactly `delay` cycles", func() {
		engine := sim.NewEngine()
		p := sim.NewPort[int](engine, "p")
		engine.Reset()

		p.Push(42, 3)
		engine.RunCycle() // cycle 1
		Expect(p.Empty()).To(BeTrue())
		engine.RunCycle() // cycle 2
		Expect(p.Empty()).To(BeTrue())
		engine.RunCycle() // cycle 3
		Expect(p.Empty()).To(BeFalse())

		v, ok := p.Pop()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(42))
	})

	It("panics on a sub-1-cycle delay", func() {
		engine := sim.NewEngine()
		p := sim.NewPort[int](engine, "p")
		Expect(func() { p.Push(1, 0) }).To(Panic())
	})

	It("preserves FIFO order for same-cycle pushes", func() {
		engine := sim.NewEngine()
		p := sim.NewPort[int](engine, "p")
		engine.Reset()

		p.Push(1, 1)
		p.Push(2, 1)
		engine.RunCycle()

		v1, _ := p.Pop()
		v2, _ := p.Pop()
		Expect(v1).To(Equal(1))
		Expect(v2).To(Equal(2))
	})

	It("bypasses the queue when bound", func() {
		engine := sim.NewEngine()
		a := sim.NewPort[int](engine, "a")
		b := sim.NewPort[int](engine, "b")
		a.Bind(b)
		engine.Reset()

		a.Push(7, 1)
		engine.RunCycle()

		Expect(a.Empty()).To(BeTrue())
		v, ok := b.Pop()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(7))
	})

	It("ticks every registered object in registration order", func() {
		engine := sim.NewEngine()
		var order []string
		engine.RegisterObject(&recorder{name: "first", order: &order})
		engine.RegisterObject(&recorder{name: "second", order: &order})
		engine.Reset()

		engine.RunCycle()

		Expect(order).To(Equal([]string{"first", "second"}))
	})

	It("Run stops after idleCycles consecutive quiescent cycles", func() {
		engine := sim.NewEngine()
		engine.Reset()
		ran := engine.Run(1000, 5)
		Expect(ran).To(Equal(uint64(5)))
	})
})

type recorder struct {
	name  string
	order *[]string
}

func (r *recorder) Name() string { return r.name }
func (r *recorder) Reset()       {}
func (r *recorder) Tick(now uint64) bool {
	*r.order = append(*r.order, r.name)
	return false
}
