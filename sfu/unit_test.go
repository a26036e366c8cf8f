package sfu_test

import (
	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gitlab.com/akita/rvgpusim/internal/mocks"
	"gitlab.com/akita/rvgpusim/sfu"
	"gitlab.com/akita/rvgpusim/sim"
	"gitlab.com/akita/rvgpusim/trace"
	"gitlab.com/akita/rvgpusim/xlog"
)

var _ = Describe("Unit", func() {
	It("commits a TMC trace at the fixed local latency, leaving fetch-stall resume to the owning Core at commit", func() {
		engine := sim.NewEngine()
		log := xlog.New("test", xlog.LevelError)
		ctrl := gomock.NewController(GinkgoT())
		defer ctrl.Finish()
		mc := mocks.NewMockController(ctrl)

		u := sfu.NewUnit(engine, "sfu", 0, nil, nil, mc, log)
		engine.RegisterObject(u)
		engine.Reset()

		tr := trace.New(0, 1, 0, []bool{true}, true, true)
		tr.Unit = trace.UnitSFU
		tr.Sfu = trace.SfuTMC
		u.In.Push(tr, 1)

		// Dispatch on cycle 1, commit localLatency(4) cycles later: cycle 5.
		for i := 0; i < 4; i++ {
			engine.RunCycle()
		}
		Expect(u.Out.Empty()).To(BeTrue())
		engine.RunCycle()
		got, ok := u.Out.Pop()
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(tr))
	})

	It("routes RASTER/TEX/OM traces to their external unit and only the owning core's SFU drains the reply", func() {
		engine := sim.NewEngine()
		log := xlog.New("test", xlog.LevelError)
		ctrl := gomock.NewController(GinkgoT())
		defer ctrl.Finish()
		mcA := mocks.NewMockController(ctrl)
		mcB := mocks.NewMockController(ctrl)

		extOut := []*sim.Port[*trace.Trace]{sim.NewPort[*trace.Trace](engine, "ext.out")}
		extIn := []*sim.Port[*trace.Trace]{sim.NewPort[*trace.Trace](engine, "ext.in")}

		// a is registered before b, so the test only passes if tickDrain
		// genuinely filters by CID rather than just claiming whatever the
		// first-registered SFU happens to see first.
		a := sfu.NewUnit(engine, "sfuA", 0, extOut, extIn, mcA, log)
		b := sfu.NewUnit(engine, "sfuB", 1, extOut, extIn, mcB, log)
		engine.RegisterObject(a)
		engine.RegisterObject(b)
		engine.Reset()

		tr := trace.New(1, 2, 0, []bool{true}, false, false)
		tr.Unit = trace.UnitSFU
		tr.Sfu = trace.SfuRaster
		tr.Data = &trace.SfuExternalData{UnitIdx: 0}
		b.In.Push(tr, 1)
		engine.RunCycle() // cycle 1: dispatched to extOut[0]
		engine.RunCycle() // cycle 2
		engine.RunCycle() // cycle 3: externalDispatchDelay=2, now visible

		got, ok := extOut[0].Pop()
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(tr))

		extIn[0].Push(tr, 1)
		engine.RunCycle() // cycle 4
		engine.RunCycle() // cycle 5: sfuB claims it despite sfuA ticking first

		outB, okB := b.Out.Pop()
		Expect(okB).To(BeTrue())
		Expect(outB).To(Equal(tr))
		Expect(a.Out.Empty()).To(BeTrue())
	})

	It("resumes a warp only when its barrier arrival releases it", func() {
		engine := sim.NewEngine()
		log := xlog.New("test", xlog.LevelError)
		ctrl := gomock.NewController(GinkgoT())
		defer ctrl.Finish()
		mc := mocks.NewMockController(ctrl)
		mc.EXPECT().Barrier(0, 5, 2, 1).Return(true)
		mc.EXPECT().Resume(0, 1)

		u := sfu.NewUnit(engine, "sfu", 0, nil, nil, mc, log)
		engine.RegisterObject(u)
		engine.Reset()

		tr := trace.New(0, 1, 0, []bool{true}, true, false)
		tr.Unit = trace.UnitSFU
		tr.Sfu = trace.SfuBar
		tr.Data = &trace.SfuArgs{Arg1: 5, Arg2: 2}
		u.In.Push(tr, 1)
		engine.RunCycle()
	})

	It("wakes the spawning warp when Wspawn reports it should be released", func() {
		engine := sim.NewEngine()
		log := xlog.New("test", xlog.LevelError)
		ctrl := gomock.NewController(GinkgoT())
		defer ctrl.Finish()
		mc := mocks.NewMockController(ctrl)
		mc.EXPECT().Wspawn(0, 4, uint64(0x1000)).Return(true)
		mc.EXPECT().Resume(0, 0)

		u := sfu.NewUnit(engine, "sfu", 0, nil, nil, mc, log)
		engine.RegisterObject(u)
		engine.Reset()

		tr := trace.New(0, 0, 0, []bool{true}, true, false)
		tr.Unit = trace.UnitSFU
		tr.Sfu = trace.SfuWSpawn
		tr.Data = &trace.SfuArgs{Arg1: 4, Arg2: 0x1000}
		u.In.Push(tr, 1)
		engine.RunCycle()
	})

	It("leaves the spawning warp stalled when Wspawn reports it should not be released", func() {
		engine := sim.NewEngine()
		log := xlog.New("test", xlog.LevelError)
		ctrl := gomock.NewController(GinkgoT())
		defer ctrl.Finish()
		mc := mocks.NewMockController(ctrl)
		mc.EXPECT().Wspawn(0, 4, uint64(0x1000)).Return(false)

		u := sfu.NewUnit(engine, "sfu", 0, nil, nil, mc, log)
		engine.RegisterObject(u)
		engine.Reset()

		tr := trace.New(0, 0, 0, []bool{true}, true, false)
		tr.Unit = trace.UnitSFU
		tr.Sfu = trace.SfuWSpawn
		tr.Data = &trace.SfuArgs{Arg1: 4, Arg2: 0x1000}
		u.In.Push(tr, 1)
		engine.RunCycle()
	})
})
