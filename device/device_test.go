package device_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gitlab.com/akita/rvgpusim/config"
	"gitlab.com/akita/rvgpusim/device"
	"gitlab.com/akita/rvgpusim/trace"
	"gitlab.com/akita/rvgpusim/xlog"
)

var _ = Describe("Device", func() {
	It("routes a dispatched load through demux/adapter/memory and back to commit", func() {
		cfg := config.Default()
		cfg.NumCores = 1
		cfg.NumWarps = 1
		cfg.NumThreads = 1
		cfg.IssueWidth = 1
		cfg.NumLsuBlocks = 1
		cfg.NumLsuLanes = 1
		cfg.NumMemBanks = 1
		cfg.LsuTableCap = 2
		cfg.MemLatency = 3

		log := xlog.New("test", xlog.LevelError)
		dev := device.New(cfg, log)
		dev.Engine.Reset()

		c := dev.Cores[0]
		c.Warps[0].Active = true

		load := trace.New(c.ID, 0, 0, []bool{true}, true, true)
		load.Unit = trace.UnitLSU
		load.Lsu = trace.LsuLoad
		load.Data = &trace.LsuData{MemAddrs: []trace.MemAddrSize{{Addr: 0x10000, Size: 4}}} // global, outside the 16KiB local window
		c.Dispatch(0, load)

		ran := dev.Engine.Run(200, 20)
		Expect(ran).To(BeNumerically(">", 0))
		Expect(c.Commit).To(ContainElement(load))
		Expect(c.Warps[0].Stalled).To(BeFalse())
	})

	It("commits an ALU trace independently of the LSU path", func() {
		cfg := config.Default()
		cfg.NumCores = 1
		cfg.NumWarps = 1
		cfg.NumThreads = 1
		cfg.IssueWidth = 1

		log := xlog.New("test", xlog.LevelError)
		dev := device.New(cfg, log)
		dev.Engine.Reset()

		c := dev.Cores[0]
		c.Warps[0].Active = true

		arith := trace.New(c.ID, 0, 0, []bool{true}, true, true)
		arith.Unit = trace.UnitALU
		arith.Alu = trace.AluArith
		c.Dispatch(0, arith)

		dev.Engine.Run(50, 20)
		Expect(c.Commit).To(ContainElement(arith))
	})
})
