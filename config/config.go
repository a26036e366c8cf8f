// Package config holds the simulator's recognized configuration
// parameters and their defaults, as a flat struct with a Default()
// constructor.
package config

import (
	"gitlab.com/akita/rvgpusim/alu"
	"gitlab.com/akita/rvgpusim/arbiter"
	"gitlab.com/akita/rvgpusim/fpu"
	"gitlab.com/akita/rvgpusim/memproto"
)

// Config is the full set of recognized simulator parameters.
type Config struct {
	NumCores   int
	NumWarps   int
	NumThreads int
	IssueWidth int

	NumLsuBlocks int
	NumLsuLanes  int
	LsuTableCap  int
	NumMemBanks  int

	LatencyIMul  int
	LatencyFMA   int
	LatencyFDiv  int
	LatencyFSqrt int
	LatencyFCvt  int
	XLen         int

	MuxPolicy    arbiter.Policy
	SwitchPolicy arbiter.Policy

	AddrSpace memproto.AddrSpace

	NumExternalUnits int // shared raster/tex/om units across the device

	MemLatency uint64 // IdealMemory fixed response latency, cycles
}

// Default returns a single-core configuration sized for unit tests:
// 1 core, 4 warps, 32 threads, issue width 4, one LSU block
// with 4 lanes, an 8-entry pending table, 4 memory banks, and the fixed
// ALU/FPU base latencies.
func Default() Config {
	return Config{
		NumCores:   1,
		NumWarps:   4,
		NumThreads: 32,
		IssueWidth: 4,

		NumLsuBlocks: 1,
		NumLsuLanes:  4,
		LsuTableCap:  8,
		NumMemBanks:  4,

		LatencyIMul:  4,
		LatencyFMA:   4,
		LatencyFDiv:  8,
		LatencyFSqrt: 8,
		LatencyFCvt:  2,
		XLen:         32,

		MuxPolicy:    arbiter.RoundRobin,
		SwitchPolicy: arbiter.RoundRobin,

		AddrSpace: memproto.AddrSpace{
			IOBase:      0xFFFF0000,
			IOEnd:       0xFFFFFFFF,
			LMemBase:    0x00000000,
			LMemLog2Len: 14, // 16KiB shared memory per block
			LMemEnabled: true,
		},

		NumExternalUnits: 1,
		MemLatency:       100,
	}
}

// ALULatencies projects the IMUL/XLEN parameters alu.Unit needs.
func (c Config) ALULatencies() alu.Latencies {
	return alu.Latencies{IMul: c.LatencyIMul, XLen: c.XLen}
}

// FPULatencies projects the FMA/FDIV/FSQRT/FCVT parameters fpu.Unit
// needs.
func (c Config) FPULatencies() fpu.Latencies {
	return fpu.Latencies{Fma: c.LatencyFMA, Fdiv: c.LatencyFDiv, Fsqrt: c.LatencyFSqrt, Fcvt: c.LatencyFCvt}
}
