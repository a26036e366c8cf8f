// Package core assembles the per-core warp scheduler, functional units,
// and the commit/barrier/wspawn coordination that the functional units
// call back into.
package core

// Warp holds one warp's scheduling-relevant state. Instruction fetch and
// decode are out of this simulator's scope; Warp only tracks what the
// scheduler and the functional-unit callbacks need.
type Warp struct {
	Active  bool
	Stalled bool
	PC      uint64
	TMask   []bool
}

// NewWarp creates an inactive warp with numThreads lanes, all masked off.
func NewWarp(numThreads int) *Warp {
	return &Warp{TMask: make([]bool, numThreads)}
}

// Ready reports whether the scheduler may issue from this warp: active
// and not stalled. Fetch-queue-full backpressure is modeled by the
// issuing stage declining to pull a ready warp, not by Warp itself.
func (w *Warp) Ready() bool {
	return w.Active && !w.Stalled
}
