package core

// Controller is the callback surface Core exposes to sfu.Unit for the
// bespoke BAR/WSPAWN semantics that can't wait for Core's generic
// commit-time resume. alu.Unit and the generic SFU sub-kinds need no
// callback at all: their warp resume happens centrally in Core.Tick.
type Controller interface {
	Resume(cid, wid int)
	// Wspawn activates numWarps warps starting at startPC and reports
	// whether the spawning warp itself should be released.
	Wspawn(cid, numWarps int, startPC uint64) bool
	Barrier(cid, barID, expectedCount, wid int) bool
}

var _ Controller = (*Core)(nil)
