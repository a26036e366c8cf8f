package core

// barrierState latches arrivals for one (barID, expectedCount) pair:
// the set of warps currently parked on it.
type barrierState struct {
	expectedCount int
	arrived       map[int]bool
}

// BarrierTable tracks every live barrier for one core. Multi-core
// barriers are out of scope; this is purely core-local.
type BarrierTable struct {
	bars map[int]*barrierState
}

// NewBarrierTable creates an empty barrier table.
func NewBarrierTable() *BarrierTable {
	return &BarrierTable{bars: make(map[int]*barrierState)}
}

// Arrive latches wid's arrival at (barID, expectedCount). If this arrival
// completes the barrier, it returns (true, every warp id parked on it)
// so the caller can release them all; otherwise (false, nil) leaving wid
// stalled alongside whoever else has already arrived.
func (t *BarrierTable) Arrive(barID, expectedCount, wid int) (bool, []int) {
	b, ok := t.bars[barID]
	if !ok {
		b = &barrierState{expectedCount: expectedCount, arrived: make(map[int]bool)}
		t.bars[barID] = b
	}
	b.arrived[wid] = true
	if len(b.arrived) < b.expectedCount {
		return false, nil
	}
	parked := make([]int, 0, len(b.arrived))
	for w := range b.arrived {
		parked = append(parked, w)
	}
	delete(t.bars, barID)
	return true, parked
}

// Reset clears every in-flight barrier.
func (t *BarrierTable) Reset() {
	t.bars = make(map[int]*barrierState)
}
