package lsu

import (
	"github.com/google/btree"

	"gitlab.com/akita/rvgpusim/memproto"
	"gitlab.com/akita/rvgpusim/trace"
)

// Entry is one outstanding LSU request: the trace it belongs to, and the
// lane mask still awaiting a response. RemainingMask starts out equal to
// the request's Mask and has bits cleared as LsuRsp messages arrive; the
// entry is released once RemainingMask goes to all-zero.
type Entry struct {
	Trace         *trace.Trace
	Req           memproto.LsuReq
	RemainingMask []bool
}

// freeSlot is a btree.Item wrapping a free tag index, ordered so the
// minimum (lowest free index) is always the allocation candidate,
// matching the "lowest free index" allocation rule of the Vortex
// HashTable<T> reference.
type freeSlot int

func (s freeSlot) Less(than btree.Item) bool {
	return s < than.(freeSlot)
}

// PendingTable is the LSU's bounded associative table of in-flight
// requests, keyed by tag. It never grows past capacity: once full,
// Allocate fails and the caller (LsuUnit) must stall and retry.
type PendingTable struct {
	capacity int
	entries  []*Entry
	free     *btree.BTree
	size     int
}

// NewPendingTable creates a table with room for exactly capacity
// outstanding tags, numbered [0, capacity).
func NewPendingTable(capacity int) *PendingTable {
	t := &PendingTable{
		capacity: capacity,
		entries:  make([]*Entry, capacity),
		free:     btree.New(8),
	}
	t.resetFreeList()
	return t
}

func (t *PendingTable) resetFreeList() {
	t.free.Clear(false)
	for i := 0; i < t.capacity; i++ {
		t.free.ReplaceOrInsert(freeSlot(i))
	}
	for i := range t.entries {
		t.entries[i] = nil
	}
	t.size = 0
}

// Full reports whether every tag is currently occupied.
func (t *PendingTable) Full() bool {
	return t.size == t.capacity
}

// Empty reports whether no tag is currently occupied.
func (t *PendingTable) Empty() bool {
	return t.size == 0
}

// Allocate claims the lowest free tag for tr/req and returns it. ok is
// false (and tag is meaningless) if the table is full.
func (t *PendingTable) Allocate(tr *trace.Trace, req memproto.LsuReq) (tag uint32, ok bool) {
	item := t.free.Min()
	if item == nil {
		return 0, false
	}
	idx := item.(freeSlot)
	t.free.Delete(idx)
	t.entries[int(idx)] = &Entry{
		Trace:         tr,
		Req:           req,
		RemainingMask: append([]bool(nil), req.Mask...),
	}
	t.size++
	return uint32(idx), true
}

// Contains reports whether tag is currently occupied.
func (t *PendingTable) Contains(tag uint32) bool {
	return int(tag) < t.capacity && t.entries[tag] != nil
}

// At returns the entry occupying tag, if any.
func (t *PendingTable) At(tag uint32) (*Entry, bool) {
	if !t.Contains(tag) {
		return nil, false
	}
	return t.entries[tag], true
}

// Subtract clears every bit set in respMask from tag's remaining mask and
// reports whether the entry is now fully satisfied (remaining mask is
// all-zero). It does not release the entry; call Release once the caller
// has finished with it.
func (t *PendingTable) Subtract(tag uint32, respMask []bool) (done bool) {
	e := t.entries[tag]
	e.RemainingMask = memproto.MaskAndNot(e.RemainingMask, respMask)
	return memproto.MaskIsZero(e.RemainingMask)
}

// Release frees tag, making it available for a future Allocate.
func (t *PendingTable) Release(tag uint32) {
	if !t.Contains(tag) {
		return
	}
	t.entries[tag] = nil
	t.size--
	t.free.ReplaceOrInsert(freeSlot(tag))
}

// Clear empties the table, releasing every occupied tag.
func (t *PendingTable) Clear() {
	t.resetFreeList()
}
