package memproto

// LsuReq is a bundle of up to NumLanes per-thread addresses sharing one
// tag, the unit of work the LSU hands to LocalMemDemux/LsuMemAdapter.
type LsuReq struct {
	Mask  []bool   // lane validity bitset, width = NumLanes
	Addrs []uint64 // per-lane address, valid where Mask[i] is set
	Write bool
	Tag   uint32
	CID   int
	UUID  uint64
}

// NewLsuReq allocates an LsuReq with numLanes lanes, all initially
// invalid.
func NewLsuReq(numLanes int) LsuReq {
	return LsuReq{
		Mask:  make([]bool, numLanes),
		Addrs: make([]uint64, numLanes),
	}
}

// MaskCount returns the number of set bits in m.
func MaskCount(m []bool) int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}

// MaskOr returns a new mask that is the bitwise OR of a and b.
func MaskOr(a, b []bool) []bool {
	out := make([]bool, len(a))
	for i := range a {
		out[i] = a[i] || (i < len(b) && b[i])
	}
	return out
}

// MaskAndNot returns a new mask equal to a with every bit set in b
// cleared: the "subtract remaining mask" operation the pending-load
// table relies on.
func MaskAndNot(a, b []bool) []bool {
	out := make([]bool, len(a))
	for i := range a {
		out[i] = a[i] && !(i < len(b) && b[i])
	}
	return out
}

// MaskIsZero reports whether every bit in m is clear.
func MaskIsZero(m []bool) bool {
	for _, b := range m {
		if b {
			return false
		}
	}
	return true
}

// MaskSubset reports whether every bit set in sub is also set in super,
// the invariant LsuRsp.Mask must satisfy against its LsuReq.Mask.
func MaskSubset(sub, super []bool) bool {
	for i, b := range sub {
		if b && !(i < len(super) && super[i]) {
			return false
		}
	}
	return true
}

// LsuRsp is a (possibly partial) response to an LsuReq. Its Mask is always
// a subset of the originating request's Mask; the set of responses for one
// tag, OR'd together, equals the original request mask.
type LsuRsp struct {
	Mask []bool
	Tag  uint32
	CID  int
	UUID uint64
}

// MemReq is a single-address wire-level transaction used downstream of the
// LSU's memory adapter.
type MemReq struct {
	Addr  uint64
	Write bool
	Type  AddrType
	Tag   uint32
	CID   int
	UUID  uint64
}

// GetTag implements arbiter.TaggedMessage.
func (r *MemReq) GetTag() uint32 { return r.Tag }

// SetTag implements arbiter.TaggedMessage.
func (r *MemReq) SetTag(tag uint32) { r.Tag = tag }

// MemRsp is the single-address response to a MemReq, correlated by Tag.
type MemRsp struct {
	Tag  uint32
	CID  int
	UUID uint64
}

// GetTag implements arbiter.TaggedMessage.
func (r *MemRsp) GetTag() uint32 { return r.Tag }

// SetTag implements arbiter.TaggedMessage.
func (r *MemRsp) SetTag(tag uint32) { r.Tag = tag }
