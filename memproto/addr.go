// Package memproto defines the wire-level request/response types that flow
// below the LSU: the per-lane LsuReq/LsuRsp bundle and the single-address
// MemReq/MemRsp used downstream of the LSU's memory adapter.
package memproto

// AddrType classifies a memory address into one of the three spaces the
// simulator recognizes.
type AddrType int

const (
	AddrGlobal AddrType = iota
	AddrShared
	AddrIO
)

func (t AddrType) String() string {
	switch t {
	case AddrGlobal:
		return "Global"
	case AddrShared:
		return "Shared"
	case AddrIO:
		return "IO"
	default:
		return "Unknown"
	}
}

// AddrSpace holds the address-range parameters used to classify an
// address, taken from config.Config so this package has no dependency on
// config (avoiding an import cycle; core/config own the authoritative
// values and pass them in).
type AddrSpace struct {
	IOBase      uint64
	IOEnd       uint64
	LMemBase    uint64
	LMemLog2Len uint64 // local/shared memory is 1 << LMemLog2Len bytes
	LMemEnabled bool
}

// Classify returns the AddrType of addr under this address space: IO
// range first, then shared/local range, else Global.
func (s AddrSpace) Classify(addr uint64) AddrType {
	if addr >= s.IOBase && addr < s.IOEnd {
		return AddrIO
	}
	if s.LMemEnabled {
		length := uint64(1) << s.LMemLog2Len
		if addr >= s.LMemBase && (addr-s.LMemBase) < length {
			return AddrShared
		}
	}
	return AddrGlobal
}
