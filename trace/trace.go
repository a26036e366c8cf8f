package trace

import "sync/atomic"

var uuidCounter uint64

// NextSerial returns a process-wide monotonically increasing serial number.
// New stamps every Trace.UUID with it; core.Core.Dispatch keeps the UUID it
// is given.
func NextSerial() uint64 {
	return atomic.AddUint64(&uuidCounter, 1)
}

// MemAddrSize is one thread's (address, size) pair within an LSU trace's
// payload, mirroring mem_addr_size_t in the Vortex simx reference.
type MemAddrSize struct {
	Addr uint64
	Size uint32
}

// Data is the discriminated payload a Trace carries; its concrete type is
// implied by the Trace's Unit/sub-kind and is opaque to every stage except
// the functional unit that interprets it.
type Data interface {
	isTraceData()
}

// LsuData carries one (addr, size) pair per thread for an LSU trace.
type LsuData struct {
	MemAddrs []MemAddrSize
}

func (*LsuData) isTraceData() {}

// SfuArgs carries the two 64-bit arguments BAR and WSPAWN traces need:
// BAR uses (BarID, ExpectedCount); WSPAWN uses (NumWarps, StartPC).
type SfuArgs struct {
	Arg1 uint64
	Arg2 uint64
}

func (*SfuArgs) isTraceData() {}

// SfuExternalData carries the external graphics-unit index a RASTER/TEX/OM
// trace is routed to.
type SfuExternalData struct {
	UnitIdx int
}

func (*SfuExternalData) isTraceData() {}

// Trace is one unit of work flowing through the pipeline: a (partial)
// instruction belonging to one warp, shared by reference among every stage
// that concurrently holds it until it commits.
type Trace struct {
	UUID  uint64
	CID   int    // owning core id
	WID   int    // warp id
	PID   int    // packet/partition id within the warp
	TMask []bool // per-thread active mask, width = threads per warp

	EOP         bool // true on the last trace of a multi-cycle instruction
	FetchStall  bool // issuing warp must pause until this trace commits

	Unit Unit
	Alu  AluType
	Fpu  FpuType
	Lsu  LsuType
	Sfu  SfuType

	Data Data

	Failed bool // set when a downstream stage reports a failure

	loggedFull bool
}

// New creates a Trace for the given core, warp and partition, stamping it
// with a fresh serial UUID. Unit and sub-kind are left at their zero values
// for the caller to set.
func New(cid, wid, pid int, tmask []bool, eop, fetchStall bool) *Trace {
	return &Trace{
		UUID:       NextSerial(),
		CID:        cid,
		WID:        wid,
		PID:        pid,
		TMask:      tmask,
		EOP:        eop,
		FetchStall: fetchStall,
	}
}

// LogOnce mirrors trace->log_once(bool) in the Vortex reference: it
// records whether the trace has already logged a backpressure event, and
// returns the *previous* value so the caller can tell whether this call
// represents a transition. The LSU uses this to log "pending table full"
// exactly once while a trace is stalled, and to clear it once admitted.
func (t *Trace) LogOnce(v bool) bool {
	prev := t.loggedFull
	t.loggedFull = v
	return prev
}
