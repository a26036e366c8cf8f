package sim

// Object is anything the engine advances one cycle at a time. reset()
// re-initializes internal state before cycle 0; Tick runs the object's
// per-cycle behavior and reports whether it made progress (moved, sent, or
// received anything), which the driver uses to detect a quiescent
// simulation.
type Object interface {
	Name() string
	Reset()
	Tick(now uint64) bool
}

// Engine is the single global clock driving every registered Object.
// Objects tick in registration order every cycle; port deliveries scheduled
// for a cycle are applied before any object ticks that cycle, so a push
// with delay == 1 made during cycle N is visible to every object's Tick at
// cycle N+1, honoring the engine's phase order (advance, deliver, tick).
type Engine struct {
	now     uint64
	objects []Object
	events  map[uint64][]func()
}

// NewEngine creates an engine sitting at cycle 0 with no registered
// objects.
func NewEngine() *Engine {
	return &Engine{events: make(map[uint64][]func())}
}

// RegisterObject adds o to the tick list. Objects are ticked in the order
// they were registered; callers that need a 0-cycle producer-before-consumer
// handoff within one cycle MUST register the producer first (see spec
// §5 ordering guarantees) — otherwise insert a >=1-cycle port delay.
func (e *Engine) RegisterObject(o Object) {
	e.objects = append(e.objects, o)
}

// Now returns the current cycle index.
func (e *Engine) Now() uint64 {
	return e.now
}

// schedule arranges for fn to run during the deliver phase of the given
// cycle. Multiple schedules for the same cycle run in the order they were
// scheduled.
func (e *Engine) schedule(cycle uint64, fn func()) {
	e.events[cycle] = append(e.events[cycle], fn)
}

// Reset invokes reset() on every registered object, in registration order,
// and rewinds the clock to cycle 0. Must be called once before the first
// RunCycle.
func (e *Engine) Reset() {
	e.now = 0
	e.events = make(map[uint64][]func())
	for _, o := range e.objects {
		o.Reset()
	}
}

// RunCycle advances the clock by one cycle: it delivers every port push
// scheduled for the new cycle, then ticks every registered object exactly
// once, in registration order. It reports whether any object made
// progress.
func (e *Engine) RunCycle() bool {
	e.now++

	if fns, ok := e.events[e.now]; ok {
		for _, fn := range fns {
			fn()
		}
		delete(e.events, e.now)
	}

	madeProgress := false
	for _, o := range e.objects {
		if o.Tick(e.now) {
			madeProgress = true
		}
	}

	return madeProgress
}

// Run advances the clock until either maxCycles have elapsed or the
// simulation goes quiescent (idleCycles consecutive cycles with no
// progress from any object), whichever comes first. It returns the number
// of cycles actually run.
func (e *Engine) Run(maxCycles uint64, idleCycles uint64) uint64 {
	var idle uint64
	var ran uint64
	for ran < maxCycles {
		ran++
		if e.RunCycle() {
			idle = 0
		} else {
			idle++
			if idleCycles > 0 && idle >= idleCycles {
				break
			}
		}
	}
	return ran
}
