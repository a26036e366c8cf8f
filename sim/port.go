package sim

// Port is a typed, ordered FIFO connecting two simulation objects. Values
// pushed onto a port become visible to its consumer at cycle "now+delay",
// where delay is supplied at push time and must be at least 1. Values
// pushed to the same port in the same cycle become visible in push order.
type Port[T any] struct {
	name   string
	engine *Engine
	bound  *Port[T]
	queue  []T
}

// NewPort creates a port bound to the given engine's clock.
func NewPort[T any](engine *Engine, name string) *Port[T] {
	return &Port[T]{name: name, engine: engine}
}

// Name returns the port's name, used for diagnostics.
func (p *Port[T]) Name() string {
	return p.name
}

// Bind aliases this port onto target: every push to p is redirected to
// target instead, so p's own queue is never populated. Used to implement
// bypass mode in Mux/Switch when the arbiter degenerates to an identity
// connection (N == M).
func (p *Port[T]) Bind(target *Port[T]) {
	p.bound = target
}

// Push schedules v to become visible on this port (or its bind target)
// delay cycles from now. delay must be >= 1.
func (p *Port[T]) Push(v T, delay uint64) {
	if delay < 1 {
		panic("sim: Port.Push requires delay >= 1")
	}
	if p.bound != nil {
		p.bound.Push(v, delay)
		return
	}
	cycle := p.engine.Now() + delay
	p.engine.schedule(cycle, func() {
		p.queue = append(p.queue, v)
	})
}

// Empty reports whether the port currently has no visible value.
func (p *Port[T]) Empty() bool {
	return len(p.queue) == 0
}

// Front peeks at the oldest visible value without removing it.
func (p *Port[T]) Front() (T, bool) {
	var zero T
	if len(p.queue) == 0 {
		return zero, false
	}
	return p.queue[0], true
}

// Pop removes and returns the oldest visible value.
func (p *Port[T]) Pop() (T, bool) {
	v, ok := p.Front()
	if ok {
		p.queue = p.queue[1:]
	}
	return v, ok
}

// Reset clears every visible value. Pushes still in flight are held by the
// engine and are dropped by Engine.Reset, not here. Bound state is
// preserved so wiring set up at construction survives a reset.
func (p *Port[T]) Reset() {
	p.queue = nil
}
