package arbiter

import "gitlab.com/akita/rvgpusim/sim"

// Mux is a request-only, N-to-M arbiter: each output port pulls from a
// fixed group of R = N/M candidate input ports, choosing one per cycle
// according to Policy. When N == M, Mux degenerates into a pure
// passthrough and binds each input directly onto its output (no
// arbitration delay, no tag games) exactly as the Vortex Mux<Type>
// template does when num_inputs == num_outputs.
type Mux[T any] struct {
	sim.ComponentBase

	policy     Policy
	numInputs  int
	numOutputs int
	groupSize  int // R = numInputs / numOutputs
	delay      uint64

	ins     []*sim.Port[T]
	outs    []*sim.Port[T]
	cursors []int // round-robin cursor per output, index into its group
	bypass  bool
}

// NewMux creates a Mux with numInputs request inputs feeding numOutputs
// request outputs, forwarding each grant with the given delay (>= 1).
// numInputs must be an integer multiple of numOutputs.
func NewMux[T any](engine *sim.Engine, name string, numInputs, numOutputs int, policy Policy, delay uint64) *Mux[T] {
	if numInputs%numOutputs != 0 {
		panic("arbiter: Mux requires numInputs to be a multiple of numOutputs")
	}
	m := &Mux[T]{
		ComponentBase: sim.NewComponentBase(name),
		policy:        policy,
		numInputs:     numInputs,
		numOutputs:    numOutputs,
		groupSize:     numInputs / numOutputs,
		delay:         delay,
		bypass:        numInputs == numOutputs,
	}
	m.ins = make([]*sim.Port[T], numInputs)
	m.outs = make([]*sim.Port[T], numOutputs)
	for i := range m.ins {
		m.ins[i] = sim.NewPort[T](engine, name+".in")
	}
	for o := range m.outs {
		m.outs[o] = sim.NewPort[T](engine, name+".out")
	}
	if m.bypass {
		for i := range m.ins {
			m.ins[i].Bind(m.outs[i])
		}
	}
	m.cursors = make([]int, numOutputs)
	return m
}

// In returns the i'th input port.
func (m *Mux[T]) In(i int) *sim.Port[T] { return m.ins[i] }

// Out returns the o'th output port.
func (m *Mux[T]) Out(o int) *sim.Port[T] { return m.outs[o] }

// Reset clears every cursor back to the start of its group. Bypass binds
// are set up at construction and survive reset.
func (m *Mux[T]) Reset() {
	for i := range m.cursors {
		m.cursors[i] = 0
	}
	for _, p := range m.ins {
		p.Reset()
	}
	for _, p := range m.outs {
		p.Reset()
	}
}

// Tick arbitrates one grant per output among its candidate group. In
// bypass mode there is nothing to arbitrate; Tick always reports no
// progress of its own since Bind-delegated pushes are attributed to the
// pushing producer.
func (m *Mux[T]) Tick(now uint64) bool {
	if m.bypass {
		return false
	}
	progress := false
	for o := 0; o < m.numOutputs; o++ {
		base := o * m.groupSize
		start := 0
		if m.policy == RoundRobin {
			start = m.cursors[o]
		}
		for k := 0; k < m.groupSize; k++ {
			idx := (start + k) % m.groupSize
			in := m.ins[base+idx]
			v, ok := in.Front()
			if !ok {
				continue
			}
			in.Pop()
			m.outs[o].Push(v, m.delay)
			if m.policy == RoundRobin {
				m.cursors[o] = (idx + 1) % m.groupSize
			}
			progress = true
			break
		}
	}
	return progress
}
