package frame

// Manual is a Source whose frames fire only when Fire is called.
// It is not safe for concurrent use.
type Manual struct {
	q      queue
	frames int
}

var _ Source = (*Manual)(nil)

// NewManual returns a Manual source with nothing pending.
func NewManual() *Manual {
	return &Manual{}
}

// RequestFrame queues fn for the next Fire.
func (m *Manual) RequestFrame(fn func()) ID {
	return m.q.add(fn)
}

// CancelFrame drops a queued callback.
func (m *Manual) CancelFrame(id ID) {
	m.q.cancel(id)
}

// Fire runs the callbacks queued so far and returns how many ran.
func (m *Manual) Fire() int {
	reqs := m.q.take()
	m.frames++
	for _, r := range reqs {
		r.fn()
	}
	return len(reqs)
}

// Pending returns the number of queued callbacks.
func (m *Manual) Pending() int {
	return len(m.q.pending)
}

// Frames returns how many times Fire was called.
func (m *Manual) Frames() int {
	return m.frames
}
