// Package frame provides display-frame sources for the projector.
//
// A Source runs callbacks at the next frame. Manual fires frames on demand
// and suits tests; Loop fires them from a ticker on a single goroutine that
// also runs every task posted to it, which makes it the one thread the
// projector, its projections and their surface live on.
package frame

// ID identifies a requested frame callback. The zero ID is never issued.
type ID uint64

// Source schedules callbacks for the next display frame.
type Source interface {
	// RequestFrame runs fn once at the next frame.
	RequestFrame(fn func()) ID

	// CancelFrame drops a callback that has not run yet.
	CancelFrame(id ID)
}

// queue holds requested callbacks in request order.
type queue struct {
	nextID  ID
	pending []request
}

type request struct {
	id ID
	fn func()
}

func (q *queue) add(fn func()) ID {
	q.nextID++
	q.pending = append(q.pending, request{id: q.nextID, fn: fn})
	return q.nextID
}

func (q *queue) cancel(id ID) {
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// take returns the pending callbacks and empties the queue, so callbacks
// requested while they run wait for the next frame.
func (q *queue) take() []request {
	out := q.pending
	q.pending = nil
	return out
}
