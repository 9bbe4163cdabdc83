package shell

import "sync"

// queue is an unbounded FIFO with one consumer. push never blocks, so
// producers running on the UI thread cannot stall behind a consumer that is
// itself waiting on the UI thread.
type queue struct {
	mu     sync.Mutex
	items  []Event
	ready  chan struct{}
	closed bool
}

func newQueue() *queue {
	return &queue{ready: make(chan struct{}, 1)}
}

// push appends ev and reports false if the queue is closed.
func (q *queue) push(ev Event) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, ev)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return true
}

// pop removes the oldest event without blocking.
func (q *queue) pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	ev := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return ev, true
}

// close rejects further pushes and returns whatever was still pending.
func (q *queue) close() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	pending := q.items
	q.items = nil
	return pending
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
