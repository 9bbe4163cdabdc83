package shell

import (
	"sync"
	"testing"
)

func TestQueue_FIFO(t *testing.T) {
	q := newQueue()
	for i := 1; i <= 3; i++ {
		if !q.push(RequestCloseWindow{ID: WindowID(i)}) {
			t.Fatalf("push %d rejected", i)
		}
	}
	if q.len() != 3 {
		t.Fatalf("len = %d, want 3", q.len())
	}
	for i := 1; i <= 3; i++ {
		ev, ok := q.pop()
		if !ok || ev != (RequestCloseWindow{ID: WindowID(i)}) {
			t.Fatalf("pop %d = %#v, %v", i, ev, ok)
		}
	}
	if _, ok := q.pop(); ok {
		t.Fatal("pop on empty queue reported an event")
	}
}

func TestQueue_CloseReturnsPendingAndRejects(t *testing.T) {
	q := newQueue()
	q.push(RequestNewWindow{})
	q.push(RequestCloseWindow{ID: 4})

	pending := q.close()
	if len(pending) != 2 {
		t.Fatalf("pending = %#v", pending)
	}
	if q.push(RequestNewWindow{}) {
		t.Fatal("push after close accepted")
	}
	if q.len() != 0 {
		t.Fatalf("len after close = %d", q.len())
	}
}

func TestQueue_ReadySignalled(t *testing.T) {
	q := newQueue()
	q.push(RequestNewWindow{})
	q.push(RequestNewWindow{})
	select {
	case <-q.ready:
	default:
		t.Fatal("ready not signalled after push")
	}
}

func TestQueue_PerProducerOrder(t *testing.T) {
	const producers, perProducer = 4, 200
	q := newQueue()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.push(RequestTitleChange{ID: WindowID(p), Title: string(rune('a' + i%26))})
				q.push(RequestCloseWindow{ID: WindowID(p*perProducer + i)})
			}
		}(p)
	}
	wg.Wait()

	next := make(map[WindowID]WindowID)
	for p := 0; p < producers; p++ {
		next[WindowID(p)] = WindowID(p * perProducer)
	}
	count := 0
	for {
		ev, ok := q.pop()
		if !ok {
			break
		}
		count++
		c, ok := ev.(RequestCloseWindow)
		if !ok {
			continue
		}
		p := c.ID / perProducer
		if c.ID != next[p] {
			t.Fatalf("producer %d: got close %d, want %d", p, c.ID, next[p])
		}
		next[p]++
	}
	if count != producers*perProducer*2 {
		t.Fatalf("popped %d events, want %d", count, producers*perProducer*2)
	}
}
