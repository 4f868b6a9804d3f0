package event

import (
	"context"
	"errors"
	"sync"
)

// DefaultQueueSize is the default maximum number of buffered events.
const DefaultQueueSize = 1024

// Queue errors.
var (
	ErrQueueClosed = errors.New("event queue closed")
)

// Queue buffers events for a single client session.
type Queue struct {
	// deliver serialises Post against a push-mode switch so the backlog
	// reaches the handler before any newer event.
	deliver sync.Mutex

	mu      sync.Mutex
	events  []Event
	maxSize int
	dropped uint64
	closed  bool

	// notify is closed and replaced on every Post to wake waiters.
	notify chan struct{}

	push func(Event)
}

// NewQueue creates a queue holding at most maxSize events.
// A non-positive maxSize selects DefaultQueueSize.
func NewQueue(maxSize int) *Queue {
	if maxSize <= 0 {
		maxSize = DefaultQueueSize
	}
	return &Queue{
		maxSize: maxSize,
		notify:  make(chan struct{}),
	}
}

// Post buffers ev, or hands it to the push handler if one is installed.
// When the buffer is full the oldest event is dropped. Pushed events are
// handed over one at a time in Post order.
func (q *Queue) Post(ev Event) {
	q.deliver.Lock()
	defer q.deliver.Unlock()

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}

	if push := q.push; push != nil {
		q.mu.Unlock()
		push(ev)
		return
	}

	if len(q.events) >= q.maxSize {
		q.events = q.events[1:]
		q.dropped++
	}
	q.events = append(q.events, ev)

	close(q.notify)
	q.notify = make(chan struct{})
	q.mu.Unlock()
}

// SetPushHandler switches the queue to push mode. Buffered events are flushed
// to fn in order before it starts receiving new ones. Passing nil switches
// back to pull mode.
func (q *Queue) SetPushHandler(fn func(Event)) {
	q.deliver.Lock()
	defer q.deliver.Unlock()

	q.mu.Lock()
	q.push = fn
	var backlog []Event
	if fn != nil {
		backlog = q.events
		q.events = nil
	}
	q.mu.Unlock()

	for _, ev := range backlog {
		fn(ev)
	}
}

// Pushing reports whether a push handler is installed.
func (q *Queue) Pushing() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.push != nil
}

// Poll removes and returns up to n of the oldest events. n <= 0 returns all.
func (q *Queue) Poll(n int) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n <= 0 || n > len(q.events) {
		n = len(q.events)
	}
	out := make([]Event, n)
	copy(out, q.events[:n])
	q.events = q.events[n:]
	return out
}

// WaitFor removes and returns the oldest event with the given name, waiting
// until one is posted or ctx is done. An empty name matches any event.
func (q *Queue) WaitFor(ctx context.Context, name string) (Event, error) {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return Event{}, ErrQueueClosed
		}
		for i, ev := range q.events {
			if name == "" || ev.Name == name {
				q.events = append(q.events[:i:i], q.events[i+1:]...)
				q.mu.Unlock()
				return ev, nil
			}
		}
		wake := q.notify
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-wake:
		}
	}
}

// Clear drops all buffered events and returns how many were dropped.
func (q *Queue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.events)
	q.events = nil
	return n
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Dropped returns how many events were discarded because the queue was full.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Close wakes all waiters with ErrQueueClosed and discards further posts.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.events = nil
	q.push = nil
	close(q.notify)
}

// Compile-time interface satisfaction check.
var _ Sink = (*Queue)(nil)
