// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"context"
	"sync"
)

// DefaultQueueSize is the default buffer size for event queues.
const DefaultQueueSize = 256

// Queue is a bounded, ordered queue of task lifecycle events. One queue backs
// one agent invocation: the state machine enqueues, a single observer
// dequeues. Events are delivered strictly in enqueue order.
//
// Close is idempotent. After Close, Dequeue drains buffered events before
// reporting ErrQueueClosed, so a consumer never misses events that were
// enqueued before the terminus.
type Queue struct {
	ch   chan Event
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewQueue creates a Queue with the given buffer size. A size of zero or less
// uses DefaultQueueSize.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		ch:   make(chan Event, size),
		done: make(chan struct{}),
	}
}

// Enqueue adds an event to the queue. It returns ErrQueueClosed if the queue
// has been closed and ErrQueueFull if the buffer is exhausted.
func (q *Queue) Enqueue(ctx context.Context, ev Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Dequeue blocks until an event is available, the context is done, or the
// queue is closed and drained.
func (q *Queue) Dequeue(ctx context.Context) (Event, error) {
	// Buffered events win over closure so a drained terminus is observed.
	select {
	case ev := <-q.ch:
		return ev, nil
	default:
	}

	select {
	case ev := <-q.ch:
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-q.done:
		select {
		case ev := <-q.ch:
			return ev, nil
		default:
			return nil, ErrQueueClosed
		}
	}
}

// Close marks the queue closed. Pending events remain dequeueable.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}

// Closed reports whether the queue has been closed.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
