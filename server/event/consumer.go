// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"context"
	"errors"
)

// Consumer reads events from a Queue until the stream reaches its terminus.
// A stream terminates on the first event whose Final method reports true, or
// when the queue is closed.
type Consumer struct {
	queue *Queue
}

// NewConsumer creates a Consumer for the given queue.
func NewConsumer(queue *Queue) *Consumer {
	if queue == nil {
		panic("event: queue cannot be nil")
	}
	return &Consumer{queue: queue}
}

// Stream returns a channel delivering events in order. The channel is closed
// after the terminal event is delivered, after the queue closes, or when the
// context is done. A late subscriber misses events consumed before it
// attached; streams are not replayable.
func (c *Consumer) Stream(ctx context.Context) <-chan Event {
	out := make(chan Event, 16)

	go func() {
		defer close(out)
		for {
			ev, err := c.queue.Dequeue(ctx)
			if err != nil {
				return
			}

			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}

			if ev.Final() {
				return
			}
		}
	}()

	return out
}

// DrainToTerminus consumes events until the stream terminates and returns
// them in order. This is the non-streaming consumption path: the caller
// blocks until the task reaches a terminal state or input-required.
func (c *Consumer) DrainToTerminus(ctx context.Context) ([]Event, error) {
	var events []Event
	for {
		ev, err := c.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) {
				return events, nil
			}
			return events, err
		}

		events = append(events, ev)
		if ev.Final() {
			return events, nil
		}
	}
}
