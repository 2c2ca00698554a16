// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"errors"
)

// Sentinel errors for queue conditions.
var (
	// ErrQueueClosed is returned when enqueueing to or dequeueing from a
	// closed queue after it has been drained.
	ErrQueueClosed = errors.New("event queue is closed")

	// ErrQueueFull is returned when the queue's buffer is exhausted.
	// Producers must treat this as backpressure, not silently drop events.
	ErrQueueFull = errors.New("event queue is full")
)
