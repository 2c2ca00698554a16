// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/go-a2a/agentserve/server/push"
	"github.com/go-a2a/agentserve/server/task"
)

// Option configures a TaskManager.
type Option func(*TaskManager)

// WithLogger sets the logger used by the TaskManager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *TaskManager) {
		m.logger = logger
	}
}

// WithTracer sets the tracer used by the TaskManager.
func WithTracer(tracer trace.Tracer) Option {
	return func(m *TaskManager) {
		m.tracer = tracer
	}
}

// WithStore sets the task store. Defaults to an in-memory store.
func WithStore(store task.Store) Option {
	return func(m *TaskManager) {
		m.store = store
	}
}

// WithPushConfigStore sets the push notification config store. Defaults to an
// in-memory store.
func WithPushConfigStore(store task.PushConfigStore) Option {
	return func(m *TaskManager) {
		m.pushConfigs = store
	}
}

// WithDispatcher sets the push notification dispatcher. Without a dispatcher
// push notification configs are accepted but never delivered.
func WithDispatcher(d *push.Dispatcher) Option {
	return func(m *TaskManager) {
		m.dispatcher = d
	}
}

// WithQueueSize sets the per-invocation event queue capacity. The state
// machine never blocks on a slow subscriber: an event arriving at a full
// queue is dropped with a warning, so the capacity must cover the largest
// burst of updates one invocation can produce between subscriber reads.
func WithQueueSize(n int) Option {
	return func(m *TaskManager) {
		if n > 0 {
			m.queueSize = n
		}
	}
}

// WithPushHistoryTail sets how many trailing history messages each push
// notification payload carries. Zero means the full history.
func WithPushHistoryTail(n int) Option {
	return func(m *TaskManager) {
		m.pushHistoryTail = n
	}
}
