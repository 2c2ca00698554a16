// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package task provides storage for tasks and push notification
// configurations. State lives only for the process lifetime; there is no
// durable persistence in this server.
package task

import (
	"context"

	"github.com/go-a2a/agentserve"
)

// Store is the process-wide task registry: a concurrent map from task ID to
// Task. All mutation goes through Save; readers receive deep copies and never
// observe in-place mutation.
type Store interface {
	// Save persists a task, replacing any previous version under the same ID.
	Save(ctx context.Context, task *agentserve.Task) error

	// Get retrieves a task by ID.
	// Returns agentserve.TaskNotFoundError if the task doesn't exist.
	Get(ctx context.Context, taskID string) (*agentserve.Task, error)

	// List retrieves all tasks belonging to a context, in unspecified order.
	// An empty contextID returns every task.
	List(ctx context.Context, contextID string) ([]*agentserve.Task, error)
}
