// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package agentserve provides the core data model for an agent task server.
// It defines tasks, messages, artifacts and push notification configuration,
// along with the task lifecycle states used by the server packages.
package agentserve

// Version is the current version of the agentserve protocol surface.
const Version = "0.1.0"

// TaskState represents the lifecycle state of a Task.
type TaskState string

const (
	// TaskStateSubmitted indicates the task has been submitted and not yet started.
	TaskStateSubmitted TaskState = "submitted"

	// TaskStateWorking indicates the task is being worked on by the agent.
	TaskStateWorking TaskState = "working"

	// TaskStateInputRequired indicates the agent needs additional client input
	// before it can continue. The task remains resumable.
	TaskStateInputRequired TaskState = "input-required"

	// TaskStateCompleted indicates the task finished successfully.
	TaskStateCompleted TaskState = "completed"

	// TaskStateFailed indicates the agent reported an unrecoverable error.
	TaskStateFailed TaskState = "failed"

	// TaskStateCanceled indicates the task was canceled by the client.
	TaskStateCanceled TaskState = "canceled"
)

// Terminal reports whether the state is terminal. Terminal tasks accept no
// further client messages and never invoke the agent again.
func (s TaskState) Terminal() bool {
	return s == TaskStateCompleted || s == TaskStateFailed || s == TaskStateCanceled
}

// Role represents the role of a message sender.
type Role string

// Role constants for message senders.
const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)
