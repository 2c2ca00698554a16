// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package event provides the ordered event stream between the task state
// machine and its observers: streaming clients, synchronous callers and the
// push notification dispatcher all consume the same event types in the same
// order.
package event

import (
	"fmt"

	"github.com/go-a2a/agentserve"
)

// Event is the unified interface for task lifecycle events.
type Event interface {
	// EventType returns the type of the event.
	EventType() string

	// GetTaskID returns the task ID the event is for.
	GetTaskID() string

	// Final reports whether this event terminates the stream it is emitted
	// on. Terminal states and input-required both end the stream;
	// input-required is a soft terminus, the task remains resumable.
	Final() bool

	// Validate ensures the event is in a valid state.
	Validate() error
}

// StatusUpdateEvent reports a task state transition. The Status carries the
// agent message that accompanied the transition, if any.
type StatusUpdateEvent struct {
	TaskID    string                `json:"taskId"`
	ContextID string                `json:"contextId,omitzero"`
	Status    agentserve.TaskStatus `json:"status"`
	IsFinal   bool                  `json:"final"`
}

var _ Event = (*StatusUpdateEvent)(nil)

// EventType returns the event type for StatusUpdateEvent.
func (e *StatusUpdateEvent) EventType() string {
	return "status_update"
}

// GetTaskID returns the task ID the event is for.
func (e *StatusUpdateEvent) GetTaskID() string {
	return e.TaskID
}

// Final reports whether this event ends the stream.
func (e *StatusUpdateEvent) Final() bool {
	return e.IsFinal
}

// Validate ensures the StatusUpdateEvent is valid.
func (e *StatusUpdateEvent) Validate() error {
	if e.TaskID == "" {
		return fmt.Errorf("status update event task ID cannot be empty")
	}
	return e.Status.Validate()
}

// String returns a string representation of the StatusUpdateEvent.
func (e *StatusUpdateEvent) String() string {
	return fmt.Sprintf("StatusUpdateEvent{TaskID: %s, State: %s, Final: %t}",
		e.TaskID, e.Status.State, e.IsFinal)
}

// ArtifactUpdateEvent reports an artifact appended to a task.
type ArtifactUpdateEvent struct {
	TaskID    string               `json:"taskId"`
	ContextID string               `json:"contextId,omitzero"`
	Artifact  *agentserve.Artifact `json:"artifact"`
}

var _ Event = (*ArtifactUpdateEvent)(nil)

// EventType returns the event type for ArtifactUpdateEvent.
func (e *ArtifactUpdateEvent) EventType() string {
	return "artifact_update"
}

// GetTaskID returns the task ID the event is for.
func (e *ArtifactUpdateEvent) GetTaskID() string {
	return e.TaskID
}

// Final always returns false; artifacts precede the terminal status event.
func (e *ArtifactUpdateEvent) Final() bool {
	return false
}

// Validate ensures the ArtifactUpdateEvent is valid.
func (e *ArtifactUpdateEvent) Validate() error {
	if e.TaskID == "" {
		return fmt.Errorf("artifact update event task ID cannot be empty")
	}
	if e.Artifact == nil {
		return fmt.Errorf("artifact update event artifact cannot be nil")
	}
	return e.Artifact.Validate()
}

// String returns a string representation of the ArtifactUpdateEvent.
func (e *ArtifactUpdateEvent) String() string {
	name := ""
	if e.Artifact != nil {
		name = e.Artifact.Name
	}
	return fmt.Sprintf("ArtifactUpdateEvent{TaskID: %s, Artifact: %s}", e.TaskID, name)
}

// NewStatusUpdateEvent creates a StatusUpdateEvent.
func NewStatusUpdateEvent(taskID, contextID string, status agentserve.TaskStatus, final bool) *StatusUpdateEvent {
	return &StatusUpdateEvent{
		TaskID:    taskID,
		ContextID: contextID,
		Status:    status,
		IsFinal:   final,
	}
}

// NewArtifactUpdateEvent creates an ArtifactUpdateEvent.
func NewArtifactUpdateEvent(taskID, contextID string, artifact *agentserve.Artifact) *ArtifactUpdateEvent {
	return &ArtifactUpdateEvent{
		TaskID:    taskID,
		ContextID: contextID,
		Artifact:  artifact,
	}
}
