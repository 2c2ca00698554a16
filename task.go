// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// This file contains constructors for Task and Artifact objects.

package agentserve

import (
	"fmt"

	"github.com/google/uuid"
)

// NewTask creates a new Task from the opening client message.
//
// Generates task and context IDs if they are not already present on the
// message. The created Task starts in the "submitted" state with the opening
// message as the first history entry.
func NewTask(message *Message) (*Task, error) {
	if message == nil {
		return nil, fmt.Errorf("message cannot be nil")
	}
	if err := message.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request message: %w", err)
	}

	if message.ContextID == "" {
		message.ContextID = uuid.NewString()
	}
	taskID := message.TaskID
	if taskID == "" {
		taskID = uuid.NewString()
		message.TaskID = taskID
	}

	return &Task{
		ID:        taskID,
		ContextID: message.ContextID,
		Status:    NewTaskStatus(TaskStateSubmitted, nil),
		History:   []*Message{message},
	}, nil
}

// NewTextArtifact creates a named Artifact with a single text part.
func NewTextArtifact(name, text string) (*Artifact, error) {
	if text == "" {
		return nil, fmt.Errorf("artifact text cannot be empty")
	}
	return &Artifact{
		ArtifactID: uuid.NewString(),
		Name:       name,
		Parts:      []Part{TextPart(text)},
	}, nil
}

// NewDataArtifact creates a named Artifact with a single structured data part.
func NewDataArtifact(name string, data map[string]any) (*Artifact, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("artifact data cannot be empty")
	}
	return &Artifact{
		ArtifactID: uuid.NewString(),
		Name:       name,
		Parts:      []Part{DataPart(data)},
	}, nil
}
