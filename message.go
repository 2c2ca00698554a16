// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// This file contains constructors for Message objects used throughout the
// task lifecycle: client input turns and agent output turns.

package agentserve

import (
	"fmt"

	"github.com/google/uuid"
)

// NewUserTextMessage creates a new user message containing a single text part.
// taskID and contextID may be empty; the server assigns them when the message
// opens new work.
func NewUserTextMessage(text, contextID, taskID string) (*Message, error) {
	if text == "" {
		return nil, fmt.Errorf("text content cannot be empty")
	}
	return &Message{
		MessageID: uuid.NewString(),
		Role:      RoleUser,
		Parts:     []Part{TextPart(text)},
		TaskID:    taskID,
		ContextID: contextID,
	}, nil
}

// NewAgentTextMessage creates a new agent message containing a single text part.
func NewAgentTextMessage(text, contextID, taskID string) (*Message, error) {
	if text == "" {
		return nil, fmt.Errorf("text content cannot be empty")
	}
	return &Message{
		MessageID: uuid.NewString(),
		Role:      RoleAgent,
		Parts:     []Part{TextPart(text)},
		TaskID:    taskID,
		ContextID: contextID,
	}, nil
}
