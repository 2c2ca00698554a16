// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agentserve

import (
	"fmt"
	"time"
)

// Part kinds supported by the core. Only text and simple structured data are
// modeled; richer content is out of scope.
const (
	PartKindText = "text"
	PartKindData = "data"
)

// Part represents one piece of message or artifact content.
type Part struct {
	Kind string         `json:"kind"`
	Text string         `json:"text,omitzero"`
	Data map[string]any `json:"data,omitzero"`
}

// Validate ensures the Part is valid.
func (p Part) Validate() error {
	switch p.Kind {
	case PartKindText:
		if p.Text == "" {
			return fmt.Errorf("text part text cannot be empty")
		}
	case PartKindData:
		if len(p.Data) == 0 {
			return fmt.Errorf("data part data cannot be empty")
		}
	default:
		return fmt.Errorf("unknown part kind: %s", p.Kind)
	}
	return nil
}

// TextPart creates a text Part.
func TextPart(text string) Part {
	return Part{Kind: PartKindText, Text: text}
}

// DataPart creates a structured data Part.
func DataPart(data map[string]any) Part {
	return Part{Kind: PartKindData, Data: data}
}

// Message represents one conversation turn. Messages are immutable once
// appended to a task or context history.
type Message struct {
	MessageID string `json:"messageId"`
	Role      Role   `json:"role"`
	Parts     []Part `json:"parts"`
	TaskID    string `json:"taskId,omitzero"`
	ContextID string `json:"contextId,omitzero"`
}

// Validate ensures the Message is valid.
func (m *Message) Validate() error {
	if m == nil {
		return fmt.Errorf("message cannot be nil")
	}
	if m.MessageID == "" {
		return fmt.Errorf("message ID cannot be empty")
	}
	if m.Role != RoleUser && m.Role != RoleAgent {
		return fmt.Errorf("invalid message role: %s", m.Role)
	}
	if len(m.Parts) == 0 {
		return fmt.Errorf("message must contain at least one part")
	}
	for i, part := range m.Parts {
		if err := part.Validate(); err != nil {
			return fmt.Errorf("message part at index %d is invalid: %w", i, err)
		}
	}
	return nil
}

// Text returns the concatenated text content of the message, joining multiple
// text parts with newlines. Non-text parts are skipped.
func (m *Message) Text() string {
	var out string
	for _, part := range m.Parts {
		if part.Kind != PartKindText {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += part.Text
	}
	return out
}

// TaskStatus represents the status of a task at a point in time.
// The optional Message carries the agent turn that accompanied the
// transition (a progress note, an input prompt, or the final answer).
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitzero"`
	Timestamp string    `json:"timestamp,omitzero"`
}

// Validate ensures the TaskStatus is valid.
func (s TaskStatus) Validate() error {
	switch s.State {
	case TaskStateSubmitted, TaskStateWorking, TaskStateInputRequired,
		TaskStateCompleted, TaskStateFailed, TaskStateCanceled:
	default:
		return fmt.Errorf("invalid task state: %s", s.State)
	}
	if s.Message != nil {
		if err := s.Message.Validate(); err != nil {
			return fmt.Errorf("task status message is invalid: %w", err)
		}
	}
	return nil
}

// NewTaskStatus creates a TaskStatus with the current timestamp.
func NewTaskStatus(state TaskState, message *Message) TaskStatus {
	return TaskStatus{
		State:     state,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Artifact represents a named, immutable result object produced by a task.
type Artifact struct {
	ArtifactID string `json:"artifactId"`
	Name       string `json:"name,omitzero"`
	Parts      []Part `json:"parts"`
}

// Validate ensures the Artifact is valid.
func (a *Artifact) Validate() error {
	if a == nil {
		return fmt.Errorf("artifact cannot be nil")
	}
	if a.ArtifactID == "" {
		return fmt.Errorf("artifact ID cannot be empty")
	}
	if len(a.Parts) == 0 {
		return fmt.Errorf("artifact must contain at least one part")
	}
	for i, part := range a.Parts {
		if err := part.Validate(); err != nil {
			return fmt.Errorf("artifact part at index %d is invalid: %w", i, err)
		}
	}
	return nil
}

// Task represents one unit of requested work with its own lifecycle state.
type Task struct {
	ID        string      `json:"id"`
	ContextID string      `json:"contextId"`
	Status    TaskStatus  `json:"status"`
	History   []*Message  `json:"history,omitzero"`
	Artifacts []*Artifact `json:"artifacts,omitzero"`
}

// Validate ensures the Task is valid.
func (t *Task) Validate() error {
	if t == nil {
		return fmt.Errorf("task cannot be nil")
	}
	if t.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if t.ContextID == "" {
		return fmt.Errorf("task context ID cannot be empty")
	}
	if err := t.Status.Validate(); err != nil {
		return fmt.Errorf("task status is invalid: %w", err)
	}
	for i, msg := range t.History {
		if err := msg.Validate(); err != nil {
			return fmt.Errorf("task history message at index %d is invalid: %w", i, err)
		}
	}
	for i, artifact := range t.Artifacts {
		if err := artifact.Validate(); err != nil {
			return fmt.Errorf("task artifact at index %d is invalid: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the task. Stores return clones so concurrent
// readers never observe in-place mutation.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	clone := &Task{
		ID:        t.ID,
		ContextID: t.ContextID,
		Status:    t.Status,
	}
	if t.Status.Message != nil {
		clone.Status.Message = t.Status.Message.clone()
	}
	if t.History != nil {
		clone.History = make([]*Message, len(t.History))
		for i, msg := range t.History {
			clone.History[i] = msg.clone()
		}
	}
	if t.Artifacts != nil {
		clone.Artifacts = make([]*Artifact, len(t.Artifacts))
		for i, artifact := range t.Artifacts {
			clone.Artifacts[i] = artifact.clone()
		}
	}
	return clone
}

func (m *Message) clone() *Message {
	if m == nil {
		return nil
	}
	clone := *m
	clone.Parts = cloneParts(m.Parts)
	return &clone
}

func (a *Artifact) clone() *Artifact {
	if a == nil {
		return nil
	}
	clone := *a
	clone.Parts = cloneParts(a.Parts)
	return &clone
}

func cloneParts(parts []Part) []Part {
	if parts == nil {
		return nil
	}
	out := make([]Part, len(parts))
	for i, part := range parts {
		out[i] = part
		if part.Data != nil {
			data := make(map[string]any, len(part.Data))
			for k, v := range part.Data {
				data[k] = v
			}
			out[i].Data = data
		}
	}
	return out
}

// AuthenticationInfo describes how the push receiver authenticates deliveries
// beyond the payload signature.
type AuthenticationInfo struct {
	Schemes     []string `json:"schemes"`
	Credentials string   `json:"credentials,omitzero"`
}

// PushNotificationConfig configures webhook delivery for one task.
// Re-registering a config for the same task replaces the previous one.
type PushNotificationConfig struct {
	URL   string `json:"url"`
	Token string `json:"token,omitzero"`

	Authentication *AuthenticationInfo `json:"authentication,omitzero"`
}

// Validate ensures the PushNotificationConfig is valid.
func (c *PushNotificationConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("push notification config cannot be nil")
	}
	if c.URL == "" {
		return fmt.Errorf("push notification URL cannot be empty")
	}
	return nil
}
