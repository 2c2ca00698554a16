// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agentserve_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/agentserve"
)

func TestTaskStateTerminal(t *testing.T) {
	tests := []struct {
		state agentserve.TaskState
		want  bool
	}{
		{agentserve.TaskStateSubmitted, false},
		{agentserve.TaskStateWorking, false},
		{agentserve.TaskStateInputRequired, false},
		{agentserve.TaskStateCompleted, true},
		{agentserve.TaskStateFailed, true},
		{agentserve.TaskStateCanceled, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.Terminal(); got != tt.want {
				t.Errorf("TaskState(%q).Terminal() = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestPartValidate(t *testing.T) {
	tests := []struct {
		name    string
		part    agentserve.Part
		wantErr bool
	}{
		{
			name: "valid text part",
			part: agentserve.TextPart("hello"),
		},
		{
			name: "valid data part",
			part: agentserve.DataPart(map[string]any{"key": "value"}),
		},
		{
			name:    "empty text",
			part:    agentserve.Part{Kind: agentserve.PartKindText},
			wantErr: true,
		},
		{
			name:    "empty data",
			part:    agentserve.Part{Kind: agentserve.PartKindData},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			part:    agentserve.Part{Kind: "file", Text: "x"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.part.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Part.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name    string
		message *agentserve.Message
		wantErr bool
	}{
		{
			name: "valid user message",
			message: &agentserve.Message{
				MessageID: "msg-1",
				Role:      agentserve.RoleUser,
				Parts:     []agentserve.Part{agentserve.TextPart("hi")},
			},
		},
		{
			name:    "nil message",
			message: nil,
			wantErr: true,
		},
		{
			name: "missing message ID",
			message: &agentserve.Message{
				Role:  agentserve.RoleUser,
				Parts: []agentserve.Part{agentserve.TextPart("hi")},
			},
			wantErr: true,
		},
		{
			name: "invalid role",
			message: &agentserve.Message{
				MessageID: "msg-1",
				Role:      "system",
				Parts:     []agentserve.Part{agentserve.TextPart("hi")},
			},
			wantErr: true,
		},
		{
			name: "no parts",
			message: &agentserve.Message{
				MessageID: "msg-1",
				Role:      agentserve.RoleAgent,
			},
			wantErr: true,
		},
		{
			name: "invalid part",
			message: &agentserve.Message{
				MessageID: "msg-1",
				Role:      agentserve.RoleAgent,
				Parts:     []agentserve.Part{{Kind: agentserve.PartKindText}},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.message.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Message.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMessageText(t *testing.T) {
	msg := &agentserve.Message{
		MessageID: "msg-1",
		Role:      agentserve.RoleAgent,
		Parts: []agentserve.Part{
			agentserve.TextPart("first"),
			agentserve.DataPart(map[string]any{"skip": true}),
			agentserve.TextPart("second"),
		},
	}
	if got, want := msg.Text(), "first\nsecond"; got != want {
		t.Errorf("Message.Text() = %q, want %q", got, want)
	}
}

func TestTaskClone(t *testing.T) {
	msg, err := agentserve.NewUserTextMessage("original", "ctx-1", "task-1")
	if err != nil {
		t.Fatalf("NewUserTextMessage() error = %v", err)
	}
	artifact, err := agentserve.NewDataArtifact("result", map[string]any{"rows": 3})
	if err != nil {
		t.Fatalf("NewDataArtifact() error = %v", err)
	}
	task := &agentserve.Task{
		ID:        "task-1",
		ContextID: "ctx-1",
		Status:    agentserve.NewTaskStatus(agentserve.TaskStateCompleted, nil),
		History:   []*agentserve.Message{msg},
		Artifacts: []*agentserve.Artifact{artifact},
	}

	clone := task.Clone()
	if diff := cmp.Diff(task, clone); diff != "" {
		t.Errorf("Clone() mismatch (-want +got):\n%s", diff)
	}

	// Mutating the clone must not leak into the original.
	clone.History[0].Parts[0].Text = "mutated"
	clone.Artifacts[0].Parts[0].Data["rows"] = 99
	if got, want := task.History[0].Parts[0].Text, "original"; got != want {
		t.Errorf("original history text = %q, want %q", got, want)
	}
	if got, want := task.Artifacts[0].Parts[0].Data["rows"], 3; got != want {
		t.Errorf("original artifact data = %v, want %v", got, want)
	}
}

func TestPushNotificationConfigValidate(t *testing.T) {
	config := &agentserve.PushNotificationConfig{URL: "https://example.com/hook", Token: "t"}
	if err := config.Validate(); err != nil {
		t.Errorf("PushNotificationConfig.Validate() error = %v", err)
	}
	if err := (&agentserve.PushNotificationConfig{}).Validate(); err == nil {
		t.Error("PushNotificationConfig.Validate() with empty URL expected error, got nil")
	}
	var nilConfig *agentserve.PushNotificationConfig
	if err := nilConfig.Validate(); err == nil {
		t.Error("PushNotificationConfig.Validate() on nil expected error, got nil")
	}
}

func TestAgentCardValidate(t *testing.T) {
	card := &agentserve.AgentCard{
		Name:    "Test Agent",
		URL:     "http://localhost:8080/",
		Version: "1.0.0",
	}
	if err := card.Validate(); err != nil {
		t.Errorf("AgentCard.Validate() error = %v", err)
	}
	if err := (&agentserve.AgentCard{Name: "x"}).Validate(); err == nil {
		t.Error("AgentCard.Validate() without URL expected error, got nil")
	}
}
