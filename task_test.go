// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agentserve_test

import (
	"testing"

	"github.com/go-a2a/agentserve"
)

func TestNewTask(t *testing.T) {
	msg, err := agentserve.NewUserTextMessage("list orders", "", "")
	if err != nil {
		t.Fatalf("NewUserTextMessage() error = %v", err)
	}

	task, err := agentserve.NewTask(msg)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}

	if task.ID == "" {
		t.Error("NewTask() did not assign a task ID")
	}
	if task.ContextID == "" {
		t.Error("NewTask() did not assign a context ID")
	}
	if got, want := task.Status.State, agentserve.TaskStateSubmitted; got != want {
		t.Errorf("NewTask() state = %v, want %v", got, want)
	}
	if got, want := len(task.History), 1; got != want {
		t.Fatalf("NewTask() history length = %v, want %v", got, want)
	}
	if task.History[0] != msg {
		t.Error("NewTask() history does not contain the opening message")
	}

	// IDs are written back onto the message.
	if got, want := msg.TaskID, task.ID; got != want {
		t.Errorf("message task ID = %q, want %q", got, want)
	}
	if got, want := msg.ContextID, task.ContextID; got != want {
		t.Errorf("message context ID = %q, want %q", got, want)
	}
}

func TestNewTaskPreservesExistingIDs(t *testing.T) {
	msg, err := agentserve.NewUserTextMessage("continue", "ctx-7", "task-7")
	if err != nil {
		t.Fatalf("NewUserTextMessage() error = %v", err)
	}

	task, err := agentserve.NewTask(msg)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	if got, want := task.ID, "task-7"; got != want {
		t.Errorf("NewTask() ID = %q, want %q", got, want)
	}
	if got, want := task.ContextID, "ctx-7"; got != want {
		t.Errorf("NewTask() context ID = %q, want %q", got, want)
	}
}

func TestNewTaskInvalidMessage(t *testing.T) {
	if _, err := agentserve.NewTask(nil); err == nil {
		t.Error("NewTask(nil) expected error, got nil")
	}
	if _, err := agentserve.NewTask(&agentserve.Message{}); err == nil {
		t.Error("NewTask() with empty message expected error, got nil")
	}
}

func TestNewTextArtifact(t *testing.T) {
	artifact, err := agentserve.NewTextArtifact("summary", "done")
	if err != nil {
		t.Fatalf("NewTextArtifact() error = %v", err)
	}
	if artifact.ArtifactID == "" {
		t.Error("NewTextArtifact() did not assign an artifact ID")
	}
	if err := artifact.Validate(); err != nil {
		t.Errorf("Artifact.Validate() error = %v", err)
	}

	if _, err := agentserve.NewTextArtifact("summary", ""); err == nil {
		t.Error("NewTextArtifact() with empty text expected error, got nil")
	}
}
