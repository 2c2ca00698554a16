// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-a2a/agentserve"
	"github.com/go-a2a/agentserve/server/task"
)

func newTask(t *testing.T, text, contextID, taskID string) *agentserve.Task {
	t.Helper()
	msg, err := agentserve.NewUserTextMessage(text, contextID, taskID)
	if err != nil {
		t.Fatalf("NewUserTextMessage() error = %v", err)
	}
	created, err := agentserve.NewTask(msg)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	return created
}

func TestInMemoryStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	store := task.NewInMemoryStore()

	created := newTask(t, "hello", "ctx-1", "task-1")
	if err := store.Save(ctx, created); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != "task-1" || got.ContextID != "ctx-1" {
		t.Errorf("Get() = %v/%v, want task-1/ctx-1", got.ID, got.ContextID)
	}
}

func TestInMemoryStoreGetUnknown(t *testing.T) {
	store := task.NewInMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	var notFound agentserve.TaskNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Get() error = %v, want TaskNotFoundError", err)
	}
	if got, want := notFound.TaskID, "missing"; got != want {
		t.Errorf("TaskID = %q, want %q", got, want)
	}
}

// Snapshots returned by Get must be isolated from later writes and from
// caller mutation.
func TestInMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := task.NewInMemoryStore()

	created := newTask(t, "hello", "ctx-1", "task-1")
	if err := store.Save(ctx, created); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	snapshot, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	snapshot.Status.State = agentserve.TaskStateFailed
	snapshot.History[0].Parts[0].Text = "mutated"

	fresh, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got, want := fresh.Status.State, agentserve.TaskStateSubmitted; got != want {
		t.Errorf("stored state = %v, want %v", got, want)
	}
	if got, want := fresh.History[0].Parts[0].Text, "hello"; got != want {
		t.Errorf("stored history = %q, want %q", got, want)
	}

	// Mutating the saved value after Save must not affect the store either.
	created.Status.State = agentserve.TaskStateCanceled
	fresh, err = store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got, want := fresh.Status.State, agentserve.TaskStateSubmitted; got != want {
		t.Errorf("stored state after caller mutation = %v, want %v", got, want)
	}
}

func TestInMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := task.NewInMemoryStore()

	for _, id := range []string{"a", "b"} {
		if err := store.Save(ctx, newTask(t, "hi", "ctx-1", id)); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}
	if err := store.Save(ctx, newTask(t, "hi", "ctx-2", "c")); err != nil {
		t.Fatalf("Save(c) error = %v", err)
	}

	tasks, err := store.List(ctx, "ctx-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got, want := len(tasks), 2; got != want {
		t.Errorf("List() returned %d tasks, want %d", got, want)
	}
}

func TestPushConfigStore(t *testing.T) {
	ctx := context.Background()
	store := task.NewInMemoryPushConfigStore()

	config := &agentserve.PushNotificationConfig{URL: "https://example.com/hook", Token: "tok"}
	if err := store.Save(ctx, "task-1", config); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.URL != config.URL || got.Token != config.Token {
		t.Errorf("Get() = %+v, want %+v", got, config)
	}

	// Last write wins.
	replacement := &agentserve.PushNotificationConfig{URL: "https://example.com/hook2"}
	if err := store.Save(ctx, "task-1", replacement); err != nil {
		t.Fatalf("Save() replacement error = %v", err)
	}
	got, err = store.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.URL != replacement.URL {
		t.Errorf("Get() URL = %q, want %q", got.URL, replacement.URL)
	}

	if err := store.Delete(ctx, "task-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "task-1"); err == nil {
		t.Error("Get() after Delete expected error, got nil")
	}
	// Deleting a missing config is not an error.
	if err := store.Delete(ctx, "task-1"); err != nil {
		t.Errorf("Delete() of missing config error = %v", err)
	}
}
