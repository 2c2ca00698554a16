// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package gateway_test

import (
	"context"
	"testing"

	"github.com/go-a2a/agentserve"
	"github.com/go-a2a/agentserve/server/gateway"
)

func TestUpdateTerminal(t *testing.T) {
	tests := []struct {
		name   string
		update gateway.Update
		want   bool
	}{
		{"progress", gateway.Progress("step"), false},
		{"input required", gateway.InputRequired("what?"), true},
		{"final", gateway.Final("done"), true},
		{"error", gateway.Errorf("boom"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.update.Terminal(); got != tt.want {
				t.Errorf("Terminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateValidate(t *testing.T) {
	tests := []struct {
		name    string
		update  gateway.Update
		wantErr bool
	}{
		{"valid progress", gateway.Progress("step"), false},
		{"valid error", gateway.Errorf("boom"), false},
		{"artifact-only final", gateway.Final("", &agentserve.Artifact{ArtifactID: "a1", Parts: []agentserve.Part{agentserve.TextPart("x")}}), false},
		{"empty final", gateway.Final(""), true},
		{"empty progress text", gateway.Update{Kind: gateway.UpdateProgress}, true},
		{"error without err", gateway.Update{Kind: gateway.UpdateError}, true},
		{"unknown kind", gateway.Update{Kind: "bogus", Text: "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInvocationValidate(t *testing.T) {
	msg, err := agentserve.NewUserTextMessage("hi", "ctx-1", "task-1")
	if err != nil {
		t.Fatalf("NewUserTextMessage() error = %v", err)
	}

	inv := &gateway.Invocation{
		TaskID:    "task-1",
		ContextID: "ctx-1",
		Input:     msg,
		Memory:    gateway.NewMemory(),
	}
	if err := inv.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	if err := (&gateway.Invocation{Input: msg}).Validate(); err == nil {
		t.Error("Validate() without IDs expected error, got nil")
	}
}

func TestMemory(t *testing.T) {
	mem := gateway.NewMemory()

	if _, ok := mem.Load("key"); ok {
		t.Error("Load() on empty memory = true, want false")
	}

	mem.Store("key", "value")
	if v, ok := mem.Load("key"); !ok || v != "value" {
		t.Errorf("Load() = %v/%v, want value/true", v, ok)
	}

	snapshot := mem.Snapshot()
	snapshot["key"] = "mutated"
	if v, _ := mem.Load("key"); v != "value" {
		t.Error("Snapshot() mutation leaked into memory")
	}

	mem.Delete("key")
	if _, ok := mem.Load("key"); ok {
		t.Error("Load() after Delete = true, want false")
	}
}

func TestFuncAdapter(t *testing.T) {
	called := false
	gw := gateway.Func(func(ctx context.Context, inv *gateway.Invocation) (<-chan gateway.Update, error) {
		called = true
		ch := make(chan gateway.Update)
		close(ch)
		return ch, nil
	})

	if _, err := gw.Invoke(context.Background(), &gateway.Invocation{}); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if !called {
		t.Error("Func adapter did not call the wrapped function")
	}
}
