// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server_test

import (
	"sync"
	"testing"

	"github.com/go-a2a/agentserve"
	"github.com/go-a2a/agentserve/server"
)

func TestContextStoreGetOrCreate(t *testing.T) {
	store := server.NewContextStore()

	conv := store.GetOrCreate("ctx-1")
	if conv == nil {
		t.Fatal("GetOrCreate() returned nil")
	}
	if got, want := conv.ID(), "ctx-1"; got != want {
		t.Errorf("ID() = %q, want %q", got, want)
	}

	// Same ID returns the same conversation.
	if again := store.GetOrCreate("ctx-1"); again != conv {
		t.Error("GetOrCreate() created a duplicate conversation")
	}
	if _, ok := store.Get("ctx-2"); ok {
		t.Error("Get() for unknown context = true, want false")
	}
	if got, want := store.Len(), 1; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestConversationHistoryIsolation(t *testing.T) {
	conv := server.NewConversation("ctx-1")

	msg, err := agentserve.NewUserTextMessage("hello", "ctx-1", "")
	if err != nil {
		t.Fatalf("NewUserTextMessage() error = %v", err)
	}
	conv.Append(msg)

	history := conv.History()
	if got, want := len(history), 1; got != want {
		t.Fatalf("History() length = %d, want %d", got, want)
	}

	// Mutating the returned slice must not affect the conversation.
	history[0] = nil
	if conv.History()[0] == nil {
		t.Error("History() returned the internal slice")
	}
}

// Memory handles are per conversation, never shared across contexts.
func TestConversationMemoryIsolation(t *testing.T) {
	store := server.NewContextStore()

	a := store.GetOrCreate("ctx-a")
	b := store.GetOrCreate("ctx-b")

	a.Memory().Store("key", "from-a")
	if _, ok := b.Memory().Load("key"); ok {
		t.Error("memory leaked across conversation contexts")
	}
}

func TestContextStoreConcurrentAccess(t *testing.T) {
	store := server.NewContextStore()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv := store.GetOrCreate("shared")
			msg, err := agentserve.NewUserTextMessage("turn", "shared", "")
			if err != nil {
				t.Error(err)
				return
			}
			conv.Append(msg)
		}()
	}
	wg.Wait()

	conv, ok := store.Get("shared")
	if !ok {
		t.Fatal("shared conversation missing")
	}
	if got, want := len(conv.History()), 16; got != want {
		t.Errorf("History() length = %d, want %d", got, want)
	}
	if got, want := store.Len(), 1; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}
