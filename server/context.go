// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package server implements the task lifecycle subsystem: the task state
// machine, the per-task update stream, conversation contexts, and the wiring
// to the push notification dispatcher.
package server

import (
	"sync"

	"github.com/go-a2a/agentserve"
	"github.com/go-a2a/agentserve/server/gateway"
)

// Conversation is one logical conversation thread. It owns an append-only
// message log shared by every task spawned within it, plus the agent-side
// memory handle. Conversations are never deleted during the process lifetime.
type Conversation struct {
	id     string
	memory *gateway.Memory

	mu       sync.RWMutex
	messages []*agentserve.Message
}

// NewConversation creates an empty conversation with its own memory handle.
func NewConversation(contextID string) *Conversation {
	return &Conversation{
		id:     contextID,
		memory: gateway.NewMemory(),
	}
}

// ID returns the context ID.
func (c *Conversation) ID() string {
	return c.id
}

// Memory returns the conversation's memory handle.
func (c *Conversation) Memory() *gateway.Memory {
	return c.memory
}

// Append appends messages to the conversation log. Messages are immutable
// once appended.
func (c *Conversation) Append(messages ...*agentserve.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, messages...)
}

// History returns a snapshot of the conversation log in append order.
func (c *Conversation) History() []*agentserve.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*agentserve.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// ContextStore is a process-wide concurrent map from context ID to
// Conversation.
type ContextStore struct {
	mu       sync.RWMutex
	contexts map[string]*Conversation
}

// NewContextStore creates an empty ContextStore.
func NewContextStore() *ContextStore {
	return &ContextStore{
		contexts: make(map[string]*Conversation),
	}
}

// GetOrCreate returns the conversation for contextID, creating it on first
// use.
func (s *ContextStore) GetOrCreate(contextID string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv, ok := s.contexts[contextID]; ok {
		return conv
	}
	conv := NewConversation(contextID)
	s.contexts[contextID] = conv
	return conv
}

// Get returns the conversation for contextID if it exists.
func (s *ContextStore) Get(contextID string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.contexts[contextID]
	return conv, ok
}

// Len returns the number of conversations.
func (s *ContextStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contexts)
}
