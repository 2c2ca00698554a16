// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"maps"
	"sync"
)

// Memory is an opaque per-context memory handle threaded through gateway
// invocations. Gateway implementations use it to checkpoint whatever state
// their reasoning loop needs across turns (the input-required round trip in
// particular). Each Context owns exactly one Memory; tearing down a context
// tears down its memory without affecting other contexts.
//
// All methods are safe for concurrent use, though the server serializes
// invocations per task, so within one task access is effectively
// single-threaded.
type Memory struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMemory creates an empty Memory handle.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]any),
	}
}

// Load retrieves a value by key.
func (m *Memory) Load(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Store sets a value by key.
func (m *Memory) Store(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Delete removes a key.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// Snapshot returns a copy of the current contents.
func (m *Memory) Snapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.values))
	maps.Copy(out, m.values)
	return out
}
