// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-a2a/agentserve"
)

// InMemoryStore is an in-memory implementation of Store. Task data is lost
// when the server process stops. All operations are thread-safe.
type InMemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]*agentserve.Task
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates a new InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		tasks: make(map[string]*agentserve.Task),
	}
}

// Save persists a task to the in-memory storage.
func (s *InMemoryStore) Save(ctx context.Context, task *agentserve.Task) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task %s: %w", task.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy so later caller-side mutation cannot corrupt the registry.
	s.tasks[task.ID] = task.Clone()
	return nil
}

// Get retrieves a task by its ID from the in-memory storage.
func (s *InMemoryStore) Get(ctx context.Context, taskID string) (*agentserve.Task, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task ID cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return nil, agentserve.TaskNotFoundError{TaskID: taskID}
	}
	return task.Clone(), nil
}

// List retrieves tasks filtered by context ID.
func (s *InMemoryStore) List(ctx context.Context, contextID string) ([]*agentserve.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tasks []*agentserve.Task
	for _, task := range s.tasks {
		if contextID != "" && task.ContextID != contextID {
			continue
		}
		tasks = append(tasks, task.Clone())
	}
	return tasks, nil
}
