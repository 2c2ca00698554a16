// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-a2a/agentserve"
)

// PushConfigStore stores push notification configurations, one per task.
// Re-registering a config for a task replaces the previous one (last write
// wins).
type PushConfigStore interface {
	// Save stores a push notification configuration for a task.
	Save(ctx context.Context, taskID string, config *agentserve.PushNotificationConfig) error

	// Get retrieves the configuration for a task.
	// Returns agentserve.TaskNotFoundError if no configuration is registered.
	Get(ctx context.Context, taskID string) (*agentserve.PushNotificationConfig, error)

	// Delete removes the configuration for a task. Deleting a missing
	// configuration is not an error.
	Delete(ctx context.Context, taskID string) error
}

// InMemoryPushConfigStore is an in-memory implementation of PushConfigStore.
type InMemoryPushConfigStore struct {
	mu      sync.RWMutex
	configs map[string]*agentserve.PushNotificationConfig
}

var _ PushConfigStore = (*InMemoryPushConfigStore)(nil)

// NewInMemoryPushConfigStore creates a new InMemoryPushConfigStore.
func NewInMemoryPushConfigStore() *InMemoryPushConfigStore {
	return &InMemoryPushConfigStore{
		configs: make(map[string]*agentserve.PushNotificationConfig),
	}
}

// Save stores a push notification configuration for a task.
func (s *InMemoryPushConfigStore) Save(ctx context.Context, taskID string, config *agentserve.PushNotificationConfig) error {
	if taskID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid push notification config: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := *config
	s.configs[taskID] = &cfg
	return nil
}

// Get retrieves the configuration for a task.
func (s *InMemoryPushConfigStore) Get(ctx context.Context, taskID string) (*agentserve.PushNotificationConfig, error) {
	if taskID == "" {
		return nil, fmt.Errorf("task ID cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	config, ok := s.configs[taskID]
	if !ok {
		return nil, agentserve.TaskNotFoundError{TaskID: taskID}
	}

	cfg := *config
	return &cfg, nil
}

// Delete removes the configuration for a task.
func (s *InMemoryPushConfigStore) Delete(ctx context.Context, taskID string) error {
	if taskID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.configs, taskID)
	return nil
}
