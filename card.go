// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agentserve

import "fmt"

// AgentCapabilities declares the optional protocol features an agent server
// supports.
type AgentCapabilities struct {
	// Streaming indicates support for message/stream.
	Streaming bool `json:"streaming"`
	// PushNotifications indicates support for webhook push delivery.
	PushNotifications bool `json:"pushNotifications"`
	// StateTransitionHistory indicates that task snapshots carry the full
	// message history.
	StateTransitionHistory bool `json:"stateTransitionHistory"`
}

// AgentSkill describes one capability of the agent for discovery purposes.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitzero"`
	Tags        []string `json:"tags,omitzero"`
	Examples    []string `json:"examples,omitzero"`
}

// AgentCard is the metadata document served at the well-known discovery
// endpoint. Clients use it to learn the agent's URL, capabilities, and
// skills before sending work.
type AgentCard struct {
	Name               string            `json:"name"`
	Description        string            `json:"description,omitzero"`
	URL                string            `json:"url"`
	Version            string            `json:"version"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	DefaultInputModes  []string          `json:"defaultInputModes,omitzero"`
	DefaultOutputModes []string          `json:"defaultOutputModes,omitzero"`
	Skills             []AgentSkill      `json:"skills,omitzero"`
}

// Validate checks that the required agent card fields are set.
func (c *AgentCard) Validate() error {
	if c == nil {
		return fmt.Errorf("agent card cannot be nil")
	}
	if c.Name == "" {
		return fmt.Errorf("agent card name cannot be empty")
	}
	if c.URL == "" {
		return fmt.Errorf("agent card URL cannot be empty")
	}
	if c.Version == "" {
		return fmt.Errorf("agent card version cannot be empty")
	}
	return nil
}
