// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package gateway defines the contract between the task state machine and the
// underlying agent reasoning/tool-calling capability. The capability is
// opaque: any implementation that satisfies the Gateway interface is
// interchangeable, which keeps the non-deterministic component isolated from
// the deterministic state machine.
package gateway

import (
	"context"
	"fmt"

	"github.com/go-a2a/agentserve"
)

// UpdateKind discriminates the updates a gateway invocation can produce.
type UpdateKind string

const (
	// UpdateProgress is an intermediate status note. Zero or more may
	// precede the terminal update.
	UpdateProgress UpdateKind = "progress"

	// UpdateInputRequired terminates the invocation without completing the
	// task: the agent needs more client input before it can continue.
	UpdateInputRequired UpdateKind = "input-required"

	// UpdateFinal terminates the invocation with the agent's answer and any
	// produced artifacts.
	UpdateFinal UpdateKind = "final"

	// UpdateError terminates the invocation with an unrecoverable agent
	// failure.
	UpdateError UpdateKind = "error"
)

// Update is one emission from a gateway invocation.
type Update struct {
	Kind UpdateKind

	// Text carries the progress note, input prompt, final answer, or error
	// detail depending on Kind.
	Text string

	// Artifacts is populated only on UpdateFinal.
	Artifacts []*agentserve.Artifact

	// Err is populated only on UpdateError.
	Err error
}

// Terminal reports whether the update ends the invocation's update sequence.
func (u Update) Terminal() bool {
	return u.Kind != UpdateProgress
}

// Validate ensures the Update is structurally valid.
func (u Update) Validate() error {
	switch u.Kind {
	case UpdateProgress, UpdateInputRequired:
		if u.Text == "" {
			return fmt.Errorf("%s update text cannot be empty", u.Kind)
		}
	case UpdateFinal:
		// Artifact-only completion is valid; the answer may live entirely
		// in the artifacts.
		if u.Text == "" && len(u.Artifacts) == 0 {
			return fmt.Errorf("final update must carry text or artifacts")
		}
	case UpdateError:
		if u.Err == nil {
			return fmt.Errorf("error update must carry an error")
		}
	default:
		return fmt.Errorf("unknown update kind: %s", u.Kind)
	}
	return nil
}

// Progress creates a progress update.
func Progress(text string) Update {
	return Update{Kind: UpdateProgress, Text: text}
}

// InputRequired creates an input-required terminal update with the prompt the
// client should answer.
func InputRequired(prompt string) Update {
	return Update{Kind: UpdateInputRequired, Text: prompt}
}

// Final creates a final terminal update with the answer text and artifacts.
// Text may be empty when the answer is carried entirely by artifacts.
func Final(text string, artifacts ...*agentserve.Artifact) Update {
	return Update{Kind: UpdateFinal, Text: text, Artifacts: artifacts}
}

// Errorf creates an error terminal update.
func Errorf(format string, args ...any) Update {
	err := fmt.Errorf(format, args...)
	return Update{Kind: UpdateError, Text: err.Error(), Err: err}
}

// Invocation carries everything a gateway needs for one call: the full prior
// history, the new input turn, and the owning context's memory handle. The
// state machine supplies the complete history on each resume so conversational
// continuity survives the input-required round trip.
type Invocation struct {
	TaskID    string
	ContextID string

	// History is a snapshot of the task's message history, in append order,
	// not including Input.
	History []*agentserve.Message

	// Input is the client message that triggered this invocation.
	Input *agentserve.Message

	// Memory is the owning context's memory handle. It is never ambient
	// process state; each context owns exactly one handle.
	Memory *Memory
}

// Validate ensures the Invocation is valid.
func (inv *Invocation) Validate() error {
	if inv == nil {
		return fmt.Errorf("invocation cannot be nil")
	}
	if inv.TaskID == "" {
		return fmt.Errorf("invocation task ID cannot be empty")
	}
	if inv.ContextID == "" {
		return fmt.Errorf("invocation context ID cannot be empty")
	}
	if err := inv.Input.Validate(); err != nil {
		return fmt.Errorf("invocation input is invalid: %w", err)
	}
	return nil
}

// Gateway adapts the opaque reasoning/tool-calling capability into a uniform
// call contract.
//
// Invoke returns a channel that yields zero or more progress updates followed
// by exactly one terminal update (final, input-required, or error), then
// closes. The call may take arbitrarily long; cancellation of ctx abandons
// the invocation, and the state machine discards any update that arrives
// after the task left the working state.
type Gateway interface {
	Invoke(ctx context.Context, inv *Invocation) (<-chan Update, error)
}

// Func adapts a function to the Gateway interface.
type Func func(ctx context.Context, inv *Invocation) (<-chan Update, error)

var _ Gateway = (Func)(nil)

// Invoke calls f.
func (f Func) Invoke(ctx context.Context, inv *Invocation) (<-chan Update, error) {
	return f(ctx, inv)
}
