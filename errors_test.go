// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agentserve_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-a2a/agentserve"
)

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  agentserve.Error
		code int
	}{
		{"task not found", agentserve.TaskNotFoundError{TaskID: "t1"}, -32001},
		{"task not cancelable", agentserve.TaskNotCancelableError{TaskID: "t1", State: agentserve.TaskStateCompleted}, -32002},
		{"task busy", agentserve.TaskBusyError{TaskID: "t1"}, -32003},
		{"invalid params", agentserve.InvalidParamsError{Msg: "bad"}, -32602},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Code(); got != tt.code {
				t.Errorf("Code() = %v, want %v", got, tt.code)
			}
			if tt.err.Message() == "" {
				t.Error("Message() returned empty string")
			}
			if tt.err.Error() == "" {
				t.Error("Error() returned empty string")
			}
		})
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading task: %w", agentserve.TaskNotFoundError{TaskID: "t9"})

	var notFound agentserve.TaskNotFoundError
	if !errors.As(wrapped, &notFound) {
		t.Fatal("errors.As() failed to unwrap TaskNotFoundError")
	}
	if got, want := notFound.TaskID, "t9"; got != want {
		t.Errorf("TaskID = %q, want %q", got, want)
	}

	var aerr agentserve.Error
	if !errors.As(wrapped, &aerr) {
		t.Fatal("errors.As() failed to match the Error interface")
	}
	if got, want := aerr.Code(), -32001; got != want {
		t.Errorf("Code() = %v, want %v", got, want)
	}
}
