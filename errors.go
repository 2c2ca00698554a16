// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agentserve

import (
	"fmt"
)

// Error codes surfaced to transport layers. The negative ranges follow
// JSON-RPC conventions: -32700..-32600 for framing errors, -32000..-32099 for
// server-defined conditions.
const (
	ErrorCodeTaskNotFound      = -32001
	ErrorCodeTaskNotCancelable = -32002
	ErrorCodeTaskBusy          = -32003
	ErrorCodeJSONParse         = -32700
	ErrorCodeInvalidRequest    = -32600
	ErrorCodeMethodNotFound    = -32601
	ErrorCodeInvalidParams     = -32602
	ErrorCodeInternalError     = -32603
)

// Error is implemented by protocol errors that carry a transport error code.
type Error interface {
	error
	Code() int
	Message() string
}

// TaskNotFoundError indicates a lookup or resume against a task ID that was
// never created or is already terminal.
type TaskNotFoundError struct {
	TaskID string
}

// Error returns the error message.
func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.TaskID)
}

// Code returns the error code.
func (e TaskNotFoundError) Code() int {
	return ErrorCodeTaskNotFound
}

// Message returns the protocol-level error description.
func (e TaskNotFoundError) Message() string {
	return "Task not found"
}

// TaskBusyError indicates a resume was attempted while an agent invocation
// for the same task is still in flight. The caller must wait for the current
// invocation to reach a terminus before resuming.
type TaskBusyError struct {
	TaskID string
}

// Error returns the error message.
func (e TaskBusyError) Error() string {
	return fmt.Sprintf("task busy: %s", e.TaskID)
}

// Code returns the error code.
func (e TaskBusyError) Code() int {
	return ErrorCodeTaskBusy
}

// Message returns the protocol-level error description.
func (e TaskBusyError) Message() string {
	return "Task has an agent invocation in flight"
}

// TaskNotCancelableError indicates a cancel request against a task already in
// a terminal state.
type TaskNotCancelableError struct {
	TaskID string
	State  TaskState
}

// Error returns the error message.
func (e TaskNotCancelableError) Error() string {
	return fmt.Sprintf("task cannot be canceled: %s (state %s)", e.TaskID, e.State)
}

// Code returns the error code.
func (e TaskNotCancelableError) Code() int {
	return ErrorCodeTaskNotCancelable
}

// Message returns the protocol-level error description.
func (e TaskNotCancelableError) Message() string {
	return "Task cannot be canceled"
}

// InvalidParamsError indicates a structurally valid request with unusable
// parameters.
type InvalidParamsError struct {
	Msg string
}

// Error returns the error message.
func (e InvalidParamsError) Error() string {
	return fmt.Sprintf("invalid params: %s", e.Msg)
}

// Code returns the error code.
func (e InvalidParamsError) Code() int {
	return ErrorCodeInvalidParams
}

// Message returns the protocol-level error description.
func (e InvalidParamsError) Message() string {
	return "Invalid parameters"
}
