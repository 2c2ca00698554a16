// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package transport exposes the task lifecycle over JSON-RPC 2.0 on HTTP,
// with Server-Sent Events for streaming responses, plus the well-known
// discovery endpoints for the agent card and the push signing keys.
package transport

import (
	"errors"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/agentserve"
)

// RPC method names.
const (
	// MethodMessageSend submits a new task or resumes one waiting for input,
	// blocking until the invocation stops.
	MethodMessageSend = "message/send"
	// MethodMessageStream is the streaming variant of message/send.
	MethodMessageStream = "message/stream"
	// MethodTasksGet returns a task snapshot.
	MethodTasksGet = "tasks/get"
	// MethodTasksCancel cancels a non-terminal task.
	MethodTasksCancel = "tasks/cancel"
	// MethodTasksPushConfigSet registers a push notification config.
	MethodTasksPushConfigSet = "tasks/pushNotificationConfig/set"
	// MethodTasksPushConfigGet returns the registered push notification config.
	MethodTasksPushConfigGet = "tasks/pushNotificationConfig/get"
)

// Request is a JSON-RPC 2.0 request envelope. The ID is carried as raw JSON
// so string and number IDs round-trip unchanged.
type Request struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      jsontext.Value `json:"id,omitzero"`
	Method  string         `json:"method"`
	Params  jsontext.Value `json:"params,omitzero"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitzero"`
}

// Response is a JSON-RPC 2.0 response envelope.
type Response struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      jsontext.Value `json:"id,omitzero"`
	Result  any            `json:"result,omitzero"`
	Error   *Error         `json:"error,omitzero"`
}

// NewResponse creates a success response for the given request ID.
func NewResponse(id jsontext.Value, result any) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

// NewErrorResponse creates an error response for the given request ID.
func NewErrorResponse(id jsontext.Value, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	}
}

// toRPCError maps an error from the task layer onto a JSON-RPC error object.
// Protocol errors keep their assigned codes; everything else becomes an
// internal error.
func toRPCError(err error) *Error {
	var aerr agentserve.Error
	if errors.As(err, &aerr) {
		return &Error{Code: aerr.Code(), Message: aerr.Message(), Data: err.Error()}
	}
	return &Error{Code: agentserve.ErrorCodeInternalError, Message: "Internal error", Data: err.Error()}
}

// MessageSendConfiguration carries per-request options for message/send and
// message/stream.
type MessageSendConfiguration struct {
	// PushNotificationConfig, when set, is registered for the task before
	// the invocation starts.
	PushNotificationConfig *agentserve.PushNotificationConfig `json:"pushNotificationConfig,omitzero"`
}

// MessageSendParams are the params of message/send and message/stream.
type MessageSendParams struct {
	Message       *agentserve.Message       `json:"message"`
	Configuration *MessageSendConfiguration `json:"configuration,omitzero"`
}

// TaskIDParams identify a task for tasks/get, tasks/cancel, and
// tasks/pushNotificationConfig/get.
type TaskIDParams struct {
	ID string `json:"id"`
}

// TaskPushConfigParams are the params of tasks/pushNotificationConfig/set.
type TaskPushConfigParams struct {
	TaskID                 string                             `json:"taskId"`
	PushNotificationConfig *agentserve.PushNotificationConfig `json:"pushNotificationConfig"`
}

// TaskPushConfigResult is the result of the push notification config methods.
type TaskPushConfigResult struct {
	TaskID                 string                             `json:"taskId"`
	PushNotificationConfig *agentserve.PushNotificationConfig `json:"pushNotificationConfig"`
}
