// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/agentserve"
	"github.com/go-a2a/agentserve/server"
	"github.com/go-a2a/agentserve/server/push"
)

// AgentCardPath is the well-known path of the agent discovery document.
const AgentCardPath = "/.well-known/agent.json"

// JWKSPath is the well-known path of the push signing key set.
const JWKSPath = "/.well-known/jwks.json"

// Config holds the dependencies of a Handler.
type Config struct {
	// Manager drives the task lifecycle. Required.
	Manager *server.TaskManager
	// AgentCard is served at the discovery endpoint. Required.
	AgentCard *agentserve.AgentCard
	// Signer publishes its public keys at the JWKS endpoint. Optional;
	// without it the JWKS endpoint returns 404.
	Signer *push.Signer
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Handler is the HTTP surface of the agent server: a single JSON-RPC 2.0
// endpoint at the root plus the well-known discovery endpoints.
type Handler struct {
	manager *server.TaskManager
	card    *agentserve.AgentCard
	signer  *push.Signer
	logger  *slog.Logger
	mux     *http.ServeMux
}

var _ http.Handler = (*Handler)(nil)

// NewHandler creates a Handler from config.
func NewHandler(config Config) (*Handler, error) {
	if config.Manager == nil {
		return nil, fmt.Errorf("task manager is required")
	}
	if err := config.AgentCard.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent card: %w", err)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		manager: config.Manager,
		card:    config.AgentCard,
		signer:  config.Signer,
		logger:  logger,
		mux:     http.NewServeMux(),
	}
	h.mux.HandleFunc("GET "+AgentCardPath, h.handleAgentCard)
	if h.signer != nil {
		h.mux.HandleFunc("GET "+JWKSPath, h.handleJWKS)
	}
	h.mux.HandleFunc("POST /", h.handleRPC)
	return h, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.MarshalWrite(w, h.card); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode agent card", "error", err)
	}
}

func (h *Handler) handleJWKS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.MarshalWrite(w, h.signer.JWKS()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode JWKS", "error", err)
	}
}

// handleRPC decodes the JSON-RPC envelope and routes by method.
func (h *Handler) handleRPC(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req Request
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		h.sendResponse(w, r, NewErrorResponse(nil, agentserve.ErrorCodeJSONParse, "Parse error"))
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		h.sendResponse(w, r, NewErrorResponse(req.ID, agentserve.ErrorCodeInvalidRequest, "Invalid Request"))
		return
	}

	switch req.Method {
	case MethodMessageSend:
		h.handleMessageSend(w, r, req)
	case MethodMessageStream:
		h.handleMessageStream(w, r, req)
	case MethodTasksGet:
		h.handleTasksGet(w, r, req)
	case MethodTasksCancel:
		h.handleTasksCancel(w, r, req)
	case MethodTasksPushConfigSet:
		h.handleTasksPushConfigSet(w, r, req)
	case MethodTasksPushConfigGet:
		h.handleTasksPushConfigGet(w, r, req)
	default:
		h.sendResponse(w, r, NewErrorResponse(req.ID, agentserve.ErrorCodeMethodNotFound, "Method not found"))
	}
}

func (h *Handler) handleMessageSend(w http.ResponseWriter, r *http.Request, req Request) {
	var params MessageSendParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Message == nil {
		h.sendResponse(w, r, NewErrorResponse(req.ID, agentserve.ErrorCodeInvalidParams, "Invalid params"))
		return
	}

	task, err := h.manager.SendMessage(r.Context(), params.Message, pushConfigOf(params.Configuration))
	if err != nil {
		h.sendError(w, r, req.ID, err)
		return
	}
	h.sendResponse(w, r, NewResponse(req.ID, task))
}

// handleMessageStream starts an invocation and relays its lifecycle events as
// Server-Sent Events. Each SSE message carries a JSON-RPC response envelope
// whose result is the event; the SSE event name is the event type.
func (h *Handler) handleMessageStream(w http.ResponseWriter, r *http.Request, req Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.sendResponse(w, r, NewErrorResponse(req.ID, agentserve.ErrorCodeInternalError, "streaming unsupported"))
		return
	}

	var params MessageSendParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Message == nil {
		h.sendResponse(w, r, NewErrorResponse(req.ID, agentserve.ErrorCodeInvalidParams, "Invalid params"))
		return
	}

	events, err := h.manager.StreamMessage(r.Context(), params.Message, pushConfigOf(params.Configuration))
	if err != nil {
		h.sendError(w, r, req.ID, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for ev := range events {
		data, err := json.Marshal(NewResponse(req.ID, ev))
		if err != nil {
			h.logger.ErrorContext(r.Context(), "failed to encode stream event",
				"task_id", ev.GetTaskID(), "error", err)
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.EventType(), data)
		flusher.Flush()
	}
}

func (h *Handler) handleTasksGet(w http.ResponseWriter, r *http.Request, req Request) {
	var params TaskIDParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.ID == "" {
		h.sendResponse(w, r, NewErrorResponse(req.ID, agentserve.ErrorCodeInvalidParams, "Invalid params"))
		return
	}

	task, err := h.manager.GetTask(r.Context(), params.ID)
	if err != nil {
		h.sendError(w, r, req.ID, err)
		return
	}
	h.sendResponse(w, r, NewResponse(req.ID, task))
}

func (h *Handler) handleTasksCancel(w http.ResponseWriter, r *http.Request, req Request) {
	var params TaskIDParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.ID == "" {
		h.sendResponse(w, r, NewErrorResponse(req.ID, agentserve.ErrorCodeInvalidParams, "Invalid params"))
		return
	}

	task, err := h.manager.CancelTask(r.Context(), params.ID)
	if err != nil {
		h.sendError(w, r, req.ID, err)
		return
	}
	h.sendResponse(w, r, NewResponse(req.ID, task))
}

func (h *Handler) handleTasksPushConfigSet(w http.ResponseWriter, r *http.Request, req Request) {
	var params TaskPushConfigParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.TaskID == "" {
		h.sendResponse(w, r, NewErrorResponse(req.ID, agentserve.ErrorCodeInvalidParams, "Invalid params"))
		return
	}

	if err := h.manager.SetPushConfig(r.Context(), params.TaskID, params.PushNotificationConfig); err != nil {
		h.sendError(w, r, req.ID, err)
		return
	}
	h.sendResponse(w, r, NewResponse(req.ID, TaskPushConfigResult{
		TaskID:                 params.TaskID,
		PushNotificationConfig: params.PushNotificationConfig,
	}))
}

func (h *Handler) handleTasksPushConfigGet(w http.ResponseWriter, r *http.Request, req Request) {
	var params TaskIDParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.ID == "" {
		h.sendResponse(w, r, NewErrorResponse(req.ID, agentserve.ErrorCodeInvalidParams, "Invalid params"))
		return
	}

	config, err := h.manager.GetPushConfig(r.Context(), params.ID)
	if err != nil {
		h.sendError(w, r, req.ID, err)
		return
	}
	h.sendResponse(w, r, NewResponse(req.ID, TaskPushConfigResult{
		TaskID:                 params.ID,
		PushNotificationConfig: config,
	}))
}

// pushConfigOf extracts the push notification config from optional send
// configuration.
func pushConfigOf(config *MessageSendConfiguration) *agentserve.PushNotificationConfig {
	if config == nil {
		return nil
	}
	return config.PushNotificationConfig
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, id jsontext.Value, err error) {
	rpcErr := toRPCError(err)
	h.logger.InfoContext(r.Context(), "request failed",
		"method", r.URL.Path, "code", rpcErr.Code, "error", err)
	h.sendResponse(w, r, &Response{JSONRPC: "2.0", ID: id, Error: rpcErr})
}

func (h *Handler) sendResponse(w http.ResponseWriter, r *http.Request, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.MarshalWrite(w, resp); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}
