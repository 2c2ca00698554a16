// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command example runs an agent server around a scripted database query
// agent. The agent asks for a query when the first message is empty,
// reports progress while it "executes" the query, and completes with a
// structured result artifact.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-a2a/agentserve"
	"github.com/go-a2a/agentserve/server"
	"github.com/go-a2a/agentserve/server/gateway"
	"github.com/go-a2a/agentserve/server/push"
	"github.com/go-a2a/agentserve/transport"
)

// queryAgent simulates an agent that runs database queries through an MCP
// tool server. It keeps the last executed query in conversation memory.
func queryAgent(ctx context.Context, inv *gateway.Invocation) (<-chan gateway.Update, error) {
	updates := make(chan gateway.Update, 8)
	go func() {
		defer close(updates)

		query := strings.TrimSpace(inv.Input.Text())
		if query == "" {
			updates <- gateway.InputRequired("What would you like to query from the database?")
			return
		}

		updates <- gateway.Progress("Querying Supabase database via MCP...")
		select {
		case <-time.After(200 * time.Millisecond):
		case <-ctx.Done():
			return
		}

		updates <- gateway.Progress("Processing database results...")

		inv.Memory.Store("last_query", query)
		artifact, err := agentserve.NewDataArtifact("supabase_query_result", map[string]any{
			"query":  query,
			"rows":   []any{},
			"status": "ok",
		})
		if err != nil {
			updates <- gateway.Errorf("failed to build result artifact: %v", err)
			return
		}
		updates <- gateway.Final("Query executed successfully.", artifact)
	}()
	return updates, nil
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	signer, err := push.NewSigner()
	if err != nil {
		log.Fatalf("Failed to create push signer: %v", err)
	}
	dispatcher, err := push.NewDispatcher(push.DispatcherConfig{
		Signer: signer,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to create push dispatcher: %v", err)
	}
	defer dispatcher.Close()

	manager, err := server.NewTaskManager(gateway.Func(queryAgent),
		server.WithLogger(logger),
		server.WithDispatcher(dispatcher),
	)
	if err != nil {
		log.Fatalf("Failed to create task manager: %v", err)
	}

	handler, err := transport.NewHandler(transport.Config{
		Manager: manager,
		AgentCard: &agentserve.AgentCard{
			Name:        "Database Query Agent",
			Description: "Runs database queries through an MCP tool server",
			URL:         "http://localhost:8080/",
			Version:     agentserve.Version,
			Capabilities: agentserve.AgentCapabilities{
				Streaming:              true,
				PushNotifications:      true,
				StateTransitionHistory: true,
			},
			DefaultInputModes:  []string{"text"},
			DefaultOutputModes: []string{"text"},
			Skills: []agentserve.AgentSkill{
				{
					ID:          "database-query",
					Name:        "Database Query",
					Description: "Execute a read-only database query and return the rows",
					Tags:        []string{"database", "query"},
					Examples:    []string{"List the ten most recent orders"},
				},
			},
		},
		Signer: signer,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to create handler: %v", err)
	}

	httpServer := &http.Server{
		Addr:    ":8080",
		Handler: handler,
	}

	go func() {
		logger.Info("agent server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("agent server stopped")
}
