// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package push

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/go-a2a/agentserve"
)

// Default dispatcher sizing. Both are externally configurable; the core
// imposes no retry policy and no payload size cap.
const (
	DefaultQueueSize         = 128
	DefaultFailureBufferSize = 64
	DefaultRequestTimeout    = 30 * time.Second
)

// Payload is the JSON body delivered to a webhook on every client-visible
// task transition.
type Payload struct {
	TaskID    string                 `json:"taskId"`
	ContextID string                 `json:"contextId"`
	Status    agentserve.TaskStatus  `json:"status"`
	History   []*agentserve.Message  `json:"history,omitzero"`
	Artifacts []*agentserve.Artifact `json:"artifacts,omitzero"`
	Timestamp string                 `json:"timestamp"`
}

// Delivery pairs a payload with the webhook configuration it is bound for.
type Delivery struct {
	Config  *agentserve.PushNotificationConfig
	Payload *Payload
}

// Failure reports one failed delivery on the observability channel.
// Failures never affect task state and are never retried by the core.
type Failure struct {
	TaskID string
	URL    string
	Err    error
}

// Dispatcher delivers signed payloads to webhook endpoints. It is a
// fire-and-forget side channel: deliveries are fed through a buffered channel
// to a dedicated worker, so a slow or unreachable webhook never stalls the
// task state machine. Deliveries for one task keep their enqueue order.
type Dispatcher struct {
	client  *http.Client
	signer  *Signer
	logger  *slog.Logger
	timeout time.Duration

	deliveries chan Delivery
	failures   chan Failure
	done       chan struct{}

	mu     sync.Mutex
	closed bool
}

// DispatcherConfig holds configuration for a Dispatcher.
type DispatcherConfig struct {
	// Client is the HTTP client for outbound calls. Defaults to a client
	// with DefaultRequestTimeout.
	Client *http.Client

	// Signer signs each payload. Required: unsigned push delivery is not
	// supported.
	Signer *Signer

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// QueueSize bounds pending deliveries; overflow is reported as a
	// delivery failure, not blocked on.
	QueueSize int

	// FailureBufferSize bounds the observability channel. If nobody drains
	// it, further failures are logged and dropped.
	FailureBufferSize int
}

// NewDispatcher creates a Dispatcher and starts its delivery worker.
func NewDispatcher(config DispatcherConfig) (*Dispatcher, error) {
	if config.Signer == nil {
		return nil, fmt.Errorf("push dispatcher requires a signer")
	}

	client := config.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultRequestTimeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	failureSize := config.FailureBufferSize
	if failureSize <= 0 {
		failureSize = DefaultFailureBufferSize
	}

	d := &Dispatcher{
		client:     client,
		signer:     config.Signer,
		logger:     logger,
		timeout:    DefaultRequestTimeout,
		deliveries: make(chan Delivery, queueSize),
		failures:   make(chan Failure, failureSize),
		done:       make(chan struct{}),
	}
	go d.run()

	return d, nil
}

// Enqueue queues a delivery without blocking. If the queue is full or the
// dispatcher is closed, the delivery is reported as a failure and dropped.
func (d *Dispatcher) Enqueue(delivery Delivery) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		// The failure channel may already be closed; the log is the record.
		d.logger.Warn("push delivery dropped, dispatcher is closed",
			"task_id", delivery.Payload.TaskID,
			"url", delivery.Config.URL)
		return
	}

	select {
	case d.deliveries <- delivery:
	default:
		d.reportFailure(Failure{
			TaskID: delivery.Payload.TaskID,
			URL:    delivery.Config.URL,
			Err:    fmt.Errorf("push delivery queue overflow"),
		})
	}
}

// Failures returns the observability channel of delivery failures.
func (d *Dispatcher) Failures() <-chan Failure {
	return d.failures
}

// Close stops accepting deliveries, waits for pending ones to finish, and
// closes the failure channel.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.deliveries)
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) run() {
	for delivery := range d.deliveries {
		d.deliver(delivery)
	}
	close(d.failures)
	close(d.done)
}

func (d *Dispatcher) deliver(delivery Delivery) {
	payload := delivery.Payload
	config := delivery.Config

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		d.reportFailure(Failure{TaskID: payload.TaskID, URL: config.URL,
			Err: fmt.Errorf("failed to marshal push payload: %w", err)})
		return
	}

	token, err := d.signer.Sign(body)
	if err != nil {
		d.reportFailure(Failure{TaskID: payload.TaskID, URL: config.URL,
			Err: fmt.Errorf("failed to sign push payload: %w", err)})
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.URL, bytes.NewReader(body))
	if err != nil {
		d.reportFailure(Failure{TaskID: payload.TaskID, URL: config.URL,
			Err: fmt.Errorf("failed to create push request: %w", err)})
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if config.Token != "" {
		req.Header.Set("X-A2A-Notification-Token", config.Token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.reportFailure(Failure{TaskID: payload.TaskID, URL: config.URL,
			Err: fmt.Errorf("failed to send push notification: %w", err)})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		d.reportFailure(Failure{TaskID: payload.TaskID, URL: config.URL,
			Err: fmt.Errorf("push notification rejected with HTTP %d: %s", resp.StatusCode, detail)})
		return
	}

	d.logger.Info("push notification sent",
		"task_id", payload.TaskID,
		"url", config.URL,
		"state", payload.Status.State)
}

func (d *Dispatcher) reportFailure(failure Failure) {
	d.logger.Warn("push delivery failure",
		"task_id", failure.TaskID,
		"url", failure.URL,
		"error", failure.Err)

	select {
	case d.failures <- failure:
	default:
		// Observability channel full; the log line above is the record.
	}
}
