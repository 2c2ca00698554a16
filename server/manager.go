// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-a2a/agentserve"
	"github.com/go-a2a/agentserve/server/event"
	"github.com/go-a2a/agentserve/server/gateway"
	"github.com/go-a2a/agentserve/server/push"
	"github.com/go-a2a/agentserve/server/task"
)

// tracerName is the instrumentation scope for task manager spans.
const tracerName = "github.com/go-a2a/agentserve/server"

// TaskManager drives the task lifecycle: it accepts user messages, runs agent
// invocations through a gateway.Gateway, applies status transitions, and fans
// events out to stream subscribers and the push dispatcher.
//
// All state transitions are serialized under an internal mutex, so a
// cancellation always wins over a concurrently returning invocation: once a
// task leaves the working state, late updates from the agent are discarded.
type TaskManager struct {
	gateway     gateway.Gateway
	store       task.Store
	pushConfigs task.PushConfigStore
	dispatcher  *push.Dispatcher
	contexts    *ContextStore

	logger *slog.Logger
	tracer trace.Tracer

	queueSize       int
	pushHistoryTail int

	// mu serializes state transitions and guards the invocation registry.
	mu     sync.Mutex
	active map[string]context.CancelFunc
	queues map[string]*event.Queue
}

// NewTaskManager creates a TaskManager backed by gw.
func NewTaskManager(gw gateway.Gateway, opts ...Option) (*TaskManager, error) {
	if gw == nil {
		return nil, errors.New("gateway cannot be nil")
	}

	m := &TaskManager{
		gateway:         gw,
		store:           task.NewInMemoryStore(),
		pushConfigs:     task.NewInMemoryPushConfigStore(),
		contexts:        NewContextStore(),
		logger:          slog.Default(),
		tracer:          otel.GetTracerProvider().Tracer(tracerName),
		queueSize:       event.DefaultQueueSize,
		pushHistoryTail: 1,
		active:          make(map[string]context.CancelFunc),
		queues:          make(map[string]*event.Queue),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Contexts returns the conversation context store.
func (m *TaskManager) Contexts() *ContextStore {
	return m.contexts
}

// SendMessage submits a new task, or resumes a task waiting for input, and
// blocks until the invocation reaches a stopping point. The returned task
// snapshot is in the input-required state or a terminal state.
//
// If pushConfig is non-nil it is registered for the task before the
// invocation starts.
func (m *TaskManager) SendMessage(ctx context.Context, message *agentserve.Message, pushConfig *agentserve.PushNotificationConfig) (*agentserve.Task, error) {
	ctx, span := m.tracer.Start(ctx, "a2a.task_manager.SendMessage")
	defer span.End()

	queue, taskID, err := m.startInvocation(ctx, message, pushConfig)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("a2a.task_id", taskID))

	consumer := event.NewConsumer(queue)
	if _, err := consumer.DrainToTerminus(ctx); err != nil && !errors.Is(err, event.ErrQueueClosed) {
		return nil, err
	}
	// The invocation keeps running even if the caller's context expired, so
	// read the snapshot with a detached context.
	return m.store.Get(context.WithoutCancel(ctx), taskID)
}

// StreamMessage submits a new task, or resumes a task waiting for input, and
// returns a channel of lifecycle events. The channel is closed after the
// final event of the invocation; the final event always has Final() == true
// unless the caller's context expires first.
func (m *TaskManager) StreamMessage(ctx context.Context, message *agentserve.Message, pushConfig *agentserve.PushNotificationConfig) (<-chan event.Event, error) {
	ctx, span := m.tracer.Start(ctx, "a2a.task_manager.StreamMessage")
	defer span.End()

	queue, taskID, err := m.startInvocation(ctx, message, pushConfig)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("a2a.task_id", taskID))

	return event.NewConsumer(queue).Stream(ctx), nil
}

// GetTask returns a snapshot of the task.
func (m *TaskManager) GetTask(ctx context.Context, taskID string) (*agentserve.Task, error) {
	ctx, span := m.tracer.Start(ctx, "a2a.task_manager.GetTask",
		trace.WithAttributes(attribute.String("a2a.task_id", taskID)))
	defer span.End()

	if taskID == "" {
		return nil, agentserve.InvalidParamsError{Msg: "task ID cannot be empty"}
	}
	return m.store.Get(ctx, taskID)
}

// CancelTask cancels a non-terminal task. The task moves to the canceled
// state immediately; the running invocation's context is canceled and any
// update it produces afterwards is discarded.
func (m *TaskManager) CancelTask(ctx context.Context, taskID string) (*agentserve.Task, error) {
	ctx, span := m.tracer.Start(ctx, "a2a.task_manager.CancelTask",
		trace.WithAttributes(attribute.String("a2a.task_id", taskID)))
	defer span.End()

	if taskID == "" {
		return nil, agentserve.InvalidParamsError{Msg: "task ID cannot be empty"}
	}

	m.mu.Lock()
	t, err := m.store.Get(ctx, taskID)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if t.Status.State.Terminal() {
		m.mu.Unlock()
		return nil, agentserve.TaskNotCancelableError{TaskID: taskID, State: t.Status.State}
	}

	t.Status = agentserve.NewTaskStatus(agentserve.TaskStateCanceled, nil)
	if err := m.store.Save(ctx, t); err != nil {
		m.mu.Unlock()
		return nil, err
	}

	queue := m.queues[taskID]
	if cancel, ok := m.active[taskID]; ok {
		cancel()
		delete(m.active, taskID)
	}
	delete(m.queues, taskID)
	m.mu.Unlock()

	m.notifyPush(ctx, t)
	if queue != nil {
		ev := event.NewStatusUpdateEvent(t.ID, t.ContextID, t.Status, true)
		if err := queue.Enqueue(ctx, ev); err != nil && !errors.Is(err, event.ErrQueueClosed) {
			m.logger.WarnContext(ctx, "failed to enqueue cancel event", "task_id", taskID, "error", err)
		}
		queue.Close()
	}

	m.logger.InfoContext(ctx, "task canceled", "task_id", taskID)
	return t, nil
}

// SetPushConfig registers a push notification config for the task,
// overwriting any previous config.
func (m *TaskManager) SetPushConfig(ctx context.Context, taskID string, config *agentserve.PushNotificationConfig) error {
	ctx, span := m.tracer.Start(ctx, "a2a.task_manager.SetPushConfig",
		trace.WithAttributes(attribute.String("a2a.task_id", taskID)))
	defer span.End()

	if config == nil {
		return agentserve.InvalidParamsError{Msg: "push notification config cannot be nil"}
	}
	if err := config.Validate(); err != nil {
		return agentserve.InvalidParamsError{Msg: err.Error()}
	}
	if _, err := m.store.Get(ctx, taskID); err != nil {
		return err
	}
	return m.pushConfigs.Save(ctx, taskID, config)
}

// GetPushConfig returns the push notification config registered for the task.
func (m *TaskManager) GetPushConfig(ctx context.Context, taskID string) (*agentserve.PushNotificationConfig, error) {
	ctx, span := m.tracer.Start(ctx, "a2a.task_manager.GetPushConfig",
		trace.WithAttributes(attribute.String("a2a.task_id", taskID)))
	defer span.End()

	if _, err := m.store.Get(ctx, taskID); err != nil {
		return nil, err
	}
	return m.pushConfigs.Get(ctx, taskID)
}

// startInvocation validates the message, creates or loads the task, acquires
// the per-task invocation guard, transitions the task to working, and spawns
// the invocation goroutine. New tasks are published in the submitted state
// before the working transition. It returns the event queue for this
// invocation.
func (m *TaskManager) startInvocation(ctx context.Context, message *agentserve.Message, pushConfig *agentserve.PushNotificationConfig) (*event.Queue, string, error) {
	if message == nil {
		return nil, "", agentserve.InvalidParamsError{Msg: "message cannot be nil"}
	}
	if message.MessageID == "" {
		message.MessageID = uuid.NewString()
	}
	if message.Role == "" {
		message.Role = agentserve.RoleUser
	}
	if pushConfig != nil {
		if err := pushConfig.Validate(); err != nil {
			return nil, "", agentserve.InvalidParamsError{Msg: err.Error()}
		}
	}

	var (
		t     *agentserve.Task
		isNew = message.TaskID == ""
	)
	if isNew {
		if message.ContextID == "" {
			message.ContextID = uuid.NewString()
		}
		var err error
		t, err = agentserve.NewTask(message)
		if err != nil {
			return nil, "", agentserve.InvalidParamsError{Msg: err.Error()}
		}
	}

	// The terminal-state check, the busy guard, and the working transition
	// must be one atomic step: a cancel landing between any of them would
	// otherwise be overwritten and the canceled task resurrected.
	m.mu.Lock()
	if !isNew {
		var err error
		t, err = m.store.Get(ctx, message.TaskID)
		if err != nil {
			m.mu.Unlock()
			return nil, "", err
		}
		// Terminal tasks never accept further input; the ID is as good as
		// unknown for submission purposes.
		if t.Status.State.Terminal() {
			m.mu.Unlock()
			return nil, "", agentserve.TaskNotFoundError{TaskID: t.ID}
		}
		message.ContextID = t.ContextID
		if err := message.Validate(); err != nil {
			m.mu.Unlock()
			return nil, "", agentserve.InvalidParamsError{Msg: err.Error()}
		}
	}
	if _, busy := m.active[t.ID]; busy {
		m.mu.Unlock()
		return nil, "", agentserve.TaskBusyError{TaskID: t.ID}
	}
	if pushConfig != nil {
		if err := m.pushConfigs.Save(ctx, t.ID, pushConfig); err != nil {
			m.mu.Unlock()
			return nil, "", err
		}
	}

	// The invocation must outlive the request that started it: detach from
	// the caller's cancellation but keep its values for tracing.
	invCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	queue := event.NewQueue(m.queueSize)

	// Snapshot history before the new input message so the invocation sees
	// prior turns and the fresh input separately.
	var history []*agentserve.Message
	if isNew {
		// Publish the submitted snapshot before the working transition.
		if err := m.store.Save(ctx, t); err != nil {
			cancel()
			m.mu.Unlock()
			return nil, "", err
		}
		m.notifyPush(invCtx, t)
		m.emit(invCtx, queue, event.NewStatusUpdateEvent(t.ID, t.ContextID, t.Status, false))
	} else {
		history = make([]*agentserve.Message, len(t.History))
		copy(history, t.History)
		t.History = append(t.History, message)
	}

	t.Status = agentserve.NewTaskStatus(agentserve.TaskStateWorking, nil)
	if err := m.store.Save(ctx, t); err != nil {
		cancel()
		m.mu.Unlock()
		return nil, "", err
	}
	m.active[t.ID] = cancel
	m.queues[t.ID] = queue

	m.notifyPush(invCtx, t)
	m.emit(invCtx, queue, event.NewStatusUpdateEvent(t.ID, t.ContextID, t.Status, false))
	m.mu.Unlock()

	conv := m.contexts.GetOrCreate(t.ContextID)
	conv.Append(message)

	inv := &gateway.Invocation{
		TaskID:    t.ID,
		ContextID: t.ContextID,
		History:   history,
		Input:     message,
		Memory:    conv.Memory(),
	}
	go m.runInvocation(invCtx, t.ID, conv, inv, queue)

	m.logger.InfoContext(ctx, "invocation started",
		"task_id", t.ID, "context_id", t.ContextID, "resumed", !isNew)
	return queue, t.ID, nil
}

// runInvocation calls the gateway and applies its updates to the task until a
// terminal update arrives or the task is canceled out from under it.
func (m *TaskManager) runInvocation(ctx context.Context, taskID string, conv *Conversation, inv *gateway.Invocation, queue *event.Queue) {
	ctx, span := m.tracer.Start(ctx, "a2a.task_manager.runInvocation",
		trace.WithAttributes(attribute.String("a2a.task_id", taskID)))
	defer span.End()
	defer m.finishInvocation(taskID, queue)

	updates, err := m.gateway.Invoke(ctx, inv)
	if err != nil {
		m.applyTerminal(ctx, conv, queue, taskID, gateway.Errorf("agent invocation failed: %v", err))
		return
	}

	for update := range updates {
		if update.Terminal() {
			m.applyTerminal(ctx, conv, queue, taskID, update)
			return
		}
		if !m.applyProgress(ctx, conv, queue, taskID, update) {
			// Task already left the working state, typically canceled.
			return
		}
	}
	// The gateway closed the channel without a terminal update.
	m.applyTerminal(ctx, conv, queue, taskID, gateway.Errorf("agent returned no result"))
}

// finishInvocation releases the invocation guard and closes the event queue.
// Both operations are idempotent, so racing with CancelTask is harmless.
func (m *TaskManager) finishInvocation(taskID string, queue *event.Queue) {
	m.mu.Lock()
	if cancel, ok := m.active[taskID]; ok {
		cancel()
		delete(m.active, taskID)
	}
	delete(m.queues, taskID)
	m.mu.Unlock()
	queue.Close()
}

// applyProgress applies a progress update to a working task. It reports false
// when the task is no longer working and the update was discarded.
func (m *TaskManager) applyProgress(ctx context.Context, conv *Conversation, queue *event.Queue, taskID string, update gateway.Update) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.store.Get(ctx, taskID)
	if err != nil || t.Status.State != agentserve.TaskStateWorking {
		m.logger.InfoContext(ctx, "discarding progress update for non-working task", "task_id", taskID)
		return false
	}

	msg, err := agentserve.NewAgentTextMessage(update.Text, t.ContextID, taskID)
	if err != nil {
		m.logger.WarnContext(ctx, "discarding empty progress update", "task_id", taskID)
		return true
	}
	t.History = append(t.History, msg)
	t.Status = agentserve.NewTaskStatus(agentserve.TaskStateWorking, msg)
	if err := m.store.Save(ctx, t); err != nil {
		m.logger.ErrorContext(ctx, "failed to save progress update", "task_id", taskID, "error", err)
		return false
	}
	conv.Append(msg)

	// Push delivery is enqueued before stream observers can see the event,
	// so closing the dispatcher after the stream terminus loses nothing.
	m.notifyPush(ctx, t)
	m.emit(ctx, queue, event.NewStatusUpdateEvent(t.ID, t.ContextID, t.Status, false))
	return true
}

// applyTerminal applies the terminal update of an invocation. When the task
// has already left the working state (cancellation won the race) the update
// is discarded.
func (m *TaskManager) applyTerminal(ctx context.Context, conv *Conversation, queue *event.Queue, taskID string, update gateway.Update) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.store.Get(ctx, taskID)
	if err != nil || t.Status.State != agentserve.TaskStateWorking {
		m.logger.InfoContext(ctx, "discarding terminal update for non-working task", "task_id", taskID)
		return
	}

	var state agentserve.TaskState
	text := update.Text
	switch update.Kind {
	case gateway.UpdateInputRequired:
		state = agentserve.TaskStateInputRequired
	case gateway.UpdateFinal:
		state = agentserve.TaskStateCompleted
	case gateway.UpdateError:
		state = agentserve.TaskStateFailed
		if text == "" && update.Err != nil {
			text = update.Err.Error()
		}
	default:
		state = agentserve.TaskStateFailed
		text = "agent returned an invalid update"
	}

	var msg *agentserve.Message
	if text != "" {
		msg, _ = agentserve.NewAgentTextMessage(text, t.ContextID, taskID)
		t.History = append(t.History, msg)
	}
	if update.Kind == gateway.UpdateFinal {
		t.Artifacts = append(t.Artifacts, update.Artifacts...)
	}
	t.Status = agentserve.NewTaskStatus(state, msg)
	if err := m.store.Save(ctx, t); err != nil {
		m.logger.ErrorContext(ctx, "failed to save terminal update", "task_id", taskID, "error", err)
		return
	}
	if msg != nil {
		conv.Append(msg)
	}

	m.notifyPush(ctx, t)
	for _, artifact := range update.Artifacts {
		m.emit(ctx, queue, event.NewArtifactUpdateEvent(t.ID, t.ContextID, artifact))
	}
	m.emit(ctx, queue, event.NewStatusUpdateEvent(t.ID, t.ContextID, t.Status, true))

	m.logger.InfoContext(ctx, "invocation finished", "task_id", taskID, "state", string(state))
}

// emit enqueues an event, logging instead of blocking when the subscriber has
// fallen too far behind or already went away.
func (m *TaskManager) emit(ctx context.Context, queue *event.Queue, ev event.Event) {
	switch err := queue.Enqueue(ctx, ev); {
	case err == nil:
	case errors.Is(err, event.ErrQueueClosed):
		// Subscriber gone; state and push delivery are unaffected.
	case errors.Is(err, event.ErrQueueFull):
		m.logger.WarnContext(ctx, "event queue full, dropping event",
			"task_id", ev.GetTaskID(), "event_type", ev.EventType())
	default:
		m.logger.WarnContext(ctx, "failed to enqueue event",
			"task_id", ev.GetTaskID(), "event_type", ev.EventType(), "error", err)
	}
}

// notifyPush hands the task's current snapshot to the push dispatcher when a
// config is registered for it.
func (m *TaskManager) notifyPush(ctx context.Context, t *agentserve.Task) {
	if m.dispatcher == nil {
		return
	}
	config, err := m.pushConfigs.Get(ctx, t.ID)
	if err != nil {
		return
	}

	tail := t.History
	if m.pushHistoryTail > 0 && len(tail) > m.pushHistoryTail {
		tail = tail[len(tail)-m.pushHistoryTail:]
	}
	m.dispatcher.Enqueue(push.Delivery{
		Config: config,
		Payload: &push.Payload{
			TaskID:    t.ID,
			ContextID: t.ContextID,
			Status:    t.Status,
			History:   tail,
			Artifacts: t.Artifacts,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}
