package protocol

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gatelogic/gatelogic-core/internal/infrastructure/logging"
	"github.com/gatelogic/gatelogic-core/internal/infrastructure/mqtt"
	"github.com/gatelogic/gatelogic-core/internal/passcode"
)

// Wire payloads published on the result topics. These are a compatibility
// contract with deployed devices and must not change.
const (
	ResultTrue          = "true"
	ResultFalse         = "false"
	ResultEmptyPasscode = "false:empty_passcode"
	ResultDatabaseError = "false:database_error"
	resultErrorPrefix   = "false:error_"
)

const (
	commandQoS = 1

	defaultOpTimeout     = 5 * time.Second
	defaultNotifyTimeout = 30 * time.Second
)

// Bus is the slice of the MQTT client the engine needs. Satisfied by
// *mqtt.Client.
type Bus interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	PublishString(topic string, payload string, qos byte, retained bool) error
}

// Notifier receives a successful-entry event. Implementations must do their
// own error handling; delivery failures never affect the already-published
// verification result.
type Notifier interface {
	Notify(ctx context.Context, recordID int64, ts time.Time)
}

// EventSink records verification and registration outcomes for history.
// Satisfied by *influxdb.Client.
type EventSink interface {
	WriteEntryEvent(recordID int64, name string, granted bool, ts time.Time)
	WriteRegistrationEvent(recordID int64, ok bool, ts time.Time)
}

// Deps holds the engine's collaborators. Notifier and Events are optional;
// nil disables the corresponding side effect.
type Deps struct {
	Store    passcode.Repository
	Bus      Bus
	Notifier Notifier
	Events   EventSink
	Logger   *logging.Logger

	// NotifyTimeout bounds the asynchronous notification attempt.
	// Zero selects the default.
	NotifyTimeout time.Duration
}

// Engine handles the verification and registration exchanges.
//
// The two-phase verification protocol stages the declared identity in a
// single shared slot: an identity declaration sets it, and every following
// verify request reads it. The slot has no TTL, is not cleared after a
// verification attempt, and is only ever replaced by a newer declaration.
// Devices rely on being able to retry a secret against the identity they
// already declared, so the slot must not be consumed on use.
//
// The paho client delivers messages in order on one connection, but the
// slot is mutex-guarded anyway so the engine stays correct if handlers
// ever run concurrently.
type Engine struct {
	store    passcode.Repository
	bus      Bus
	notifier Notifier
	events   EventSink
	logger   *logging.Logger
	topics   mqtt.Topics

	notifyTimeout time.Duration

	// runCtx is the process lifetime context, parent of every per-message
	// operation context. Set by Start.
	runCtx context.Context

	mu         sync.Mutex
	pendingID  int64
	hasPending bool
}

// New creates an Engine. Call Start to bind it to the bus.
func New(deps Deps) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	notifyTimeout := deps.NotifyTimeout
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}
	return &Engine{
		store:         deps.Store,
		bus:           deps.Bus,
		notifier:      deps.Notifier,
		events:        deps.Events,
		logger:        logger.With("component", "protocol"),
		notifyTimeout: notifyTimeout,
	}
}

// Start subscribes the engine to the inbound protocol topics. ctx bounds
// the lifetime of everything the engine does, including in-flight
// notification attempts.
func (e *Engine) Start(ctx context.Context) error {
	e.runCtx = ctx

	inbound := []string{
		e.topics.IdentityDeclare(),
		e.topics.VerifyRequest(),
		e.topics.RegisterPasscode(),
	}
	for _, topic := range inbound {
		if err := e.bus.Subscribe(topic, commandQoS, e.HandleMessage); err != nil {
			return fmt.Errorf("subscribing to %s: %w", topic, err)
		}
	}

	e.logger.Info("protocol engine started", "topics", len(inbound))
	return nil
}

// PendingIdentity reports the currently staged identity, if any.
func (e *Engine) PendingIdentity() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingID, e.hasPending
}

// HandleMessage decodes and dispatches one inbound bus message.
//
// Any panic escaping a handler is mapped to the topic-appropriate negative
// result: an error state must never read as a successful authentication.
func (e *Engine) HandleMessage(topic string, payload []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("message handler panic", "topic", topic, "panic", r)
			e.failClosed(topic, r)
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	msg, err := DecodeMessage(topic, payload)
	if err != nil {
		// Malformed and out-of-range declarations are discarded without
		// a reply and without touching the pending slot.
		e.logger.Warn("discarding message", "topic", topic, "error", err)
		return nil
	}

	switch msg.Kind {
	case KindIdentityDeclare:
		e.handleIdentity(msg)
	case KindVerifyRequest:
		e.handleVerify(msg)
	case KindRegisterRequest:
		e.handleRegister(msg)
	case KindUnknown:
		e.logger.Warn("discarding message of unknown kind", "topic", topic)
	}
	return nil
}

// failClosed publishes the negative result matching the topic a failed
// handler was serving. Identity declarations have no reply topic.
func (e *Engine) failClosed(topic string, cause any) {
	switch topic {
	case e.topics.VerifyRequest():
		e.publishResult(e.topics.VerifyResult(), ResultFalse)
	case e.topics.RegisterPasscode():
		desc := fmt.Sprintf("%v", cause)
		e.publishResult(e.topics.RegisterResult(), resultErrorPrefix+desc)
	}
}

func (e *Engine) handleIdentity(msg Message) {
	e.mu.Lock()
	e.pendingID = msg.Identity
	e.hasPending = true
	e.mu.Unlock()

	e.logger.Debug("identity declared", "id", msg.Identity)
}

func (e *Engine) handleVerify(msg Message) {
	resultTopic := e.topics.VerifyResult()

	e.mu.Lock()
	id, declared := e.pendingID, e.hasPending
	e.mu.Unlock()

	if !declared {
		e.logger.Warn("verify request without declared identity")
		e.publishResult(resultTopic, ResultFalse)
		return
	}
	if msg.Secret == "" {
		e.logger.Warn("verify request with empty secret", "id", id)
		e.publishResult(resultTopic, ResultFalse)
		return
	}

	ctx, cancel := context.WithTimeout(e.opCtx(), defaultOpTimeout)
	defer cancel()

	rec, err := e.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, passcode.ErrNotFound) {
			e.logger.Warn("verify request for unknown identity", "id", id)
		} else {
			e.logger.Error("store lookup failed", "id", id, "error", err)
		}
		e.publishResult(resultTopic, ResultFalse)
		return
	}

	now := time.Now().UTC()

	if rec.Secret != msg.Secret {
		e.logger.Warn("verification denied", "id", id)
		e.publishResult(resultTopic, ResultFalse)
		e.recordEntry(rec, false, now)
		return
	}

	e.publishResult(resultTopic, ResultTrue)
	e.logger.Info("verification granted", "id", id, "name", rec.DisplayName())

	if err := e.store.TouchAccess(ctx, id, now); err != nil {
		// Result already published; the stale timestamp is only cosmetic.
		e.logger.Error("updating last access failed", "id", id, "error", err)
	}

	e.recordEntry(rec, true, now)
	e.dispatchNotification(id, now)
}

func (e *Engine) handleRegister(msg Message) {
	resultTopic := e.topics.RegisterResult()

	if msg.Secret == "" {
		e.logger.Warn("registration with empty passcode rejected")
		e.publishResult(resultTopic, ResultEmptyPasscode)
		return
	}

	ctx, cancel := context.WithTimeout(e.opCtx(), defaultOpTimeout)
	defer cancel()

	id, err := e.store.Insert(ctx, msg.Secret)
	if err != nil {
		e.logger.Error("registration insert failed", "error", err)
		e.publishResult(resultTopic, ResultDatabaseError)
		if e.events != nil {
			e.events.WriteRegistrationEvent(0, false, time.Now().UTC())
		}
		return
	}

	e.publishResult(resultTopic, ResultTrue)
	e.logger.Info("passcode registered", "id", id)
	if e.events != nil {
		e.events.WriteRegistrationEvent(id, true, time.Now().UTC())
	}
}

// dispatchNotification hands the entry event to the notifier on its own
// goroutine. The verification result is already on the wire at this point;
// a slow or failing channel must not hold up the next message.
func (e *Engine) dispatchNotification(id int64, ts time.Time) {
	if e.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(e.opCtx(), e.notifyTimeout)
		defer cancel()
		e.notifier.Notify(ctx, id, ts)
	}()
}

func (e *Engine) recordEntry(rec *passcode.Record, granted bool, ts time.Time) {
	if e.events == nil {
		return
	}
	e.events.WriteEntryEvent(rec.ID, rec.DisplayName(), granted, ts)
}

func (e *Engine) publishResult(topic, payload string) {
	if err := e.bus.PublishString(topic, payload, commandQoS, false); err != nil {
		e.logger.Error("publishing result failed",
			"topic", topic, "payload", payload, "error", err)
	}
}

func (e *Engine) opCtx() context.Context {
	if e.runCtx != nil {
		return e.runCtx
	}
	return context.Background()
}
