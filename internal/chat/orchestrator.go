package chat

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/alexschlessinger/pollytool/tools"
	"github.com/google/uuid"

	"pkdindustries/dachat/internal/config"
	"pkdindustries/dachat/internal/core"
)

// ErrBusy is returned by Send when a turn is already in flight.
var ErrBusy = errors.New("a response is already in progress")

// Orchestrator owns the transcript and drives one conversation turn at a
// time. All transcript mutations happen under mu; turns are serialized by
// the turn lock so an overlapping Send fails fast instead of interleaving.
type Orchestrator struct {
	mu   sync.Mutex
	turn *core.TurnLock

	messages   []ChatMessage
	responding bool
	lastErr    error

	cfg          *config.Configuration
	factory      core.SessionFactory
	session      core.ModelSession
	registry     *tools.ToolRegistry
	instructions string

	cancelTurn context.CancelFunc

	// OnUpdate is invoked after every transcript mutation, outside the
	// transcript lock. Set it before the first Send.
	OnUpdate func()
}

// NewOrchestrator builds an orchestrator with a fresh model session from
// the factory.
func NewOrchestrator(cfg *config.Configuration, registry *tools.ToolRegistry, factory core.SessionFactory) *Orchestrator {
	return &Orchestrator{
		turn:         core.NewTurnLock(),
		cfg:          cfg,
		factory:      factory,
		registry:     registry,
		instructions: cfg.Chat.Instructions,
		session:      factory(cfg.Chat.Instructions, registry),
	}
}

// Send runs one conversation turn: it appends the user message, appends an
// empty partial assistant message, and consumes the snapshot stream until
// completion. Each snapshot carries the full response so far, so the partial
// message content is overwritten, never appended. Send blocks until the turn
// finishes and returns the stream error, if any.
func (o *Orchestrator) Send(ctx context.Context, text string) error {
	if !o.turn.TryLock() {
		return ErrBusy
	}
	defer o.turn.Unlock()

	turnCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := slog.Default().With("request_id", core.GenerateRequestID())
	start := time.Now()
	defer core.LogDuration(logger, "turn", start)

	partial := NewPartialAssistantMessage()

	o.mu.Lock()
	o.cancelTurn = cancel
	o.responding = true
	o.lastErr = nil
	o.messages = append(o.messages, NewUserMessage(text), partial)
	session := o.session
	o.mu.Unlock()
	o.notify()

	opts := core.GenerationOptions{
		MaxTokens:   o.cfg.Model.MaxTokens,
		Temperature: o.cfg.Model.Temperature,
	}

	var streamErr error
	for snap := range session.StreamResponse(turnCtx, text, opts) {
		if snap.Err != nil {
			streamErr = snap.Err
			break
		}
		if o.applySnapshot(partial.ID, snap.Content) {
			o.notify()
		}
	}

	o.mu.Lock()
	o.responding = false
	o.cancelTurn = nil
	o.lastErr = streamErr
	// The partial message is finalized with whatever content it reached,
	// even on error. A dangling partial would poison the next turn.
	o.finalizeLocked(partial.ID)
	o.mu.Unlock()
	o.notify()

	if streamErr != nil {
		logger.Error("turn failed", "error", streamErr)
	}
	return streamErr
}

// applySnapshot overwrites the target message content by ID. Returns false
// when the message is gone, which means the transcript was reset mid-stream
// and the write must be dropped.
func (o *Orchestrator) applySnapshot(id uuid.UUID, content string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.messages {
		if o.messages[i].ID == id {
			o.messages[i].Content = content
			o.messages[i].Timestamp = time.Now()
			return true
		}
	}
	return false
}

func (o *Orchestrator) finalizeLocked(id uuid.UUID) {
	for i := range o.messages {
		if o.messages[i].ID == id {
			o.messages[i].Partial = false
			o.messages[i].Timestamp = time.Now()
			return
		}
	}
}

// Reset clears the transcript and cancels any in-flight turn. The session
// and its accumulated model-side history survive.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	if o.cancelTurn != nil {
		o.cancelTurn()
	}
	o.messages = nil
	o.lastErr = nil
	o.mu.Unlock()
	o.notify()
}

// Reconfigure cancels any in-flight turn and replaces the model session
// with one built from the new instructions and registry. A nil registry
// keeps the current one. The transcript is untouched.
func (o *Orchestrator) Reconfigure(instructions string, registry *tools.ToolRegistry) {
	o.mu.Lock()
	if o.cancelTurn != nil {
		o.cancelTurn()
	}
	if registry != nil {
		o.registry = registry
	}
	o.instructions = instructions
	o.session = o.factory(instructions, o.registry)
	o.mu.Unlock()
}

// Messages returns a copy of the transcript.
func (o *Orchestrator) Messages() []ChatMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]ChatMessage, len(o.messages))
	copy(out, o.messages)
	return out
}

// Responding reports whether a turn is in flight.
func (o *Orchestrator) Responding() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.responding
}

// LastError returns the error recorded by the most recent turn, or nil.
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Instructions returns the active session instructions.
func (o *Orchestrator) Instructions() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.instructions
}

func (o *Orchestrator) notify() {
	if o.OnUpdate != nil {
		o.OnUpdate()
	}
}
