// Package session orchestrates a single conversation session on the client
// side: it owns the conversation state and transcript, runs the turn
// algorithm, and publishes the itinerary projection when the dialogue
// completes.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"tripflow/internal/conversation"
	"tripflow/internal/domain"
	"tripflow/internal/observability"
	"tripflow/internal/transport"
)

// Errors surfaced to the caller without touching the transcript or state.
var (
	// ErrEmptyUtterance rejects whitespace-only input locally, before any
	// transport call.
	ErrEmptyUtterance = errors.New("session: empty utterance")

	// ErrTurnInFlight rejects input while a turn is pending. There is one
	// pending-turn slot, not a queue.
	ErrTurnInFlight = errors.New("session: turn already in flight")

	// ErrClosed rejects input after the session has been torn down.
	ErrClosed = errors.New("session: closed")
)

// TurnClient is the transport used to exchange turns with the backend.
type TurnClient interface {
	Start(ctx context.Context) (*transport.TurnResult, error)
	Turn(ctx context.Context, message string, state domain.ConversationState) (*transport.TurnResult, error)
}

// PublishFunc receives the itinerary projection when the conversation first
// reaches a given completed plan. It is invoked at most once per distinct
// itinerary content.
type PublishFunc func(domain.Itinerary)

// Controller runs the turn algorithm for one session. Exactly one turn may
// be in flight at a time; a second Send while one is pending returns
// ErrTurnInFlight. All methods are safe for concurrent use, but the state
// machine itself has no internal parallelism.
type Controller struct {
	client  TurnClient
	logger  observability.Logger
	publish PublishFunc

	mu            sync.Mutex
	state         domain.ConversationState
	transcript    *domain.Transcript
	busy          bool
	closed        bool
	seq           uint64 // bumped per turn and on Close; guards stale responses
	lastPublished string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l observability.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithPublisher sets the itinerary publication callback.
func WithPublisher(fn PublishFunc) Option {
	return func(c *Controller) { c.publish = fn }
}

// NewController creates a session controller over the given transport.
func NewController(client TurnClient, opts ...Option) *Controller {
	c := &Controller{
		client:     client,
		logger:     observability.Discard(),
		state:      domain.NewConversationState(),
		transcript: domain.NewTranscript(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin opens the session: it fetches the greeting and initial state from
// the backend. On failure the session stays usable with the default initial
// state; the greeting is replaced by a local fallback.
func (c *Controller) Begin(ctx context.Context) error {
	res, err := c.client.Start(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err != nil {
		c.transcript.Append("Hi! Where would you like to go?", domain.SenderBot)
		c.logger.Warn("session start failed, using local greeting", "error", err)
		return err
	}
	if domain.IsValidPhase(res.State.Phase) {
		c.state = res.State.Clone()
	}
	c.transcript.Append(res.Message, domain.SenderBot)
	return nil
}

// Send runs one turn of the conversation.
//
// The user message is appended to the transcript before the network call
// resolves. On success the backend state is reconciled in and the bot reply
// appended; on failure the transcript gains a single bot notice and the
// state is left exactly as it was, so a retry loses nothing.
func (c *Controller) Send(ctx context.Context, utterance string) error {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return ErrEmptyUtterance
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.busy {
		c.mu.Unlock()
		return ErrTurnInFlight
	}
	c.busy = true
	c.seq++
	seq := c.seq
	prev := c.state.Clone()
	c.transcript.Append(utterance, domain.SenderUser)
	c.mu.Unlock()

	res, err := c.client.Turn(ctx, utterance, prev)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.seq != seq {
		// Session torn down while the turn was in flight. The late
		// response must not mutate state or transcript.
		return ErrClosed
	}
	c.busy = false

	if err != nil {
		c.transcript.Append(failureNotice(err), domain.SenderBot)
		if errors.Is(err, transport.ErrMalformed) {
			c.logger.Error("turn returned malformed response", "error", err)
		} else {
			c.logger.Warn("turn failed", "error", err)
		}
		return err
	}

	rec := conversation.Reconcile(prev, res.State)
	if rec.PhaseRejected {
		c.logger.Warn("backend phase rejected, retaining last known-good phase",
			"backend_phase", res.State.Phase,
			"retained_phase", rec.State.Phase,
		)
	}
	c.state = rec.State
	c.transcript.Append(res.Message, domain.SenderBot)

	if c.state.Phase == domain.PhaseComplete && c.state.Itinerary != nil && !c.state.Itinerary.Empty() {
		c.publishLocked(*c.state.Itinerary)
	}
	return nil
}

// State returns a copy of the current conversation state.
func (c *Controller) State() domain.ConversationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Transcript returns a copy of the message log.
func (c *Controller) Transcript() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript.Messages()
}

// Busy reports whether a turn is currently in flight. The display layer uses
// this to visibly refuse input rather than drop it.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Close tears the session down. Any in-flight turn response arriving later
// is discarded without mutating state or transcript.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.seq++ // invalidates any pending turn
}

// failureNotice maps a transport failure to the bot-sender notice appended
// to the transcript. Connectivity and processing failures read differently.
func failureNotice(err error) string {
	switch {
	case errors.Is(err, transport.ErrTimeout), errors.Is(err, transport.ErrUnreachable):
		return "I'm having trouble reaching the travel service right now. Please check your connection and send that again."
	case errors.Is(err, transport.ErrMalformed):
		return "I received an unexpected response from the travel service. Please try sending that again."
	default:
		return "I apologize, but I ran into an error processing that. Please try again."
	}
}
