// Package transport implements the turn transport: one HTTP exchange per
// conversation turn against the itinerary backend. It never retries on its
// own; re-sending is a user-visible action so slots are never applied twice.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tripflow/internal/domain"
	"tripflow/internal/observability"
)

// DefaultTimeout bounds a single turn exchange.
const DefaultTimeout = 30 * time.Second

// TurnResult is the successful outcome of one exchange.
type TurnResult struct {
	Message string
	State   domain.ConversationState
}

// turnRequest is the wire body for POST /session/turn.
type turnRequest struct {
	Message string                   `json:"message"`
	State   domain.ConversationState `json:"state"`
}

// turnResponse is the wire body for both session endpoints.
type turnResponse struct {
	Message string                    `json:"message"`
	State   *domain.ConversationState `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client performs turn exchanges against a backend base URL.
type Client struct {
	baseURL string
	http    *http.Client
	logger  observability.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-exchange timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the client logger.
func WithLogger(l observability.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a turn transport client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  observability.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a session: POST /session/start, no request body required.
func (c *Client) Start(ctx context.Context) (*TurnResult, error) {
	return c.exchange(ctx, "/session/start", nil)
}

// Turn sends one utterance with the current state: POST /session/turn.
func (c *Client) Turn(ctx context.Context, message string, state domain.ConversationState) (*TurnResult, error) {
	body, err := json.Marshal(turnRequest{Message: message, State: state})
	if err != nil {
		return nil, fmt.Errorf("marshal turn request: %w", err)
	}
	return c.exchange(ctx, "/session/turn", body)
}

// exchange performs exactly one request/response round trip.
func (c *Client) exchange(ctx context.Context, path string, body []byte) (*TurnResult, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		kind := classifyDialError(err)
		c.logger.Warn("turn exchange failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", kind, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", classifyDialError(err), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorResponse
		if json.Unmarshal(respBody, &eb) == nil && eb.Error != "" {
			return nil, fmt.Errorf("%w (status %d): %s", ErrServer, resp.StatusCode, eb.Error)
		}
		return nil, fmt.Errorf("%w (status %d)", ErrServer, resp.StatusCode)
	}

	var tr turnResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		c.logger.Error("protocol mismatch decoding turn response", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if tr.Message == "" || tr.State == nil {
		c.logger.Error("protocol mismatch: incomplete turn response", "path", path)
		return nil, fmt.Errorf("%w: missing message or state", ErrMalformed)
	}
	if !domain.IsValidPhase(tr.State.Phase) {
		c.logger.Error("protocol mismatch: unknown phase", "path", path, "phase", tr.State.Phase)
		return nil, fmt.Errorf("%w: unknown phase %q", ErrMalformed, tr.State.Phase)
	}

	return &TurnResult{Message: tr.Message, State: *tr.State}, nil
}
