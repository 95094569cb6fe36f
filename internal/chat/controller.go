// Package chat manages one conversation's ordered transcript and the
// in-flight state of sending. Each controller instance owns a fresh
// session identifier for its lifetime; identifiers are not persisted,
// so reopening the chat view starts a new conversation while history
// for the old one remains fetchable server-side.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/lithammer/shortuuid/v4"

	"github.com/user/healthai/pkg/api"
)

// ErrBusy is returned by Send while another send is in flight.
// Concurrent sends are rejected, never queued: allowing one exchange at
// a time is what keeps the transcript in causal order without
// server-side sequence numbers.
var ErrBusy = &api.Error{Kind: api.Validation, Detail: "a message is already being sent"}

// ErrEmpty is returned by Send for blank input.
var ErrEmpty = &api.Error{Kind: api.Validation, Detail: "message is empty"}

// Backend is the slice of the API the controller needs. *api.Client
// satisfies it.
type Backend interface {
	SendChatMessage(ctx context.Context, message, sessionID string) (*api.Exchange, error)
	ChatHistory(ctx context.Context, sessionID string) ([]*api.Exchange, error)
}

// Controller holds one chat session's exchanges in arrival order.
type Controller struct {
	backend   Backend
	sessionID string

	mu        sync.Mutex
	exchanges []*api.Exchange
	inFlight  bool
	closed    bool
}

// New creates a Controller with a freshly generated session identifier.
func New(backend Backend) *Controller {
	return &Controller{
		backend:   backend,
		sessionID: shortuuid.New(),
	}
}

// SessionID returns this controller's conversation key.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Initialize loads prior history scoped to this session. A missing or
// failed history is not fatal: the transcript simply starts empty.
// Failures are logged, unlike every other resource load in the client.
func (c *Controller) Initialize(ctx context.Context) {
	history, err := c.backend.ChatHistory(ctx, c.sessionID)
	if err != nil {
		if !api.IsKind(err, api.NotFound) {
			slog.Warn("chat history load failed, starting empty", "session_id", c.sessionID, "error", err)
		}
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.exchanges = history
}

// Send submits text as one exchange. Blank input and concurrent sends
// are rejected before any network call. On success the returned
// exchange is appended to the end of the transcript; on failure the
// transcript is untouched.
func (c *Controller) Send(ctx context.Context, text string) (*api.Exchange, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmpty
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.inFlight = true
	c.mu.Unlock()

	ex, err := c.backend.SendChatMessage(ctx, text, c.sessionID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		return nil, err
	}
	if c.closed {
		// View unmounted mid-send; drop the result.
		return ex, nil
	}
	c.exchanges = append(c.exchanges, ex)
	return ex, nil
}

// Exchanges returns a copy of the transcript in arrival order.
func (c *Controller) Exchanges() []*api.Exchange {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*api.Exchange, len(c.exchanges))
	copy(out, c.exchanges)
	return out
}

// Sending reports whether a send is currently in flight.
func (c *Controller) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Close marks the controller's view as unmounted; late completions no
// longer mutate the transcript.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
