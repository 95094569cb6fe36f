// Package notify delivers due-reminder notifications to registered
// channels (terminal, Telegram).
package notify

import (
	"errors"
	"fmt"
	"sync"
)

// Handler delivers one notification message to a channel.
type Handler func(message string) error

// Registry holds the delivery channels by name.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty delivery registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a delivery channel. Re-registering a name replaces it.
func (r *Registry) Register(name string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

// Broadcast delivers message to every registered channel and joins any
// failures. Returns an error if no channel is registered.
func (r *Registry) Broadcast(message string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.handlers) == 0 {
		return fmt.Errorf("no delivery channels registered")
	}
	var errs []error
	for name, handler := range r.handlers {
		if err := handler(message); err != nil {
			errs = append(errs, fmt.Errorf("deliver via %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
