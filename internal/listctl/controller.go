// Package listctl implements the fetch → mutate → reload pattern shared
// by the metrics and reminders views. A Controller owns one resource
// type's cached list; after every successful mutation the cache is
// re-fetched wholesale rather than patched locally, so server-assigned
// fields and server-side ordering are always reflected and no rollback
// logic is ever needed.
package listctl

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/healthai/pkg/api"
)

// Resource adapts one backend resource family to the controller.
// T is the record type, I the creation input.
type Resource[T, I any] interface {
	// List fetches all records matching the optional server-side filter.
	List(ctx context.Context, filter string) ([]T, error)
	// Create submits a new record. The result is discarded; the
	// controller reloads instead of splicing it in.
	Create(ctx context.Context, input I) error
	// Remove deletes a record by id.
	Remove(ctx context.Context, id string) error
	// Validate checks required fields before any network call.
	// Failures surface as api.Validation errors.
	Validate(input I) error
	// ID extracts a record's identifier.
	ID(record T) string
}

// Transitioner is implemented by resources supporting status-change
// actions (currently only reminders' "complete").
type Transitioner[T any] interface {
	// Transition applies an action to a record by id.
	Transition(ctx context.Context, id, action string) error
	// AllowTransition checks the cached record locally. Rejections
	// prevent the network call entirely.
	AllowTransition(record T, action string) error
}

// Controller owns one resource's cached ordered list.
//
// Mutations are not serialized internally: the view driving the
// controller must not issue a second mutation while one is in flight,
// or the reload steps may interleave. The cache itself is guarded for
// memory safety only.
type Controller[T, I any] struct {
	res Resource[T, I]

	mu     sync.RWMutex
	items  []T
	filter string
	closed bool
}

// New creates a Controller over the given resource adapter with an
// empty cache.
func New[T, I any](res Resource[T, I]) *Controller[T, I] {
	return &Controller[T, I]{res: res}
}

// Load fetches the full list for filter and replaces the cache
// wholesale. The filter stays active for subsequent reloads.
func (c *Controller[T, I]) Load(ctx context.Context, filter string) error {
	if c.isClosed() {
		return nil
	}
	items, err := c.res.List(ctx, filter)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		// The view unmounted while the fetch was outstanding; the
		// result no longer has an owner.
		return nil
	}
	c.items = items
	c.filter = filter
	return nil
}

// Reload re-fetches with the currently active filter.
func (c *Controller[T, I]) Reload(ctx context.Context) error {
	c.mu.RLock()
	filter := c.filter
	c.mu.RUnlock()
	return c.Load(ctx, filter)
}

// Items returns a copy of the cached list in server order.
func (c *Controller[T, I]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Filter returns the active server-side filter.
func (c *Controller[T, I]) Filter() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

// Create validates input locally, submits it, then reloads with the
// active filter. The cache never holds a client-synthesized record; on
// any failure it is left untouched.
func (c *Controller[T, I]) Create(ctx context.Context, input I) error {
	if err := c.res.Validate(input); err != nil {
		return err
	}
	if err := c.res.Create(ctx, input); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// Remove deletes a record then reloads. A failed delete leaves the
// cache untouched and surfaces the error.
func (c *Controller[T, I]) Remove(ctx context.Context, id string) error {
	if err := c.res.Remove(ctx, id); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// Transition applies a status-change action under the same
// reload-after-mutation contract. The cached record is checked locally
// first, so e.g. completing an already-completed reminder never reaches
// the network.
func (c *Controller[T, I]) Transition(ctx context.Context, id, action string) error {
	tr, ok := c.res.(Transitioner[T])
	if !ok {
		return fmt.Errorf("resource does not support transitions")
	}

	c.mu.RLock()
	var found bool
	for _, item := range c.items {
		if c.res.ID(item) == id {
			found = true
			if err := tr.AllowTransition(item, action); err != nil {
				c.mu.RUnlock()
				return err
			}
			break
		}
	}
	c.mu.RUnlock()
	if !found {
		return &api.Error{Kind: api.NotFound, Detail: "no cached record " + id}
	}

	if err := tr.Transition(ctx, id, action); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// FilteredBy returns the cached records satisfying pred, preserving
// order. Pure: the cache is never mutated.
func (c *Controller[T, I]) FilteredBy(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Close marks the controller's view as unmounted. Results of requests
// still in flight are discarded instead of mutating ownerless state.
func (c *Controller[T, I]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller[T, I]) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
