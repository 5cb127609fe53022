// Package runtime handles listener registration, word propagation, and delivery.
// It orchestrates the system without containing business logic or domain rules.
package runtime

import (
	"fmt"
	"sync"

	"stage-lab/contract"
	"stage-lab/domain"
	"stage-lab/errors"
)

// Registry is the single process-wide table from Identifier to Listener.
// All table access is synchronized; the lock is held O(1) per operation and
// never wraps a receive callback. Speakers are not tracked here, only listeners.
//
// Registration policy: a live identifier is never replaced. A second Register
// for the same identifier fails with ErrAlreadyRegistered; the caller must
// Unregister first.
type Registry struct {
	mu        sync.RWMutex
	listeners map[domain.Identifier]contract.Listener
}

func NewRegistry() *Registry {
	return &Registry{
		listeners: make(map[domain.Identifier]contract.Listener),
	}
}

// Register inserts the mapping. Fails with ErrAlreadyRegistered if the
// identifier already has a live handle. The registry owns the handle from this
// point; the caller does not need to keep it alive for delivery to work.
func (r *Registry) Register(id domain.Identifier, listener contract.Listener) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listeners[id]; ok {
		return fmt.Errorf("%w: %s", errors.ErrAlreadyRegistered, id)
	}
	r.listeners[id] = listener
	return nil
}

// Unregister removes the mapping. Fails with ErrNotRegistered when the
// identifier is absent. Safe to call concurrently with an in-flight delivery
// to the same identifier: deliveries resolve the handle before invoking it,
// so an invocation already started runs to completion.
func (r *Registry) Unregister(id domain.Identifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listeners[id]; !ok {
		return fmt.Errorf("%w: %s", errors.ErrNotRegistered, id)
	}
	delete(r.listeners, id)
	return nil
}

// Lookup returns the handle if present. Absence is an expected condition,
// reported through the boolean, never through an error.
func (r *Registry) Lookup(id domain.Identifier) (contract.Listener, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listener, ok := r.listeners[id]
	return listener, ok
}

// ListActive returns a point-in-time snapshot of the registered identifiers.
// Concurrent mutation after the call does not affect the returned slice.
func (r *Registry) ListActive() []domain.Identifier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]domain.Identifier, 0, len(r.listeners))
	for id := range r.listeners {
		active = append(active, id)
	}
	return active
}
