package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"stage-lab/contract"
	"stage-lab/domain"
	"stage-lab/errors"
)

// Ensure *Deliverer implements the contract.IDeliverer interface at compile time.
// This prevents "type mismatch" errors from appearing late in other packages
// and acts as a static assertion of our architectural rules.
var _ contract.IDeliverer = (*Deliverer)(nil)

// Deliverer fans a word out to every resolved recipient concurrently.
//
// It provides best-effort fan-out: a recipient missing from the registry is
// silently skipped (the speaker cannot know liveness, that is the point of the
// decoupling). Each resolved recipient runs in its own goroutine; Deliver
// returns only after the slowest invocation has completed, failed, or been
// cancelled.
//
// Deliverer is safe for concurrent use by multiple goroutines.
type Deliverer struct {
	log         *slog.Logger
	registry    contract.IRegistry
	sinkTimeout time.Duration
}

// NewDeliverer builds the delivery engine. sinkTimeout bounds each individual
// receive callback; zero disables the per-recipient deadline.
func NewDeliverer(log *slog.Logger, registry contract.IRegistry, sinkTimeout time.Duration) *Deliverer {
	return &Deliverer{
		log:         log,
		registry:    registry,
		sinkTimeout: sinkTimeout,
	}
}

// Deliver resolves each recipient via the registry and invokes the resolved
// listeners concurrently. The returned outcomes follow the recipients order,
// with unresolved identifiers absent. One failing listener never prevents
// delivery to, or the completion of, the others. Deliver returns only once
// every invocation has completed, failed, or been cancelled.
//
// The registry lock is never held during an invocation: handles are resolved
// first, then invoked. A recipient unregistered mid-delivery still receives
// the word.
func (d *Deliverer) Deliver(ctx context.Context, sender domain.Identifier, recipients []domain.Identifier, w domain.Word) []domain.Outcome {
	return <-d.Initiate(ctx, sender, recipients, w)
}

// Initiate starts a delivery and returns the channel on which its aggregate
// outcome is published. Resolution and goroutine launch happen synchronously
// before Initiate returns, so a caller issuing two Initiate calls in sequence
// gets a guaranteed dispatch-initiation order; only the join is deferred.
func (d *Deliverer) Initiate(ctx context.Context, sender domain.Identifier, recipients []domain.Identifier, w domain.Word) <-chan []domain.Outcome {
	type resolved struct {
		id       domain.Identifier
		listener contract.Listener
	}

	// Resolution phase: fast, synchronized lookups only.
	targets := make([]resolved, 0, len(recipients))
	for _, id := range recipients {
		listener, ok := d.registry.Lookup(id)
		if !ok {
			d.log.Debug("Recipient not registered, skipping", "recipient", id.String())
			continue
		}
		targets = append(targets, resolved{id: id, listener: listener})
	}

	// Invocation phase: one goroutine per resolved recipient.
	outcomes := make([]domain.Outcome, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		// Caller cancellation: not-yet-started invocations are skipped and
		// recorded as Cancelled instead of being launched.
		if ctx.Err() != nil {
			outcomes[i] = domain.Outcome{Recipient: target.id, Status: domain.Cancelled, Err: ctx.Err()}
			continue
		}

		wg.Add(1)
		go func(i int, target resolved) {
			defer wg.Done()
			outcomes[i] = d.invoke(ctx, sender, target.id, target.listener, w)
		}(i, target)
	}

	// Join phase: the completion signal fires only after the slowest
	// invocation has finished.
	done := make(chan []domain.Outcome, 1)
	go func() {
		wg.Wait()
		done <- outcomes
	}()
	return done
}

// invoke runs a single receive callback under the per-recipient deadline,
// converting errors, cancellation, and panics into an Outcome.
func (d *Deliverer) invoke(ctx context.Context, sender, recipient domain.Identifier, listener contract.Listener, w domain.Word) domain.Outcome {
	invokeCtx := ctx
	if d.sinkTimeout > 0 {
		var cancel context.CancelFunc
		invokeCtx, cancel = context.WithTimeout(ctx, d.sinkTimeout)
		defer cancel()
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
			}
		}()
		return listener.Receive(invokeCtx, sender, w)
	}()

	switch {
	case err == nil:
		return domain.Outcome{Recipient: recipient, Status: domain.Delivered}
	case ctx.Err() != nil:
		// Caller-supplied cancellation, as opposed to a listener failure.
		return domain.Outcome{Recipient: recipient, Status: domain.Cancelled, Err: err}
	default:
		d.log.Debug("Listener failed", "recipient", recipient.String(), "error", err)
		return domain.Outcome{Recipient: recipient, Status: domain.Failed, Err: err}
	}
}
