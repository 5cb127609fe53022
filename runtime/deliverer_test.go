package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"stage-lab/domain"
)

type countingListener struct {
	calls atomic.Int64
	delay time.Duration
	err   error
}

func (l *countingListener) Receive(ctx context.Context, sender domain.Identifier, w domain.Word) error {
	l.calls.Add(1)
	if l.delay > 0 {
		select {
		case <-time.After(l.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return l.err
}

func TestDeliverer_SkipsUnknownRecipients(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	deliverer := NewDeliverer(log, registry, 0)

	registered := domain.NewIdentifier()
	departed := domain.NewIdentifier()
	listener := &countingListener{}
	req.NoError(registry.Register(registered, listener))

	// When a speaker addresses one live and one departed identifier
	outcomes := deliverer.Deliver(context.Background(),
		domain.NewIdentifier(), []domain.Identifier{registered, departed}, domain.MustWord("HELLO"))

	// Then the outcome covers the live recipient only, silently
	req.Len(outcomes, 1)
	req.Equal(registered, outcomes[0].Recipient)
	req.Equal(domain.Delivered, outcomes[0].Status)
	req.EqualValues(1, listener.calls.Load())
}

func TestDeliverer_HundredListeners_JoinWaitsForSlowest(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	deliverer := NewDeliverer(log, registry, 0)

	const n = 100
	slowest := 50 * time.Millisecond
	recipients := make([]domain.Identifier, 0, n)
	listeners := make([]*countingListener, 0, n)
	for i := 0; i < n; i++ {
		id := domain.NewIdentifier()
		delay := time.Duration(0)
		if i == n-1 {
			delay = slowest
		}
		listener := &countingListener{delay: delay}
		req.NoError(registry.Register(id, listener))
		recipients = append(recipients, id)
		listeners = append(listeners, listener)
	}

	start := time.Now()
	outcomes := deliverer.Deliver(context.Background(),
		domain.NewIdentifier(), recipients, domain.MustWord("BROADCAST"))
	elapsed := time.Since(start)

	// Then all 100 received exactly one invocation each
	req.Len(outcomes, n)
	for _, outcome := range outcomes {
		req.Equal(domain.Delivered, outcome.Status)
	}
	for _, listener := range listeners {
		req.EqualValues(1, listener.calls.Load())
	}

	// And completion happened only after the slowest callback returned
	req.GreaterOrEqual(elapsed, slowest)
}

func TestDeliverer_FailureIsolation(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	deliverer := NewDeliverer(log, registry, 0)

	boom := fmt.Errorf("boom")
	recipients := make([]domain.Identifier, 0, 10)
	for i := 0; i < 10; i++ {
		id := domain.NewIdentifier()
		listener := &countingListener{}
		if i == 3 {
			listener.err = boom
		}
		req.NoError(registry.Register(id, listener))
		recipients = append(recipients, id)
	}

	outcomes := deliverer.Deliver(context.Background(),
		domain.NewIdentifier(), recipients, domain.MustWord("HELLO"))

	req.Len(outcomes, 10)
	failures := 0
	for _, outcome := range outcomes {
		if outcome.Status == domain.Failed {
			failures++
			req.ErrorIs(outcome.Err, boom)
		} else {
			req.Equal(domain.Delivered, outcome.Status)
		}
	}
	req.Equal(1, failures)
}

func TestDeliverer_PanickingListenerIsCaptured(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	deliverer := NewDeliverer(log, registry, 0)

	panicking := domain.NewIdentifier()
	healthy := domain.NewIdentifier()
	req.NoError(registry.Register(panicking, panickingListener{}))
	req.NoError(registry.Register(healthy, &countingListener{}))

	outcomes := deliverer.Deliver(context.Background(),
		domain.NewIdentifier(), []domain.Identifier{panicking, healthy}, domain.MustWord("HELLO"))

	req.Len(outcomes, 2)
	req.Equal(domain.Failed, outcomes[0].Status)
	req.Error(outcomes[0].Err)
	req.Equal(domain.Delivered, outcomes[1].Status)
}

type panickingListener struct{}

func (panickingListener) Receive(ctx context.Context, sender domain.Identifier, w domain.Word) error {
	panic("listener exploded")
}

func TestDeliverer_CancelledBeforeInitiation(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	deliverer := NewDeliverer(log, registry, 0)

	id := domain.NewIdentifier()
	listener := &countingListener{}
	req.NoError(registry.Register(id, listener))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When delivery starts with an already-cancelled context
	outcomes := deliverer.Deliver(ctx,
		domain.NewIdentifier(), []domain.Identifier{id}, domain.MustWord("HELLO"))

	// Then the recipient is skipped with a Cancelled outcome, not invoked
	req.Len(outcomes, 1)
	req.Equal(domain.Cancelled, outcomes[0].Status)
	req.EqualValues(0, listener.calls.Load())
}

func TestDeliverer_SinkTimeoutCancelsSlowListener(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	deliverer := NewDeliverer(log, registry, 20*time.Millisecond)

	slow := domain.NewIdentifier()
	fast := domain.NewIdentifier()
	req.NoError(registry.Register(slow, &countingListener{delay: 500 * time.Millisecond}))
	req.NoError(registry.Register(fast, &countingListener{}))

	outcomes := deliverer.Deliver(context.Background(),
		domain.NewIdentifier(), []domain.Identifier{slow, fast}, domain.MustWord("HELLO"))

	req.Len(outcomes, 2)
	// The slow listener observed the per-recipient deadline, not a caller cancel
	req.Equal(domain.Failed, outcomes[0].Status)
	req.Equal(domain.Delivered, outcomes[1].Status)
}

func TestDeliverer_UnregisterMidDelivery_InFlightCompletes(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	deliverer := NewDeliverer(log, registry, 0)

	id := domain.NewIdentifier()
	started := make(chan struct{})
	release := make(chan struct{})
	var received atomic.Int64

	blocking := blockingListener{started: started, release: release, received: &received}
	req.NoError(registry.Register(id, blocking))

	var wg sync.WaitGroup
	wg.Add(1)
	var outcomes []domain.Outcome
	go func() {
		defer wg.Done()
		outcomes = deliverer.Deliver(context.Background(),
			domain.NewIdentifier(), []domain.Identifier{id}, domain.MustWord("HELLO"))
	}()

	// Given the delivery is in flight
	<-started

	// When the listener unregisters mid-delivery
	req.NoError(registry.Unregister(id))
	close(release)
	wg.Wait()

	// Then the in-flight invocation still completed
	req.Len(outcomes, 1)
	req.Equal(domain.Delivered, outcomes[0].Status)
	req.EqualValues(1, received.Load())
}

type blockingListener struct {
	started  chan struct{}
	release  chan struct{}
	received *atomic.Int64
}

func (l blockingListener) Receive(ctx context.Context, sender domain.Identifier, w domain.Word) error {
	close(l.started)
	<-l.release
	l.received.Add(1)
	return nil
}

func TestDeliverer_HelloScenario(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	deliverer := NewDeliverer(log, registry, 0)

	// Given the word HELLO and two registered listeners
	hello := domain.MustWord("HELLO")
	l1 := domain.NewIdentifier()
	l2 := domain.NewIdentifier()
	req.NoError(registry.Register(l1, &countingListener{}))
	req.NoError(registry.Register(l2, &countingListener{}))
	sender := domain.NewIdentifier()
	recipients := []domain.Identifier{l1, l2}

	// When the speaker addresses both
	outcomes := deliverer.Deliver(context.Background(), sender, recipients, hello)

	// Then both deliveries succeed
	req.Len(outcomes, 2)
	req.True(outcomes[0].Succeeded())
	req.True(outcomes[1].Succeeded())

	// When the first listener leaves and the speaker repeats the send
	req.NoError(registry.Unregister(l1))
	outcomes = deliverer.Deliver(context.Background(), sender, recipients, hello)

	// Then the outcome names the remaining listener only
	req.Len(outcomes, 1)
	req.Equal(l2, outcomes[0].Recipient)
	req.True(outcomes[0].Succeeded())
}
