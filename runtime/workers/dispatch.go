package workers

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"stage-lab/contract"
	"stage-lab/domain"
	"stage-lab/domain/event"
	"stage-lab/screening"
)

// Ensure *DispatchWorker implements the contract.Worker interface at compile time.
// This prevents "type mismatch" errors from appearing late in other packages
// and acts as a static assertion of our architectural rules.
var _ contract.Worker = (*DispatchWorker)(nil)

// DispatchWorker is the single consumer of the command channel. Being the only
// initiator is what guarantees dispatch-initiation order: a speaker's second
// command is never initiated before its first. Only initiation is serialized;
// the per-recipient invocations and the join run concurrently, so a slow
// listener never stalls the queue.
type DispatchWorker struct {
	log       *slog.Logger
	validator *validator.Validate
	screener  *screening.Screener
	deliverer contract.IDeliverer
	commands  chan domain.SpeakCommand
	telemetry chan event.Event
}

func NewDispatchWorker(
	log *slog.Logger,
	screener *screening.Screener,
	deliverer contract.IDeliverer,
	commands chan domain.SpeakCommand,
	telemetry chan event.Event) *DispatchWorker {
	return &DispatchWorker{
		log:       log,
		validator: validator.New(),
		screener:  screener,
		deliverer: deliverer,
		commands:  commands,
		telemetry: telemetry,
	}
}

func (w *DispatchWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case cmd, ok := <-w.commands:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			w.handle(ctx, cmd)
		}
	}
}

// handle validates, screens, and initiates one command. Initiation happens on
// the worker goroutine; the join is observed in the background and reported
// on the telemetry channel so no outcome is ever dropped.
func (w *DispatchWorker) handle(ctx context.Context, cmd domain.SpeakCommand) {
	if err := w.validator.Struct(cmd); err != nil {
		w.log.Warn("Rejecting malformed command", "sender", cmd.Sender.String(), "error", err)
		return
	}

	if w.screener != nil {
		if err := w.screener.Screen(cmd.Word.Render()); err != nil {
			w.log.Warn("Rejecting screened word", "sender", cmd.Sender.String(), "error", err)
			return
		}
	}

	done := w.deliverer.Initiate(ctx, cmd.Sender, cmd.Recipients, cmd.Word)

	go func() {
		outcomes := <-done
		w.report(cmd, outcomes)
	}()
}

func (w *DispatchWorker) report(cmd domain.SpeakCommand, outcomes []domain.Outcome) {
	byStatus := lo.CountValuesBy(outcomes, func(o domain.Outcome) domain.OutcomeStatus {
		return o.Status
	})

	w.publish(event.New(event.DeliveryCompletedType, event.DeliveryCompleted{
		Sender:      cmd.Sender,
		Addressed:   len(cmd.Recipients),
		Delivered:   byStatus[domain.Delivered],
		Failed:      byStatus[domain.Failed],
		Cancelled:   byStatus[domain.Cancelled],
		InitiatedAt: cmd.CreatedAt,
	}))

	for _, outcome := range outcomes {
		w.publish(event.New(event.WordDeliveredType, event.WordDelivered{
			Sender:    cmd.Sender,
			Recipient: outcome.Recipient,
			Status:    outcome.Status,
			Rendered:  cmd.Word.Render(),
		}))
	}
}

func (w *DispatchWorker) publish(evt event.Event) {
	select {
	case w.telemetry <- evt:
	default:
		w.log.Debug("Observability telemetry event lost")
	}
}
