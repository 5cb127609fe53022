package event

import (
	"log/slog"
	"sync"

	"stage-lab/errors"
)

// DeliveryReportHandler handles events when a delivery completes.
// It is triggered once per deliver call, after every recipient outcome joined.
// Useful for updating observability metrics, logging, or telemetry.
type DeliveryReportHandler struct {
	log     *slog.Logger
	mu      sync.Mutex
	counter *Counter
}

func NewDeliveryReportHandler(log *slog.Logger, counter *Counter) *DeliveryReportHandler {
	return &DeliveryReportHandler{log: log, counter: counter}
}

func (h *DeliveryReportHandler) Handle(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch event.Type {
	case DeliveryCompletedType:
		payload, ok := event.Payload.(DeliveryCompleted)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		h.counter.Increment(DeliveryCompletedType)
		if payload.Failed > 0 || payload.Cancelled > 0 {
			h.log.Warn("partial delivery",
				"sender", payload.Sender.String(),
				"delivered", payload.Delivered,
				"failed", payload.Failed,
				"cancelled", payload.Cancelled,
			)
		}
	}
}
