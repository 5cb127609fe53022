package event

import (
	"log/slog"
	"time"
)

// LatencyHandler measures the lead time between dispatch initiation and the
// completion of a delivery. It warns when the join took longer than the
// configured threshold, which usually means a slow listener callback.
type LatencyHandler struct {
	log              *slog.Logger
	latencyThreshold time.Duration
}

func NewLatencyHandler(log *slog.Logger, latencyThreshold time.Duration) *LatencyHandler {
	return &LatencyHandler{log: log, latencyThreshold: latencyThreshold}
}

func (h *LatencyHandler) Handle(e Event) {
	if payload, ok := e.Payload.(DeliveryCompleted); ok {
		leadTime := time.Since(payload.InitiatedAt)

		h.log.Info("telemetry: delivery latency",
			"sender", payload.Sender.String(),
			"addressed", payload.Addressed,
			"lead_time_ms", leadTime.Milliseconds(),
			"lead_time_ns", leadTime.Nanoseconds(),
		)

		if leadTime > h.latencyThreshold {
			h.log.Warn("high latency detected", "lead_time", leadTime)
		}
	}
}
