package event

import (
	"time"

	"stage-lab/domain"
)

// Type discriminates telemetry event payloads.
type Type string

const (
	WordDeliveredType       Type = "WORD_DELIVERED"
	DeliveryCompletedType   Type = "DELIVERY_COMPLETED"
	ListenerRegisteredType  Type = "LISTENER_REGISTERED"
	ListenerRemovedType     Type = "LISTENER_REMOVED"
	RestartedAfterPanicType Type = "WORKER_RESTARTED_AFTER_PANIC"
	ChannelCapacityType     Type = "CHANNEL_CAPACITY"
)

// Event is the envelope carried on the telemetry channel.
type Event struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

func New(t Type, payload any) Event {
	return Event{Type: t, CreatedAt: time.Now().UTC(), Payload: payload}
}

// WordDelivered is emitted for each recipient invocation outcome.
type WordDelivered struct {
	Sender    domain.Identifier
	Recipient domain.Identifier
	Status    domain.OutcomeStatus
	Rendered  string
}

// DeliveryCompleted is emitted once per delivery, after the join of all
// per-recipient outcomes.
type DeliveryCompleted struct {
	Sender      domain.Identifier
	Addressed   int
	Delivered   int
	Failed      int
	Cancelled   int
	InitiatedAt time.Time
}

// ListenerRegistered is emitted when an identifier enters the registry.
type ListenerRegistered struct {
	ID domain.Identifier
}

// ListenerRemoved is emitted when an identifier leaves the registry.
type ListenerRemoved struct {
	ID domain.Identifier
}
