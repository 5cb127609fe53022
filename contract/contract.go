//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"stage-lab/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Listener is the receiving role of the pattern. Implementations own their
// internal state; the registry and delivery engine never touch it beyond
// invoking Receive.
type Listener interface {
	Receive(ctx context.Context, sender domain.Identifier, w domain.Word) error
}

// IRegistry is the process-wide table from Identifier to Listener handle.
// It is the single owner of that table; no other component mutates it.
type IRegistry interface {
	Register(id domain.Identifier, listener Listener) error
	Unregister(id domain.Identifier) error
	Lookup(id domain.Identifier) (Listener, bool)
	ListActive() []domain.Identifier
}

// IDeliverer resolves recipients and fans a word out to them concurrently.
// Deliver blocks until the join of all per-recipient outcomes; Initiate
// returns after launching the invocations and publishes the aggregate on the
// returned channel.
type IDeliverer interface {
	Deliver(ctx context.Context, sender domain.Identifier, recipients []domain.Identifier, w domain.Word) []domain.Outcome
	Initiate(ctx context.Context, sender domain.Identifier, recipients []domain.Identifier, w domain.Word) <-chan []domain.Outcome
}

type IOrchestrator interface {
	RegisterListener(id domain.Identifier, listener Listener) error
	UnregisterListener(id domain.Identifier) error
	Dispatch(cmd domain.SpeakCommand)
	Start(ctx context.Context) error
	Stop()
}
