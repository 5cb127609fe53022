package runtime

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"stage-lab/contract"
	"stage-lab/domain"
	"stage-lab/domain/event"
	"stage-lab/runtime/workers"
	"stage-lab/screening"
)

//go:embed blocklist/*
var blocklistFolder embed.FS

// Ensure *Orchestrator implements the contract.IOrchestrator interface at compile time.
var _ contract.IOrchestrator = (*Orchestrator)(nil)

// Orchestrator owns the process-wide registry and the delivery pipeline.
// It is created once at bootstrap, injected into speakers and listeners, and
// torn down at shutdown (all handles dropped, nothing persisted).
type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	supervisor     contract.ISupervisor
	registry       contract.IRegistry
	deliverer      contract.IDeliverer
	commands       chan domain.SpeakCommand
	telemetryChan  chan event.Event
	handlers       []event.Handler
	metricInterval time.Duration
}

// NewOrchestrator wires the pipeline around an externally created telemetry
// channel so other producers (the supervisor, typically) can share it.
func NewOrchestrator(log *slog.Logger, supervisor *workers.Supervisor,
	registry *Registry, deliverer *Deliverer,
	telemetryChan chan event.Event,
	bufferSize int, metricInterval time.Duration,
	handlers ...event.Handler) *Orchestrator {
	return &Orchestrator{
		log:            log,
		supervisor:     supervisor,
		registry:       registry,
		deliverer:      deliverer,
		commands:       make(chan domain.SpeakCommand, bufferSize),
		telemetryChan:  telemetryChan,
		handlers:       handlers,
		metricInterval: metricInterval,
	}
}

// Registry exposes the process-wide registry for participant wiring.
func (o *Orchestrator) Registry() contract.IRegistry {
	return o.registry
}

// Deliverer exposes the delivery engine for speakers that want synchronous
// outcomes instead of going through the async command channel.
func (o *Orchestrator) Deliverer() contract.IDeliverer {
	return o.deliverer
}

// RegisterListener puts a listener on stage under its identifier.
func (o *Orchestrator) RegisterListener(id domain.Identifier, listener contract.Listener) error {
	if err := o.registry.Register(id, listener); err != nil {
		return err
	}
	o.publish(event.New(event.ListenerRegisteredType, event.ListenerRegistered{ID: id}))
	return nil
}

// UnregisterListener removes a listener. In-flight deliveries to it complete.
func (o *Orchestrator) UnregisterListener(id domain.Identifier) error {
	if err := o.registry.Unregister(id); err != nil {
		return err
	}
	o.publish(event.New(event.ListenerRemovedType, event.ListenerRemoved{ID: id}))
	return nil
}

// Dispatch enqueues an asynchronous delivery. The enqueue never blocks; when
// the channel is full the command is dropped and logged, which is the
// documented backpressure policy of the async path.
func (o *Orchestrator) Dispatch(cmd domain.SpeakCommand) {
	if cmd.CreatedAt.IsZero() {
		cmd.CreatedAt = time.Now().UTC()
	}
	select {
	case o.commands <- cmd:
	default:
		o.log.Warn(fmt.Sprintf("Command channel full for sender %s, dropping command", cmd.Sender))
	}
}

// Start initiates the orchestrator by preparing all components (workers,
// screening, telemetry) and then starting the supervisor. It uses a
// preparation pattern to minimize mutex locking time.
func (o *Orchestrator) Start(ctx context.Context) error {
	// 1. Preparation phase (No Lock)
	// Heavy tasks like I/O (loading files) and CPU (Aho-Corasick build) are done here.
	screener, err := o.prepareScreening("blocklist")
	if err != nil {
		return err
	}

	dispatchWorker := workers.NewDispatchWorker(o.log, screener, o.deliverer, o.commands, o.telemetryChan)
	telemetryWorker := workers.NewTelemetryWorker(o.log, o.telemetryChan, o.handlers)
	capacityWorker := workers.NewChannelCapacityWorker(o.log,
		[]workers.NamedChannel{
			{Name: "commands", Channel: o.commands},
			{Name: "telemetry", Channel: o.telemetryChan},
		},
		o.telemetryChan, o.metricInterval)
	heartbeatWorker := workers.NewHeartbeatWorker(o.log, o.registry, o.metricInterval)

	// 2. Critical Section (Short Lock)
	// We only lock to update the supervisor.
	o.mu.Lock()
	o.supervisor.Add(dispatchWorker)
	o.supervisor.Add(telemetryWorker)
	o.supervisor.Add(capacityWorker)
	o.supervisor.Add(heartbeatWorker)
	o.mu.Unlock()

	// 3. Execution phase (No Lock)
	// Run blocks until every supervised worker has finished, so it gets its
	// own goroutine; Start returns once the pipeline is live.
	o.log.Info("Starting orchestrator and all supervised workers")
	go o.supervisor.Run(ctx)
	return nil
}

// prepareScreening loads the blocked words and builds the Aho-Corasick automaton.
func (o *Orchestrator) prepareScreening(path string) (*screening.Screener, error) {
	loader := NewBlocklistLoader(blocklistFolder)
	data, err := loader.LoadAll(path)
	if err != nil {
		return nil, err
	}

	o.log.Info(fmt.Sprintf("%d blocklist files loaded [%s]",
		len(data.Categories), strings.Join(data.Categories, ",")))
	o.log.Info(fmt.Sprintf("%d unique blocked words loaded", len(data.Words)))

	return screening.NewScreener(data.Words)
}

func (o *Orchestrator) publish(evt event.Event) {
	select {
	case o.telemetryChan <- evt:
	default:
		o.log.Debug("Observability telemetry event lost")
	}
}

// Stop initiates a graceful shutdown of the orchestrator.
// It cancels the supervision context to signal workers to stop.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")

	// Cancel the supervised context.
	// This immediately signals all workers to stop blocking on operations.
	o.supervisor.Stop()
}
