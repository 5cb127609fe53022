package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"stage-lab/domain"
	"stage-lab/domain/event"
	"stage-lab/participant"
	"stage-lab/projection"
	"stage-lab/runtime"
	"stage-lab/runtime/workers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the runtime lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Setup Supervision & Orchestration
	registry := runtime.NewRegistry()
	deliverer := runtime.NewDeliverer(log, registry, config.SinkTimeout)

	counter := event.NewCounter()
	handlers := []event.Handler{
		event.NewDeliveryReportHandler(log, counter),
		event.NewLatencyHandler(log, config.LatencyThreshold),
		event.NewChannelCapacityHandler(log, config.LowCapacityThreshold),
		event.NewWorkerRestartedAfterPanicHandler(log, counter),
	}

	telemetryChan := make(chan event.Event, config.BufferSize)
	sup := workers.NewSupervisor(log, config.RestartInterval, telemetryChan)
	orchestrator := runtime.NewOrchestrator(log, sup, registry, deliverer,
		telemetryChan, config.BufferSize, config.MetricInterval, handlers...)

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Start the Engine
	if err := orchestrator.Start(ctx); err != nil {
		return fmt.Errorf("orchestrator failed to start: %w", err)
	}

	// 5. Stage a small troupe: two listeners, one timeline, one speaker.
	timeline := projection.NewTimeline("demo")
	timelineID := domain.NewIdentifier()
	if err := orchestrator.RegisterListener(timelineID, timeline); err != nil {
		return err
	}

	echoID, detachEcho, err := participant.Listen(registry, func(ctx context.Context, sender domain.Identifier, w domain.Word) error {
		log.Info("word received", "sender", sender.String(), "word", w.Render())
		return nil
	})
	if err != nil {
		return err
	}
	defer func() { _ = detachEcho() }()

	speaker := participant.NewSpeaker(deliverer)
	speaker.Address(timelineID, echoID)

	hello := domain.MustWord("HELLO")
	stage := domain.MustWord("STAGE")
	greeting, err := domain.Combine(hello, stage)
	if err != nil {
		return err
	}

	outcomes := speaker.Say(ctx, greeting)
	printOutcomes(speaker.ID(), greeting, outcomes)

	// Async path: same word through the dispatch queue.
	orchestrator.Dispatch(domain.SpeakCommand{
		Sender:     speaker.ID(),
		Recipients: speaker.Recipients(),
		Word:       hello,
	})

	// 6. Wait for Stop
	<-ctx.Done()
	log.Info("Shutting down gracefully...")

	// 7. Final Cleanup
	orchestrator.Stop()
	log.Info("Program stopped cleanly", "timeline_entries", len(timeline.Entries()))

	return nil
}
