package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"stage-lab/contract"
)

// HeartbeatWorker periodically logs the health of the process itself
// (RSS, CPU, registered listener count) so a stuck delivery or a listener
// leak shows up in the logs without any external monitoring.
type HeartbeatWorker struct {
	log      *slog.Logger
	registry contract.IRegistry
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, registry contract.IRegistry, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{
		log:      log,
		registry: registry,
		interval: interval,
	}
}

// Run executes the main loop of the worker, reporting health metrics on every tick.
func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting heartbeat worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, err := getSelfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}

			w.log.Info("heartbeat",
				"rss_mb", rss/1024/1024,
				"cpu_percent", cpu,
				"active_listeners", len(w.registry.ListActive()),
			)
		}
	}
}

func getSelfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpu, nil
}
