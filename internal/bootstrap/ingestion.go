package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcfadden20/Swim-meet-timer/internal/config"
	"github.com/mcfadden20/Swim-meet-timer/internal/meetconfig"
	"github.com/mcfadden20/Swim-meet-timer/internal/scheduler"
	"github.com/mcfadden20/Swim-meet-timer/internal/worker"
)

// Ingestion bundles the meet configuration ingestor with the components that
// keep it current.
type Ingestion struct {
	Ingestor  *meetconfig.Ingestor
	Watcher   *meetconfig.Watcher
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
}

// StartIngestion performs an initial scan of the meet data directory, starts
// the filesystem watcher and schedules the periodic rescan on a worker pool.
// A failed initial scan is logged; the rescan retries it.
func StartIngestion(ctx context.Context, cfg *config.Config) (*Ingestion, error) {
	in := meetconfig.NewIngestor(cfg.MeetDataDir,
		meetconfig.WithRetry(cfg.ConfigReadAttempts, cfg.ConfigReadDelay))

	if err := in.IngestAll(ctx); err != nil {
		slog.Warn(LogMsgInitialIngestFailed, "error", err)
	}

	w, err := meetconfig.NewWatcher(in, cfg.ConfigSettleDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateWatcher, err)
	}
	w.StartAsync(ctx)

	pool := worker.NewPool(cfg.WorkerCount, WorkerQueueSize)
	pool.Start(ctx)

	sched := scheduler.New(pool).WithContext(ctx)
	sched.Schedule(cfg.ConfigRescanInterval, JobNameConfigRescan, meetconfig.RescanJob{Ingestor: in})

	slog.Info(LogMsgIngestionStarted,
		"root", in.Root(),
		"rescan_interval", cfg.ConfigRescanInterval,
		"workers", cfg.WorkerCount)

	return &Ingestion{Ingestor: in, Watcher: w, Pool: pool, Scheduler: sched}, nil
}

// Stop halts the scheduler before the pool so no tick enqueues onto a stopped pool.
func (i *Ingestion) Stop() {
	slog.Info(LogMsgStoppingBackground)
	i.Scheduler.Stop()
	i.Pool.Stop()
	if err := i.Watcher.Stop(); err != nil {
		slog.Error(LogMsgWatcherStopFailed, "error", err)
	}
}
