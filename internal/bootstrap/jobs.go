package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FleetSync_Go/internal/config"
	"github.com/osse101/FleetSync_Go/internal/eventlog"
	"github.com/osse101/FleetSync_Go/internal/scheduler"
	"github.com/osse101/FleetSync_Go/internal/syncrun"
	"github.com/osse101/FleetSync_Go/internal/worker"
)

// StartBackgroundJobs starts the worker pool and schedules the periodic sync
// and event log cleanup. A zero sync interval leaves sync manual-only.
func StartBackgroundJobs(ctx context.Context, cfg *config.Config, app *App) (*worker.Pool, *scheduler.Scheduler) {
	pool := worker.NewPool(WorkerCount, WorkerQueueSize).WithJobTimeout(JobTimeout)
	pool.Start(ctx)

	sched := scheduler.New(pool)
	if cfg.SyncInterval > 0 {
		sched.Schedule(cfg.SyncInterval, syncrun.NewSyncAllJob(app.Sync))
		slog.Info(LogMsgSyncScheduled, "interval", cfg.SyncInterval)
	} else {
		slog.Info(LogMsgSyncSchedulingDisabled)
	}

	sched.ScheduleNow(EventCleanupInterval, eventlog.NewCleanupJob(app.EventLog, cfg.EventRetentionDays))
	slog.Info(LogMsgEventCleanupScheduled,
		"interval", EventCleanupInterval,
		"retention_days", cfg.EventRetentionDays)

	return pool, sched
}
