package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FleetSync_Go/internal/logger"
)

// CleanupJob prunes the event log on behalf of the scheduler
type CleanupJob struct {
	service       Service
	retentionDays int
}

// NewCleanupJob creates a cleanup job. A non-positive retention falls back
// to DefaultRetentionDays so a misconfiguration never empties the log.
func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &CleanupJob{service: service, retentionDays: retentionDays}
}

// Process deletes events older than the retention window
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx).With(LogFieldRetentionDays, j.retentionDays)
	log.Debug(LogMsgCleanupJobStarting)

	start := time.Now()
	count, err := j.service.CleanupOldEvents(ctx, j.retentionDays)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed, LogFieldError, err, LogFieldDuration, time.Since(start))
		return fmt.Errorf("event log cleanup: %w", err)
	}

	log.Info(LogMsgCleanupJobCompleted, LogFieldDeletedCount, count, LogFieldDuration, time.Since(start))
	return nil
}

// Name implements worker.Named
func (j *CleanupJob) Name() string { return "event_log_cleanup" }
