package syncrun

import (
	"context"
	"errors"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/logger"
)

// SyncAllJob runs a combined sync on behalf of the scheduler
type SyncAllJob struct {
	service Service
}

// NewSyncAllJob creates a scheduled sync job
func NewSyncAllJob(service Service) *SyncAllJob {
	return &SyncAllJob{service: service}
}

// Process executes the job. It fails when either entity failed.
func (j *SyncAllJob) Process(ctx context.Context) error {
	res := j.service.SyncAll(ctx, domain.TriggerScheduler)

	var errs []error
	if res.DriversError != "" {
		errs = append(errs, errors.New(string(domain.EntityDrivers)+": "+res.DriversError))
	}
	if res.VehiclesError != "" {
		errs = append(errs, errors.New(string(domain.EntityVehicles)+": "+res.VehiclesError))
	}
	logger.FromContext(ctx).Info(LogMsgScheduledSyncDone,
		"drivers_error", res.DriversError,
		"vehicles_error", res.VehiclesError)
	return errors.Join(errs...)
}

// Name implements worker.Named
func (j *SyncAllJob) Name() string { return "sync_all" }
