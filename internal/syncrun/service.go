package syncrun

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FleetSync_Go/internal/concurrency"
	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/drivers"
	"github.com/osse101/FleetSync_Go/internal/event"
	"github.com/osse101/FleetSync_Go/internal/logger"
	"github.com/osse101/FleetSync_Go/internal/repository"
	"github.com/osse101/FleetSync_Go/internal/vehicles"
)

// DriverSyncer runs one driver reconciliation
type DriverSyncer interface {
	Sync(ctx context.Context) (drivers.Result, error)
}

// VehicleSyncer runs one rental vehicle reconciliation
type VehicleSyncer interface {
	Sync(ctx context.Context) (vehicles.Result, error)
}

var (
	_ DriverSyncer  = (*drivers.Engine)(nil)
	_ VehicleSyncer = (*vehicles.Engine)(nil)
)

// pipeline is one entity's reconciliation reduced to its counts
type pipeline func(ctx context.Context) (domain.SyncCounts, error)

// Service is the sync orchestrator. It is the only place a pipeline error
// becomes a terminal run state.
type Service interface {
	// Run executes one entity's pipeline under the run ledger. A pipeline
	// failure is recorded on the returned run, not returned as an error.
	Run(ctx context.Context, entity domain.EntityType, trigger string) (*domain.SyncRun, error)
	// SyncAll runs drivers and vehicles concurrently. One failing does not
	// cancel the other.
	SyncAll(ctx context.Context, trigger string) domain.SyncAllResult
	Status(ctx context.Context) (*domain.SyncStatusReport, error)
	History(ctx context.Context, entity domain.EntityType, limit int) ([]domain.SyncRun, error)
	GetRun(ctx context.Context, id string) (*domain.SyncRun, error)
	// FailInterrupted closes runs a previous process left in_progress
	FailInterrupted(ctx context.Context) (int, error)
}

type service struct {
	ledger    repository.SyncRunLedger
	bus       event.Bus
	locks     *concurrency.LockManager
	pipelines map[domain.EntityType]pipeline
	now       func() time.Time
}

// NewService creates the sync orchestrator
func NewService(ledger repository.SyncRunLedger, bus event.Bus, driverSync DriverSyncer, vehicleSync VehicleSyncer) Service {
	if bus == nil {
		bus = event.NopBus{}
	}
	return &service{
		ledger: ledger,
		bus:    bus,
		locks:  concurrency.NewLockManager(),
		pipelines: map[domain.EntityType]pipeline{
			domain.EntityDrivers: func(ctx context.Context) (domain.SyncCounts, error) {
				res, err := driverSync.Sync(ctx)
				return res.SyncCounts, err
			},
			domain.EntityVehicles: func(ctx context.Context) (domain.SyncCounts, error) {
				res, err := vehicleSync.Sync(ctx)
				return res.SyncCounts, err
			},
		},
		now: time.Now,
	}
}

func (s *service) Run(ctx context.Context, entity domain.EntityType, trigger string) (*domain.SyncRun, error) {
	run, ok := s.pipelines[entity]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidEntityType, entity)
	}

	release, ok := s.locks.TryAcquire(string(entity))
	if !ok {
		logger.FromContext(ctx).Warn(LogMsgRunRejected, logger.AttrKeyEntity, entity)
		return nil, domain.ErrSyncInProgress
	}
	defer release()

	rec := &domain.SyncRun{
		ID:          uuid.NewString(),
		EntityType:  entity,
		Status:      domain.SyncStatusInProgress,
		StartedAt:   s.now().UTC(),
		TriggeredBy: trigger,
	}
	if err := s.ledger.CreateRun(ctx, rec); err != nil {
		return nil, fmt.Errorf("create sync run: %w", err)
	}

	// A created run always reaches a terminal state. Caller cancellation
	// stops neither the pipeline nor the ledger write.
	ctx = context.WithoutCancel(ctx)
	ctx = logger.With(ctx, logger.AttrKeyRunID, rec.ID, logger.AttrKeyEntity, entity)
	log := logger.FromContext(ctx)
	log.Info(LogMsgRunStarting, "triggered_by", trigger)
	s.publish(ctx, event.NewSyncRunStartedEvent(*rec))

	counts, runErr := runSafely(ctx, run)

	finished := s.now().UTC()
	rec.FinishedAt = &finished
	rec.SyncCounts = counts
	if runErr != nil {
		rec.Status = domain.SyncStatusFailed
		rec.ErrorMessage = runErr.Error()
		log.Error(LogMsgRunFailed, "error", runErr, "synced", counts.Synced)
	} else {
		rec.Status = domain.SyncStatusCompleted
		log.Info(LogMsgRunCompleted,
			"synced", counts.Synced,
			"created", counts.Created,
			"updated", counts.Updated,
			"duration", finished.Sub(rec.StartedAt))
	}

	if err := s.ledger.FinishRun(ctx, rec); err != nil {
		log.Error(LogMsgFinishFailed, "error", err)
		return rec, fmt.Errorf("finish sync run: %w", err)
	}
	s.publish(ctx, event.NewSyncRunFinishedEvent(*rec))
	return rec, nil
}

// runSafely turns a pipeline panic into a run error
func runSafely(ctx context.Context, run pipeline) (counts domain.SyncCounts, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgRunPanicked, "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("%s: %v", ErrMsgPanic, r)
		}
	}()
	return run(ctx)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func (s *service) SyncAll(ctx context.Context, trigger string) domain.SyncAllResult {
	var (
		wg                sync.WaitGroup
		result            domain.SyncAllResult
		driverErr, vehErr error
		driverRun, vehRun *domain.SyncRun
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		driverRun, driverErr = s.Run(ctx, domain.EntityDrivers, trigger)
	}()
	go func() {
		defer wg.Done()
		vehRun, vehErr = s.Run(ctx, domain.EntityVehicles, trigger)
	}()
	wg.Wait()

	result.Drivers, result.Vehicles = driverRun, vehRun
	result.DriversError = runError(driverRun, driverErr)
	result.VehiclesError = runError(vehRun, vehErr)
	return result
}

// runError is the message a combined run reports for one entity
func runError(run *domain.SyncRun, err error) string {
	if err != nil {
		return err.Error()
	}
	if run != nil && run.Status == domain.SyncStatusFailed {
		return run.ErrorMessage
	}
	return ""
}

func (s *service) Status(ctx context.Context) (*domain.SyncStatusReport, error) {
	report := &domain.SyncStatusReport{LastCompleted: map[domain.EntityType]*domain.SyncRun{}}
	for _, entity := range []domain.EntityType{domain.EntityDrivers, domain.EntityVehicles} {
		last, err := s.ledger.LastCompleted(ctx, entity)
		if err != nil {
			return nil, fmt.Errorf("last completed %s run: %w", entity, err)
		}
		report.LastCompleted[entity] = last
	}

	inProgress, err := s.ledger.ListInProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("list in-progress runs: %w", err)
	}
	report.InProgress = inProgress
	return report, nil
}

func (s *service) History(ctx context.Context, entity domain.EntityType, limit int) ([]domain.SyncRun, error) {
	if entity == "" {
		entity = domain.EntityAll
	}
	if !entity.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidEntityType, entity)
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	runs, err := s.ledger.ListRecent(ctx, entity, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync history: %w", err)
	}
	return runs, nil
}

func (s *service) GetRun(ctx context.Context, id string) (*domain.SyncRun, error) {
	return s.ledger.GetRun(ctx, id)
}

func (s *service) FailInterrupted(ctx context.Context) (int, error) {
	runs, err := s.ledger.ListInProgress(ctx)
	if err != nil {
		return 0, fmt.Errorf("list in-progress runs: %w", err)
	}

	closed := 0
	for _, run := range runs {
		if s.locks.Held(string(run.EntityType)) {
			continue
		}
		logger.FromContext(ctx).Warn(LogMsgInterruptedRun, logger.AttrKeyRunID, run.ID, logger.AttrKeyEntity, run.EntityType)
		finished := s.now().UTC()
		run.Status = domain.SyncStatusFailed
		run.FinishedAt = &finished
		run.ErrorMessage = ErrMsgInterrupted
		if err := s.ledger.FinishRun(ctx, &run); err != nil && !errors.Is(err, domain.ErrRunAlreadyFinished) {
			return closed, fmt.Errorf("fail run %s: %w", run.ID, err)
		}
		closed++
	}
	return closed, nil
}
