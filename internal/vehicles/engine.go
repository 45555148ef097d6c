package vehicles

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/osse101/FleetSync_Go/internal/cleanup"
	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/event"
	"github.com/osse101/FleetSync_Go/internal/logger"
	"github.com/osse101/FleetSync_Go/internal/myrentcar"
	"github.com/osse101/FleetSync_Go/internal/repository"
)

// RentalSource is the rental platform data a vehicle sync reads
type RentalSource interface {
	FetchVehicles(ctx context.Context) ([]myrentcar.VehicleDetail, error)
}

var _ RentalSource = (*myrentcar.Client)(nil)

// Result is the outcome of one rental sync. On failure it still carries the
// counts reached before the error.
type Result struct {
	domain.SyncCounts
	Cleanup cleanup.Result
}

// Engine reconciles both vehicle sources into the vehicle cache
type Engine struct {
	rental  RentalSource
	repo    repository.VehicleCache
	cleaner *cleanup.Cleaner
	bus     event.Bus
	now     func() time.Time
}

// NewEngine creates a vehicle reconciliation engine
func NewEngine(rental RentalSource, repo repository.VehicleCache, cleaner *cleanup.Cleaner, bus event.Bus) *Engine {
	if bus == nil {
		bus = event.NopBus{}
	}
	return &Engine{
		rental:  rental,
		repo:    repo,
		cleaner: cleaner,
		bus:     bus,
		now:     time.Now,
	}
}

// WithClock overrides the clock used for sync timestamps
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Sync reconciles the rental platform fleet, keyed by rental id, then removes
// rental-sourced vehicles that disappeared upstream. Wincpl rows are never
// candidates for removal.
func (e *Engine) Sync(ctx context.Context) (Result, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRentalSyncStarting)

	details, err := e.rental.FetchVehicles(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch rental vehicles: %w", err)
	}
	log.Info(LogMsgRentalFetched, "vehicles", len(details))

	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })

	now := e.now()
	var res Result
	keep := make([]int64, 0, len(details))
	for _, d := range details {
		keep = append(keep, d.ID)

		created, err := e.upsertRental(ctx, d, now)
		if err != nil {
			return res, fmt.Errorf("vehicle %d: %w", d.ID, err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
		res.Synced++
	}

	store := cleanup.StoreFuncs[int64]{List: e.repo.ListRentalExternalIDs, Delete: e.repo.DeleteRentalVehiclesByExternalIDs}
	cres, err := cleanup.Orphans(ctx, e.cleaner, domain.EntityVehicles, store, keep)
	if err != nil {
		log.Warn(LogMsgCleanupFailed, "error", err)
	}
	res.Cleanup = cres

	log.Info(LogMsgRentalSyncFinished,
		"synced", res.Synced,
		"created", res.Created,
		"updated", res.Updated,
		"orphans_deleted", cres.Deleted)
	return res, nil
}

func (e *Engine) upsertRental(ctx context.Context, d myrentcar.VehicleDetail, now time.Time) (bool, error) {
	attrs := MapRental(d)

	existing, err := e.repo.GetVehicleByExternalID(ctx, d.ID)
	if errors.Is(err, domain.ErrVehicleNotFound) {
		id := d.ID
		rec := &domain.VehicleCacheRecord{
			DataSource:    domain.DataSourceMyRentCar,
			ExternalID:    &id,
			Attributes:    attrs,
			Absences:      []domain.VehicleAbsence{},
			VehicleManual: newManual(),
			SyncedAt:      now,
		}
		if err := e.repo.InsertVehicle(ctx, rec); err != nil {
			return false, fmt.Errorf("insert: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup: %w", err)
	}

	if err := e.repo.UpdateVehicleUpstream(ctx, existing.ID, attrs, now); err != nil {
		return false, fmt.Errorf("update: %w", err)
	}
	return false, nil
}
