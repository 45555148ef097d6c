package repository

import (
	"context"
	"time"

	"github.com/osse101/FleetSync_Go/internal/domain"
)

// DriverCache defines data access for the driver cache. Lookups return
// domain.ErrDriverNotFound when no row matches.
//
// Writes are split by ownership: sync paths only call UpdateDriverUpstream,
// which cannot touch manual fields beyond the optional availability change.
type DriverCache interface {
	GetDriverByID(ctx context.Context, id string) (*domain.DriverCacheRecord, error)
	GetDriverByExternalID(ctx context.Context, externalID int) (*domain.DriverCacheRecord, error)
	ListDrivers(ctx context.Context, filter domain.DriverFilter) ([]domain.DriverCacheRecord, error)

	InsertDriver(ctx context.Context, rec *domain.DriverCacheRecord) error
	UpdateDriverUpstream(ctx context.Context, id string, upstream domain.DriverUpstream, availability *domain.AvailabilityChange, syncedAt time.Time) error
	UpdateDriverManual(ctx context.Context, id string, manual domain.DriverManual) error

	// ListDriverExternalIDs returns the upstream id of every cached driver
	ListDriverExternalIDs(ctx context.Context) ([]int, error)
	// DeleteDriversByExternalIDs removes the given drivers and returns how many rows went
	DeleteDriversByExternalIDs(ctx context.Context, externalIDs []int) (int64, error)
}
