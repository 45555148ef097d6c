package repository

import (
	"context"
	"time"

	"github.com/osse101/FleetSync_Go/internal/domain"
)

// VehicleCache defines data access for the vehicle cache. Lookups return
// domain.ErrVehicleNotFound when no row matches.
type VehicleCache interface {
	GetVehicleByID(ctx context.Context, id string) (*domain.VehicleCacheRecord, error)
	GetVehicleByExternalID(ctx context.Context, externalID int64) (*domain.VehicleCacheRecord, error)
	GetVehicleByCode(ctx context.Context, code string) (*domain.VehicleCacheRecord, error)
	ListVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.VehicleCacheRecord, error)

	InsertVehicle(ctx context.Context, rec *domain.VehicleCacheRecord) error
	UpdateVehicleUpstream(ctx context.Context, id string, attrs domain.VehicleAttributes, syncedAt time.Time) error
	// ModifyVehicleAbsences locks the Wincpl vehicle with the given code, lets
	// modify edit its absences and saves them when it returns true.
	ModifyVehicleAbsences(ctx context.Context, code string, modify func(*domain.VehicleCacheRecord) bool) error
	UpdateVehicleManual(ctx context.Context, id string, manual domain.VehicleManual) error

	// ListRentalExternalIDs returns upstream ids of rental-sourced vehicles only
	ListRentalExternalIDs(ctx context.Context) ([]int64, error)
	// DeleteRentalVehiclesByExternalIDs never touches Wincpl rows
	DeleteRentalVehiclesByExternalIDs(ctx context.Context, externalIDs []int64) (int64, error)
}
