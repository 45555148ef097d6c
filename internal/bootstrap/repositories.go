package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FleetSync_Go/internal/database/postgres"
	"github.com/osse101/FleetSync_Go/internal/eventlog"
	"github.com/osse101/FleetSync_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Drivers  repository.DriverCache
	Vehicles repository.VehicleCache
	SyncRuns repository.SyncRunLedger
	EventLog eventlog.Repository
}

// InitializeRepositories creates all repository implementations on one pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Drivers:  postgres.NewDriverRepository(dbPool),
		Vehicles: postgres.NewVehicleRepository(dbPool),
		SyncRuns: postgres.NewSyncRunRepository(dbPool),
		EventLog: postgres.NewEventLogRepository(dbPool),
	}
}
