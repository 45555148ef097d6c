package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FleetSync_Go/internal/cleanup"
	"github.com/osse101/FleetSync_Go/internal/config"
	"github.com/osse101/FleetSync_Go/internal/customfield"
	"github.com/osse101/FleetSync_Go/internal/drivers"
	"github.com/osse101/FleetSync_Go/internal/event"
	"github.com/osse101/FleetSync_Go/internal/eventlog"
	"github.com/osse101/FleetSync_Go/internal/hr"
	"github.com/osse101/FleetSync_Go/internal/lookup"
	"github.com/osse101/FleetSync_Go/internal/myrentcar"
	"github.com/osse101/FleetSync_Go/internal/syncrun"
	"github.com/osse101/FleetSync_Go/internal/vehicles"
)

// App is the wired object graph shared by the server and the CLI commands
type App struct {
	DB       *pgxpool.Pool
	Bus      event.Bus
	Repos    *Repositories
	Sync     syncrun.Service
	Vehicles *vehicles.Engine
	Lookup   *lookup.Service
	EventLog eventlog.Service
}

// InitializeServices builds every service on top of an open database pool.
// Upstream clients are always constructed; one without credentials fails its
// pipeline with a not-configured error instead of failing startup.
func InitializeServices(cfg *config.Config, dbPool *pgxpool.Pool) (*App, error) {
	tables, err := LoadResolverTables(cfg)
	if err != nil {
		return nil, err
	}

	bus := InitializeEventSystem()
	repos := InitializeRepositories(dbPool)

	hrClient := hr.NewClient(cfg.HRBaseURL, cfg.HRAPIKey, cfg.HTTPTimeout)
	rentalClient := myrentcar.NewClient(cfg.MyRentCarBaseURL, cfg.MyRentCarUsername, cfg.MyRentCarPassword, cfg.HTTPTimeout)

	cleaner := cleanup.NewCleaner(bus, cleanup.DefaultBatchSize)
	driverEngine := drivers.NewEngine(hrClient, repos.Drivers, customfield.NewResolver(tables), cleaner)
	vehicleEngine := vehicles.NewEngine(rentalClient, repos.Vehicles, cleaner, bus)

	lookupSvc := lookup.NewService(repos.Drivers, repos.Vehicles, bus, lookup.Config{
		Size: cfg.CacheSize,
		TTL:  cfg.CacheTTL,
	})
	eventLogSvc := eventlog.NewService(repos.EventLog)

	if err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: eventLogSvc,
		Lookup:          lookupSvc,
	}); err != nil {
		return nil, err
	}

	return &App{
		DB:       dbPool,
		Bus:      bus,
		Repos:    repos,
		Sync:     syncrun.NewService(repos.SyncRuns, bus, driverEngine, vehicleEngine),
		Vehicles: vehicleEngine,
		Lookup:   lookupSvc,
		EventLog: eventLogSvc,
	}, nil
}

// LoadResolverTables reads the resolver tables named in configuration, or the
// embedded defaults when none is set
func LoadResolverTables(cfg *config.Config) (*customfield.Tables, error) {
	tables, err := customfield.LoadTables(cfg.ResolverTables)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadResolverTables, err)
	}
	source := cfg.ResolverTables
	if source == "" {
		source = "embedded"
	}
	slog.Info(LogMsgResolverTablesLoaded,
		"source", source,
		"fields", len(tables.Fields),
		"fallback_ids", len(tables.FallbackIDs))
	return tables, nil
}

// RecoverInterruptedRuns fails every run a previous process left in_progress,
// so the ledger never shows a run nobody is executing
func RecoverInterruptedRuns(ctx context.Context, svc syncrun.Service) error {
	n, err := svc.FailInterrupted(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedFailInterrupted, err)
	}
	if n > 0 {
		slog.Warn(LogMsgInterruptedRunsFailed, "count", n)
	}
	return nil
}
