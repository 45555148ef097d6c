package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/FleetSync_Go/internal/event"
	"github.com/osse101/FleetSync_Go/internal/eventlog"
	"github.com/osse101/FleetSync_Go/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus
func InitializeEventSystem() event.Bus {
	bus := event.NewMemoryBus()
	slog.Info(LogMsgEventSystemInitialized)
	return bus
}

// busRegistrar is anything that wires its own handlers onto the bus
type busRegistrar interface {
	Register(bus event.Bus)
}

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	Lookup          busRegistrar
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (event counters and sync gauges)
// - Event logger (persists events to database)
// - Lookup cache (purges an entity's cache when its run finishes)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.EventLogService != nil {
		if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
		}
		slog.Info(LogMsgEventLoggerInitialized)
	}

	if deps.Lookup != nil {
		deps.Lookup.Register(deps.EventBus)
		slog.Info(LogMsgLookupCacheRegistered)
	}

	return nil
}
