package metrics

import (
	"context"

	"github.com/osse101/FleetSync_Go/internal/event"
	"github.com/osse101/FleetSync_Go/internal/logger"
)

// EventMetricsCollector subscribes to sync events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.SyncRunStarted,
		event.SyncRunFinished,
		event.OrphansDeleted,
		event.WincplImported,
		event.CacheRecordPatch,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.SyncRunFinished:
		p, err := event.DecodePayload[event.SyncRunPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		entity := string(p.EntityType)
		SyncRunsTotal.WithLabelValues(entity, string(p.Status)).Inc()
		SyncRunDuration.WithLabelValues(entity).Observe(p.Duration.Seconds())
		SyncRecordsTotal.WithLabelValues(entity, ActionCreated).Add(float64(p.Counts.Created))
		SyncRecordsTotal.WithLabelValues(entity, ActionUpdated).Add(float64(p.Counts.Updated))

	case event.OrphansDeleted:
		p, err := event.DecodePayload[event.OrphansDeletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		OrphansDeletedTotal.WithLabelValues(string(p.EntityType)).Add(float64(p.Deleted))
		OrphanBatchFailures.WithLabelValues(string(p.EntityType)).Add(float64(p.FailedBatches))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
