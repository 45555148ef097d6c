package eventlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/osse101/FleetSync_Go/internal/event"
	"github.com/osse101/FleetSync_Go/internal/logger"
)

// LoggedTypes are the event types persisted to the activity log
var LoggedTypes = []event.Type{
	event.SyncRunStarted,
	event.SyncRunFinished,
	event.OrphansDeleted,
	event.WincplImported,
	event.CacheRecordPatch,
}

// Service handles activity logging business logic
type Service interface {
	// Subscribe registers the event logger to listen to all sync events
	Subscribe(bus event.Bus) error

	// List returns logged events newest first
	List(ctx context.Context, filter Filter) ([]Entry, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new activity logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all logged event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range LoggedTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// toMap flattens an in-process payload struct into its JSON object form
func toMap(payload interface{}) (map[string]interface{}, error) {
	if m, ok := payload.(map[string]interface{}); ok {
		return m, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// handleEvent persists one event
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := toMap(evt.Payload)
	if err != nil || payload == nil {
		log.Debug(LogMsgEventPayloadInvalid, LogFieldType, evt.Type)
		return nil
	}

	entry := Entry{
		EventType: string(evt.Type),
		Payload:   payload,
		Metadata:  evt.Metadata,
	}
	if runID, ok := evt.GetMetadataValue(event.MetadataKeyRunID).(string); ok && runID != "" {
		entry.RunID = &runID
	}
	if entity, ok := payload[PayloadKeyEntityType].(string); ok {
		entry.EntityType = entity
	}

	if err := s.repo.LogEvent(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return fmt.Errorf("log %s event: %w", evt.Type, err)
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldRunID, entry.RunID)
	return nil
}

// List returns logged events, clamping the limit
func (s *service) List(ctx context.Context, filter Filter) ([]Entry, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultListLimit
	case filter.Limit > MaxListLimit:
		filter.Limit = MaxListLimit
	}
	return s.repo.GetEvents(ctx, filter)
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
