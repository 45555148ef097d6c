package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/FleetSync_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string                 `json:"version"`
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Sync lifecycle event types
const (
	SyncRunStarted   Type = "sync.run.started"
	SyncRunFinished  Type = "sync.run.finished"
	OrphansDeleted   Type = "sync.orphans.deleted"
	WincplImported   Type = "wincpl.imported"
	CacheRecordPatch Type = "cache.record.patched"
)

// SyncRunPayloadV1 describes a run transition
type SyncRunPayloadV1 struct {
	RunID       string            `json:"run_id"`
	EntityType  domain.EntityType `json:"entity_type"`
	Status      domain.SyncStatus `json:"status"`
	TriggeredBy string            `json:"triggered_by"`
	Counts      domain.SyncCounts `json:"counts"`
	Duration    time.Duration     `json:"duration"`
	Error       string            `json:"error,omitempty"`
}

// OrphansDeletedPayloadV1 reports an orphan cleanup pass
type OrphansDeletedPayloadV1 struct {
	EntityType     domain.EntityType `json:"entity_type"`
	Deleted        int               `json:"deleted"`
	FailedBatches  int               `json:"failed_batches"`
	CandidateCount int               `json:"candidate_count"`
}

// WincplImportedPayloadV1 reports a processed Wincpl upload
type WincplImportedPayloadV1 struct {
	Files            int `json:"files"`
	VehiclesUpserted int `json:"vehicles_upserted"`
	AbsencesApplied  int `json:"absences_applied"`
	AbsencesRemoved  int `json:"absences_removed"`
	Skipped          int `json:"skipped"`
	Errors           int `json:"errors"`
}

// CacheRecordPatchPayloadV1 identifies a record whose manual fields changed
type CacheRecordPatchPayloadV1 struct {
	EntityType domain.EntityType `json:"entity_type"`
	ID         string            `json:"id"`
}

// NewSyncRunStartedEvent creates a run started event
func NewSyncRunStartedEvent(run domain.SyncRun) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SyncRunStarted,
		Payload: SyncRunPayloadV1{
			RunID:       run.ID,
			EntityType:  run.EntityType,
			Status:      run.Status,
			TriggeredBy: run.TriggeredBy,
		},
		Metadata: map[string]interface{}{MetadataKeyRunID: run.ID},
	}
}

// NewSyncRunFinishedEvent creates a run finished event from a terminal run
func NewSyncRunFinishedEvent(run domain.SyncRun) Event {
	var duration time.Duration
	if run.FinishedAt != nil {
		duration = run.FinishedAt.Sub(run.StartedAt)
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    SyncRunFinished,
		Payload: SyncRunPayloadV1{
			RunID:       run.ID,
			EntityType:  run.EntityType,
			Status:      run.Status,
			TriggeredBy: run.TriggeredBy,
			Counts:      run.SyncCounts,
			Duration:    duration,
			Error:       run.ErrorMessage,
		},
		Metadata: map[string]interface{}{MetadataKeyRunID: run.ID},
	}
}

// NewOrphansDeletedEvent creates an orphan cleanup event
func NewOrphansDeletedEvent(entity domain.EntityType, candidates, deleted, failedBatches int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    OrphansDeleted,
		Payload: OrphansDeletedPayloadV1{
			EntityType:     entity,
			Deleted:        deleted,
			FailedBatches:  failedBatches,
			CandidateCount: candidates,
		},
	}
}

// NewWincplImportedEvent creates an import summary event
func NewWincplImportedEvent(p WincplImportedPayloadV1) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WincplImported,
		Payload: p,
	}
}

// NewCacheRecordPatchEvent creates a manual edit event
func NewCacheRecordPatchEvent(entity domain.EntityType, id string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CacheRecordPatch,
		Payload: CacheRecordPatchPayloadV1{EntityType: entity, ID: id},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers, synchronously and in
// subscription order
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// NopBus drops every event. Used where no subscribers are wired.
type NopBus struct{}

func (NopBus) Publish(context.Context, Event) error { return nil }
func (NopBus) Subscribe(Type, Handler)              {}
