package eventlog

import (
	"context"
	"time"
)

// Entry is one persisted sync activity event
type Entry struct {
	ID         int64                  `json:"id"`
	EventType  string                 `json:"event_type"`
	RunID      *string                `json:"run_id,omitempty"`
	EntityType string                 `json:"entity_type,omitempty"`
	Payload    map[string]interface{} `json:"payload"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// Filter narrows activity log queries
type Filter struct {
	EventType string
	RunID     string
	Since     *time.Time
	Limit     int
}

// Repository defines the interface for activity log storage
type Repository interface {
	// LogEvent stores an event
	LogEvent(ctx context.Context, entry Entry) error

	// GetEvents returns entries newest first
	GetEvents(ctx context.Context, filter Filter) ([]Entry, error)

	// CleanupOldEvents removes events older than the specified number of days
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
