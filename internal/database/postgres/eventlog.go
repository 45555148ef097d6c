package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FleetSync_Go/internal/eventlog"
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL activity log repository
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &eventLogRepository{db: db}
}

// LogEvent stores an event in the database
func (r *eventLogRepository) LogEvent(ctx context.Context, entry eventlog.Entry) error {
	payloadJSON, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}

	var metadataJSON []byte
	if entry.Metadata != nil {
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
		}
	}

	var runID *string
	if entry.RunID != nil && isUUID(*entry.RunID) {
		runID = entry.RunID
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO sync_events (event_type, run_id, entity_type, payload, metadata)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.EventType, runID, entry.EntityType, payloadJSON, metadataJSON)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	return nil
}

// GetEvents retrieves events based on filter criteria, newest first
func (r *eventLogRepository) GetEvents(ctx context.Context, filter eventlog.Filter) ([]eventlog.Entry, error) {
	q := newQuery(`SELECT id, event_type, run_id, entity_type, payload, metadata, created_at FROM sync_events`)
	if filter.EventType != "" {
		q.where("event_type = $%d", filter.EventType)
	}
	if filter.RunID != "" {
		if !isUUID(filter.RunID) {
			return []eventlog.Entry{}, nil
		}
		q.where("run_id = $%d", filter.RunID)
	}
	if filter.Since != nil {
		q.where("created_at >= $%d", *filter.Since)
	}
	q.raw(" ORDER BY created_at DESC, id DESC")
	q.page(filter.Limit, 0)

	rows, err := r.db.Query(ctx, q.String(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEvents, err)
	}
	defer rows.Close()

	entries, err := r.scanEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEvents, err)
	}
	return entries, nil
}

// CleanupOldEvents removes events older than the specified number of days
func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	result, err := r.db.Exec(ctx, `
		DELETE FROM sync_events
		WHERE created_at < NOW() - INTERVAL '1 day' * $1`, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return result.RowsAffected(), nil
}

// scanEvents scans rows into Entry structs
func (r *eventLogRepository) scanEvents(rows pgx.Rows) ([]eventlog.Entry, error) {
	entries := []eventlog.Entry{}

	for rows.Next() {
		var e eventlog.Entry
		var payloadJSON, metadataJSON []byte

		if err := rows.Scan(&e.ID, &e.EventType, &e.RunID, &e.EntityType, &payloadJSON, &metadataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payloadJSON, &e.Payload); err != nil {
			return nil, err
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &e.Metadata); err != nil {
				return nil, err
			}
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
