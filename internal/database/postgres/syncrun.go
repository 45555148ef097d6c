package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/repository"
)

const runColumns = `id, entity_type, status, started_at, finished_at, synced, created, updated, error_message, triggered_by`

type syncRunRepository struct {
	db *pgxpool.Pool
}

// NewSyncRunRepository creates a PostgreSQL run ledger
func NewSyncRunRepository(db *pgxpool.Pool) repository.SyncRunLedger {
	return &syncRunRepository{db: db}
}

func scanRun(row pgx.Row) (*domain.SyncRun, error) {
	var run domain.SyncRun
	err := row.Scan(&run.ID, &run.EntityType, &run.Status, &run.StartedAt, &run.FinishedAt,
		&run.Synced, &run.Created, &run.Updated, &run.ErrorMessage, &run.TriggeredBy)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func collectRuns(rows pgx.Rows) ([]domain.SyncRun, error) {
	defer rows.Close()
	out := []domain.SyncRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *run)
	}
	return out, rows.Err()
}

func (r *syncRunRepository) CreateRun(ctx context.Context, run *domain.SyncRun) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sync_runs (id, entity_type, status, started_at, triggered_by)
		VALUES ($1, $2, $3, $4, $5)`,
		run.ID, string(run.EntityType), string(run.Status), run.StartedAt, run.TriggeredBy)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateRun, err)
	}
	return nil
}

// FinishRun only transitions rows still in_progress
func (r *syncRunRepository) FinishRun(ctx context.Context, run *domain.SyncRun) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE sync_runs SET
			status = $2, finished_at = $3, synced = $4, created = $5, updated = $6, error_message = $7
		WHERE id = $1 AND status = 'in_progress'`,
		run.ID, string(run.Status), run.FinishedAt, run.Synced, run.Created, run.Updated, run.ErrorMessage)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToFinishRun, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if _, err := r.GetRun(ctx, run.ID); err != nil {
		return err
	}
	return domain.ErrRunAlreadyFinished
}

func (r *syncRunRepository) GetRun(ctx context.Context, id string) (*domain.SyncRun, error) {
	if !isUUID(id) {
		return nil, domain.ErrSyncRunNotFound
	}
	run, err := scanRun(r.db.QueryRow(ctx, `SELECT `+runColumns+` FROM sync_runs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSyncRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRun, err)
	}
	return run, nil
}

func (r *syncRunRepository) LastCompleted(ctx context.Context, entity domain.EntityType) (*domain.SyncRun, error) {
	run, err := scanRun(r.db.QueryRow(ctx, `
		SELECT `+runColumns+` FROM sync_runs
		WHERE entity_type = $1 AND status = 'completed'
		ORDER BY started_at DESC LIMIT 1`, string(entity)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRun, err)
	}
	return run, nil
}

func (r *syncRunRepository) ListInProgress(ctx context.Context) ([]domain.SyncRun, error) {
	rows, err := r.db.Query(ctx, `SELECT `+runColumns+` FROM sync_runs WHERE status = 'in_progress' ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRuns, err)
	}
	runs, err := collectRuns(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRuns, err)
	}
	return runs, nil
}

func (r *syncRunRepository) ListRecent(ctx context.Context, entity domain.EntityType, limit int) ([]domain.SyncRun, error) {
	q := newQuery(`SELECT ` + runColumns + ` FROM sync_runs`)
	if entity != "" && entity != domain.EntityAll {
		q.where("entity_type = $%d", string(entity))
	}
	q.raw(" ORDER BY started_at DESC")
	q.page(limit, 0)

	rows, err := r.db.Query(ctx, q.String(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRuns, err)
	}
	runs, err := collectRuns(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRuns, err)
	}
	return runs, nil
}
