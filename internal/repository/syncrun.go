package repository

import (
	"context"

	"github.com/osse101/FleetSync_Go/internal/domain"
)

// SyncRunLedger defines data access for the run ledger
type SyncRunLedger interface {
	CreateRun(ctx context.Context, run *domain.SyncRun) error
	// FinishRun moves an in_progress run to its terminal state. It returns
	// domain.ErrRunAlreadyFinished when the run is already terminal.
	FinishRun(ctx context.Context, run *domain.SyncRun) error
	GetRun(ctx context.Context, id string) (*domain.SyncRun, error)

	// LastCompleted returns nil, nil when the entity has never completed a run
	LastCompleted(ctx context.Context, entity domain.EntityType) (*domain.SyncRun, error)
	ListInProgress(ctx context.Context) ([]domain.SyncRun, error)
	// ListRecent returns runs newest first. EntityAll matches every entity.
	ListRecent(ctx context.Context, entity domain.EntityType, limit int) ([]domain.SyncRun, error)
}
