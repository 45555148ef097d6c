package cleanup

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/event"
	"github.com/osse101/FleetSync_Go/internal/logger"
)

// DefaultBatchSize bounds the ids sent in one delete statement
const DefaultBatchSize = 100

// Log messages
const (
	LogMsgEmptyKeepSet   = "Orphan cleanup skipped: empty keep set"
	LogMsgBatchFailed    = "Orphan delete batch failed, continuing"
	LogMsgCleanupDone    = "Orphan cleanup completed"
	LogMsgPublishFailed  = "Failed to publish orphan cleanup event"
	LogMsgNothingToPrune = "No orphans to delete"
)

// Store lists and deletes cached records by upstream key
type Store[K cmp.Ordered] interface {
	ListKeys(ctx context.Context) ([]K, error)
	DeleteKeys(ctx context.Context, keys []K) (int64, error)
}

// StoreFuncs adapts a pair of repository methods to Store
type StoreFuncs[K cmp.Ordered] struct {
	List   func(ctx context.Context) ([]K, error)
	Delete func(ctx context.Context, keys []K) (int64, error)
}

func (s StoreFuncs[K]) ListKeys(ctx context.Context) ([]K, error) { return s.List(ctx) }

func (s StoreFuncs[K]) DeleteKeys(ctx context.Context, keys []K) (int64, error) {
	return s.Delete(ctx, keys)
}

// Result summarises one cleanup pass
type Result struct {
	Skipped       bool  `json:"skipped"`
	Candidates    int   `json:"candidates"`
	Deleted       int64 `json:"deleted"`
	FailedBatches int   `json:"failed_batches"`
}

// Cleaner removes cached records that left the upstream snapshot
type Cleaner struct {
	bus       event.Bus
	batchSize int
}

// NewCleaner creates a cleaner publishing results on bus
func NewCleaner(bus event.Bus, batchSize int) *Cleaner {
	if bus == nil {
		bus = event.NopBus{}
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Cleaner{bus: bus, batchSize: batchSize}
}

// Orphans deletes every cached key not in keep. An empty keep set is a no-op.
// Batch failures are logged and counted, never returned; only a failure to
// list the cached keys is an error.
func Orphans[K cmp.Ordered](ctx context.Context, c *Cleaner, entity domain.EntityType, store Store[K], keep []K) (Result, error) {
	log := logger.FromContext(ctx).With(logger.AttrKeyEntity, entity)

	if len(keep) == 0 {
		log.Warn(LogMsgEmptyKeepSet)
		return Result{Skipped: true}, nil
	}

	cached, err := store.ListKeys(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list cached %s keys: %w", entity, err)
	}

	orphans := Diff(cached, keep)
	res := Result{Candidates: len(orphans)}
	if len(orphans) == 0 {
		log.Debug(LogMsgNothingToPrune, "cached", len(cached))
		return res, nil
	}

	for batch := range slices.Chunk(orphans, c.batchSize) {
		n, err := store.DeleteKeys(ctx, batch)
		if err != nil {
			res.FailedBatches++
			log.Warn(LogMsgBatchFailed, "error", err, "batch_size", len(batch), "first_key", batch[0])
			continue
		}
		res.Deleted += n
	}

	log.Info(LogMsgCleanupDone, "candidates", res.Candidates, "deleted", res.Deleted, "failed_batches", res.FailedBatches)
	if err := c.bus.Publish(ctx, event.NewOrphansDeletedEvent(entity, res.Candidates, int(res.Deleted), res.FailedBatches)); err != nil {
		log.Warn(LogMsgPublishFailed, "error", err)
	}
	return res, nil
}

// Diff returns the sorted, de-duplicated keys of cached that are absent from keep
func Diff[K cmp.Ordered](cached, keep []K) []K {
	keepSet := make(map[K]struct{}, len(keep))
	for _, k := range keep {
		keepSet[k] = struct{}{}
	}
	var out []K
	for _, k := range cached {
		if _, ok := keepSet[k]; !ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
