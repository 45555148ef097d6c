package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/event"
)

func TestEventMetricsCollector_SyncRunFinished(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	before := testutil.ToFloat64(SyncRunsTotal.WithLabelValues("drivers", "completed"))
	createdBefore := testutil.ToFloat64(SyncRecordsTotal.WithLabelValues("drivers", ActionCreated))

	started := time.Now().Add(-5 * time.Second)
	finished := time.Now()
	err := bus.Publish(context.Background(), event.NewSyncRunFinishedEvent(domain.SyncRun{
		ID:         "r1",
		EntityType: domain.EntityDrivers,
		Status:     domain.SyncStatusCompleted,
		StartedAt:  started,
		FinishedAt: &finished,
		SyncCounts: domain.SyncCounts{Synced: 3, Created: 2, Updated: 1},
	}))
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(SyncRunsTotal.WithLabelValues("drivers", "completed")))
	assert.Equal(t, createdBefore+2, testutil.ToFloat64(SyncRecordsTotal.WithLabelValues("drivers", ActionCreated)))
}

func TestEventMetricsCollector_OrphansDeleted(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	before := testutil.ToFloat64(OrphansDeletedTotal.WithLabelValues("vehicles"))
	failedBefore := testutil.ToFloat64(OrphanBatchFailures.WithLabelValues("vehicles"))

	require.NoError(t, bus.Publish(context.Background(), event.NewOrphansDeletedEvent(domain.EntityVehicles, 250, 200, 1)))

	assert.Equal(t, before+200, testutil.ToFloat64(OrphansDeletedTotal.WithLabelValues("vehicles")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(OrphanBatchFailures.WithLabelValues("vehicles")))
}

func TestRecordUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("hr", StatusTransportError))
	RecordUpstream("hr", 0)
	assert.Equal(t, before+1, testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("hr", StatusTransportError)))
}
