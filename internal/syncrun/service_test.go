package syncrun

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/drivers"
	"github.com/osse101/FleetSync_Go/internal/event"
	"github.com/osse101/FleetSync_Go/internal/testing/memrepo"
	"github.com/osse101/FleetSync_Go/internal/vehicles"
)

type fakeDrivers struct {
	counts  domain.SyncCounts
	err     error
	entered chan struct{}
	block   chan struct{}
	calls   int
	mu      sync.Mutex
}

func (f *fakeDrivers) Sync(context.Context) (drivers.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	return drivers.Result{SyncCounts: f.counts}, f.err
}

type fakeVehicles struct {
	counts domain.SyncCounts
	err    error
}

func (f *fakeVehicles) Sync(context.Context) (vehicles.Result, error) {
	return vehicles.Result{SyncCounts: f.counts}, f.err
}

func TestRun_CompletedWithCounts(t *testing.T) {
	ctx := context.Background()
	ledger := memrepo.NewLedger()
	bus := event.NewMemoryBus()
	var seen []event.Type
	for _, typ := range []event.Type{event.SyncRunStarted, event.SyncRunFinished} {
		bus.Subscribe(typ, func(_ context.Context, e event.Event) error {
			seen = append(seen, e.Type)
			return nil
		})
	}
	svc := NewService(ledger, bus, &fakeDrivers{counts: domain.SyncCounts{Synced: 3, Created: 1, Updated: 2}}, &fakeVehicles{})

	run, err := svc.Run(ctx, domain.EntityDrivers, domain.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusCompleted, run.Status)
	assert.Equal(t, 3, run.Synced)
	require.NotNil(t, run.FinishedAt)
	assert.Empty(t, run.ErrorMessage)
	assert.Equal(t, []event.Type{event.SyncRunStarted, event.SyncRunFinished}, seen)

	stored, err := ledger.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusCompleted, stored.Status)
	assert.Equal(t, domain.TriggerManual, stored.TriggeredBy)
}

func TestRun_FailureIsRecordedWithPartialCounts(t *testing.T) {
	ctx := context.Background()
	ledger := memrepo.NewLedger()
	svc := NewService(ledger, nil, &fakeDrivers{
		counts: domain.SyncCounts{Synced: 2, Created: 2},
		err:    errors.New("fetch teams: boom"),
	}, &fakeVehicles{})

	run, err := svc.Run(ctx, domain.EntityDrivers, domain.TriggerCLI)
	require.NoError(t, err, "pipeline failure lives on the run")
	assert.Equal(t, domain.SyncStatusFailed, run.Status)
	assert.Equal(t, "fetch teams: boom", run.ErrorMessage)
	assert.Equal(t, 2, run.Created)

	stored, err := ledger.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusFailed, stored.Status)
}

func TestRun_UnknownEntity(t *testing.T) {
	svc := NewService(memrepo.NewLedger(), nil, &fakeDrivers{}, &fakeVehicles{})
	_, err := svc.Run(context.Background(), domain.EntityAll, domain.TriggerManual)
	assert.ErrorIs(t, err, domain.ErrInvalidEntityType)
}

func TestRun_SecondConcurrentRunIsRejected(t *testing.T) {
	ctx := context.Background()
	ledger := memrepo.NewLedger()
	drv := &fakeDrivers{entered: make(chan struct{}, 1), block: make(chan struct{})}
	svc := NewService(ledger, nil, drv, &fakeVehicles{})

	done := make(chan *domain.SyncRun)
	go func() {
		run, _ := svc.Run(ctx, domain.EntityDrivers, domain.TriggerManual)
		done <- run
	}()
	<-drv.entered

	_, err := svc.Run(ctx, domain.EntityDrivers, domain.TriggerManual)
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)

	// the other entity is not blocked
	vrun, err := svc.Run(ctx, domain.EntityVehicles, domain.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusCompleted, vrun.Status)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status.InProgress, 1)
	assert.Equal(t, domain.EntityDrivers, status.InProgress[0].EntityType)

	close(drv.block)
	first := <-done
	assert.Equal(t, domain.SyncStatusCompleted, first.Status)
	assert.Equal(t, 1, drv.calls)

	_, err = svc.Run(ctx, domain.EntityDrivers, domain.TriggerManual)
	assert.NoError(t, err, "guard is released after the run")
}

func TestSyncAll_FailureInOneDoesNotCancelOther(t *testing.T) {
	ctx := context.Background()
	ledger := memrepo.NewLedger()
	svc := NewService(ledger, nil,
		&fakeDrivers{counts: domain.SyncCounts{Synced: 1, Created: 1}},
		&fakeVehicles{err: domain.ErrUpstreamAuth})

	res := svc.SyncAll(ctx, domain.TriggerScheduler)
	require.NotNil(t, res.Drivers)
	require.NotNil(t, res.Vehicles)
	assert.Equal(t, domain.SyncStatusCompleted, res.Drivers.Status)
	assert.Empty(t, res.DriversError)
	assert.Equal(t, domain.SyncStatusFailed, res.Vehicles.Status)
	assert.Equal(t, domain.ErrUpstreamAuth.Error(), res.VehiclesError)

	history, err := svc.History(ctx, domain.EntityAll, 0)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestStatus_LastCompletedPerEntity(t *testing.T) {
	ctx := context.Background()
	ledger := memrepo.NewLedger()
	drv := &fakeDrivers{}
	svc := NewService(ledger, nil, drv, &fakeVehicles{})

	first, err := svc.Run(ctx, domain.EntityDrivers, domain.TriggerManual)
	require.NoError(t, err)
	drv.err = errors.New("later failure")
	_, err = svc.Run(ctx, domain.EntityDrivers, domain.TriggerManual)
	require.NoError(t, err)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.NotNil(t, status.LastCompleted[domain.EntityDrivers])
	assert.Equal(t, first.ID, status.LastCompleted[domain.EntityDrivers].ID)
	assert.Nil(t, status.LastCompleted[domain.EntityVehicles])
	assert.Empty(t, status.InProgress)
}

func TestHistory_LimitsAndOrdering(t *testing.T) {
	ctx := context.Background()
	ledger := memrepo.NewLedger()
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		entity := domain.EntityDrivers
		if i%2 == 1 {
			entity = domain.EntityVehicles
		}
		require.NoError(t, ledger.CreateRun(ctx, &domain.SyncRun{
			EntityType: entity,
			Status:     domain.SyncStatusCompleted,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}
	svc := NewService(ledger, nil, &fakeDrivers{}, &fakeVehicles{})

	runs, err := svc.History(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, runs, DefaultHistoryLimit)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))

	runs, err = svc.History(ctx, domain.EntityAll, 500)
	require.NoError(t, err)
	assert.Len(t, runs, MaxHistoryLimit)

	runs, err = svc.History(ctx, domain.EntityVehicles, 5)
	require.NoError(t, err)
	require.Len(t, runs, 5)
	for _, r := range runs {
		assert.Equal(t, domain.EntityVehicles, r.EntityType)
	}

	_, err = svc.History(ctx, "trucks", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidEntityType)
}

func TestFailInterrupted(t *testing.T) {
	ctx := context.Background()
	ledger := memrepo.NewLedger()
	require.NoError(t, ledger.CreateRun(ctx, &domain.SyncRun{
		ID: "stale", EntityType: domain.EntityVehicles, Status: domain.SyncStatusInProgress, StartedAt: time.Now(),
	}))
	svc := NewService(ledger, nil, &fakeDrivers{}, &fakeVehicles{})

	n, err := svc.FailInterrupted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	run, err := ledger.GetRun(ctx, "stale")
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusFailed, run.Status)
	assert.Equal(t, ErrMsgInterrupted, run.ErrorMessage)
}

func TestSyncAllJob_ReportsFailures(t *testing.T) {
	svc := NewService(memrepo.NewLedger(), nil, &fakeDrivers{err: errors.New("hr down")}, &fakeVehicles{})

	err := NewSyncAllJob(svc).Process(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drivers: hr down")

	ok := NewService(memrepo.NewLedger(), nil, &fakeDrivers{}, &fakeVehicles{})
	assert.NoError(t, NewSyncAllJob(ok).Process(context.Background()))
}

// ctxLedger rejects writes on a done context the way a pgx pool does
type ctxLedger struct {
	*memrepo.Ledger
}

func (l ctxLedger) FinishRun(ctx context.Context, run *domain.SyncRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.Ledger.FinishRun(ctx, run)
}

type cancellingDrivers struct {
	cancel context.CancelFunc
}

func (f *cancellingDrivers) Sync(ctx context.Context) (drivers.Result, error) {
	f.cancel()
	if err := ctx.Err(); err != nil {
		return drivers.Result{}, err
	}
	return drivers.Result{SyncCounts: domain.SyncCounts{Synced: 1, Updated: 1}}, nil
}

func TestRun_CallerCancellationStillFinishesRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ledger := ctxLedger{memrepo.NewLedger()}
	svc := NewService(ledger, nil, &cancellingDrivers{cancel: cancel}, &fakeVehicles{})

	run, err := svc.Run(ctx, domain.EntityDrivers, domain.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusCompleted, run.Status)
	assert.Equal(t, 1, run.Synced)

	stored, err := ledger.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusCompleted, stored.Status)

	open, err := ledger.ListInProgress(context.Background())
	require.NoError(t, err)
	assert.Empty(t, open)
}

type panickingVehicles struct{}

func (panickingVehicles) Sync(context.Context) (vehicles.Result, error) {
	panic("nil vehicle model")
}

func TestRun_PanicIsRecordedAsFailure(t *testing.T) {
	ctx := context.Background()
	ledger := memrepo.NewLedger()
	svc := NewService(ledger, nil, &fakeDrivers{}, panickingVehicles{})

	var run *domain.SyncRun
	var err error
	require.NotPanics(t, func() {
		run, err = svc.Run(ctx, domain.EntityVehicles, domain.TriggerScheduler)
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusFailed, run.Status)
	assert.Contains(t, run.ErrorMessage, "nil vehicle model")

	stored, err := ledger.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusFailed, stored.Status)

	// the lock was released
	_, err = svc.Run(ctx, domain.EntityVehicles, domain.TriggerScheduler)
	assert.NotErrorIs(t, err, domain.ErrSyncInProgress)
}
