package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleetSync_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount atomic.Int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	m.RunCount.Add(1)
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func (m *MockJob) Name() string { return "mock" }

func newPool(t *testing.T) *worker.Pool {
	t.Helper()
	pool := worker.NewPool(1, 10)
	pool.Start(context.Background())
	t.Cleanup(pool.Stop)
	return pool
}

func TestScheduler(t *testing.T) {
	sched := New(newPool(t))
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	timeout := time.After(2 * time.Second)
	runCount := 0
	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, job.RunCount.Load(), int32(2))
}

func TestScheduler_ScheduleNowRunsImmediately(t *testing.T) {
	sched := New(newPool(t))
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 1)}
	sched.ScheduleNow(time.Hour, job)

	select {
	case <-job.Done:
	case <-time.After(2 * time.Second):
		t.Fatal("immediate run never happened")
	}
}

func TestScheduler_DisabledInterval(t *testing.T) {
	sched := New(newPool(t))

	job := &MockJob{Done: make(chan struct{}, 1)}
	sched.Schedule(0, job)
	sched.Stop()

	assert.Zero(t, job.RunCount.Load())
}

func TestScheduler_RunOnce(t *testing.T) {
	sched := New(newPool(t))
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 1)}
	require.NoError(t, sched.RunOnce(context.Background(), job))

	select {
	case <-job.Done:
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	sched := New(newPool(t))
	sched.Schedule(time.Millisecond, &MockJob{Done: make(chan struct{}, 1)})
	sched.Stop()
	sched.Stop()
}
