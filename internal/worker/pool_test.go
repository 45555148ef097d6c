package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testJob struct {
	executed *int32
	done     chan struct{}
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	j.done <- struct{}{}
	return nil
}

type blockingJob struct {
	started chan struct{}
	release chan struct{}
}

func (j *blockingJob) Process(ctx context.Context) error {
	close(j.started)
	select {
	case <-j.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *blockingJob) Name() string { return "blocking" }

type panicJob struct{}

func (panicJob) Process(context.Context) error { panic("boom") }

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job")
	}
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start(context.Background())

	job := &testJob{executed: &executed, done: make(chan struct{}, TestExpectedJobCount)}
	require.NoError(t, pool.Enqueue(context.Background(), job))
	require.NoError(t, pool.Enqueue(context.Background(), job))

	waitFor(t, job.done)
	waitFor(t, job.done)
	pool.Stop()

	assert.Equal(t, int32(TestExpectedJobCount), atomic.LoadInt32(&executed))
}

func TestPool_SurvivesPanickingJob(t *testing.T) {
	var executed int32
	pool := NewPool(1, TestQueueSize)
	pool.Start(context.Background())
	defer pool.Stop()

	job := &testJob{executed: &executed, done: make(chan struct{}, 1)}
	require.NoError(t, pool.Enqueue(context.Background(), panicJob{}))
	require.NoError(t, pool.Enqueue(context.Background(), job))

	waitFor(t, job.done)
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestPool_TryEnqueueWhenFull(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start(context.Background())

	busy := &blockingJob{started: make(chan struct{}), release: make(chan struct{})}
	require.True(t, pool.TryEnqueue(busy))
	waitFor(t, busy.started)

	queued := &blockingJob{started: make(chan struct{}), release: make(chan struct{})}
	assert.True(t, pool.TryEnqueue(queued), "one slot in the queue")
	assert.False(t, pool.TryEnqueue(&blockingJob{}), "queue full")

	close(busy.release)
	waitFor(t, queued.started)
	close(queued.release)
	pool.Stop()

	assert.False(t, pool.TryEnqueue(&blockingJob{}), "stopped pool accepts nothing")
	assert.ErrorIs(t, pool.Enqueue(context.Background(), &blockingJob{}), ErrPoolStopped)
}

func TestPool_JobTimeout(t *testing.T) {
	pool := NewPool(1, 1).WithJobTimeout(20 * time.Millisecond)
	pool.Start(context.Background())

	job := &blockingJob{started: make(chan struct{}), release: make(chan struct{})}
	require.NoError(t, pool.Enqueue(context.Background(), job))
	waitFor(t, job.started)

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()
	waitFor(t, done)
}

func TestPool_EnqueueRespectsContext(t *testing.T) {
	pool := NewPool(1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.Enqueue(ctx, &blockingJob{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestJobName(t *testing.T) {
	assert.Equal(t, "blocking", JobName(&blockingJob{}))
	assert.Equal(t, "worker.panicJob", JobName(panicJob{}))
}
