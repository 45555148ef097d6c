package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/FleetSync_Go/internal/worker"
)

// Log messages
const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgTickSkipped  = "Scheduled job skipped, worker queue full"
)

// Scheduler enqueues jobs on the worker pool at fixed intervals
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run every interval, starting immediately.
// A tick that finds the worker queue full is dropped rather than piling up
// behind a slow run. A non-positive interval schedules nothing.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.schedule(interval, job, false)
}

// ScheduleNow is Schedule with one extra run enqueued right away
func (s *Scheduler) ScheduleNow(interval time.Duration, job worker.Job) {
	s.schedule(interval, job, true)
}

func (s *Scheduler) schedule(interval time.Duration, job worker.Job, immediate bool) {
	if interval <= 0 {
		return
	}
	name := worker.JobName(job)
	slog.Default().Info(LogMsgJobScheduled, "job", name, "interval", interval, "immediate", immediate)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if immediate {
			s.enqueue(name, job)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.enqueue(name, job)
			case <-s.quit:
				return
			}
		}
	}()
}

func (s *Scheduler) enqueue(name string, job worker.Job) {
	if !s.workerPool.TryEnqueue(job) {
		slog.Default().Warn(LogMsgTickSkipped, "job", name)
	}
}

// RunOnce enqueues a job outside its schedule, blocking until queued
func (s *Scheduler) RunOnce(ctx context.Context, job worker.Job) error {
	return s.workerPool.Enqueue(ctx, job)
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
