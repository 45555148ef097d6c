package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/FleetSync_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Named jobs are logged under their name instead of their Go type
type Named interface {
	Name() string
}

// JobName returns the name a job is logged under
func JobName(job Job) string {
	if n, ok := job.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", job)
}

// Pool represents a worker pool
type Pool struct {
	workers    int
	jobQueue   chan Job
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
	jobTimeout time.Duration
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers:  max(workers, 1),
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// WithJobTimeout bounds every job's context. Zero means no bound.
func (p *Pool) WithJobTimeout(d time.Duration) *Pool {
	p.jobTimeout = d
	return p
}

// Start starts the workers. Jobs run under ctx; cancelling it aborts them.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(ctx, id, job)
		case <-p.quit:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pool) run(ctx context.Context, id int, job Job) {
	name := JobName(job)
	ctx = logger.With(ctx, "job", name, "worker", id)
	if p.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.jobTimeout)
		defer cancel()
	}

	log := logger.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error(LogMsgWorkerJobPanicked, "panic", r)
		}
	}()

	start := time.Now()
	if err := job.Process(ctx); err != nil {
		log.Error(LogMsgWorkerJobFailed, "error", err, "duration", time.Since(start))
		return
	}
	log.Debug(LogMsgWorkerJobDone, "duration", time.Since(start))
}

// Enqueue adds a job to the queue, blocking while it is full.
// It fails once ctx is done or the pool is stopped.
func (p *Pool) Enqueue(ctx context.Context, job Job) error {
	select {
	case p.jobQueue <- job:
		return nil
	case <-p.quit:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryEnqueue adds a job without blocking and reports whether it was queued
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// Stop stops the workers and waits for in-flight jobs to finish. Queued jobs are dropped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
