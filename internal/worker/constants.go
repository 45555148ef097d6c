package worker

import "errors"

// ErrPoolStopped is returned when enqueueing on a stopped pool
var ErrPoolStopped = errors.New("worker pool stopped")

// Log messages for worker pool operations
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgWorkerJobDone     = "Worker job done"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
