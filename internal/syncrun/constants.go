package syncrun

// History limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// ErrMsgInterrupted is recorded on runs left in_progress by a previous process
const ErrMsgInterrupted = "interrupted: process stopped before the run finished"

// ErrMsgPanic prefixes the error recorded when a pipeline panics
const ErrMsgPanic = "pipeline panicked"

// Log messages
const (
	LogMsgRunStarting       = "Sync run starting"
	LogMsgRunCompleted      = "Sync run completed"
	LogMsgRunFailed         = "Sync run failed"
	LogMsgRunRejected       = "Sync run rejected, another run of this entity is in progress"
	LogMsgFinishFailed      = "Failed to record sync run outcome"
	LogMsgRunPanicked       = "Sync pipeline panicked"
	LogMsgPublishFailed     = "Failed to publish sync run event"
	LogMsgInterruptedRun    = "Marking interrupted sync run as failed"
	LogMsgScheduledSyncDone = "Scheduled sync finished"
)
