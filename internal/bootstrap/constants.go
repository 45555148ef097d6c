package bootstrap

import "time"

// =============================================================================
// Background Jobs
// =============================================================================

const (
	// WorkerCount is the number of goroutines draining the job queue
	WorkerCount = 2

	// WorkerQueueSize bounds the jobs waiting for a worker
	WorkerQueueSize = 16

	// JobTimeout caps one background job
	JobTimeout = 15 * time.Minute

	// EventCleanupInterval is how often the event log is pruned
	EventCleanupInterval = 24 * time.Hour
)

// =============================================================================
// Logger Messages
// =============================================================================

const (
	LogMsgStarting            = "Starting FleetSync"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
)

// =============================================================================
// Startup Messages
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgLookupCacheRegistered      = "Lookup cache invalidation registered"
	LogMsgResolverTablesLoaded       = "Resolver tables loaded"
	LogMsgInterruptedRunsFailed      = "Marked interrupted sync runs as failed"
	LogMsgSyncScheduled              = "Scheduled sync"
	LogMsgSyncSchedulingDisabled     = "Scheduled sync disabled"
	LogMsgEventCleanupScheduled      = "Scheduled event log cleanup"

	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
	ErrMsgFailedLoadResolverTables   = "failed to load resolver tables"
	ErrMsgFailedFailInterrupted      = "failed to close interrupted sync runs"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgShuttingDownScheduler = "Stopping scheduler..."
	LogMsgShuttingDownWorkers   = "Draining worker pool..."
	LogMsgClosingDatabase       = "Closing database pool..."
	LogMsgServerStopped         = "Server stopped"
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
)
