package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Sync metric names
const (
	MetricNameSyncRunsTotal          = "sync_runs_total"
	MetricNameSyncRunDuration        = "sync_run_duration_seconds"
	MetricNameSyncRecordsTotal       = "sync_records_total"
	MetricNameOrphansDeletedTotal    = "orphans_deleted_total"
	MetricNameOrphanBatchFailures    = "orphan_batch_failures_total"
	MetricNameUpstreamRequestsTotal  = "upstream_requests_total"
	MetricNameWincplItemsTotal       = "wincpl_items_total"
	MetricNameUnresolvedCustomFields = "unresolved_custom_fields"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Sync metric help text
const (
	HelpTextSyncRunsTotal          = "Total number of sync runs by terminal status"
	HelpTextSyncRunDuration        = "Sync run duration in seconds"
	HelpTextSyncRecordsTotal       = "Records written by sync runs"
	HelpTextOrphansDeletedTotal    = "Cache records deleted as orphans"
	HelpTextOrphanBatchFailures    = "Orphan delete batches that failed"
	HelpTextUpstreamRequestsTotal  = "Requests made to upstream sources"
	HelpTextWincplItemsTotal       = "Wincpl items processed by type and result"
	HelpTextUnresolvedCustomFields = "Custom field slugs that could not be resolved in the last driver sync"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelEntity = "entity"
	LabelAction = "action"
	LabelSource = "source"
	LabelResult = "result"
)

// Label values
const (
	ActionCreated = "created"
	ActionUpdated = "updated"

	ResultApplied = "applied"
	ResultRemoved = "removed"
	ResultSkipped = "skipped"
	ResultError   = "error"

	StatusTransportError = "transport_error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SyncDurationBuckets covers runs from one second to ten minutes
var SyncDurationBuckets = []float64{1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgMetricsRecorded = "Metrics recorded for event"
	LogMsgPayloadDecode   = "Event payload could not be decoded"
)
