package eventlog

// JSON payload field keys
const (
	PayloadKeyEntityType = "entity_type"
)

// Query limits
const (
	DefaultListLimit     = 50
	MaxListLimit         = 500
	DefaultRetentionDays = 30
)

// Log messages - service events
const (
	LogMsgEventPayloadInvalid = "Event payload is not an object, skipping log"
	LogMsgFailedToLogEvent    = "Failed to log event to database"
	LogMsgEventLogged         = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldRunID         = "run_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retention_days"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deleted_count"
)
