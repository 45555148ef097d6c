package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Driver Cache
const (
	ErrMsgFailedToGetDriver      = "failed to get driver"
	ErrMsgFailedToListDrivers    = "failed to list drivers"
	ErrMsgFailedToInsertDriver   = "failed to insert driver"
	ErrMsgFailedToUpdateDriver   = "failed to update driver"
	ErrMsgFailedToDeleteDrivers  = "failed to delete drivers"
	ErrMsgFailedToListDriverIDs  = "failed to list driver external ids"
	ErrMsgFailedToEncodeCustom   = "failed to encode custom fields"
	ErrMsgFailedToDecodeCustom   = "failed to decode custom fields"
	ErrMsgFailedToGetVehicle     = "failed to get vehicle"
	ErrMsgFailedToListVehicles   = "failed to list vehicles"
	ErrMsgFailedToInsertVehicle  = "failed to insert vehicle"
	ErrMsgFailedToUpdateVehicle  = "failed to update vehicle"
	ErrMsgFailedToDeleteVehicles = "failed to delete vehicles"
	ErrMsgFailedToListVehicleIDs = "failed to list rental vehicle ids"
	ErrMsgFailedToEncodeAttrs    = "failed to encode vehicle attributes"
	ErrMsgFailedToDecodeAttrs    = "failed to decode vehicle attributes"
	ErrMsgFailedToCreateRun      = "failed to create sync run"
	ErrMsgFailedToFinishRun      = "failed to finish sync run"
	ErrMsgFailedToGetRun         = "failed to get sync run"
	ErrMsgFailedToListRuns       = "failed to list sync runs"
	ErrMsgFailedToLogEvent       = "failed to log event"
	ErrMsgFailedToListEvents     = "failed to list events"
	ErrMsgFailedToCleanupEvents  = "failed to clean up events"
	ErrMsgFailedToBeginTx        = "failed to begin transaction"
	ErrMsgFailedToCommitTx       = "failed to commit transaction"
)

// Default listing page size when a filter sets none
const DefaultListLimit = 100
