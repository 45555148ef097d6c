package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Parameter validation error messages
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidOffset     = "Invalid offset parameter"
	ErrMsgInvalidTeamID     = "Invalid team_id parameter"
	ErrMsgInvalidStatus     = "Invalid status parameter"
	ErrMsgInvalidDataSource = "Invalid source parameter"
	ErrMsgInvalidEntity     = "Unknown entity type. Valid options: drivers, vehicles, all"

	// Import error messages
	ErrMsgNoImportFiles   = "No files to import"
	ErrMsgTooManyFiles    = "Too many files in one import"
	ErrMsgReadUploadFail  = "Failed to read uploaded file"
	ErrMsgEmptyPatch      = "Patch sets no field"
	ErrMsgUnsupportedType = "Unsupported content type"
)

// Success messages for API responses
const (
	MsgSyncCompleted  = "Sync completed"
	MsgSyncFailed     = "Sync failed"
	MsgImportFinished = "Import finished"
)

// Operation names used in logs
const (
	OpTriggerSync   = "Trigger sync"
	OpSyncStatus    = "Sync status"
	OpSyncHistory   = "Sync history"
	OpGetRun        = "Get sync run"
	OpWincplImport  = "Wincpl import"
	OpListDrivers   = "List drivers"
	OpGetDriver     = "Get driver"
	OpPatchDriver   = "Patch driver"
	OpListVehicles  = "List vehicles"
	OpGetVehicle    = "Get vehicle"
	OpPatchVehicle  = "Patch vehicle"
	OpListEvents    = "List events"
	OpCacheStats    = "Cache stats"
	OpRequestFailed = "request failed"
)

// Import limits
const (
	MaxImportFiles     = 200
	MaxImportBodyBytes = 32 << 20
	MaxMultipartMemory = 8 << 20
	ImportFormField    = "files"
)
