package drivers

// DefaultLeaveReason is used when neither the leave nor its type carries a name
const DefaultLeaveReason = "Absence"

// Log messages
const (
	LogMsgSyncStarting      = "Driver sync starting"
	LogMsgReferenceFetched  = "HR reference data fetched"
	LogMsgNoDriverTeams     = "No team matches the driver keyword, treating every employee as a driver"
	LogMsgDriverCreated     = "Driver created"
	LogMsgDriverOnLeave     = "Driver marked unavailable from leave"
	LogMsgDriverBackFromOff = "Driver back from leave, marked available"
	LogMsgCleanupFailed     = "Driver orphan cleanup failed"
	LogMsgSyncFinished      = "Driver sync finished"
)
