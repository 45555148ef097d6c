package myrentcar

// Endpoints, relative to the configured base URL
const (
	PathLogin          = "/api/auth/login"
	PathVehicleIDs     = "/api/vehicles/ids"
	PathVehicleDetails = "/api/vehicles/details"
)

const (
	// DetailBatchSize bounds the number of ids sent per detail request
	DetailBatchSize = 100
	ParamIDs        = "ids"
	SourceLabel     = "myrentcar"
)

// Log messages
const (
	LogMsgNotConfigured     = "MyRentCar source not configured, returning no data"
	LogMsgSessionOpened     = "MyRentCar session opened"
	LogMsgRelogin           = "MyRentCar session rejected, logging in again"
	LogMsgBatchFetched      = "MyRentCar detail batch fetched"
	LogMsgModuleUnavailable = "MyRentCar fleet module unavailable, treating as empty"
)
