package vehicles

// Log messages
const (
	LogMsgRentalSyncStarting = "Rental vehicle sync starting"
	LogMsgRentalFetched      = "Rental vehicles fetched"
	LogMsgRentalSyncFinished = "Rental vehicle sync finished"
	LogMsgCleanupFailed      = "Vehicle orphan cleanup failed"
	LogMsgImportStarting     = "Wincpl import starting"
	LogMsgImportItemFailed   = "Wincpl item failed"
	LogMsgImportFinished     = "Wincpl import finished"
	LogMsgVehicleDeleteSkip  = "Wincpl vehicle deletion ignored, vehicles are only removed by rental cleanup"
	LogMsgPublishFailed      = "Failed to publish import event"
)

// Metric label values for Wincpl item types
const (
	metricTypeVehicle = "vehicule"
	metricTypeAbsence = "absence"
	metricTypeFile    = "file"
)
