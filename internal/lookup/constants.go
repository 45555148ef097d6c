package lookup

// Log messages
const (
	LogMsgCachePurged   = "Lookup cache purged"
	LogMsgPatchApplied  = "Manual fields updated"
	LogMsgPublishFailed = "Failed to publish record patch event"
)
