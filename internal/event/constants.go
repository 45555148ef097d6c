package event

// EventSchemaVersion is stamped on every published event
const EventSchemaVersion = "1.0"

// Metadata keys
const (
	MetadataKeyRunID = "run_id"
)

const (
	LogMsgPublishFailed      = "Event publish failed"
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
	ErrMsgDecodePayload      = "failed to decode payload into"
)
