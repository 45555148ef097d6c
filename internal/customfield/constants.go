package customfield

// Log messages
const (
	LogMsgUnresolved    = "Custom field slugs unresolved, values left empty"
	LogMsgTablesLoaded  = "Resolver tables loaded"
	LogMsgFieldResolved = "Custom field resolved"
)

// Owner type tag fragments, matched on the folded valuable_type
const (
	tagDocument       = "document"
	tagContract       = "contractversion"
	tagCustomResource = "customresource"
	tagEmployee       = "employee"
)

// Field type fragments, matched on the folded field_type
const (
	typeChoice = "choice"
	typeSelect = "select"
	typeDate   = "date"
)
