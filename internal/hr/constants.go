package hr

// Resource paths, relative to the configured base URL
const (
	ResourceEmployees            = "/resources/employees/employees"
	ResourceTeams                = "/resources/teams/teams"
	ResourceMemberships          = "/resources/teams/memberships"
	ResourceFields               = "/resources/custom_fields/fields"
	ResourceFieldValues          = "/resources/custom_fields/values"
	ResourceFieldOptions         = "/resources/custom_fields/options"
	ResourceContractVersions     = "/resources/contracts/contract_versions"
	ResourceCustomResourceValues = "/resources/custom_resources/values"
	ResourceLeaves               = "/resources/timeoff/leaves"
	ResourceLeaveTypes           = "/resources/timeoff/leave_types"
)

// Request constants
const (
	DefaultPageSize = 100
	HeaderAPIKey    = "x-api-key"
	ParamLimit      = "limit"
	ParamPage       = "page"
	ParamFrom       = "from"
	ParamTo         = "to"
	DayLayout       = "2006-01-02"
	SourceLabel     = "hr"
)

// Log messages
const (
	LogMsgModuleUnavailable = "HR module unavailable, treating as empty"
	LogMsgNotConfigured     = "HR source not configured, returning no data"
	LogMsgPageFetched       = "HR page fetched"
	LogMsgRequestFailed     = "HR request failed"
)
