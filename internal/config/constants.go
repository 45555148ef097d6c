package config

// EnvConfigFile names the optional YAML config file
const EnvConfigFile = "FLEETSYNC_CONFIG"

// Configuration keys. Viper maps each key to the upper-cased environment variable.
const (
	KeyPort        = "port"
	KeyAPIKey      = "api_key"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeyEnvironment = "environment"
	KeyServiceName = "service_name"
	KeyVersion     = "version"

	KeyDBUser     = "db_user"
	KeyDBPassword = "db_password"
	KeyDBHost     = "db_host"
	KeyDBPort     = "db_port"
	KeyDBName     = "db_name"
	KeyDBMaxConns = "db_max_conns"
	KeyDBMaxIdle  = "db_max_conn_idle"
	KeyDBMaxLife  = "db_max_conn_lifetime"

	KeyHRBaseURL = "hr_base_url"
	KeyHRAPIKey  = "hr_api_key"

	KeyMyRentCarBaseURL  = "myrentcar_base_url"
	KeyMyRentCarUsername = "myrentcar_username"
	KeyMyRentCarPassword = "myrentcar_password"

	KeyHTTPTimeout    = "http_timeout"
	KeySyncInterval   = "sync_interval"
	KeyResolverTables = "resolver_tables"
	KeyCORSOrigins    = "cors_origins"
	KeyCacheSize      = "cache_size"
	KeyCacheTTL       = "cache_ttl"

	KeyTrustedProxies     = "trusted_proxies"
	KeyRateLimit          = "rate_limit"
	KeyEventRetentionDays = "event_retention_days"
)

var defaults = map[string]string{
	KeyPort:         "8080",
	KeyLogLevel:     "info",
	KeyLogFormat:    "text",
	KeyEnvironment:  "dev",
	KeyServiceName:  "fleetsync",
	KeyVersion:      "dev",
	KeyDBUser:       "postgres",
	KeyDBPassword:   "postgres",
	KeyDBHost:       "localhost",
	KeyDBPort:       "5432",
	KeyDBName:       "fleetsync",
	KeyDBMaxConns:   "10",
	KeyHTTPTimeout:  "30s",
	KeySyncInterval: "0",
	KeyCacheSize:    "1000",
	KeyCacheTTL:     "5m",

	KeyDBMaxIdle:          "5m",
	KeyDBMaxLife:          "1h",
	KeyRateLimit:          "1000",
	KeyEventRetentionDays: "30",
}
