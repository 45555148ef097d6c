package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for authentication
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int
	DBMaxIdle  time.Duration
	DBMaxLife  time.Duration

	HRBaseURL string
	HRAPIKey  string

	MyRentCarBaseURL  string
	MyRentCarUsername string
	MyRentCarPassword string

	HTTPTimeout    time.Duration
	SyncInterval   time.Duration
	ResolverTables string // optional YAML file overriding the embedded resolver tables

	CORSOrigins    []string
	TrustedProxies []string
	RateLimit      int
	CacheSize      int
	CacheTTL       time.Duration

	EventRetentionDays int
}

// Load loads the configuration from environment variables, an optional .env file
// and an optional YAML config file named by FLEETSYNC_CONFIG.
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path := os.Getenv(EnvConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		APIKey:      v.GetString(KeyAPIKey),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		Environment: v.GetString(KeyEnvironment),
		ServiceName: v.GetString(KeyServiceName),
		Version:     v.GetString(KeyVersion),

		DBUser:     v.GetString(KeyDBUser),
		DBPassword: v.GetString(KeyDBPassword),
		DBHost:     v.GetString(KeyDBHost),
		DBPort:     v.GetString(KeyDBPort),
		DBName:     v.GetString(KeyDBName),

		HRBaseURL: strings.TrimRight(v.GetString(KeyHRBaseURL), "/"),
		HRAPIKey:  v.GetString(KeyHRAPIKey),

		MyRentCarBaseURL:  strings.TrimRight(v.GetString(KeyMyRentCarBaseURL), "/"),
		MyRentCarUsername: v.GetString(KeyMyRentCarUsername),
		MyRentCarPassword: v.GetString(KeyMyRentCarPassword),

		ResolverTables: v.GetString(KeyResolverTables),
		CORSOrigins:    splitList(v.GetString(KeyCORSOrigins)),
		TrustedProxies: splitList(v.GetString(KeyTrustedProxies)),
	}

	var err error
	if cfg.Port, err = parseInt(v, KeyPort); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = parseInt(v, KeyDBMaxConns); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = parseInt(v, KeyCacheSize); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = parseInt(v, KeyRateLimit); err != nil {
		return nil, err
	}
	if cfg.EventRetentionDays, err = parseInt(v, KeyEventRetentionDays); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdle, err = parseDuration(v, KeyDBMaxIdle); err != nil {
		return nil, err
	}
	if cfg.DBMaxLife, err = parseDuration(v, KeyDBMaxLife); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = parseDuration(v, KeyHTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.SyncInterval, err = parseDuration(v, KeySyncInterval); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = parseDuration(v, KeyCacheTTL); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// HRConfigured reports whether HR credentials are present
func (c *Config) HRConfigured() bool {
	return c.HRBaseURL != "" && c.HRAPIKey != ""
}

// MyRentCarConfigured reports whether rental platform credentials are present
func (c *Config) MyRentCarConfigured() bool {
	return c.MyRentCarBaseURL != "" && c.MyRentCarUsername != "" && c.MyRentCarPassword != ""
}

func parseInt(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", strings.ToUpper(key), err)
	}
	return n, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", strings.ToUpper(key), err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
