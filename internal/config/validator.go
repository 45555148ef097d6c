package config

import (
	"fmt"
	"strings"
)

// ValidateForServer checks the settings the HTTP server cannot start without
func (c *Config) ValidateForServer() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "API_KEY")
	}
	if c.DBHost == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s (must be set)", strings.Join(missing, ", "))
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	if c.EventRetentionDays < 1 {
		return fmt.Errorf("invalid EVENT_RETENTION_DAYS value: %d", c.EventRetentionDays)
	}
	return nil
}

// Warnings returns non-fatal configuration issues worth logging at startup
func (c *Config) Warnings() []string {
	var warnings []string
	if !c.HRConfigured() {
		warnings = append(warnings, "HR source not configured: driver sync will see no employees")
	}
	if !c.MyRentCarConfigured() {
		warnings = append(warnings, "MyRentCar source not configured: vehicle sync will see no vehicles")
	}
	if c.DBPassword == "postgres" && c.Environment == "prod" {
		warnings = append(warnings, "DB_PASSWORD uses the default value in production")
	}
	return warnings
}
