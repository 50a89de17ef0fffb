package config

import "time"

// Store backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendFile     = "file"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Store     StoreConfig     `mapstructure:"store"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// RateLimit is the number of requests allowed per client IP per minute.
	// Zero disables rate limiting.
	RateLimit              int `mapstructure:"rate_limit"               validate:"gte=0"`
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend    string `mapstructure:"backend"     validate:"required,oneof=memory sqlite postgres file"`
	SQLitePath string `mapstructure:"sqlite_path" validate:"required_if=Backend sqlite"`
	FilePath   string `mapstructure:"file_path"   validate:"required_if=Backend file"`
	// CacheSizeMB enables a read cache in front of the backend. Zero disables it.
	CacheSizeMB int `mapstructure:"cache_size_mb" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// It is only used by the postgres backend.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains the settings for validating and minting access tokens.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// SchedulerConfig contains review scheduling settings.
type SchedulerConfig struct {
	// Timezone is the IANA name whose calendar days bound due dates and
	// daily statistics.
	Timezone string `mapstructure:"timezone" validate:"required,timezone"`
}

// Location returns the scheduler time zone. It falls back to UTC for names
// that do not load, which validation already rejects.
func (c SchedulerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TokenLifetime returns the access token lifetime as a duration.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// ShutdownTimeout returns the graceful shutdown deadline as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
