package ciutil

import (
	"log/slog"
)

// GetTestDatabaseURL returns the URL of the disposable PostgreSQL database
// used by integration tests, or "" when none is configured. It checks
// SCRY_TEST_DB_URL, then DATABASE_URL, then SCRY_DATABASE_URL.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks([]string{EnvScryTestDBURL, EnvDatabaseURL, EnvScryDatabaseURL}, "", logger)
	if dbURL == "" && IsCI() && logger != nil {
		logger.Warn("running in CI without a test database; PostgreSQL integration tests will be skipped")
	}
	return dbURL
}
