package testdb

import (
	"os"

	"github.com/phrazzld/tasks-api/internal/redact"
)

// EnvTestDatabaseURL names the variable holding the PostgreSQL URL used by
// integration tests.
const EnvTestDatabaseURL = "TASKS_TEST_DATABASE_URL"

// GetTestDatabaseURL returns the PostgreSQL URL for integration tests, or ""
// when none is configured.
func GetTestDatabaseURL() string {
	return os.Getenv(EnvTestDatabaseURL)
}

// ShouldSkipDatabaseTest reports whether PostgreSQL tests must be skipped.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// maskDatabaseURL hides credentials before a URL is written to test output.
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}
	return redact.String(dbURL)
}
