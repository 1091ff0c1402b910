package testdb

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MemorySQLiteURL is the database URL of a private in-memory SQLite database.
const MemorySQLiteURL = sqlite.URLScheme + ":memory:"

// TestTimeout bounds connection checks made by the helpers.
const TestTimeout = 5 * time.Second

// OpenSQLite opens a migrated in-memory SQLite database that is closed when
// the test finishes.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.Open(MemorySQLiteURL)
	require.NoError(t, err, "failed to open in-memory sqlite database")
	require.NoError(t, sqlite.Migrate(db), "failed to migrate sqlite schema")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// OpenPostgres connects to the database named by TASKS_TEST_DATABASE_URL,
// skipping the test when it is unset. Schema setup is left to the caller.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("%s not set, skipping PostgreSQL test", EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open database %s", maskDatabaseURL(dbURL))
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		t.Fatalf("database %s is unreachable: %v", maskDatabaseURL(dbURL), err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}
