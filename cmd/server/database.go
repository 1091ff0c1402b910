package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/store"
)

// dataStore is an opened task store together with the pool behind it.
type dataStore struct {
	tasks   store.TaskStore
	backend string
	db      *sql.DB
}

// Close releases the underlying connection pool.
func (d *dataStore) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *dataStore) closeWithLog(logger *slog.Logger) {
	if err := d.Close(); err != nil {
		logger.Error("Error closing database connection", "error", err)
	}
}

// openStore opens the backend selected by the URL scheme and, when
// AutoMigrate is set, brings its schema up to date.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*dataStore, error) {
	switch {
	case postgres.IsPostgresURL(cfg.URL):
		db, err := postgres.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, db, "up", logger); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &dataStore{
			tasks:   postgres.NewPostgresTaskStore(db, logger),
			backend: "postgres",
			db:      db,
		}, nil

	case strings.HasPrefix(cfg.URL, sqlite.URLScheme):
		gdb, err := sqlite.Open(cfg.URL)
		if err != nil {
			return nil, err
		}
		db, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite connection pool: %w", err)
		}
		if cfg.AutoMigrate {
			if err := sqlite.Migrate(gdb); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		logger.Info("database connection established",
			slog.String("backend", "sqlite"),
			slog.Int("max_open_conns", 1),
			slog.String("note", "pool settings are ignored for sqlite"))
		return &dataStore{
			tasks:   sqlite.NewTaskStore(gdb, logger),
			backend: "sqlite",
			db:      db,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database url scheme: expected %s, postgres:// or postgresql://", sqlite.URLScheme)
	}
}

// runMigrations runs a migration command against the configured database.
func runMigrations(ctx context.Context, cfg config.DatabaseConfig, command string, logger *slog.Logger) error {
	switch {
	case postgres.IsPostgresURL(cfg.URL):
		db, err := postgres.Open(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing database connection", "error", err)
			}
		}()
		return postgres.Migrate(ctx, db, command, logger)

	case strings.HasPrefix(cfg.URL, sqlite.URLScheme):
		if command != "up" {
			return fmt.Errorf("migration command %q is not supported for sqlite databases", command)
		}
		cfg.AutoMigrate = true
		ds, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer ds.closeWithLog(logger)
		logger.Info("sqlite schema is up to date")
		return nil

	default:
		return fmt.Errorf("unsupported database url scheme: expected %s, postgres:// or postgresql://", sqlite.URLScheme)
	}
}
