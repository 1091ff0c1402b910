// Package main implements the entry point for the Task Manager API server.
// It exposes task CRUD over HTTP together with rule-based and AI-generated
// task suggestions.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tasks-api",
		Short:         "Task Manager API server",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())

	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [" + strings.Join(postgres.MigrationCommands, "|") + "]",
		Short: "Apply or inspect database migrations",
		Long: `Apply or inspect database migrations.

PostgreSQL databases support every command. SQLite databases are migrated
from the task model and only support "up".`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: postgres.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			cfg, log, err := initializeApp()
			if err != nil {
				return err
			}
			return runMigrations(cmd.Context(), cfg.Database, command, log)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample tasks into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := initializeApp()
			if err != nil {
				return err
			}

			ds, err := openStore(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer ds.closeWithLog(log)

			n, err := seedTasks(cmd.Context(), ds.tasks, domain.DateOf(time.Now()))
			if err != nil {
				return fmt.Errorf("database seeding failed: %w", err)
			}
			if n == 0 {
				log.Info("database already contains data, skipping seeding")
				return nil
			}
			log.Info("database seeded successfully", "tasks", n)
			return nil
		},
	}
}

// runServe starts the server and blocks until SIGINT or SIGTERM.
func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := initializeApp()
	if err != nil {
		return err
	}

	ds, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	generator, err := newGenerator(ctx, cfg.LLM, log)
	if err != nil {
		ds.closeWithLog(log)
		return err
	}

	app, err := newApplication(cfg, log, ds, generator)
	if err != nil {
		ds.closeWithLog(log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"ai_suggestions_enabled", cfg.LLM.Enabled())

	return cfg, log, nil
}
