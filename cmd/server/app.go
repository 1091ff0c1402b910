package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/generation"
	"github.com/phrazzld/tasks-api/internal/platform/gemini"
	"github.com/phrazzld/tasks-api/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	data   *dataStore

	// Service interfaces
	generator         generation.Generator
	taskService       service.TaskService
	suggestionService service.SuggestionService
}

// newApplication creates a new application instance with all dependencies initialized.
// The data store and generator must be opened before calling it; the
// application owns the data store afterwards and closes it in cleanup.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	data *dataStore,
	generator generation.Generator,
	opts ...service.Option,
) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		data:      data,
		generator: generator,
	}

	var err error
	app.taskService, err = service.NewTaskService(data.tasks, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.suggestionService, err = service.NewSuggestionService(data.tasks, generator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion service: %w", err)
	}

	logger.Info("Application initialized successfully", "backend", data.backend)
	return app, nil
}

// newGenerator returns the Gemini generator when an API key is configured
// and a disabled generator otherwise.
func newGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Generator, error) {
	if !cfg.Enabled() {
		logger.Warn("no Gemini API key configured, AI suggestions are disabled")
		return generation.Disabled{}, nil
	}

	generator, err := gemini.NewGenerator(ctx, logger.With("component", "llm_generator"), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized successfully", "model", cfg.ModelName)
	return generator, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.data != nil {
		app.data.closeWithLog(app.logger)
	}
	app.logger.Info("Application shutdown completed")
}
