package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/generation"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/phrazzld/tasks-api/internal/suggest"
)

// SuggestionService proposes new task titles
type SuggestionService interface {
	// RuleSuggestions returns the next-stage titles for projects found in
	// existing task titles.
	RuleSuggestions(ctx context.Context) ([]string, error)

	// AISuggestions asks the text generator for titles related to the most
	// recently created completed tasks.
	AISuggestions(ctx context.Context) ([]string, error)
}

// suggestionServiceImpl implements the SuggestionService interface
type suggestionServiceImpl struct {
	tasks     store.TaskStore
	generator generation.Generator
	logger    *slog.Logger
}

// NewSuggestionService creates a new SuggestionService.
// A nil generator disables AI suggestions.
func NewSuggestionService(
	tasks store.TaskStore,
	generator generation.Generator,
	logger *slog.Logger,
) (SuggestionService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "task store cannot be nil",
		}
	}
	if generator == nil {
		generator = generation.Disabled{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &suggestionServiceImpl{
		tasks:     tasks,
		generator: generator,
		logger:    logger.With("component", "suggestion_service"),
	}, nil
}

// RuleSuggestions implements SuggestionService.RuleSuggestions
func (s *suggestionServiceImpl) RuleSuggestions(ctx context.Context) ([]string, error) {
	titles, err := s.tasks.ListTitles(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load task titles", "error", err)
		return nil, NewTaskServiceError("rule_suggestions", "failed to load task titles", err)
	}
	return suggest.FromTitles(titles), nil
}

// AISuggestions implements SuggestionService.AISuggestions
// With no completed tasks there is nothing to relate to, so the generator
// is not called and the result is empty.
func (s *suggestionServiceImpl) AISuggestions(ctx context.Context) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	recent, err := s.tasks.ListRecentCompleted(ctx, suggest.MaxPromptTasks)
	if err != nil {
		log.Error("failed to load completed tasks", "error", err)
		return nil, NewTaskServiceError("ai_suggestions", "failed to load completed tasks", err)
	}
	if len(recent) == 0 {
		return []string{}, nil
	}

	titles := make([]string, 0, len(recent))
	for _, t := range recent {
		titles = append(titles, t.Title)
	}

	prompt := suggest.BuildPrompt(titles)
	outputs, err := s.generator.GenerateTaskIdeas(ctx, prompt)
	if err != nil {
		log.Warn("text generation failed", "error", err)
		return nil, err
	}

	suggestions := suggest.FilterGenerated(outputs, prompt, titles, suggest.MaxGenerated)
	log.Debug("generated suggestions",
		"raw_outputs", len(outputs),
		"accepted", len(suggestions))
	return suggestions, nil
}
