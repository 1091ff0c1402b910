package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/service"
)

// SuggestionHandler handles the suggestion endpoints.
type SuggestionHandler struct {
	suggestions service.SuggestionService
	logger      *slog.Logger
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(suggestions service.SuggestionService, logger *slog.Logger) *SuggestionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SuggestionHandler{
		suggestions: suggestions,
		logger:      logger.With("component", "suggestion_handler"),
	}
}

// RuleSuggestions handles GET /tasks/suggestions
func (h *SuggestionHandler) RuleSuggestions(w http.ResponseWriter, r *http.Request) {
	out, err := h.suggestions.RuleSuggestions(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// AISuggestions handles GET /tasks/suggestions-ai
func (h *SuggestionHandler) AISuggestions(w http.ResponseWriter, r *http.Request) {
	out, err := h.suggestions.AISuggestions(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
