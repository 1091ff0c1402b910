package api

import (
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
)

// Welcome handles GET /
func Welcome(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, WelcomeResponse{
		Message: "Welcome to Task Manager API!",
		Status:  "online",
	})
}

// Health handles GET /health
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
