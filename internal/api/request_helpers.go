package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return id, nil
}

// parseTaskQuery reads the status, due_date, sort_by and order query
// parameters. Empty parameters are treated as absent.
func parseTaskQuery(values url.Values) (domain.TaskQuery, error) {
	var q domain.TaskQuery

	if raw := values.Get("status"); raw != "" {
		status, err := domain.ParseTaskStatus(raw)
		if err != nil {
			return q, err
		}
		q.Status = &status
	}

	if raw := values.Get("due_date"); raw != "" {
		due, err := domain.ParseDate(raw)
		if err != nil {
			return q, domain.NewValidationError("due_date", "must be a date in YYYY-MM-DD format", err)
		}
		q.DueDate = &due
	}

	q.SortBy = domain.SortField(values.Get("sort_by"))
	q.Order = domain.SortOrder(values.Get("order"))

	if err := q.Validate(); err != nil {
		return q, err
	}
	return q, nil
}
