package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// ResponseOption adjusts how RespondWithErrorAndLog records an error.
type ResponseOption func(*errorLogOptions)

type errorLogOptions struct {
	level    slog.Level
	levelSet bool
	attrs    []slog.Attr
}

// WithLogLevel overrides the level chosen from the status code.
func WithLogLevel(level slog.Level) ResponseOption {
	return func(o *errorLogOptions) {
		o.level = level
		o.levelSet = true
	}
}

// WithLogAttrs adds attributes, such as the failed operation or task ID, to
// the error log entry.
func WithLogAttrs(attrs ...slog.Attr) ResponseOption {
	return func(o *errorLogOptions) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// RespondWithJSON writes data as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes an ErrorResponse carrying the request's trace ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		TraceID: GetTraceID(r.Context()),
	})
}

// RespondWithErrorAndLog replies with userMessage only and logs err after
// redaction. The level follows the status unless overridden: ERROR for
// server faults, WARN when the upstream text generator is failing or
// unconfigured (502, 503), DEBUG for client errors.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	o := errorLogOptions{level: levelForStatus(status)}
	for _, opt := range opts {
		opt(&o)
	}

	traceID := GetTraceID(r.Context())
	attrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}
	attrs = append(attrs, o.attrs...)

	logger.FromContext(r.Context()).LogAttrs(r.Context(), o.level, "API error response", attrs...)

	RespondWithJSON(w, r, status, ErrorResponse{Error: userMessage, TraceID: traceID})
}

func levelForStatus(status int) slog.Level {
	switch {
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable:
		return slog.LevelWarn
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
