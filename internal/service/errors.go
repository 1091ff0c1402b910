package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is to check for them; the API layer maps them to HTTP status codes.
var (
	// ErrTaskNotFound indicates that the task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrIntegrity indicates that the store rejected a write because it
	// violates a constraint. API layer should map this to HTTP 400 Bad Request.
	ErrIntegrity = errors.New("data integrity violation")

	// ErrStorage indicates any other persistence failure.
	// API layer should map this to HTTP 500 Internal Server Error.
	ErrStorage = errors.New("storage failure")
)

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "update_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError classifies err for the caller.
//
// Validation errors and ErrTaskNotFound are returned directly without wrapping.
// Constraint violations are wrapped with ErrIntegrity and everything else with
// ErrStorage. An error that is already a TaskServiceError is returned as is.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	if errors.Is(err, ErrTaskNotFound) || store.IsNotFoundError(err) {
		return ErrTaskNotFound
	}

	var serviceErr *TaskServiceError
	if errors.As(err, &serviceErr) {
		return err
	}

	kind := ErrStorage
	if store.IsIntegrityError(err) {
		kind = ErrIntegrity
	}
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       fmt.Errorf("%w: %w", kind, err),
	}
}
