package api

import (
	"github.com/phrazzld/tasks-api/internal/domain"
)

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description *string `json:"description" validate:"required"`
	DueDate     string  `json:"due_date"    validate:"required,datetime=2006-01-02"`
	Status      string  `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
}

// ToInput converts the request to a domain.TaskInput.
func (r CreateTaskRequest) ToInput() (domain.TaskInput, error) {
	due, err := domain.ParseDate(r.DueDate)
	if err != nil {
		return domain.TaskInput{}, domain.NewValidationError("due_date", "must be a date in YYYY-MM-DD format", err)
	}

	var description string
	if r.Description != nil {
		description = *r.Description
	}

	return domain.TaskInput{
		Title:       r.Title,
		Description: description,
		DueDate:     due,
		Status:      domain.TaskStatus(r.Status),
	}, nil
}

// DeleteTaskResponse is returned after a task was deleted.
type DeleteTaskResponse struct {
	Message string `json:"message"`
}

// WelcomeResponse is returned by the root endpoint.
type WelcomeResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
