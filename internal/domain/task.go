package domain

import (
	"errors"
	"fmt"
	"strings"
)

// TaskStatus represents where a task is in its lifecycle.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Common validation errors for Task
var (
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrEmptyTaskDueDate  = errors.New("task due date cannot be empty")
	ErrDueDateInPast     = errors.New("due date cannot be in the past")
	ErrNullTaskField     = errors.New("field cannot be null")
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrInvalidSortOrder  = errors.New("invalid sort order")
)

// Task is the single persisted unit of work.
// ID and CreationDate are assigned by the store and never change afterwards.
type Task struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	CreationDate Date       `json:"creation_date"`
	DueDate      Date       `json:"due_date"`
	Status       TaskStatus `json:"status"`
}

// TaskInput carries the caller-supplied fields of a new task.
// An empty Status means "use the default".
type TaskInput struct {
	Title       string
	Description string
	DueDate     Date
	Status      TaskStatus
}

// TaskPatch carries a partial update. Only fields that are set are applied.
type TaskPatch struct {
	Title       Optional[string]     `json:"title"`
	Description Optional[string]     `json:"description"`
	DueDate     Optional[Date]       `json:"due_date"`
	Status      Optional[TaskStatus] `json:"status"`
}

// NewTask builds a task ready for insertion. The store assigns the ID.
// today is the current calendar date; the due date may not precede it.
func NewTask(in TaskInput, today Date) (*Task, error) {
	status := in.Status
	if status == "" {
		status = TaskStatusPending
	}

	task := &Task{
		Title:        in.Title,
		Description:  in.Description,
		CreationDate: today,
		DueDate:      in.DueDate,
		Status:       status,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateDueDate(task.DueDate, today); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the invariants that hold for every stored task.
// The due date is only compared with today at write time, so it is not checked here.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTaskTitle)
	}
	if !t.Status.IsValid() {
		return NewValidationError("status", fmt.Sprintf("must be one of %s", strings.Join(TaskStatusValues(), ", ")), ErrInvalidTaskStatus)
	}
	if t.DueDate.IsZero() {
		return NewValidationError("due_date", "is required", ErrEmptyTaskDueDate)
	}
	return nil
}

// Apply copies the set fields of p onto t. It validates p first and leaves
// t untouched if p is invalid.
func (t *Task) Apply(p TaskPatch, today Date) error {
	if err := p.Validate(today); err != nil {
		return err
	}

	if v, ok := p.Title.Get(); ok {
		t.Title = v
	}
	if v, ok := p.Description.Get(); ok {
		t.Description = v
	}
	if v, ok := p.DueDate.Get(); ok {
		t.DueDate = v
	}
	if v, ok := p.Status.Get(); ok {
		t.Status = v
	}
	return nil
}

// IsEmpty reports whether no field is set.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.IsSet() && !p.Description.IsSet() && !p.DueDate.IsSet() && !p.Status.IsSet()
}

// Validate checks every supplied field. Explicit nulls are rejected because
// no task field is nullable.
func (p TaskPatch) Validate(today Date) error {
	if p.Title.IsNull() {
		return NewValidationError("title", "cannot be null", ErrNullTaskField)
	}
	if p.Description.IsNull() {
		return NewValidationError("description", "cannot be null", ErrNullTaskField)
	}
	if p.DueDate.IsNull() {
		return NewValidationError("due_date", "cannot be null", ErrNullTaskField)
	}
	if p.Status.IsNull() {
		return NewValidationError("status", "cannot be null", ErrNullTaskField)
	}

	if v, ok := p.Title.Get(); ok && strings.TrimSpace(v) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTaskTitle)
	}
	if v, ok := p.Status.Get(); ok && !v.IsValid() {
		return NewValidationError("status", fmt.Sprintf("must be one of %s", strings.Join(TaskStatusValues(), ", ")), ErrInvalidTaskStatus)
	}
	if v, ok := p.DueDate.Get(); ok {
		if err := ValidateDueDate(v, today); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDueDate rejects a due date earlier than today. Today itself is allowed.
func ValidateDueDate(due, today Date) error {
	if due.IsZero() {
		return NewValidationError("due_date", "is required", ErrEmptyTaskDueDate)
	}
	if due.Before(today) {
		return NewValidationError("due_date", "cannot be in the past", ErrDueDateInPast)
	}
	return nil
}

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// ParseTaskStatus converts a string to a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", NewValidationError("status", fmt.Sprintf("must be one of %s", strings.Join(TaskStatusValues(), ", ")), ErrInvalidTaskStatus)
	}
	return status, nil
}

// TaskStatusValues lists the valid statuses in lifecycle order.
func TaskStatusValues() []string {
	return []string{
		string(TaskStatusPending),
		string(TaskStatusInProgress),
		string(TaskStatusCompleted),
	}
}
