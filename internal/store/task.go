package store

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Mutations that must be atomic are run through RunInTx; the TaskStore passed
// to the callback is bound to the transaction and must not escape it.
type TaskStore interface {
	// Create inserts a task and sets its ID from the store.
	// Returns ErrInvalidEntity or ErrDuplicate on constraint violations.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns the tasks matching q. It never returns a nil slice.
	List(ctx context.Context, q domain.TaskQuery) ([]*domain.Task, error)

	// Update writes title, description, due date and status of an existing task.
	// The creation date is never written.
	// Returns ErrTaskNotFound if no row has the task's ID.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// ListTitles returns every task title in ID order.
	ListTitles(ctx context.Context) ([]string, error)

	// ListRecentCompleted returns up to limit completed tasks, newest creation date first.
	ListRecentCompleted(ctx context.Context, limit int) ([]*domain.Task, error)

	// RunInTx runs fn inside a transaction. The transaction is committed if fn
	// returns nil and rolled back if fn returns an error or panics.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx TaskStore) error) error
}
