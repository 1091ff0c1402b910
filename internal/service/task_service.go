package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// ListTasks returns the tasks matching q. The result is never nil.
	ListTasks(ctx context.Context, q domain.TaskQuery) ([]*domain.Task, error)

	// GetTask retrieves a task by its ID
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// CreateTask validates in and persists a new task
	CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error)

	// UpdateTask applies the set fields of patch to an existing task
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask permanently removes a task
	DeleteTask(ctx context.Context, id int64) error
}

// Option configures a task service.
type Option func(*taskServiceImpl)

// WithClock sets the function used to determine the current date.
func WithClock(now func() time.Time) Option {
	return func(s *taskServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskService creates a new TaskService.
// It returns an error if the store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger, opts ...Option) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "task store cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With("component", "task_service"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *taskServiceImpl) today() domain.Date {
	return domain.DateOf(s.now())
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, q domain.TaskQuery) ([]*domain.Task, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx, q)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks", "error", err)
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
				"error", err,
				"task_id", id)
		}
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// CreateTask implements TaskService.CreateTask
// Validation happens before the transaction starts.
func (s *taskServiceImpl) CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(in, s.today())
	if err != nil {
		log.Debug("task validation failed", "error", err)
		return nil, err
	}

	err = s.tasks.RunInTx(ctx, func(ctx context.Context, tx store.TaskStore) error {
		return tx.Create(ctx, task)
	})
	if err != nil {
		log.Error("failed to create task", "error", err, "title", task.Title)
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", "task_id", task.ID, "status", string(task.Status))
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
// Fields absent from patch keep their stored values. An empty patch returns
// the task unchanged.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	today := s.today()

	if err := patch.Validate(today); err != nil {
		log.Debug("task patch validation failed", "error", err, "task_id", id)
		return nil, err
	}
	if patch.IsEmpty() {
		return s.GetTask(ctx, id)
	}

	var updated *domain.Task
	err := s.tasks.RunInTx(ctx, func(ctx context.Context, tx store.TaskStore) error {
		task, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := task.Apply(patch, today); err != nil {
			return err
		}
		if err := tx.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) && !store.IsNotFoundError(err) {
			log.Error("failed to update task", "error", err, "task_id", id)
		}
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", "task_id", id)
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.tasks.RunInTx(ctx, func(ctx context.Context, tx store.TaskStore) error {
		return tx.Delete(ctx, id)
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete task", "error", err, "task_id", id)
		}
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", "task_id", id)
	return nil
}
