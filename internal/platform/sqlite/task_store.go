package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortColumns whitelists the columns a listing may be ordered by.
var sortColumns = map[domain.SortField]string{
	domain.SortByCreationDate: "creation_date",
	domain.SortByDueDate:      "due_date",
}

// TaskStore implements the store.TaskStore interface
// using GORM over SQLite as the storage backend.
type TaskStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a new GORM implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewTaskStore(db *gorm.DB, logger *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rec := toRecord(task)
	rec.ID = 0
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("title", task.Title))
		return store.NewStoreError("task", "create", "insert failed", mapError(err))
	}

	task.ID = rec.ID
	log.Debug("task created", slog.Int64("task_id", task.ID))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rec taskRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "get", "query failed", mapError(err))
	}
	return rec.toDomain()
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, q domain.TaskQuery) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tx := s.db.WithContext(ctx).Model(&taskRecord{})
	if q.Status != nil {
		tx = tx.Where("status = ?", string(*q.Status))
	}
	if q.DueDate != nil {
		tx = tx.Where("due_date = ?", q.DueDate.String())
	}
	if column, ok := sortColumns[q.SortBy]; ok {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: q.Descending()}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: q.Descending()})
	} else {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}

	var recs []taskRecord
	if err := tx.Find(&recs).Error; err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", mapError(err))
	}
	return toDomainSlice(recs)
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rec := toRecord(task)
	result := s.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ?", task.ID).
		Select("title", "description", "due_date", "status").
		Updates(rec)
	if result.Error != nil {
		log.Error("failed to update task",
			slog.String("error", result.Error.Error()),
			slog.Int64("task_id", task.ID))
		return store.NewStoreError("task", "update", "update failed", mapError(result.Error))
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	log.Debug("task updated", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result := s.db.WithContext(ctx).Delete(&taskRecord{}, "id = ?", id)
	if result.Error != nil {
		log.Error("failed to delete task",
			slog.String("error", result.Error.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError("task", "delete", "delete failed", mapError(result.Error))
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	return nil
}

// ListTitles implements store.TaskStore.ListTitles
func (s *TaskStore) ListTitles(ctx context.Context) ([]string, error) {
	titles := []string{}
	err := s.db.WithContext(ctx).
		Model(&taskRecord{}).
		Order("id").
		Pluck("title", &titles).Error
	if err != nil {
		return nil, store.NewStoreError("task", "list_titles", "query failed", mapError(err))
	}
	return titles, nil
}

// ListRecentCompleted implements store.TaskStore.ListRecentCompleted
func (s *TaskStore) ListRecentCompleted(ctx context.Context, limit int) ([]*domain.Task, error) {
	var recs []taskRecord
	err := s.db.WithContext(ctx).
		Where("status = ?", string(domain.TaskStatusCompleted)).
		Order("creation_date DESC").
		Order("id DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, store.NewStoreError("task", "list_recent_completed", "query failed", mapError(err))
	}
	return toDomainSlice(recs)
}

// RunInTx implements store.TaskStore.RunInTx using gorm.DB.Transaction,
// which commits on nil, rolls back on error and rolls back then re-panics on panic.
func (s *TaskStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx store.TaskStore) error) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(ctx, &TaskStore{db: tx, logger: s.logger})
		return fnErr
	})
	if err == nil {
		log.Debug("transaction committed successfully")
		return nil
	}
	if fnErr != nil && errors.Is(err, fnErr) {
		log.Debug("rolled back transaction due to error", slog.String("error", fnErr.Error()))
		return fnErr
	}

	log.Error("transaction failed", slog.String("error", err.Error()))
	return fmt.Errorf("%w: %w", store.ErrTransactionFailed, err)
}

func toDomainSlice(recs []taskRecord) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(recs))
	for i := range recs {
		t, err := recs[i].toDomain()
		if err != nil {
			return nil, store.NewStoreError("task", "decode", "stored row is malformed", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
