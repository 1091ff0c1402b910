package sqlite

import (
	"github.com/phrazzld/tasks-api/internal/domain"
)

// taskRecord is the GORM model of the tasks table.
type taskRecord struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Title        string `gorm:"not null;index"`
	Description  string `gorm:"not null;default:''"`
	CreationDate string `gorm:"type:text;not null;index"`
	DueDate      string `gorm:"type:text;not null;index"`
	Status       string `gorm:"not null;default:'pending';index;check:chk_tasks_status,status IN ('pending','in_progress','completed')"`
}

// TableName returns the table name for taskRecord.
func (taskRecord) TableName() string {
	return "tasks"
}

func toRecord(t *domain.Task) *taskRecord {
	return &taskRecord{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		CreationDate: t.CreationDate.String(),
		DueDate:      t.DueDate.String(),
		Status:       string(t.Status),
	}
}

func (r *taskRecord) toDomain() (*domain.Task, error) {
	created, err := domain.ParseDate(r.CreationDate)
	if err != nil {
		return nil, err
	}
	due, err := domain.ParseDate(r.DueDate)
	if err != nil {
		return nil, err
	}
	return &domain.Task{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		CreationDate: created,
		DueDate:      due,
		Status:       domain.TaskStatus(r.Status),
	}, nil
}
