//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/phrazzld/tasks-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := testdb.OpenPostgres(t)

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, "reset", nil))
	require.NoError(t, Migrate(ctx, db, "up", nil))
	return db
}

func TestIntegration_TaskLifecycle(t *testing.T) {
	db := openTestDB(t)
	s := NewPostgresTaskStore(db, nil)
	ctx := context.Background()

	task := &domain.Task{
		Title:        "Project Alpha Review",
		Description:  "Review the project",
		CreationDate: domain.NewDate(2030, 1, 1),
		DueDate:      domain.NewDate(2030, 1, 10),
		Status:       domain.TaskStatusPending,
	}
	require.NoError(t, s.Create(ctx, task))
	require.NotZero(t, task.ID)

	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)

	got.Status = domain.TaskStatusCompleted
	got.CreationDate = domain.NewDate(1999, 1, 1)
	require.NoError(t, s.Update(ctx, got))

	reloaded, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, reloaded.Status)
	assert.Equal(t, task.CreationDate, reloaded.CreationDate)

	recent, err := s.ListRecentCompleted(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)

	require.NoError(t, s.Delete(ctx, task.ID))
	_, err = s.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestIntegration_CheckConstraint(t *testing.T) {
	db := openTestDB(t)
	s := NewPostgresTaskStore(db, nil)

	err := s.Create(context.Background(), &domain.Task{
		Title:        "Bad status",
		CreationDate: domain.NewDate(2030, 1, 1),
		DueDate:      domain.NewDate(2030, 1, 2),
		Status:       domain.TaskStatus("archived"),
	})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestIntegration_RunInTxRollsBack(t *testing.T) {
	db := openTestDB(t)
	s := NewPostgresTaskStore(db, nil)
	ctx := context.Background()

	err := s.RunInTx(ctx, func(ctx context.Context, tx store.TaskStore) error {
		if err := tx.Create(ctx, &domain.Task{
			Title:        "Temporary",
			CreationDate: domain.NewDate(2030, 1, 1),
			DueDate:      domain.NewDate(2030, 1, 2),
			Status:       domain.TaskStatusPending,
		}); err != nil {
			return err
		}
		return tx.Delete(ctx, 999999)
	})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	titles, err := s.ListTitles(ctx)
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestIntegration_StoreOnExternalTx(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		s := NewPostgresTaskStore(tx, nil)
		require.NoError(t, s.Create(ctx, &domain.Task{
			Title:        "Project Beta Review",
			CreationDate: domain.NewDate(2030, 1, 1),
			DueDate:      domain.NewDate(2030, 1, 2),
			Status:       domain.TaskStatusCompleted,
		}))

		titles, err := s.ListTitles(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Project Beta Review"}, titles)
	})

	titles, err := NewPostgresTaskStore(db, nil).ListTitles(ctx)
	require.NoError(t, err)
	assert.Empty(t, titles)
}
