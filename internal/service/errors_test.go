package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskServiceError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, NewTaskServiceError("op", "msg", nil))
	})

	t.Run("validation errors pass through", func(t *testing.T) {
		verr := domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyTaskTitle)
		assert.Same(t, verr, NewTaskServiceError("op", "msg", verr))
	})

	t.Run("not found becomes sentinel", func(t *testing.T) {
		err := NewTaskServiceError("op", "msg", store.NewStoreError("task", "get", "missing", store.ErrTaskNotFound))
		assert.Equal(t, ErrTaskNotFound, err)
	})

	t.Run("constraint violation becomes integrity", func(t *testing.T) {
		cause := fmt.Errorf("%w: check failed", store.ErrInvalidEntity)
		err := NewTaskServiceError("create_task", "failed to save task", cause)

		var serviceErr *TaskServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "create_task", serviceErr.Operation)
		assert.ErrorIs(t, err, ErrIntegrity)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.NotErrorIs(t, err, ErrStorage)
	})

	t.Run("duplicate becomes integrity", func(t *testing.T) {
		err := NewTaskServiceError("op", "msg", store.ErrDuplicate)
		assert.ErrorIs(t, err, ErrIntegrity)
	})

	t.Run("anything else becomes storage", func(t *testing.T) {
		err := NewTaskServiceError("op", "msg", errors.New("disk full"))
		assert.ErrorIs(t, err, ErrStorage)
		assert.Contains(t, err.Error(), "task service op failed: msg")
	})

	t.Run("already classified errors are not rewrapped", func(t *testing.T) {
		first := NewTaskServiceError("inner", "msg", errors.New("x"))
		assert.Same(t, first, NewTaskServiceError("outer", "msg", first))
	})
}

func TestTaskServiceError_ErrorWithoutCause(t *testing.T) {
	err := &TaskServiceError{Operation: "create_service", Message: "task store cannot be nil"}
	assert.Equal(t, "task service create_service failed: task store cannot be nil", err.Error())
	assert.Nil(t, err.Unwrap())
}
