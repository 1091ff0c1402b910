package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleTask() *domain.Task {
	return &domain.Task{
		ID:           7,
		Title:        "Write report",
		Description:  "Quarterly numbers",
		CreationDate: domain.NewDate(2026, 10, 1),
		DueDate:      domain.NewDate(2026, 12, 1),
		Status:       domain.TaskStatusPending,
	}
}

// newRequest builds a request with the chi id parameter set when id is not empty.
func newRequest(method, target, body, id string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)

		expectedInput := domain.TaskInput{
			Title:       "Write report",
			Description: "Quarterly numbers",
			DueDate:     domain.NewDate(2026, 12, 1),
		}
		svc.On("CreateTask", mock.Anything, expectedInput).Return(sampleTask(), nil)

		rec := httptest.NewRecorder()
		h.CreateTask(rec, newRequest(http.MethodPost, "/tasks/",
			`{"title":"Write report","description":"Quarterly numbers","due_date":"2026-12-01"}`, ""))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got domain.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "2026-10-01", got.CreationDate.String())
		assert.Equal(t, domain.TaskStatusPending, got.Status)
		svc.AssertExpectations(t)
	})

	t.Run("extra fields are ignored", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("CreateTask", mock.Anything, mock.Anything).Return(sampleTask(), nil)

		rec := httptest.NewRecorder()
		h.CreateTask(rec, newRequest(http.MethodPost, "/tasks/",
			`{"title":"x","description":"d","due_date":"2026-12-01","priority":"high"}`, ""))

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("empty description is accepted", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("CreateTask", mock.Anything, mock.MatchedBy(func(in domain.TaskInput) bool {
			return in.Description == "" && in.Status == domain.TaskStatusCompleted
		})).Return(sampleTask(), nil)

		rec := httptest.NewRecorder()
		h.CreateTask(rec, newRequest(http.MethodPost, "/tasks/",
			`{"title":"x","description":"","due_date":"2026-12-01","status":"completed"}`, ""))

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{"empty body", "", "Invalid request format"},
		{"malformed json", `{"title":`, "Invalid request format"},
		{"missing title", `{"description":"d","due_date":"2026-12-01"}`, "Invalid title: required field"},
		{"missing description", `{"title":"x","due_date":"2026-12-01"}`, "Invalid description: required field"},
		{"missing due date", `{"title":"x","description":"d"}`, "Invalid due_date: required field"},
		{"bad due date", `{"title":"x","description":"d","due_date":"12/01/2026"}`, "Invalid due_date: must be a date in YYYY-MM-DD format"},
		{"bad status", `{"title":"x","description":"d","due_date":"2026-12-01","status":"done"}`, "Invalid status: must be one of pending, in_progress, completed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockTaskService)
			h := NewTaskHandler(svc, nil)

			rec := httptest.NewRecorder()
			h.CreateTask(rec, newRequest(http.MethodPost, "/tasks/", tc.body, ""))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.wantMessage, decodeError(t, rec).Error)
			svc.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
		})
	}

	t.Run("past due date from service", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("CreateTask", mock.Anything, mock.Anything).
			Return(nil, domain.NewValidationError("due_date", "cannot be in the past", domain.ErrDueDateInPast))

		rec := httptest.NewRecorder()
		h.CreateTask(rec, newRequest(http.MethodPost, "/tasks/",
			`{"title":"x","description":"d","due_date":"2020-01-01"}`, ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid due_date: cannot be in the past", decodeError(t, rec).Error)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("CreateTask", mock.Anything, mock.Anything).
			Return(nil, service.NewTaskServiceError("create_task", "failed to create task", errors.New("disk full")))

		rec := httptest.NewRecorder()
		h.CreateTask(rec, newRequest(http.MethodPost, "/tasks/",
			`{"title":"x","description":"d","due_date":"2026-12-01"}`, ""))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "An unexpected error occurred", resp.Error)
		assert.NotContains(t, rec.Body.String(), "disk full")
	})
}

func TestTaskHandler_ListTasks(t *testing.T) {
	t.Run("passes parsed query", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)

		svc.On("ListTasks", mock.Anything, mock.MatchedBy(func(q domain.TaskQuery) bool {
			return q.Status != nil && *q.Status == domain.TaskStatusCompleted &&
				q.SortBy == domain.SortByDueDate && q.Descending()
		})).Return([]*domain.Task{sampleTask()}, nil)

		rec := httptest.NewRecorder()
		h.ListTasks(rec, newRequest(http.MethodGet, "/tasks/?status=completed&sort_by=due_date&order=desc", "", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got []domain.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got, 1)
		svc.AssertExpectations(t)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("ListTasks", mock.Anything, domain.TaskQuery{}).Return([]*domain.Task{}, nil)

		rec := httptest.NewRecorder()
		h.ListTasks(rec, newRequest(http.MethodGet, "/tasks/", "", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("invalid query", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)

		rec := httptest.NewRecorder()
		h.ListTasks(rec, newRequest(http.MethodGet, "/tasks/?sort_by=title", "", ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything)
	})
}

func TestTaskHandler_GetTask(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("GetTask", mock.Anything, int64(7)).Return(sampleTask(), nil)

		rec := httptest.NewRecorder()
		h.GetTask(rec, newRequest(http.MethodGet, "/tasks/7", "", "7"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"title":"Write report"`)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("GetTask", mock.Anything, int64(99)).Return(nil, service.ErrTaskNotFound)

		rec := httptest.NewRecorder()
		h.GetTask(rec, newRequest(http.MethodGet, "/tasks/99", "", "99"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Task not found", decodeError(t, rec).Error)
	})

	for _, id := range []string{"abc", "0", "-3"} {
		t.Run("invalid id "+id, func(t *testing.T) {
			svc := new(mockTaskService)
			h := NewTaskHandler(svc, nil)

			rec := httptest.NewRecorder()
			h.GetTask(rec, newRequest(http.MethodGet, "/tasks/"+id, "", id))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "GetTask", mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)

		updated := sampleTask()
		updated.Status = domain.TaskStatusCompleted
		svc.On("UpdateTask", mock.Anything, int64(7), mock.MatchedBy(func(p domain.TaskPatch) bool {
			status, ok := p.Status.Get()
			return ok && status == domain.TaskStatusCompleted && !p.Title.IsSet() && !p.DueDate.IsSet()
		})).Return(updated, nil)

		rec := httptest.NewRecorder()
		h.UpdateTask(rec, newRequest(http.MethodPut, "/tasks/7", `{"status":"completed"}`, "7"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"completed"`)
		svc.AssertExpectations(t)
	})

	t.Run("empty object is forwarded", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("UpdateTask", mock.Anything, int64(7), mock.MatchedBy(func(p domain.TaskPatch) bool {
			return p.IsEmpty()
		})).Return(sampleTask(), nil)

		rec := httptest.NewRecorder()
		h.UpdateTask(rec, newRequest(http.MethodPut, "/tasks/7", `{}`, "7"))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("bad due date format", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)

		rec := httptest.NewRecorder()
		h.UpdateTask(rec, newRequest(http.MethodPut, "/tasks/7", `{"due_date":"tomorrow"}`, "7"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid due_date: must be a date in YYYY-MM-DD format", decodeError(t, rec).Error)
		svc.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("explicit null rejected by service", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("UpdateTask", mock.Anything, int64(7), mock.MatchedBy(func(p domain.TaskPatch) bool {
			return p.Title.IsNull()
		})).Return(nil, domain.NewValidationError("title", "cannot be null", domain.ErrNullTaskField))

		rec := httptest.NewRecorder()
		h.UpdateTask(rec, newRequest(http.MethodPut, "/tasks/7", `{"title":null}`, "7"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid title: cannot be null", decodeError(t, rec).Error)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("UpdateTask", mock.Anything, int64(8), mock.Anything).Return(nil, service.ErrTaskNotFound)

		rec := httptest.NewRecorder()
		h.UpdateTask(rec, newRequest(http.MethodPut, "/tasks/8", `{"title":"x"}`, "8"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("read-only fields ignored", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("UpdateTask", mock.Anything, int64(7), mock.MatchedBy(func(p domain.TaskPatch) bool {
			title, ok := p.Title.Get()
			return ok && title == "x" && !p.DueDate.IsSet()
		})).Return(sampleTask(), nil)

		rec := httptest.NewRecorder()
		h.UpdateTask(rec, newRequest(http.MethodPut, "/tasks/7",
			`{"id":3,"creation_date":"1999-01-01","title":"x"}`, "7"))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("DeleteTask", mock.Anything, int64(7)).Return(nil)

		rec := httptest.NewRecorder()
		h.DeleteTask(rec, newRequest(http.MethodDelete, "/tasks/7", "", "7"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Task with id 7 deleted successfully"}`, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mockTaskService)
		h := NewTaskHandler(svc, nil)
		svc.On("DeleteTask", mock.Anything, int64(7)).Return(service.ErrTaskNotFound)

		rec := httptest.NewRecorder()
		h.DeleteTask(rec, newRequest(http.MethodDelete, "/tasks/7", "", "7"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
