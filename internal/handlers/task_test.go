package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akankshasoni024/My-Tasks-App/internal/dto"
	"github.com/akankshasoni024/My-Tasks-App/internal/notify"
	"github.com/akankshasoni024/My-Tasks-App/internal/reminder"
	"github.com/akankshasoni024/My-Tasks-App/internal/repo"
	"github.com/akankshasoni024/My-Tasks-App/internal/service"
	"github.com/akankshasoni024/My-Tasks-App/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopNotifier struct{ n int }

func (f *nopNotifier) RequestPermission(ctx context.Context) (bool, error) { return true, nil }

func (f *nopNotifier) ScheduleOneShot(ctx context.Context, p notify.Payload, at time.Time) (string, error) {
	f.n++
	return fmt.Sprintf("h-%d", f.n), nil
}

func (f *nopNotifier) Cancel(ctx context.Context, handle string) {}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New()
	sched := reminder.NewScheduler(st, &nopNotifier{}, zerolog.Nop())
	svc := service.NewTaskService(st, sched, repo.NewMemorySnapshotRepo(), zerolog.Nop())

	r := gin.New()
	h := NewTaskHandler(svc)
	api := r.Group("/api/v1")
	api.POST("/tasks", h.Create)
	api.GET("/tasks", h.List)
	api.GET("/tasks/:id", h.GetByID)
	api.PATCH("/tasks/:id", h.Update)
	api.POST("/tasks/:id/toggle", h.Toggle)
	api.DELETE("/tasks/:id", h.Delete)
	api.DELETE("/tasks/:id/reminder", h.CancelReminder)
	api.POST("/notifications/opened", h.Opened)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTask(t *testing.T, r *gin.Engine, text string) dto.TaskResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks", gin.H{"text": text})
	require.Equal(t, http.StatusCreated, w.Code)
	var task dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func TestCreateAndList(t *testing.T) {
	r := newTestRouter(t)

	created := createTask(t, r, "Buy milk")
	assert.Equal(t, "Buy milk", created.Text)
	assert.Equal(t, "Medium", created.Priority)
	assert.False(t, created.Completed)

	w := doJSON(t, r, http.MethodGet, "/api/v1/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.ListTasksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)
}

func TestCreate_BlankTextIsNoContent(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks", gin.H{"text": "   "})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks", nil)
	var list dto.ListTasksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Items)
}

func TestUpdate_PartialSuccessOnCompletedReminder(t *testing.T) {
	r := newTestRouter(t)
	task := createTask(t, r, "finished work")

	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks/"+task.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/v1/tasks/"+task.ID, gin.H{
		"description": "notes anyway",
		"reminder_at": "23:59",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res dto.EditTaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "notes anyway", res.Task.Description)
	assert.NotEmpty(t, res.ReminderError)
	assert.Nil(t, res.Task.ReminderAt)
}

func TestUpdate_OrderReflectsPriority(t *testing.T) {
	r := newTestRouter(t)
	milk := createTask(t, r, "Buy milk")
	dentist := createTask(t, r, "Call dentist")

	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks/"+milk.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPatch, "/api/v1/tasks/"+dentist.ID, gin.H{"priority": "High"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks", nil)
	var list dto.ListTasksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Call dentist", list.Items[0].Text)
	assert.Equal(t, "Buy milk", list.Items[1].Text)
	assert.True(t, list.Items[1].Completed)
}

func TestUpdate_BadPriority(t *testing.T) {
	r := newTestRouter(t)
	task := createTask(t, r, "typo")

	w := doJSON(t, r, http.MethodPatch, "/api/v1/tasks/"+task.ID, gin.H{"priority": "urgent"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate_NotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPatch, "/api/v1/tasks/nope", gin.H{"description": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteThenOpenedNotification(t *testing.T) {
	r := newTestRouter(t)
	task := createTask(t, r, "soon gone")

	w := doJSON(t, r, http.MethodDelete, "/api/v1/tasks/"+task.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/notifications/opened", gin.H{
		"task_id":   task.ID,
		"task_name": task.Text,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestOpenedNotification_ShowsDisplayRecord(t *testing.T) {
	r := newTestRouter(t)
	task := createTask(t, r, "dentist")

	w := doJSON(t, r, http.MethodPost, "/api/v1/notifications/opened", gin.H{"task_id": task.ID})
	require.Equal(t, http.StatusOK, w.Code)

	var rec reminder.Display
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "dentist", rec.Name)
	assert.Equal(t, "Pending", rec.Status)
}

func TestCancelReminder(t *testing.T) {
	r := newTestRouter(t)
	task := createTask(t, r, "with reminder")

	w := doJSON(t, r, http.MethodPatch, "/api/v1/tasks/"+task.ID, gin.H{"reminder_at": "23:59"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/tasks/"+task.ID+"/reminder", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks/"+task.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Nil(t, got.ReminderAt)
}
