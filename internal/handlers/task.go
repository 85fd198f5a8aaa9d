package handlers

import (
	"net/http"

	dom "github.com/akankshasoni024/My-Tasks-App/internal/domain"
	"github.com/akankshasoni024/My-Tasks-App/internal/dto"
	"github.com/akankshasoni024/My-Tasks-App/internal/notify"
	"github.com/akankshasoni024/My-Tasks-App/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary      Add a task
// @Description  Blank or whitespace-only text is silently ignored (204).
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Success      204
// @Failure      400   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, ok := h.svc.AddTask(c.Request.Context(), req.Text)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(t))
}

// List godoc
// @Summary      List tasks in display order
// @Description  Incomplete before completed, then High, Medium, Low.
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  dto.ListTasksResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	list := h.svc.Tasks(c.Request.Context())
	c.JSON(http.StatusOK, dto.ListTasksResponse{Items: tasksToResponses(list)})
}

// GetByID godoc
// @Summary      Get a task by ID
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	t, err := h.svc.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Update godoc
// @Summary      Edit a task
// @Description  Partial update of text, description and priority, plus an
// @Description  optional reminder_at time of day. Field edits commit even when
// @Description  the reminder is refused; the refusal comes back in
// @Description  reminder_error.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  dto.EditTaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := service.EditPatch{
		Text:        req.Text,
		Description: req.Description,
	}
	if req.Priority != nil {
		patch.Priority = req.Priority.Ptr()
	}
	if req.ReminderAt != nil {
		patch.Reminder = req.ReminderAt.Ptr()
	}

	res, err := h.svc.EditTask(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if err == service.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out := dto.EditTaskResponse{Task: taskToResponse(res.Task)}
	if res.ReminderErr != nil {
		out.ReminderError = res.ReminderErr.Error()
	}
	c.JSON(http.StatusOK, out)
}

// Toggle godoc
// @Summary      Toggle task completion
// @Description  Completing a task cancels its pending reminder.
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id}/toggle [post]
func (h *TaskHandler) Toggle(c *gin.Context) {
	t, err := h.svc.ToggleTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task
// @Description  The client confirms with the user first; this endpoint is the
// @Description  confirmed delete. Any pending reminder is cancelled.
// @Tags         tasks
// @Param        id   path  string  true  "Task ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CancelReminder godoc
// @Summary      Cancel a task's reminder
// @Tags         tasks
// @Param        id   path  string  true  "Task ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id}/reminder [delete]
func (h *TaskHandler) CancelReminder(c *gin.Context) {
	if err := h.svc.CancelReminder(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Opened godoc
// @Summary      Resolve a tapped notification
// @Description  Returns the display record for the task a fired reminder
// @Description  points at. 204 when the task no longer exists (deleted after
// @Description  the reminder fired): nothing to show, not an error.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body      dto.OpenedNotificationRequest  true  "Notification payload"
// @Success      200   {object}  reminder.Display
// @Success      204
// @Failure      400   {object}  map[string]string
// @Router       /notifications/opened [post]
func (h *TaskHandler) Opened(c *gin.Context) {
	var req dto.OpenedNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, ok := h.svc.OpenedNotification(notify.Payload{TaskID: req.TaskID, TaskName: req.TaskName})
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		Text:        t.Text,
		Description: t.Description,
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		ReminderAt:  t.ReminderAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tasksToResponses(list []dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}
