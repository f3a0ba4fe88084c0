package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeboard/core/internal/domain/entities"
	"github.com/homeboard/core/internal/infrastructure/logger"
	"github.com/homeboard/core/internal/store"
)

// Request/Response types
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

// DashboardHandler serves the full whitelisted state snapshot, the
// payload a display loads before first render.
type DashboardHandler struct {
	store  *store.Store
	logger *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(st *store.Store, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{store: st, logger: log}
}

// GetDashboard returns the whole dashboard state
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Dashboard())
}

// TaskHandler handles task-related requests
type TaskHandler struct {
	store  *store.Store
	logger *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(st *store.Store, log *logger.Logger) *TaskHandler {
	return &TaskHandler{store: st, logger: log}
}

type createTaskRequest struct {
	Title     string `json:"title" validate:"required"`
	Assignee  string `json:"assignee"`
	Priority  string `json:"priority" validate:"omitempty,oneof=high medium low"`
	Recurring string `json:"recurring" validate:"omitempty,oneof=daily weekly monthly none"`
}

// ListTasks returns all tasks
func (h *TaskHandler) ListTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Tasks())
}

// CreateTask adds a task and returns its id
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := h.store.AddTask(entities.Task{
		Title:     req.Title,
		Assignee:  req.Assignee,
		Priority:  entities.Priority(req.Priority),
		Recurring: entities.Recurring(req.Recurring),
	})

	h.logger.Infow("Task created", "task_id", id, "title", req.Title)
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateTask patches a task. An unknown id is accepted and ignored; the
// display is the only writer, so a stale id is just a modal that
// outlived a delete.
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var patch store.TaskPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid priority")
	}
	if patch.Recurring != nil && !patch.Recurring.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recurrence")
	}

	h.store.UpdateTask(c.Param("id"), patch)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Task updated"})
}

// ToggleTask flips a task's completed flag
func (h *TaskHandler) ToggleTask(c echo.Context) error {
	h.store.ToggleTask(c.Param("id"))
	return c.JSON(http.StatusOK, MessageResponse{Message: "Task toggled"})
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	h.store.DeleteTask(c.Param("id"))
	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}
