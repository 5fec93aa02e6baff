package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/taskscribe-dev/taskscribe/errors"
	taskdto "github.com/taskscribe-dev/taskscribe/internal/adapter/dto/task"
	httpmw "github.com/taskscribe-dev/taskscribe/internal/infrastructure/http/middleware"
	"github.com/taskscribe-dev/taskscribe/internal/usecase/task"
)

// Task handles task HTTP requests
type Task struct {
	svc    task.Service
	logger *zap.Logger
}

// NewTask creates a new task handler
func NewTask(svc task.Service, logger *zap.Logger) *Task {
	return &Task{
		svc:    svc,
		logger: logger,
	}
}

// List returns the tasks visible to the caller
// @Summary      List tasks
// @Description  Employees see their own tasks; managers see all tasks
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  taskdto.ListTasksResponse
// @Failure      401        {object}  map[string]interface{}  "Not authenticated"
// @Router       /tasks [get]
func (h *Task) List(c echo.Context) error {
	user, ok := httpmw.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	page := 1
	pageSize := 20
	var req struct {
		Page     int `query:"page"`
		PageSize int `query:"page_size"`
	}
	if err := c.Bind(&req); err == nil {
		if req.Page >= 1 {
			page = req.Page
		}
		if req.PageSize >= 1 && req.PageSize <= 100 {
			pageSize = req.PageSize
		}
	}

	tasks, err := h.svc.ListForUser(c.Request().Context(), user, pageSize, (page-1)*pageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleJSON(h.logger, c, http.StatusOK, &taskdto.ListTasksResponse{
		Tasks:    tasks,
		Page:     page,
		PageSize: pageSize,
	})
}

// Complete marks the caller's task as completed
// @Summary      Complete task
// @Description  The assignee marks their own task completed
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID (UUID)"
// @Success      200  {object}  taskdto.CompleteTaskResponse
// @Failure      403  {object}  map[string]interface{}  "Caller is not an employee"
// @Failure      404  {object}  map[string]interface{}  "Task not found or not assigned to caller"
// @Router       /tasks/{id}/complete [patch]
func (h *Task) Complete(c echo.Context) error {
	user, ok := httpmw.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Task ID must be a valid UUID"))
	}

	t, err := h.svc.Complete(c.Request().Context(), user, taskID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleJSON(h.logger, c, http.StatusOK, &taskdto.CompleteTaskResponse{
		Message: "Task marked as complete",
		Task:    t,
	})
}
