package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/application/service"
)

// CreateTaskRequest is the new task payload.
type CreateTaskRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	AssignedToID string `json:"assigned_to_id" binding:"required"`
	DueDate      string `json:"due_date"`
}

// UpdateTaskStatusRequest carries the target task status.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReassignTaskRequest carries the new assignee.
type ReassignTaskRequest struct {
	AssignedToID string `json:"assigned_to_id" binding:"required"`
}

// ListTasksRequest holds the task list query parameters.
type ListTasksRequest struct {
	pagination
	Status      string `form:"status"`
	CreatedByID string `form:"created_by_id"`
}

// CreateTask handles POST /api/v1/tasks
func (h *Handlers) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body")
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			h.respondBadRequest(c, "invalid due_date, expected YYYY-MM-DD")
			return
		}
		dueDate = &parsed
	}

	task, err := h.services.Task.Create(c.Request.Context(), principalFrom(c), service.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
		DueDate:      dueDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: task})
}

// GetTask handles GET /api/v1/tasks/:id
func (h *Handlers) GetTask(c *gin.Context) {
	task, err := h.services.Task.Get(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: task})
}

// ListTasks handles GET /api/v1/tasks
func (h *Handlers) ListTasks(c *gin.Context) {
	var req ListTasksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.respondBadRequest(c, "invalid query parameters")
		return
	}
	req.normalize()

	tasks, err := h.services.Task.List(c.Request.Context(), principalFrom(c), port.TaskFilter{
		Status:      req.Status,
		CreatedByID: req.CreatedByID,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: tasks})
}

// UpdateTaskStatus handles POST /api/v1/tasks/:id/status
func (h *Handlers) UpdateTaskStatus(c *gin.Context) {
	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body")
		return
	}

	task, err := h.services.Task.UpdateStatus(c.Request.Context(), principalFrom(c), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: task})
}

// ReassignTask handles POST /api/v1/tasks/:id/assign
func (h *Handlers) ReassignTask(c *gin.Context) {
	var req ReassignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body")
		return
	}

	task, err := h.services.Task.Reassign(c.Request.Context(), principalFrom(c), c.Param("id"), req.AssignedToID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: task})
}
