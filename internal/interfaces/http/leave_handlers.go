package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/application/service"
)

// CreateLeaveRequest is the new leave request payload. Dates are
// "2006-01-02" strings.
type CreateLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
}

// ListLeavesRequest holds the leave list query parameters.
type ListLeavesRequest struct {
	pagination
	Status      string `form:"status"`
	LeaveTypeID string `form:"leave_type_id"`
}

// CreateLeave handles POST /api/v1/leaves
func (h *Handlers) CreateLeave(c *gin.Context) {
	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body")
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.respondBadRequest(c, "invalid start_date, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.respondBadRequest(c, "invalid end_date, expected YYYY-MM-DD")
		return
	}

	leave, err := h.services.Leave.Create(c.Request.Context(), principalFrom(c), service.CreateLeaveInput{
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: leave})
}

// GetLeave handles GET /api/v1/leaves/:id
func (h *Handlers) GetLeave(c *gin.Context) {
	leave, err := h.services.Leave.Get(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: leave})
}

// ListLeaves handles GET /api/v1/leaves
func (h *Handlers) ListLeaves(c *gin.Context) {
	var req ListLeavesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.respondBadRequest(c, "invalid query parameters")
		return
	}
	req.normalize()

	leaves, total, err := h.services.Leave.List(c.Request.Context(), principalFrom(c), port.LeaveFilter{
		Status:      req.Status,
		LeaveTypeID: req.LeaveTypeID,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    ListResponse{Items: leaves, Total: total},
	})
}

// ListLeaveTypes handles GET /api/v1/leave-types
func (h *Handlers) ListLeaveTypes(c *gin.Context) {
	types, err := h.services.Leave.ListTypes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: types})
}

// ApproveLeave handles POST /api/v1/leaves/:id/approve
func (h *Handlers) ApproveLeave(c *gin.Context) {
	var req NotesRequest
	_ = c.ShouldBindJSON(&req)

	leave, err := h.services.Leave.Approve(c.Request.Context(), principalFrom(c), c.Param("id"), req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: leave})
}

// RejectLeave handles POST /api/v1/leaves/:id/reject
func (h *Handlers) RejectLeave(c *gin.Context) {
	var req NotesRequest
	_ = c.ShouldBindJSON(&req)

	leave, err := h.services.Leave.Reject(c.Request.Context(), principalFrom(c), c.Param("id"), req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: leave})
}

// CancelLeave handles POST /api/v1/leaves/:id/cancel
func (h *Handlers) CancelLeave(c *gin.Context) {
	leave, err := h.services.Leave.Cancel(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: leave})
}
