package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/application/service"
)

// CreateRequisitionRequest is the draft requisition payload.
type CreateRequisitionRequest struct {
	Payee    string `json:"payee" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required"`
	Details  string `json:"details" binding:"required"`
	Customer string `json:"customer"`
	Code     string `json:"code"`
}

// NotesRequest carries the optional or mandatory reviewer notes of a
// workflow action.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// ListRequisitionsRequest holds the requisition list query parameters.
type ListRequisitionsRequest struct {
	pagination
	Status     string `form:"status"`
	Department string `form:"department"`
}

// CreateRequisition handles POST /api/v1/requisitions
func (h *Handlers) CreateRequisition(c *gin.Context) {
	var req CreateRequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.respondBadRequest(c, "invalid amount")
		return
	}

	requisition, err := h.services.Requisition.Create(c.Request.Context(), principalFrom(c), service.CreateRequisitionInput{
		Payee:    req.Payee,
		Amount:   amount,
		Currency: req.Currency,
		Details:  req.Details,
		Customer: req.Customer,
		Code:     req.Code,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: requisition})
}

// GetRequisition handles GET /api/v1/requisitions/:id
func (h *Handlers) GetRequisition(c *gin.Context) {
	requisition, err := h.services.Requisition.Get(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: requisition})
}

// ListRequisitions handles GET /api/v1/requisitions
func (h *Handlers) ListRequisitions(c *gin.Context) {
	var req ListRequisitionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.respondBadRequest(c, "invalid query parameters")
		return
	}
	req.normalize()

	requisitions, total, err := h.services.Requisition.List(c.Request.Context(), principalFrom(c), port.RequisitionFilter{
		Status:     req.Status,
		Department: req.Department,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    ListResponse{Items: requisitions, Total: total},
	})
}

// SubmitRequisition handles POST /api/v1/requisitions/:id/submit
func (h *Handlers) SubmitRequisition(c *gin.Context) {
	requisition, err := h.services.Requisition.Submit(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: requisition})
}

// ApproveRequisition handles POST /api/v1/requisitions/:id/approve
func (h *Handlers) ApproveRequisition(c *gin.Context) {
	var req NotesRequest
	_ = c.ShouldBindJSON(&req)

	requisition, err := h.services.Requisition.Approve(c.Request.Context(), principalFrom(c), c.Param("id"), req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: requisition})
}

// RejectRequisition handles POST /api/v1/requisitions/:id/reject
func (h *Handlers) RejectRequisition(c *gin.Context) {
	var req NotesRequest
	_ = c.ShouldBindJSON(&req)

	requisition, err := h.services.Requisition.Reject(c.Request.Context(), principalFrom(c), c.Param("id"), req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: requisition})
}

// PayRequisition handles POST /api/v1/requisitions/:id/pay
func (h *Handlers) PayRequisition(c *gin.Context) {
	requisition, err := h.services.Requisition.Pay(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: requisition})
}

// CloseRequisition handles POST /api/v1/requisitions/:id/close
func (h *Handlers) CloseRequisition(c *gin.Context) {
	requisition, err := h.services.Requisition.Close(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: requisition})
}

// ExportRequisitions handles GET /api/v1/requisitions/export
func (h *Handlers) ExportRequisitions(c *gin.Context) {
	var req ListRequisitionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.respondBadRequest(c, "invalid query parameters")
		return
	}

	// The report is unpaged; only the status/department filters apply.
	workbook, err := h.services.Export.RequisitionReport(c.Request.Context(), principalFrom(c), port.RequisitionFilter{
		Status:     req.Status,
		Department: req.Department,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("requisitions-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
