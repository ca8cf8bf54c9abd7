package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tinashem/employee-portal/internal/application/port"
)

// ListAuditLogRequest holds the audit ledger query parameters.
type ListAuditLogRequest struct {
	pagination
	ActorID    string `form:"actor_id"`
	EntityType string `form:"entity_type"`
	EntityID   string `form:"entity_id"`
}

// ListPendingUsers handles GET /api/v1/admin/users/pending
func (h *Handlers) ListPendingUsers(c *gin.Context) {
	users, err := h.services.Auth.ListPendingUsers(c.Request.Context(), principalFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: users})
}

// ApproveUser handles POST /api/v1/admin/users/:id/approve
func (h *Handlers) ApproveUser(c *gin.Context) {
	user, err := h.services.Auth.ApproveUser(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: user})
}

// RejectUser handles POST /api/v1/admin/users/:id/reject
func (h *Handlers) RejectUser(c *gin.Context) {
	user, err := h.services.Auth.RejectUser(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: user})
}

// ListAuditLog handles GET /api/v1/admin/audit-log
func (h *Handlers) ListAuditLog(c *gin.Context) {
	var req ListAuditLogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.respondBadRequest(c, "invalid query parameters")
		return
	}
	req.normalize()

	entries, err := h.services.Audit.List(c.Request.Context(), principalFrom(c), port.AuditFilter{
		ActorID:    req.ActorID,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: entries})
}
