package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditSvc
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvc) {
	h := &auditHandler{auditService: auditService}
	rg.GET("/audit-log", h.listAuditLog)
}

// listAuditLog godoc
// @Summary Read the audit log
// @Description Newest first. Pass nextToken from the previous page to continue.
// @Tags audit
// @Produce json
// @Param limit query int false "Page size (default 50, max 500)"
// @Param nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListAuditLogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit-log [get]
func (h *auditHandler) listAuditLog(c *gin.Context) {
	var params dto.ListAuditLogParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.auditService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to read audit log")
		return
	}
	c.JSON(http.StatusOK, resp)
}
