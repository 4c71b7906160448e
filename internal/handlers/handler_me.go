package handlers

import (
	"net/http"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/dto"
	"github.com/SscSPs/access_governance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// meHandler serves the caller's own directory data.
type meHandler struct {
	directoryService portssvc.DirectoryReaderSvc
	requestService   portssvc.AccessRequestReaderSvc
}

func registerMeRoutes(rg *gin.RouterGroup, ds portssvc.DirectoryReaderSvc, rs portssvc.AccessRequestReaderSvc) {
	h := &meHandler{directoryService: ds, requestService: rs}

	me := rg.Group("/me")
	{
		me.GET("/applications", middleware.ForbidRole(domain.RoleAdmin), h.myApplications)
		me.GET("/access-requests", h.myAccessRequests)
	}
}

// myApplications godoc
// @Summary My applications
// @Description Grants held by the caller's directory record. Not available to admins.
// @Tags me
// @Produce json
// @Success 200 {object} dto.ListGrantsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/applications [get]
func (h *meHandler) myApplications(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	if identity.EmployeeID == nil {
		c.JSON(http.StatusOK, dto.ListGrantsResponse{Applications: []dto.GrantResponse{}})
		return
	}

	grants, err := h.directoryService.ListGrants(c.Request.Context(), *identity.EmployeeID)
	if err != nil {
		respondError(c, err, "Failed to list applications")
		return
	}
	c.JSON(http.StatusOK, dto.ListGrantsResponse{Applications: dto.ToGrantResponses(grants)})
}

// myAccessRequests godoc
// @Summary My access requests
// @Tags me
// @Produce json
// @Success 200 {object} dto.ListAccessRequestsResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/access-requests [get]
func (h *meHandler) myAccessRequests(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	if identity.EmployeeID == nil {
		c.JSON(http.StatusOK, dto.ToListAccessRequestsResponse(nil))
		return
	}

	requests, err := h.requestService.ListForEmployee(c.Request.Context(), *identity.EmployeeID)
	if err != nil {
		respondError(c, err, "Failed to list access requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccessRequestsResponse(requests))
}
