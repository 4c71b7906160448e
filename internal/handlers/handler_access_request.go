package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/dto"
	"github.com/SscSPs/access_governance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accessRequestHandler handles HTTP requests for the access request ledger.
type accessRequestHandler struct {
	requestService portssvc.AccessRequestSvcFacade
}

// newAccessRequestHandler creates a new accessRequestHandler.
func newAccessRequestHandler(rs portssvc.AccessRequestSvcFacade) *accessRequestHandler {
	return &accessRequestHandler{requestService: rs}
}

// registerAccessRequestRoutes registers the ledger routes. Submitting is open to
// every authenticated identity; reading the ledger and deciding require admin.
func registerAccessRequestRoutes(rg *gin.RouterGroup, requestService portssvc.AccessRequestSvcFacade) {
	h := newAccessRequestHandler(requestService)
	admin := middleware.RequireRole(domain.RoleAdmin)

	requests := rg.Group("/access-requests")
	{
		requests.POST("", h.submitAccessRequest)
		requests.GET("", admin, h.listAccessRequests)
		requests.POST("/:requestID/decision", admin, h.decideAccessRequest)
	}
}

// listAccessRequests godoc
// @Summary List access requests
// @Description Newest first. status selects all, pending or processed requests.
// @Tags access-requests
// @Produce json
// @Param status query string false "all, pending or processed" Enums(all, pending, processed)
// @Success 200 {object} dto.ListAccessRequestsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /access-requests [get]
func (h *accessRequestHandler) listAccessRequests(c *gin.Context) {
	var params dto.ListAccessRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	requests, err := h.requestService.ListAccessRequests(c.Request.Context(), domain.AccessRequestView(params.Status))
	if err != nil {
		respondError(c, err, "Failed to list access requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccessRequestsResponse(requests))
}

// submitAccessRequest godoc
// @Summary Request application access
// @Description Files a pending request on behalf of the caller's directory record.
// @Tags access-requests
// @Accept json
// @Produce json
// @Param request body dto.SubmitAccessRequest true "Requested access"
// @Success 201 {object} dto.AccessRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown application"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /access-requests [post]
func (h *accessRequestHandler) submitAccessRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.SubmitAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitAccessRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.requestService.Submit(c.Request.Context(), *identity, req)
	if err != nil {
		respondError(c, err, "Application not found")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccessRequestResponse(created))
}

// decideAccessRequest godoc
// @Summary Approve or deny a request
// @Description Applies the decision exactly once. Replaying a decision is a conflict.
// @Tags access-requests
// @Accept json
// @Produce json
// @Param requestID path string true "Access request ID"
// @Param decision body dto.DecideAccessRequest true "Decision"
// @Success 200 {object} dto.AccessRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already decided"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /access-requests/{requestID}/decision [post]
func (h *accessRequestHandler) decideAccessRequest(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.DecideAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	decided, err := h.requestService.Decide(c.Request.Context(), *identity, c.Param("requestID"), req)
	if err != nil {
		respondError(c, err, "Access request not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccessRequestResponse(decided))
}
