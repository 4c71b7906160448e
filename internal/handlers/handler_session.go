package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/dto"
	"github.com/SscSPs/access_governance_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// sessionHandler handles login, logout and the navigation gate.
type sessionHandler struct {
	sessionService portssvc.SessionSvc
	authzService   portssvc.AuthorizationSvc
}

func newSessionHandler(ss portssvc.SessionSvc, as portssvc.AuthorizationSvc) *sessionHandler {
	return &sessionHandler{sessionService: ss, authzService: as}
}

// registerSessionRoutes sets up the session routes. Login is rate limited per client IP.
func registerSessionRoutes(rg *gin.RouterGroup, loginLimiter *limiter.Limiter, ss portssvc.SessionSvc, as portssvc.AuthorizationSvc) {
	h := newSessionHandler(ss, as)

	session := rg.Group("/session")
	{
		session.POST("", middleware.RateLimit(loginLimiter), h.login)
		session.GET("", middleware.AuthMiddleware(ss), h.currentSession)
		session.DELETE("", middleware.AuthMiddleware(ss), h.logout)
	}
	rg.GET("/navigation", middleware.OptionalAuthMiddleware(ss), h.navigate)
}

// login godoc
// @Summary Log in
// @Description Matches the credential table and opens a session. Returns a bearer token.
// @Tags session
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /session [post]
func (h *sessionHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.sessionService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoginResponse(result))
}

// currentSession godoc
// @Summary Current identity
// @Description Returns the identity behind the bearer token.
// @Tags session
// @Produce json
// @Success 200 {object} dto.IdentityResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /session [get]
func (h *sessionHandler) currentSession(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToIdentityResponse(*identity))
}

// logout godoc
// @Summary Log out
// @Description Closes the current session. The token stops working immediately.
// @Tags session
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /session [delete]
func (h *sessionHandler) logout(c *gin.Context) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if err := h.sessionService.Logout(c.Request.Context(), session.ID); err != nil {
		respondError(c, err, "Failed to log out")
		return
	}
	c.Status(http.StatusNoContent)
}

// navigate godoc
// @Summary Navigation gate
// @Description Decides whether the dashboard may render target for the caller. A missing token means unauthenticated.
// @Tags session
// @Produce json
// @Param target query string false "Dashboard route, defaults to /"
// @Success 200 {object} domain.NavigationDecision
// @Failure 400 {object} ErrorResponse
// @Router /navigation [get]
func (h *sessionHandler) navigate(c *gin.Context) {
	var params dto.NavigationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	identity, _ := middleware.GetIdentityFromContext(c)
	decision := h.authzService.Navigate(c.Request.Context(), params.Target, identity)
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Navigation decided",
		slog.String("target", decision.Target), slog.String("state", string(decision.State)))
	c.JSON(http.StatusOK, decision)
}
