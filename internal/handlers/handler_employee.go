package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/dto"
	"github.com/SscSPs/access_governance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// employeeHandler handles HTTP requests for the employee directory.
type employeeHandler struct {
	directoryService portssvc.DirectorySvcFacade
}

// newEmployeeHandler creates a new employeeHandler.
func newEmployeeHandler(ds portssvc.DirectorySvcFacade) *employeeHandler {
	return &employeeHandler{directoryService: ds}
}

// registerEmployeeRoutes registers the admin directory routes. rg must already enforce the admin role.
func registerEmployeeRoutes(rg *gin.RouterGroup, directoryService portssvc.DirectorySvcFacade) {
	h := newEmployeeHandler(directoryService)

	employees := rg.Group("/employees")
	{
		employees.GET("", h.listEmployees)
		employees.POST("", h.createEmployee)
		employees.GET("/:employeeID", h.getEmployee)
		employees.POST("/:employeeID/offboard", h.offboardEmployee)
		employees.POST("/:employeeID/role", h.assignRole)
		employees.DELETE("/:employeeID/grants/:applicationID", h.revokeGrant)
	}
	rg.GET("/dashboard/stats", h.dashboardStats)
}

// registerCatalogRoutes registers routes any authenticated identity may read.
func registerCatalogRoutes(rg *gin.RouterGroup, directoryService portssvc.DirectorySvcFacade) {
	h := newEmployeeHandler(directoryService)
	rg.GET("/applications", h.listApplications)
}

// listEmployees godoc
// @Summary Search the directory
// @Description Case-insensitive substring search over name, email, department and title. A newer search by the same identity supersedes this one.
// @Tags employees
// @Produce json
// @Param query query string false "Search text"
// @Success 200 {object} dto.ListEmployeesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Superseded by a newer search"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	var params dto.ListEmployeesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	employees, err := h.directoryService.ListEmployees(c.Request.Context(), *identity, params.Query)
	if err != nil {
		respondError(c, err, "Failed to list employees")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEmployeesResponse(employees))
}

// getEmployee godoc
// @Summary Get employee detail
// @Description Returns the employee with its application grants and profile fields.
// @Tags employees
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} dto.EmployeeDetailResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{employeeID} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	detail, err := h.directoryService.GetEmployeeDetail(c.Request.Context(), c.Param("employeeID"))
	if err != nil {
		respondError(c, err, "Employee not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeDetailResponse(detail))
}

// createEmployee godoc
// @Summary Create an employee
// @Description Adds a directory record in pending status.
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees [post]
func (h *employeeHandler) createEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	employee, err := h.directoryService.CreateEmployee(c.Request.Context(), *identity, req)
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// offboardEmployee godoc
// @Summary Offboard an employee
// @Description Disables the employee and revokes every grant. Offboarding is terminal.
// @Tags employees
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already disabled"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{employeeID}/offboard [post]
func (h *employeeHandler) offboardEmployee(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	employee, err := h.directoryService.OffboardEmployee(c.Request.Context(), *identity, c.Param("employeeID"))
	if err != nil {
		respondError(c, err, "Employee not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// assignRole godoc
// @Summary Change a role label
// @Description Sets the directory role of the employee, or the role of one grant when applicationId is given.
// @Tags employees
// @Accept json
// @Param employeeID path string true "Employee ID"
// @Param role body dto.AssignRoleRequest true "Role change"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{employeeID}/role [post]
func (h *employeeHandler) assignRole(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.directoryService.AssignRole(c.Request.Context(), *identity, c.Param("employeeID"), req); err != nil {
		respondError(c, err, "Employee or grant not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// revokeGrant godoc
// @Summary Revoke application access
// @Tags employees
// @Param employeeID path string true "Employee ID"
// @Param applicationID path string true "Application ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /employees/{employeeID}/grants/{applicationID} [delete]
func (h *employeeHandler) revokeGrant(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	err := h.directoryService.RevokeGrant(c.Request.Context(), *identity, c.Param("employeeID"), c.Param("applicationID"))
	if err != nil {
		respondError(c, err, "Grant not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// dashboardStats godoc
// @Summary Directory statistics
// @Tags employees
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *employeeHandler) dashboardStats(c *gin.Context) {
	stats, err := h.directoryService.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute dashboard statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// listApplications godoc
// @Summary Application catalog
// @Tags applications
// @Produce json
// @Success 200 {object} dto.ListApplicationsResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /applications [get]
func (h *employeeHandler) listApplications(c *gin.Context) {
	apps, err := h.directoryService.ListApplications(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list applications")
		return
	}
	c.JSON(http.StatusOK, dto.ListApplicationsResponse{Applications: apps})
}
