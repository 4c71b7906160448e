package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/access_governance_app/cmd/docs"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/middleware"
	"github.com/SscSPs/access_governance_app/internal/platform/config"
	"github.com/SscSPs/access_governance_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}

	v1 := r.Group("/api/v1")

	// Session routes carry their own authentication
	registerSessionRoutes(v1, loginLimiter, service.Session, service.Authorization)

	authed := v1.Group("", middleware.AuthMiddleware(service.Session))
	registerMeRoutes(authed, service.Directory, service.AccessRequest)
	registerCatalogRoutes(authed, service.Directory)
	registerAccessRequestRoutes(authed, service.AccessRequest)

	admin := authed.Group("", middleware.RequireRole(domain.RoleAdmin))
	registerEmployeeRoutes(admin, service.Directory)
	registerAuditRoutes(admin, service.Audit)
	registerSpendRoutes(admin, service.Spend, service.Compliance)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
