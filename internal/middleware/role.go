package middleware

import (
	"net/http"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RequirePolicy aborts with 401 when no session is attached and 403 when the
// identity does not satisfy policy. It must run after AuthMiddleware.
func RequirePolicy(policy domain.RoutePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentityFromContext(c)
		if !ok && !policy.Public {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !policy.Allows(identity) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role policy denied request")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have access to this resource"})
			return
		}
		c.Next()
	}
}

// RequireRole only admits identities carrying role.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return RequirePolicy(domain.RoutePolicy{RequiredRole: &role})
}

// ForbidRole rejects identities carrying role.
func ForbidRole(role domain.Role) gin.HandlerFunc {
	return RequirePolicy(domain.RoutePolicy{ForbiddenRoles: []domain.Role{role}})
}
