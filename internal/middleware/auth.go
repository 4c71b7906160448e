package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

var errMalformedHeader = errors.New("authorization header format must be Bearer {token}")

// bearerToken extracts the token of an "Authorization: Bearer" header. It
// returns an empty token when the header is absent.
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", nil
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", errMalformedHeader
	}
	return parts[1], nil
}

// authenticate resolves the bearer token into a session and attaches it, and
// an enriched logger, to the request context.
func authenticate(c *gin.Context, sessions portssvc.SessionSvc, tokenString string) error {
	ctx := c.Request.Context()
	session, err := sessions.Authenticate(ctx, tokenString)
	if err != nil {
		return err
	}

	// Add the identity to the logger
	enrichedLogger := GetLoggerFromCtx(ctx).With(
		slog.String("user_id", session.Identity.ID),
		slog.String("role", string(session.Identity.Role)),
	)
	ctx = WithSession(ctx, session)
	ctx = WithLogger(ctx, enrichedLogger)
	c.Request = c.Request.WithContext(ctx)
	c.Set(string(loggerKey), enrichedLogger)
	return nil
}

// AuthMiddleware creates a Gin middleware handler that requires a live session.
func AuthMiddleware(sessions portssvc.SessionSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, err := bearerToken(c)
		if err != nil {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}
		if tokenString == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		if err := authenticate(c, sessions, tokenString); err != nil {
			if errors.Is(err, apperrors.ErrUnauthorized) {
				logger.Warn("Invalid session token", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
				return
			}
			logger.Error("Failed to authenticate session", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Next() // Proceed to the next handler
	}
}

// OptionalAuthMiddleware attaches the session when a valid token is
// presented and lets the request through anonymously otherwise.
func OptionalAuthMiddleware(sessions portssvc.SessionSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err == nil && tokenString != "" {
			if authErr := authenticate(c, sessions, tokenString); authErr != nil {
				GetLoggerFromCtx(c.Request.Context()).Debug("Ignoring invalid optional session", slog.String("error", authErr.Error()))
			}
		}
		c.Next()
	}
}
