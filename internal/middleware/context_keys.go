package middleware

import (
	"context"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// sessionKey is the key used to store the authenticated session.
const sessionKey = contextKey("session")

// WithSession returns a copy of ctx carrying the authenticated session.
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromCtx returns the session stored by the auth middleware.
func SessionFromCtx(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*domain.Session)
	return session, ok && session != nil
}

// GetSessionFromContext retrieves the authenticated session from the request context.
func GetSessionFromContext(c *gin.Context) (*domain.Session, bool) {
	return SessionFromCtx(c.Request.Context())
}

// GetIdentityFromContext retrieves the authenticated identity.
// It returns the identity and a boolean indicating if it was found.
func GetIdentityFromContext(c *gin.Context) (*domain.Identity, bool) {
	session, ok := GetSessionFromContext(c)
	if !ok {
		return nil, false
	}
	identity := session.Identity
	return &identity, true
}

// GetUserIDFromContext retrieves the authenticated identity id.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	identity, ok := GetIdentityFromContext(c)
	if !ok {
		return "", false
	}
	return identity.ID, true
}
