package services

import (
	"context"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
)

// SessionSvc manages login sessions.
type SessionSvc interface {
	// Login matches the credential table and opens a session.
	// Returns apperrors.ErrInvalidCredentials on any mismatch.
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)

	// Logout closes the session. Unknown ids are ignored.
	Logout(ctx context.Context, sessionID string) error

	// Authenticate validates a bearer token and returns the session behind it.
	// Returns apperrors.ErrUnauthorized when the token is invalid or the session is gone.
	Authenticate(ctx context.Context, token string) (*domain.Session, error)

	// Resolve returns the live session with the given id. Expired sessions are
	// treated as absent and yield apperrors.ErrNotFound.
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)

	// Restore loads persisted sessions. Malformed snapshots are treated as empty.
	Restore(ctx context.Context) error

	// Ready reports whether restoring sessions has finished.
	Ready() bool
}

// AuthorizationSvc is the navigation gate.
type AuthorizationSvc interface {
	// CanAccess reports whether identity may open route.
	CanAccess(route string, identity *domain.Identity) bool

	// Navigate decides what the dashboard should do for a navigation to target.
	Navigate(ctx context.Context, target string, identity *domain.Identity) domain.NavigationDecision
}
