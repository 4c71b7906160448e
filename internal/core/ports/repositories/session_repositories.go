package repositories

import (
	"context"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
)

// CredentialReader looks up the fixed login table.
type CredentialReader interface {
	// FindCredentialByEmail matches email exactly. Returns apperrors.ErrNotFound when absent.
	FindCredentialByEmail(ctx context.Context, email string) (*domain.Credential, error)
}

// SessionReader defines read operations for sessions.
type SessionReader interface {
	// FindSessionByID returns apperrors.ErrNotFound for unknown ids.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.Session, error)
}

// SessionWriter defines write operations for sessions.
type SessionWriter interface {
	SaveSession(ctx context.Context, session domain.Session) error
	// DeleteSession is a no-op for unknown ids.
	DeleteSession(ctx context.Context, sessionID string) error
}

// SessionRestorer loads sessions from the durable snapshot at start.
type SessionRestorer interface {
	// Restore loads the snapshot. On any error the store is left empty but ready.
	Restore(ctx context.Context) (int, error)
	// Ready reports whether Restore has completed.
	Ready() bool
}

// SessionRepositoryFacade combines all session repository interfaces.
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
	SessionRestorer
}
