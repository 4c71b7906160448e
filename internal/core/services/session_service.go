package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/platform/config"
	"github.com/SscSPs/access_governance_app/internal/platform/metrics"
	"github.com/SscSPs/access_governance_app/internal/utils"
	"github.com/google/uuid"
)

type sessionService struct {
	BaseService
	credentials portsrepo.CredentialReader
	sessions    portsrepo.SessionRepositoryFacade

	jwtSecret  string
	jwtIssuer  string
	sessionTTL time.Duration
	loginDelay time.Duration
}

// SessionOption is a functional option for configuring the session service
type SessionOption func(*sessionService)

// WithSessionClock replaces the wall clock, mainly for tests.
func WithSessionClock(clock func() time.Time) SessionOption {
	return func(s *sessionService) {
		s.Clock = clock
	}
}

// WithLoginDelay overrides the configured login delay.
func WithLoginDelay(d time.Duration) SessionOption {
	return func(s *sessionService) {
		s.loginDelay = d
	}
}

// NewSessionService creates the session service using the JWT settings of cfg.
func NewSessionService(cfg *config.Config, credentials portsrepo.CredentialReader, sessions portsrepo.SessionRepositoryFacade, options ...SessionOption) portssvc.SessionSvc {
	svc := &sessionService{
		credentials: credentials,
		sessions:    sessions,
		jwtSecret:   cfg.JWTSecret,
		jwtIssuer:   cfg.JWTIssuer,
		sessionTTL:  cfg.JWTExpiryDuration,
		loginDelay:  cfg.LoginDelay,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SessionSvc = (*sessionService)(nil)

func (s *sessionService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if err := utils.Sleep(ctx, s.loginDelay); err != nil {
		return nil, err
	}

	cred, err := s.credentials.FindCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.LoginAttempts.WithLabelValues("invalid").Inc()
			s.LogInfo(ctx, "Login rejected: unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up credential")
		return nil, fmt.Errorf("failed to look up credential: %w", err)
	}
	if !utils.CheckPasswordHash(password, cred.PasswordHash) {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		s.LogInfo(ctx, "Login rejected: password mismatch", slog.String("user_id", cred.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	now := s.Now()
	session := domain.Session{
		ID:        uuid.NewString(),
		Identity:  cred.Identity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	token, err := utils.GenerateSessionJWT(session.ID, cred.ID, string(cred.Role), s.jwtSecret, s.jwtIssuer, now, session.ExpiresAt)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session token")
		return nil, apperrors.NewAppError(500, "failed to sign session token", err)
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		s.LogError(ctx, err, "Failed to store session")
		return nil, err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.LogInfo(ctx, "Session opened", slog.String("user_id", cred.ID), slog.String("session_id", session.ID))
	return &domain.LoginResult{Token: token, ExpiresAt: session.ExpiresAt, Session: session}, nil
}

func (s *sessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		s.LogError(ctx, err, "Failed to delete session", slog.String("session_id", sessionID))
		return err
	}
	s.LogInfo(ctx, "Session closed", slog.String("session_id", sessionID))
	return nil
}

func (s *sessionService) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.sessions.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.Now()) {
		if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
			s.LogError(ctx, err, "Failed to drop expired session", slog.String("session_id", sessionID))
		}
		return nil, apperrors.ErrNotFound
	}
	return session, nil
}

func (s *sessionService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := utils.ParseSessionJWT(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	session, err := s.Resolve(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: session closed or expired", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if session.Identity.ID != claims.Subject {
		return nil, fmt.Errorf("%w: token subject does not match session", apperrors.ErrUnauthorized)
	}
	return session, nil
}

func (s *sessionService) Restore(ctx context.Context) error {
	n, err := s.sessions.Restore(ctx)
	if err != nil {
		s.LogError(ctx, err, "Session snapshot unusable, starting with no sessions")
		return nil
	}
	s.LogInfo(ctx, "Sessions restored", slog.Int("count", n))
	return nil
}

func (s *sessionService) Ready() bool {
	return s.sessions.Ready()
}
