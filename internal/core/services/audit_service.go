package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/dto"
	"github.com/SscSPs/access_governance_app/internal/ids"
	"github.com/SscSPs/access_governance_app/internal/platform/metrics"
	"github.com/SscSPs/access_governance_app/internal/utils/pagination"
)

// DefaultAuditPageSize is used when a listing does not ask for a limit.
const DefaultAuditPageSize = 50

type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

// AuditOption is a functional option for configuring the audit service
type AuditOption func(*auditService)

// WithAuditClock replaces the clock used to stamp entries.
func WithAuditClock(clock func() time.Time) AuditOption {
	return func(s *auditService) {
		s.Clock = clock
	}
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade, options ...AuditOption) portssvc.AuditSvc {
	svc := &auditService{auditRepo: auditRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuditSvc = (*auditService)(nil)

func (s *auditService) Record(ctx context.Context, actor domain.Identity, action domain.AuditAction, target domain.AuditTarget, details string) (*domain.AuditEntry, error) {
	now := s.Now()
	entry := domain.AuditEntry{
		ID:          ids.New(now),
		Timestamp:   now,
		Action:      action,
		PerformedBy: actor.Name,
		TargetUser:  target.User,
		TargetApp:   target.App,
		Details:     details,
	}
	if entry.PerformedBy == "" {
		entry.PerformedBy = actor.ID
	}

	if err := s.auditRepo.AppendAuditEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append audit entry", slog.String("action", string(action)))
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(action)).Inc()
	s.LogDebug(ctx, "Audit entry appended", slog.String("entry_id", entry.ID), slog.String("action", string(action)))
	return &entry, nil
}

func (s *auditService) List(ctx context.Context, params dto.ListAuditLogParams) (*dto.ListAuditLogResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultAuditPageSize
	}

	query := domain.AuditQuery{Limit: limit + 1}
	if params.NextToken != "" {
		ts, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query.Before = &domain.AuditCursor{Timestamp: ts, ID: id}
	}

	entries, err := s.auditRepo.FindAuditEntries(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit entries")
		return nil, err
	}

	resp := &dto.ListAuditLogResponse{}
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		resp.NextToken = strPtr(pagination.EncodeToken(last.Timestamp, last.ID))
	}
	resp.Entries = dto.ToAuditEntryResponses(entries)
	return resp, nil
}

func (s *auditService) EntriesUntil(ctx context.Context, until time.Time, actions []domain.AuditAction) ([]domain.AuditEntry, error) {
	entries, err := s.auditRepo.FindAuditEntries(ctx, domain.AuditQuery{Until: &until, Actions: actions})
	if err != nil {
		s.LogError(ctx, err, "Failed to read audit entries", slog.Time("until", until))
		return nil, err
	}
	return entries, nil
}
