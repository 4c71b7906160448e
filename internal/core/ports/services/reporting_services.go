package services

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/SscSPs/access_governance_app/internal/dto"
)

// AuditSvc appends to and reads the audit log.
type AuditSvc interface {
	// Record appends an entry performed by actor. The id and timestamp are assigned here.
	Record(ctx context.Context, actor domain.Identity, action domain.AuditAction, target domain.AuditTarget, details string) (*domain.AuditEntry, error)

	// List returns a page of entries, newest first.
	List(ctx context.Context, params dto.ListAuditLogParams) (*dto.ListAuditLogResponse, error)

	// EntriesUntil returns the entries with the given actions up to and including until.
	EntriesUntil(ctx context.Context, until time.Time, actions []domain.AuditAction) ([]domain.AuditEntry, error)
}

// SpendSvc derives spend figures from subscription records.
type SpendSvc interface {
	ListSubscriptionStats(ctx context.Context) ([]domain.SubscriptionStat, error)
	Summary(ctx context.Context) (*domain.SpendSummary, error)
}

// ComplianceSvc generates compliance reports.
type ComplianceSvc interface {
	// GenerateReport returns the report of type reportType covering entries up to the end of asOf's UTC day.
	GenerateReport(ctx context.Context, reportType domain.ReportType, asOf time.Time) (*domain.ComplianceReport, error)

	// WriteCSV renders a report as CSV.
	WriteCSV(w io.Writer, report *domain.ComplianceReport) error
}
