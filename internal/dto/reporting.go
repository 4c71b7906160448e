package dto

import (
	"time"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
)

// ComplianceReportParams defines query parameters for report generation.
type ComplianceReportParams struct {
	Type   string `form:"type" binding:"required"`
	Date   string `form:"date"`                                    // YYYY-MM-DD, defaults to today (UTC)
	Format string `form:"format" binding:"omitempty,oneof=json csv"` // json by default
}

// ComplianceReportResponse is the JSON form of a compliance report.
type ComplianceReportResponse struct {
	Type          domain.ReportType         `json:"type"`
	Title         string                    `json:"title"`
	AsOf          time.Time                 `json:"asOf"`
	Entries       []AuditEntryResponse      `json:"entries"`
	Subscriptions []domain.SubscriptionStat `json:"subscriptions,omitempty"`
	Summary       *domain.SpendSummary      `json:"summary,omitempty"`
}

// ListSubscriptionsResponse wraps subscription stats.
type ListSubscriptionsResponse struct {
	Subscriptions []domain.SubscriptionStat `json:"subscriptions"`
}

// ToComplianceReportResponse converts a domain.ComplianceReport to its DTO.
func ToComplianceReportResponse(r *domain.ComplianceReport) ComplianceReportResponse {
	return ComplianceReportResponse{
		Type:          r.Type,
		Title:         r.Title,
		AsOf:          r.AsOf,
		Entries:       ToAuditEntryResponses(r.Entries),
		Subscriptions: r.Subscriptions,
		Summary:       r.Summary,
	}
}
