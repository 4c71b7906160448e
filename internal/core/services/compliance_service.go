package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
)

var (
	auditCSVHeader        = []string{"Timestamp", "Action", "Performed By", "Target User", "Target App", "Details"}
	subscriptionCSVHeader = []string{"Application", "Total Seats", "Active Seats", "Utilization", "Monthly Cost", "Wasted Cost", "Currency", "Status"}
)

type complianceService struct {
	BaseService
	auditSvc portssvc.AuditSvc
	spendSvc portssvc.SpendSvc
}

// NewComplianceService creates a new ComplianceService.
func NewComplianceService(auditSvc portssvc.AuditSvc, spendSvc portssvc.SpendSvc) portssvc.ComplianceSvc {
	return &complianceService{auditSvc: auditSvc, spendSvc: spendSvc}
}

var _ portssvc.ComplianceSvc = (*complianceService)(nil)

func (s *complianceService) GenerateReport(ctx context.Context, reportType domain.ReportType, asOf time.Time) (*domain.ComplianceReport, error) {
	if !reportType.Valid() {
		return nil, fmt.Errorf("%w: unknown report type %q", apperrors.ErrValidation, reportType)
	}

	asOf = asOf.UTC()
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	until := day.Add(24*time.Hour - time.Nanosecond)

	entries, err := s.auditSvc.EntriesUntil(ctx, until, reportType.Actions())
	if err != nil {
		return nil, err
	}

	report := &domain.ComplianceReport{
		Type:    reportType,
		Title:   reportType.Title(),
		AsOf:    day,
		Entries: entries,
	}
	if reportType == domain.ReportLicenseCompliance {
		stats, err := s.spendSvc.ListSubscriptionStats(ctx)
		if err != nil {
			return nil, err
		}
		summary := domain.Summarize(stats)
		report.Subscriptions = stats
		report.Summary = &summary
	}

	s.LogInfo(ctx, "Compliance report generated",
		slog.String("type", string(reportType)),
		slog.String("as_of", day.Format(time.DateOnly)),
		slog.Int("entries", len(entries)))
	return report, nil
}

// WriteCSV writes the audit section, then the subscription section when the report has one.
func (s *complianceService) WriteCSV(w io.Writer, report *domain.ComplianceReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(auditCSVHeader); err != nil {
		return err
	}
	for _, e := range report.Entries {
		row := []string{
			e.Timestamp.UTC().Format(time.RFC3339),
			string(e.Action),
			e.PerformedBy,
			deref(e.TargetUser),
			deref(e.TargetApp),
			e.Details,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	if len(report.Subscriptions) > 0 {
		if err := cw.Write([]string{}); err != nil {
			return err
		}
		if err := cw.Write(subscriptionCSVHeader); err != nil {
			return err
		}
		for _, st := range report.Subscriptions {
			row := []string{
				st.AppName,
				strconv.FormatInt(st.TotalSeats, 10),
				strconv.FormatInt(st.ActiveSeats, 10),
				strconv.FormatInt(st.Utilization, 10) + "%",
				st.MonthlyCost.StringFixed(2),
				st.WastedCost.StringFixed(2),
				st.Currency,
				string(st.Band),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
