package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/dto"
	"github.com/SscSPs/access_governance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// spendHandler serves subscription spend figures and compliance reports.
type spendHandler struct {
	spendService      portssvc.SpendSvc
	complianceService portssvc.ComplianceSvc
}

func newSpendHandler(ss portssvc.SpendSvc, cs portssvc.ComplianceSvc) *spendHandler {
	return &spendHandler{spendService: ss, complianceService: cs}
}

// registerSpendRoutes registers the spend and compliance routes. rg must already enforce the admin role.
func registerSpendRoutes(rg *gin.RouterGroup, ss portssvc.SpendSvc, cs portssvc.ComplianceSvc) {
	h := newSpendHandler(ss, cs)

	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.GET("", h.listSubscriptions)
		subscriptions.GET("/summary", h.spendSummary)
	}
	rg.GET("/compliance/reports", h.complianceReport)
}

// listSubscriptions godoc
// @Summary Subscription spend
// @Description Every subscription with its monthly cost, wasted seats and utilization band.
// @Tags spend
// @Produce json
// @Success 200 {object} dto.ListSubscriptionsResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *spendHandler) listSubscriptions(c *gin.Context) {
	stats, err := h.spendService.ListSubscriptionStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list subscriptions")
		return
	}
	c.JSON(http.StatusOK, dto.ListSubscriptionsResponse{Subscriptions: stats})
}

// spendSummary godoc
// @Summary Spend summary
// @Tags spend
// @Produce json
// @Success 200 {object} domain.SpendSummary
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/summary [get]
func (h *spendHandler) spendSummary(c *gin.Context) {
	summary, err := h.spendService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to summarize spend")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// complianceReport godoc
// @Summary Generate a compliance report
// @Description Audit entries of the report's action set up to the end of date (UTC), newest first. format=csv downloads the report.
// @Tags compliance
// @Produce json
// @Produce text/csv
// @Param type query string true "Report type" Enums(access_audit, license_compliance, user_activity, role_changes)
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Param format query string false "json or csv" Enums(json, csv)
// @Success 200 {object} dto.ComplianceReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /compliance/reports [get]
func (h *spendHandler) complianceReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ComplianceReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	asOf := time.Now().UTC()
	if params.Date != "" {
		parsed, err := time.Parse(time.DateOnly, params.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	report, err := h.complianceService.GenerateReport(c.Request.Context(), domain.ReportType(params.Type), asOf)
	if err != nil {
		respondError(c, err, "Failed to generate report")
		return
	}

	if params.Format != "csv" {
		c.JSON(http.StatusOK, dto.ToComplianceReportResponse(report))
		return
	}

	var buf bytes.Buffer
	if err := h.complianceService.WriteCSV(&buf, report); err != nil {
		logger.Error("Failed to render report CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render report"})
		return
	}
	filename := fmt.Sprintf("%s-%s.csv", report.Type, report.AsOf.Format(time.DateOnly))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
