package domain

import "time"

// ReportType selects which audit actions a compliance report covers.
type ReportType string

const (
	ReportAccessAudit       ReportType = "access_audit"
	ReportLicenseCompliance ReportType = "license_compliance"
	ReportUserActivity      ReportType = "user_activity"
	ReportRoleChanges       ReportType = "role_changes"
)

var reportActions = map[ReportType][]AuditAction{
	ReportAccessAudit: {
		ActionAccessRequestCreated,
		ActionAccessRequestApproved,
		ActionAccessRequestDenied,
		ActionAccessRevoked,
	},
	ReportLicenseCompliance: {
		ActionLicenseUpdated,
		ActionAccessRevoked,
		ActionUserOffboarded,
	},
	ReportUserActivity: {
		ActionUserCreated,
		ActionUserOffboarded,
		ActionRoleChanged,
	},
	ReportRoleChanges: {
		ActionRoleChanged,
	},
}

var reportTitles = map[ReportType]string{
	ReportAccessAudit:       "Access Audit Report",
	ReportLicenseCompliance: "License Compliance Report",
	ReportUserActivity:      "User Activity Report",
	ReportRoleChanges:       "Role Changes Report",
}

// Valid reports whether t is a known report type.
func (t ReportType) Valid() bool {
	_, ok := reportActions[t]
	return ok
}

// Actions returns the audit actions covered by t, nil for unknown types.
func (t ReportType) Actions() []AuditAction {
	actions := reportActions[t]
	out := make([]AuditAction, len(actions))
	copy(out, actions)
	return out
}

// Title is the human readable report name.
func (t ReportType) Title() string {
	return reportTitles[t]
}

// ReportTypes lists the known report types in display order.
func ReportTypes() []ReportType {
	return []ReportType{ReportAccessAudit, ReportLicenseCompliance, ReportUserActivity, ReportRoleChanges}
}

// ComplianceReport is a deterministic read-side view of the audit log.
type ComplianceReport struct {
	Type          ReportType         `json:"type"`
	Title         string             `json:"title"`
	AsOf          time.Time          `json:"asOf"` // Entries up to the end of this UTC day
	Entries       []AuditEntry       `json:"entries"`
	Subscriptions []SubscriptionStat `json:"subscriptions,omitempty"`
	Summary       *SpendSummary      `json:"summary,omitempty"`
}
