package dto

import (
	"time"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
)

// ListAuditLogParams defines query parameters for reading the audit log.
type ListAuditLogParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// AuditEntryResponse is one audit log entry.
type AuditEntryResponse struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"`
	PerformedBy string    `json:"performedBy"`
	TargetUser  *string   `json:"targetUser,omitempty"`
	TargetApp   *string   `json:"targetApp,omitempty"`
	Details     string    `json:"details"`
}

// ListAuditLogResponse is a page of audit entries, newest first.
type ListAuditLogResponse struct {
	Entries   []AuditEntryResponse `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"` // Absent on the last page
}

// ToAuditEntryResponse converts a domain.AuditEntry to its DTO.
func ToAuditEntryResponse(e *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:          e.ID,
		Timestamp:   e.Timestamp,
		Action:      string(e.Action),
		PerformedBy: e.PerformedBy,
		TargetUser:  e.TargetUser,
		TargetApp:   e.TargetApp,
		Details:     e.Details,
	}
}

// ToAuditEntryResponses converts a slice of domain.AuditEntry.
func ToAuditEntryResponses(entries []domain.AuditEntry) []AuditEntryResponse {
	responses := make([]AuditEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToAuditEntryResponse(&entries[i])
	}
	return responses
}
