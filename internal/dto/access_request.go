package dto

import (
	"time"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
)

// SubmitAccessRequest is the body of POST /access-requests.
type SubmitAccessRequest struct {
	ApplicationID string  `json:"applicationId" binding:"required" validate:"required"`
	RequestedRole string  `json:"requestedRole" binding:"required" validate:"required"`
	Reason        *string `json:"reason,omitempty"` // Free-text justification
}

// DecideAccessRequest is the body of POST /access-requests/{id}/decision.
type DecideAccessRequest struct {
	Outcome domain.AccessRequestStatus `json:"outcome" binding:"required,oneof=approved denied" validate:"required,oneof=approved denied"`
	Reason  *string                    `json:"reason,omitempty"` // Kept for denials only
}

// ListAccessRequestsParams defines query parameters for listing the ledger.
type ListAccessRequestsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=all pending processed"`
}

// AccessRequestResponse is one ledger entry.
type AccessRequestResponse struct {
	ID              string                     `json:"id"`
	UserID          string                     `json:"userId"`
	UserName        string                     `json:"userName"`
	UserEmail       string                     `json:"userEmail"`
	UserAvatar      string                     `json:"userAvatar"`
	ApplicationID   string                     `json:"applicationId"`
	ApplicationName string                     `json:"applicationName"`
	ApplicationIcon string                     `json:"applicationIcon"`
	RequestedRole   string                     `json:"requestedRole"`
	Justification   *string                    `json:"justification,omitempty"`
	RequestDate     time.Time                  `json:"requestDate"`
	Status          domain.AccessRequestStatus `json:"status"`
	Reason          *string                    `json:"reason,omitempty"`
	DecidedBy       *string                    `json:"decidedBy,omitempty"`
	DecidedAt       *time.Time                 `json:"decidedAt,omitempty"`
}

// ListAccessRequestsResponse wraps the list of access requests.
type ListAccessRequestsResponse struct {
	Requests []AccessRequestResponse `json:"requests"`
}

// ToAccessRequestResponse converts a domain.AccessRequest to its DTO.
func ToAccessRequestResponse(r *domain.AccessRequest) AccessRequestResponse {
	return AccessRequestResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		UserName:        r.UserName,
		UserEmail:       r.UserEmail,
		UserAvatar:      r.UserAvatarURL,
		ApplicationID:   r.ApplicationID,
		ApplicationName: r.ApplicationName,
		ApplicationIcon: r.ApplicationIcon,
		RequestedRole:   r.RequestedRole,
		Justification:   r.Justification,
		RequestDate:     r.RequestDate,
		Status:          r.Status,
		Reason:          r.Reason,
		DecidedBy:       r.DecidedBy,
		DecidedAt:       r.DecidedAt,
	}
}

// ToListAccessRequestsResponse converts a slice of domain.AccessRequest.
func ToListAccessRequestsResponse(requests []domain.AccessRequest) ListAccessRequestsResponse {
	responses := make([]AccessRequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToAccessRequestResponse(&requests[i])
	}
	return ListAccessRequestsResponse{Requests: responses}
}
