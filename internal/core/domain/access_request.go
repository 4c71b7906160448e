package domain

import "time"

// AccessRequestStatus is the state of an access request. pending is the only
// non-terminal state.
type AccessRequestStatus string

const (
	AccessRequestPending  AccessRequestStatus = "pending"
	AccessRequestApproved AccessRequestStatus = "approved"
	AccessRequestDenied   AccessRequestStatus = "denied"
)

// IsTerminal reports whether no further decision may be applied.
func (s AccessRequestStatus) IsTerminal() bool {
	return s == AccessRequestApproved || s == AccessRequestDenied
}

// AccessRequest is a user's request for access to an application.
type AccessRequest struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"` // Requesting employee
	UserName        string              `json:"userName"`
	UserEmail       string              `json:"userEmail"`
	UserAvatarURL   string              `json:"userAvatar"`
	ApplicationID   string              `json:"applicationId"`
	ApplicationName string              `json:"applicationName"`
	ApplicationIcon string              `json:"applicationIcon"`
	RequestedRole   string              `json:"requestedRole"`
	Justification   *string             `json:"justification,omitempty"`
	RequestDate     time.Time           `json:"requestDate"`
	Status          AccessRequestStatus `json:"status"`
	Reason          *string             `json:"reason,omitempty"` // Set for denials only
	DecidedBy       *string             `json:"decidedBy,omitempty"`
	DecidedAt       *time.Time          `json:"decidedAt,omitempty"`
}

// AccessRequestDecision is the terminal transition applied to a pending request.
type AccessRequestDecision struct {
	Outcome   AccessRequestStatus
	Reason    *string
	DecidedBy string
	DecidedAt time.Time
}

// AccessRequestView selects a read-side subset of the ledger.
type AccessRequestView string

const (
	AccessRequestViewAll       AccessRequestView = "all"
	AccessRequestViewPending   AccessRequestView = "pending"
	AccessRequestViewProcessed AccessRequestView = "processed"
)

// Includes reports whether a request with status s belongs to the view.
func (v AccessRequestView) Includes(s AccessRequestStatus) bool {
	switch v {
	case AccessRequestViewPending:
		return s == AccessRequestPending
	case AccessRequestViewProcessed:
		return s != AccessRequestPending
	default:
		return true
	}
}

// AccessRequestFilter narrows a ledger listing.
type AccessRequestFilter struct {
	View       AccessRequestView
	EmployeeID *string
}
