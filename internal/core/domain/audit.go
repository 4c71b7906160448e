package domain

import "time"

// AuditAction is a label from the fixed audit vocabulary.
type AuditAction string

const (
	ActionAccessRequestCreated  AuditAction = "Access Request Created"
	ActionAccessRequestApproved AuditAction = "Access Request Approved"
	ActionAccessRequestDenied   AuditAction = "Access Request Denied"
	ActionUserCreated           AuditAction = "New User Created"
	ActionUserOffboarded        AuditAction = "User Offboarded"
	ActionRoleChanged           AuditAction = "Role Changed"
	ActionAccessRevoked         AuditAction = "User Access Revoked"
	ActionLicenseUpdated        AuditAction = "License Updated"
)

// AuditEntry is an immutable record of an administrative action.
type AuditEntry struct {
	ID          string      `json:"id"`
	Timestamp   time.Time   `json:"timestamp"`
	Action      AuditAction `json:"action"`
	PerformedBy string      `json:"performedBy"`
	TargetUser  *string     `json:"targetUser,omitempty"`
	TargetApp   *string     `json:"targetApp,omitempty"`
	Details     string      `json:"details"`
}

// AuditTarget names the subject of an audited mutation.
type AuditTarget struct {
	User *string
	App  *string
}

// AuditCursor is the position of the last entry of a page.
type AuditCursor struct {
	Timestamp time.Time
	ID        string
}

// After reports whether e sorts after the cursor in newest-first order.
func (c AuditCursor) After(e AuditEntry) bool {
	if e.Timestamp.Equal(c.Timestamp) {
		return e.ID < c.ID
	}
	return e.Timestamp.Before(c.Timestamp)
}

// AuditQuery selects audit entries, newest first.
type AuditQuery struct {
	Limit   int           // 0 means no limit
	Before  *AuditCursor  // Exclusive
	Until   *time.Time    // Inclusive upper bound on Timestamp
	Actions []AuditAction // Empty means all actions
}

// Accepts reports whether e passes the until and action filters.
func (q AuditQuery) Accepts(e AuditEntry) bool {
	if q.Until != nil && e.Timestamp.After(*q.Until) {
		return false
	}
	if q.Before != nil && !q.Before.After(e) {
		return false
	}
	if len(q.Actions) == 0 {
		return true
	}
	for _, a := range q.Actions {
		if a == e.Action {
			return true
		}
	}
	return false
}

// NewestFirst orders audit entries by timestamp then id, descending.
func NewestFirst(a, b AuditEntry) int {
	if !a.Timestamp.Equal(b.Timestamp) {
		if a.Timestamp.After(b.Timestamp) {
			return -1
		}
		return 1
	}
	switch {
	case a.ID > b.ID:
		return -1
	case a.ID < b.ID:
		return 1
	}
	return 0
}
