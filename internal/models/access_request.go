package models

import (
	"database/sql"
	"time"
)

// AccessRequest is a row of the access_requests table.
type AccessRequest struct {
	RequestID       string         `db:"request_id"`
	EmployeeID      string         `db:"employee_id"`
	UserName        string         `db:"user_name"`
	UserEmail       string         `db:"user_email"`
	UserAvatarURL   string         `db:"user_avatar_url"`
	ApplicationID   string         `db:"application_id"`
	ApplicationName string         `db:"application_name"`
	ApplicationIcon string         `db:"application_icon"`
	RequestedRole   string         `db:"requested_role"`
	Justification   sql.NullString `db:"justification"`
	RequestDate     time.Time      `db:"request_date"`
	Status          string         `db:"status"`
	Reason          sql.NullString `db:"reason"`
	DecidedBy       sql.NullString `db:"decided_by"`
	DecidedAt       sql.NullTime   `db:"decided_at"`
}
