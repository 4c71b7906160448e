package models

import (
	"database/sql"
	"time"
)

// AuditEntry is a row of the append-only audit_log table.
type AuditEntry struct {
	EntryID     string         `db:"entry_id"`
	Timestamp   time.Time      `db:"occurred_at"`
	Action      string         `db:"action"`
	PerformedBy string         `db:"performed_by"`
	TargetUser  sql.NullString `db:"target_user"`
	TargetApp   sql.NullString `db:"target_app"`
	Details     string         `db:"details"`
}
