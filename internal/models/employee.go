package models

import (
	"database/sql"
	"time"
)

// Employee is a row of the employees table.
type Employee struct {
	EmployeeID string         `db:"employee_id"`
	Name       string         `db:"name"`
	Email      string         `db:"email"`
	Department string         `db:"department"`
	Title      string         `db:"title"`
	Status     string         `db:"status"`
	AvatarURL  string         `db:"avatar_url"`
	LastActive string         `db:"last_active"`
	Role       sql.NullString `db:"role"`
	JoinDate   sql.NullString `db:"join_date"`
	Manager    sql.NullString `db:"manager"`
	Phone      sql.NullString `db:"phone"`
	AuditFields
}

// Grant is a row of the grants table joined with its application.
type Grant struct {
	EmployeeID      string         `db:"employee_id"`
	ApplicationID   string         `db:"application_id"`
	ApplicationName string         `db:"application_name"`
	ApplicationType string         `db:"application_type"`
	Icon            string         `db:"icon"`
	Role            string         `db:"role"`
	LastUsed        sql.NullString `db:"last_used"`
	GrantedAt       time.Time      `db:"granted_at"`
}

// Application is a row of the applications table.
type Application struct {
	ApplicationID string `db:"application_id"`
	Name          string `db:"name"`
	Type          string `db:"type"`
	Icon          string `db:"icon"`
}
