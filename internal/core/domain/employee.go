package domain

import (
	"strings"
	"time"
)

// EmployeeStatus is the lifecycle state of a directory record.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeePending  EmployeeStatus = "pending"
	EmployeeDisabled EmployeeStatus = "disabled"
)

// Employee is one record of the directory.
type Employee struct {
	ID         string         `json:"id"`         // Stable, unique
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Department string         `json:"department"`
	Title      string         `json:"title"`
	Status     EmployeeStatus `json:"status"`     // pending on create, disabled only through offboarding
	AvatarURL  string         `json:"avatar"`
	LastActive string         `json:"lastActive"` // Display string, e.g. "2 hours ago"
	Role       *string        `json:"role,omitempty"`
	JoinDate   *string        `json:"joinDate,omitempty"`
	Manager    *string        `json:"manager,omitempty"`
	Phone      *string        `json:"phone,omitempty"`
	AuditFields
}

// Matches reports whether query is a case-insensitive substring of the
// employee's name, email, department or title. A blank query matches everything.
func (e Employee) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{e.Name, e.Email, e.Department, e.Title} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Grant is an application-access grant owned by an employee.
type Grant struct {
	EmployeeID      string    `json:"employeeId"`
	ApplicationID   string    `json:"applicationId"`
	ApplicationName string    `json:"applicationName"`
	ApplicationType string    `json:"applicationType,omitempty"`
	Icon            string    `json:"icon"`
	Role            string    `json:"role"`               // Free text label, e.g. "Member"
	LastUsed        *string   `json:"lastUsed,omitempty"` // Display string
	GrantedAt       time.Time `json:"grantedAt"`
}

// EmployeeDetail is an employee together with its grants.
type EmployeeDetail struct {
	Employee
	Grants []Grant `json:"applications"`
}

// DashboardStats summarizes the directory for the landing page.
type DashboardStats struct {
	TotalEmployees    int `json:"totalUsers"`
	ActiveEmployees   int `json:"activeUsers"`
	PendingEmployees  int `json:"pendingUsers"`
	DisabledEmployees int `json:"disabledUsers"`
	TotalApplications int `json:"totalApplications"`
}

// Application is an entry of the application catalog.
type Application struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Icon string `json:"icon" yaml:"icon"`
}
