// Package seed loads the fixture data both storage drivers start from.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/SscSPs/access_governance_app/internal/utils"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var embedded []byte

// Fixtures is the fully resolved seed data set.
type Fixtures struct {
	Credentials    []domain.Credential
	Applications   []domain.Application
	Employees      []domain.Employee
	Grants         []domain.Grant
	AccessRequests []domain.AccessRequest
	AuditLog       []domain.AuditEntry
	Subscriptions  []domain.Subscription
}

type credentialRecord struct {
	domain.Identity `yaml:",inline"`
	Password        string `yaml:"password"`
}

type grantRecord struct {
	ApplicationID string  `yaml:"applicationId"`
	Role          string  `yaml:"role"`
	LastUsed      *string `yaml:"lastUsed"`
}

type employeeRecord struct {
	ID         string                `yaml:"id"`
	Name       string                `yaml:"name"`
	Email      string                `yaml:"email"`
	Department string                `yaml:"department"`
	Title      string                `yaml:"title"`
	Status     domain.EmployeeStatus `yaml:"status"`
	Avatar     string                `yaml:"avatar"`
	LastActive string                `yaml:"lastActive"`
	Grants     []grantRecord         `yaml:"grants"`
}

type profileDefaults struct {
	JoinDate string `yaml:"joinDate"`
	Manager  string `yaml:"manager"`
	Phone    string `yaml:"phone"`
}

type requestRecord struct {
	ID              string                     `yaml:"id"`
	UserID          string                     `yaml:"userId"`
	ApplicationID   string                     `yaml:"applicationId"`
	ApplicationName string                     `yaml:"applicationName"`
	ApplicationIcon string                     `yaml:"applicationIcon"`
	RequestedRole   string                     `yaml:"requestedRole"`
	Justification   *string                    `yaml:"justification"`
	RequestDate     time.Time                  `yaml:"requestDate"`
	Status          domain.AccessRequestStatus `yaml:"status"`
}

type auditRecord struct {
	ID          string             `yaml:"id"`
	Timestamp   time.Time          `yaml:"timestamp"`
	Action      domain.AuditAction `yaml:"action"`
	PerformedBy string             `yaml:"performedBy"`
	TargetUser  *string            `yaml:"targetUser"`
	TargetApp   *string            `yaml:"targetApp"`
	Details     string             `yaml:"details"`
}

type subscriptionRecord struct {
	domain.Subscription `yaml:",inline"`
	CostPerSeat         string `yaml:"costPerSeat"`
}

type document struct {
	Credentials     []credentialRecord   `yaml:"credentials"`
	Applications    []domain.Application `yaml:"applications"`
	ProfileDefaults profileDefaults      `yaml:"profileDefaults"`
	Employees       []employeeRecord     `yaml:"employees"`
	AccessRequests  []requestRecord      `yaml:"accessRequests"`
	AuditLog        []auditRecord        `yaml:"auditLog"`
	Subscriptions   []subscriptionRecord `yaml:"subscriptions"`
}

// Load returns the embedded fixtures.
func Load() (*Fixtures, error) {
	return Parse(embedded)
}

// LoadFile reads fixtures from path. An empty path falls back to the embedded set.
func LoadFile(path string) (*Fixtures, error) {
	if path == "" {
		return Load()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a fixture document, hashing passwords and resolving the
// denormalized names of grants and requests against the catalog and directory.
func Parse(raw []byte) (*Fixtures, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}

	f := &Fixtures{Applications: doc.Applications}
	catalog := make(map[string]domain.Application, len(doc.Applications))
	for _, app := range doc.Applications {
		catalog[app.ID] = app
	}

	for _, c := range doc.Credentials {
		if !c.Role.Valid() {
			return nil, fmt.Errorf("credential %s: unknown role %q", c.ID, c.Role)
		}
		hash, err := utils.HashPassword(c.Password)
		if err != nil {
			return nil, fmt.Errorf("credential %s: %w", c.ID, err)
		}
		f.Credentials = append(f.Credentials, domain.Credential{Identity: c.Identity, PasswordHash: hash})
	}

	seededAt := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	directory := make(map[string]domain.Employee, len(doc.Employees))
	for _, e := range doc.Employees {
		emp := domain.Employee{
			ID:          e.ID,
			Name:        e.Name,
			Email:       e.Email,
			Department:  e.Department,
			Title:       e.Title,
			Status:      e.Status,
			AvatarURL:   e.Avatar,
			LastActive:  e.LastActive,
			JoinDate:    optional(doc.ProfileDefaults.JoinDate),
			Manager:     optional(doc.ProfileDefaults.Manager),
			Phone:       optional(doc.ProfileDefaults.Phone),
			AuditFields: domain.AuditFields{CreatedAt: seededAt, CreatedBy: "seed", LastUpdatedAt: seededAt, LastUpdatedBy: "seed"},
		}
		f.Employees = append(f.Employees, emp)
		directory[emp.ID] = emp

		for _, g := range e.Grants {
			app, ok := catalog[g.ApplicationID]
			if !ok {
				return nil, fmt.Errorf("employee %s: unknown application %s", e.ID, g.ApplicationID)
			}
			f.Grants = append(f.Grants, domain.Grant{
				EmployeeID:      e.ID,
				ApplicationID:   app.ID,
				ApplicationName: app.Name,
				ApplicationType: app.Type,
				Icon:            app.Icon,
				Role:            g.Role,
				LastUsed:        g.LastUsed,
				GrantedAt:       seededAt,
			})
		}
	}

	for _, r := range doc.AccessRequests {
		emp, ok := directory[r.UserID]
		if !ok {
			return nil, fmt.Errorf("access request %s: unknown employee %s", r.ID, r.UserID)
		}
		status := r.Status
		if status == "" {
			status = domain.AccessRequestPending
		}
		f.AccessRequests = append(f.AccessRequests, domain.AccessRequest{
			ID:              r.ID,
			UserID:          emp.ID,
			UserName:        emp.Name,
			UserEmail:       emp.Email,
			UserAvatarURL:   emp.AvatarURL,
			ApplicationID:   r.ApplicationID,
			ApplicationName: r.ApplicationName,
			ApplicationIcon: r.ApplicationIcon,
			RequestedRole:   r.RequestedRole,
			Justification:   r.Justification,
			RequestDate:     r.RequestDate.UTC(),
			Status:          status,
		})
	}

	for _, a := range doc.AuditLog {
		f.AuditLog = append(f.AuditLog, domain.AuditEntry{
			ID:          a.ID,
			Timestamp:   a.Timestamp.UTC(),
			Action:      a.Action,
			PerformedBy: a.PerformedBy,
			TargetUser:  a.TargetUser,
			TargetApp:   a.TargetApp,
			Details:     a.Details,
		})
	}

	for _, s := range doc.Subscriptions {
		cost, err := decimal.NewFromString(s.CostPerSeat)
		if err != nil {
			return nil, fmt.Errorf("subscription %s: invalid costPerSeat %q: %w", s.ID, s.CostPerSeat, err)
		}
		if s.ActiveSeats > s.TotalSeats {
			return nil, fmt.Errorf("subscription %s: activeSeats exceeds totalSeats", s.ID)
		}
		sub := s.Subscription
		sub.CostPerSeat = cost
		f.Subscriptions = append(f.Subscriptions, sub)
	}

	return f, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
