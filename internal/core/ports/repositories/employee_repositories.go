package repositories

import (
	"context"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
)

// EmployeeReader defines read operations for directory records.
type EmployeeReader interface {
	// FindEmployeeByID returns apperrors.ErrNotFound for unknown ids.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployees returns the employees matching query (see domain.Employee.Matches)
	// in directory order.
	FindEmployees(ctx context.Context, query string) ([]domain.Employee, error)

	// CountEmployeesByStatus counts directory records per status.
	CountEmployeesByStatus(ctx context.Context) (map[domain.EmployeeStatus]int, error)
}

// EmployeeWriter defines write operations for directory records.
type EmployeeWriter interface {
	// SaveEmployee inserts a new record. Returns apperrors.ErrDuplicate if the id exists.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateEmployee replaces an existing record. Returns apperrors.ErrNotFound if absent.
	UpdateEmployee(ctx context.Context, employee domain.Employee) error
}

// GrantReader defines read operations for application-access grants.
type GrantReader interface {
	FindGrantsByEmployee(ctx context.Context, employeeID string) ([]domain.Grant, error)

	// FindGrant returns apperrors.ErrNotFound when the employee holds no grant for the application.
	FindGrant(ctx context.Context, employeeID, applicationID string) (*domain.Grant, error)

	// CountGrantedApplications counts distinct applications with at least one grant.
	CountGrantedApplications(ctx context.Context) (int, error)
}

// GrantWriter defines write operations for application-access grants.
type GrantWriter interface {
	// UpsertGrant adds the grant or replaces the one for the same application.
	UpsertGrant(ctx context.Context, grant domain.Grant) error

	// DeleteGrant returns apperrors.ErrNotFound when no such grant exists.
	DeleteGrant(ctx context.Context, employeeID, applicationID string) error

	// DeleteGrantsByEmployee removes every grant of the employee and returns how many were removed.
	DeleteGrantsByEmployee(ctx context.Context, employeeID string) (int, error)
}

// EmployeeRepositoryFacade combines all directory repository interfaces.
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
	GrantReader
	GrantWriter
}

// ApplicationReader reads the application catalog.
type ApplicationReader interface {
	// FindApplicationByID returns apperrors.ErrNotFound for unknown ids.
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error)
	FindApplications(ctx context.Context) ([]domain.Application, error)
}
