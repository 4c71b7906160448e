package services

import (
	"context"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/SscSPs/access_governance_app/internal/dto"
)

// DirectoryReaderSvc defines read operations for the employee directory.
type DirectoryReaderSvc interface {
	// ListEmployees searches the directory. A newer search by the same actor
	// supersedes this one, which then returns apperrors.ErrSuperseded.
	ListEmployees(ctx context.Context, actor domain.Identity, query string) ([]domain.Employee, error)

	// GetEmployeeDetail returns the employee and its grants.
	GetEmployeeDetail(ctx context.Context, employeeID string) (*domain.EmployeeDetail, error)

	// ListGrants returns the grants held by an employee.
	ListGrants(ctx context.Context, employeeID string) ([]domain.Grant, error)

	// ListApplications returns the application catalog.
	ListApplications(ctx context.Context) ([]domain.Application, error)

	// DashboardStats summarizes the directory.
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

// DirectoryWriterSvc defines audited mutations of the employee directory.
type DirectoryWriterSvc interface {
	CreateEmployee(ctx context.Context, actor domain.Identity, req dto.CreateEmployeeRequest) (*domain.Employee, error)

	// OffboardEmployee disables the employee and revokes all its grants.
	// Returns apperrors.ErrAlreadyDisabled for a disabled employee.
	OffboardEmployee(ctx context.Context, actor domain.Identity, employeeID string) (*domain.Employee, error)

	AssignRole(ctx context.Context, actor domain.Identity, employeeID string, req dto.AssignRoleRequest) error

	RevokeGrant(ctx context.Context, actor domain.Identity, employeeID, applicationID string) error
}

// DirectorySvcFacade combines all directory service interfaces.
type DirectorySvcFacade interface {
	DirectoryReaderSvc
	DirectoryWriterSvc
}
