package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/dto"
	"github.com/SscSPs/access_governance_app/internal/utils"
	"github.com/google/uuid"
)

const (
	// DefaultAvatarURL is given to employees created without a photo.
	DefaultAvatarURL      = "https://randomuser.me/api/portraits/men/32.jpg"
	newEmployeeLastActive = "Just now"
	joinDateLayout        = "January 2, 2006"
)

// directoryService implements the employee directory and its grants.
type directoryService struct {
	BaseService
	tx           portsrepo.TransactionManager
	employeeRepo portsrepo.EmployeeRepositoryFacade
	appRepo      portsrepo.ApplicationReader
	auditSvc     portssvc.AuditSvc
	searches     *utils.SupersedeGroup
}

// DirectoryOption is a functional option for configuring the directory service
type DirectoryOption func(*directoryService)

// WithDirectoryClock replaces the clock used for join dates and bookkeeping fields.
func WithDirectoryClock(clock func() time.Time) DirectoryOption {
	return func(s *directoryService) {
		s.Clock = clock
	}
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(
	tx portsrepo.TransactionManager,
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	appRepo portsrepo.ApplicationReader,
	auditSvc portssvc.AuditSvc,
	options ...DirectoryOption,
) portssvc.DirectorySvcFacade {
	svc := &directoryService{
		tx:           tx,
		employeeRepo: employeeRepo,
		appRepo:      appRepo,
		auditSvc:     auditSvc,
		searches:     utils.NewSupersedeGroup(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DirectorySvcFacade = (*directoryService)(nil)

func (s *directoryService) ListEmployees(ctx context.Context, actor domain.Identity, query string) ([]domain.Employee, error) {
	searchCtx, done := s.searches.Begin(ctx, actor.ID)
	defer done()

	employees, err := s.employeeRepo.FindEmployees(searchCtx, query)
	if utils.Superseded(searchCtx) {
		s.LogDebug(ctx, "Employee search superseded", slog.String("query", query))
		return nil, apperrors.ErrSuperseded
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to search employees", slog.String("query", query))
		return nil, err
	}
	return employees, nil
}

func (s *directoryService) GetEmployeeDetail(ctx context.Context, employeeID string) (*domain.EmployeeDetail, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get employee", slog.String("employee_id", employeeID))
		}
		return nil, err
	}
	grants, err := s.employeeRepo.FindGrantsByEmployee(ctx, employeeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get grants", slog.String("employee_id", employeeID))
		return nil, err
	}
	return &domain.EmployeeDetail{Employee: *employee, Grants: grants}, nil
}

func (s *directoryService) ListGrants(ctx context.Context, employeeID string) ([]domain.Grant, error) {
	grants, err := s.employeeRepo.FindGrantsByEmployee(ctx, employeeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list grants", slog.String("employee_id", employeeID))
		return nil, err
	}
	return grants, nil
}

func (s *directoryService) ListApplications(ctx context.Context) ([]domain.Application, error) {
	apps, err := s.appRepo.FindApplications(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list applications")
		return nil, err
	}
	return apps, nil
}

func (s *directoryService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	counts, err := s.employeeRepo.CountEmployeesByStatus(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count employees")
		return nil, err
	}
	apps, err := s.employeeRepo.CountGrantedApplications(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count granted applications")
		return nil, err
	}

	stats := &domain.DashboardStats{
		ActiveEmployees:   counts[domain.EmployeeActive],
		PendingEmployees:  counts[domain.EmployeePending],
		DisabledEmployees: counts[domain.EmployeeDisabled],
		TotalApplications: apps,
	}
	for _, n := range counts {
		stats.TotalEmployees += n
	}
	return stats, nil
}

func (s *directoryService) CreateEmployee(ctx context.Context, actor domain.Identity, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	now := s.Now()
	employee := domain.Employee{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Title:      req.Title,
		Status:     domain.EmployeePending,
		AvatarURL:  DefaultAvatarURL,
		LastActive: newEmployeeLastActive,
		JoinDate:   strPtr(now.Format(joinDateLayout)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		},
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
			return err
		}
		_, err := s.auditSvc.Record(ctx, actor, domain.ActionUserCreated,
			domain.AuditTarget{User: strPtr(employee.Name)},
			fmt.Sprintf("New user account created in %s department", employee.Department))
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create employee", slog.String("email", req.Email))
		return nil, err
	}

	s.LogInfo(ctx, "Employee created", slog.String("employee_id", employee.ID))
	return &employee, nil
}

func (s *directoryService) OffboardEmployee(ctx context.Context, actor domain.Identity, employeeID string) (*domain.Employee, error) {
	var offboarded *domain.Employee
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if employee.Status == domain.EmployeeDisabled {
			return apperrors.ErrAlreadyDisabled
		}

		employee.Status = domain.EmployeeDisabled
		employee.Touch(actor.ID, s.Now())
		if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
			return err
		}
		revoked, err := s.employeeRepo.DeleteGrantsByEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		if _, err := s.auditSvc.Record(ctx, actor, domain.ActionUserOffboarded,
			domain.AuditTarget{User: strPtr(employee.Name)},
			fmt.Sprintf("User account disabled and %d application access grants revoked", revoked)); err != nil {
			return err
		}
		offboarded = employee
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to offboard employee", slog.String("employee_id", employeeID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Employee offboarded", slog.String("employee_id", employeeID))
	return offboarded, nil
}

func (s *directoryService) AssignRole(ctx context.Context, actor domain.Identity, employeeID string, req dto.AssignRoleRequest) error {
	if err := s.Validate(req); err != nil {
		return err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
		if err != nil {
			return err
		}

		target := domain.AuditTarget{User: strPtr(employee.Name)}
		var previous string
		if req.ApplicationID == nil {
			if employee.Role != nil {
				previous = *employee.Role
			}
			employee.Role = strPtr(req.Role)
			employee.Touch(actor.ID, s.Now())
			if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
				return err
			}
		} else {
			grant, err := s.employeeRepo.FindGrant(ctx, employeeID, *req.ApplicationID)
			if err != nil {
				return err
			}
			if employee.Status == domain.EmployeeDisabled {
				return apperrors.ErrEmployeeDisabled
			}
			previous = grant.Role
			grant.Role = req.Role
			if err := s.employeeRepo.UpsertGrant(ctx, *grant); err != nil {
				return err
			}
			target.App = strPtr(grant.ApplicationName)
		}
		if previous == "" {
			previous = "none"
		}

		_, err = s.auditSvc.Record(ctx, actor, domain.ActionRoleChanged, target,
			fmt.Sprintf("Role changed from '%s' to '%s'", previous, req.Role))
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to assign role", slog.String("employee_id", employeeID))
		}
		return err
	}

	s.LogInfo(ctx, "Role assigned", slog.String("employee_id", employeeID), slog.String("role", req.Role))
	return nil
}

func (s *directoryService) RevokeGrant(ctx context.Context, actor domain.Identity, employeeID, applicationID string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
		if err != nil {
			return err
		}
		grant, err := s.employeeRepo.FindGrant(ctx, employeeID, applicationID)
		if err != nil {
			return err
		}
		if err := s.employeeRepo.DeleteGrant(ctx, employeeID, applicationID); err != nil {
			return err
		}
		_, err = s.auditSvc.Record(ctx, actor, domain.ActionAccessRevoked,
			domain.AuditTarget{User: strPtr(employee.Name), App: strPtr(grant.ApplicationName)},
			fmt.Sprintf("Access to %s was revoked", grant.ApplicationName))
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to revoke grant",
				slog.String("employee_id", employeeID), slog.String("application_id", applicationID))
		}
		return err
	}

	s.LogInfo(ctx, "Grant revoked", slog.String("employee_id", employeeID), slog.String("application_id", applicationID))
	return nil
}
