package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock SessionService ---
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}

func (m *MockSessionService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockSessionService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Restore(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSessionService) Ready() bool {
	return m.Called().Bool(0)
}

var _ portssvc.SessionSvc = (*MockSessionService)(nil)

// --- Mock DirectoryService ---
type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) ListEmployees(ctx context.Context, actor domain.Identity, query string) ([]domain.Employee, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockDirectoryService) GetEmployeeDetail(ctx context.Context, employeeID string) (*domain.EmployeeDetail, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployeeDetail), args.Error(1)
}

func (m *MockDirectoryService) ListGrants(ctx context.Context, employeeID string) ([]domain.Grant, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Grant), args.Error(1)
}

func (m *MockDirectoryService) ListApplications(ctx context.Context) ([]domain.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockDirectoryService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func (m *MockDirectoryService) CreateEmployee(ctx context.Context, actor domain.Identity, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockDirectoryService) OffboardEmployee(ctx context.Context, actor domain.Identity, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, actor, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockDirectoryService) AssignRole(ctx context.Context, actor domain.Identity, employeeID string, req dto.AssignRoleRequest) error {
	return m.Called(ctx, actor, employeeID, req).Error(0)
}

func (m *MockDirectoryService) RevokeGrant(ctx context.Context, actor domain.Identity, employeeID, applicationID string) error {
	return m.Called(ctx, actor, employeeID, applicationID).Error(0)
}

var _ portssvc.DirectorySvcFacade = (*MockDirectoryService)(nil)

// --- Mock AccessRequestService ---
type MockAccessRequestService struct {
	mock.Mock
}

func (m *MockAccessRequestService) GetAccessRequest(ctx context.Context, requestID string) (*domain.AccessRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}

func (m *MockAccessRequestService) ListAccessRequests(ctx context.Context, view domain.AccessRequestView) ([]domain.AccessRequest, error) {
	args := m.Called(ctx, view)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccessRequest), args.Error(1)
}

func (m *MockAccessRequestService) ListPending(ctx context.Context) ([]domain.AccessRequest, error) {
	return m.ListAccessRequests(ctx, domain.AccessRequestViewPending)
}

func (m *MockAccessRequestService) ListProcessed(ctx context.Context) ([]domain.AccessRequest, error) {
	return m.ListAccessRequests(ctx, domain.AccessRequestViewProcessed)
}

func (m *MockAccessRequestService) ListForEmployee(ctx context.Context, employeeID string) ([]domain.AccessRequest, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccessRequest), args.Error(1)
}

func (m *MockAccessRequestService) Submit(ctx context.Context, requester domain.Identity, req dto.SubmitAccessRequest) (*domain.AccessRequest, error) {
	args := m.Called(ctx, requester, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}

func (m *MockAccessRequestService) Decide(ctx context.Context, actor domain.Identity, requestID string, req dto.DecideAccessRequest) (*domain.AccessRequest, error) {
	args := m.Called(ctx, actor, requestID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}

var _ portssvc.AccessRequestSvcFacade = (*MockAccessRequestService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, actor domain.Identity, action domain.AuditAction, target domain.AuditTarget, details string) (*domain.AuditEntry, error) {
	args := m.Called(ctx, actor, action, target, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditEntry), args.Error(1)
}

func (m *MockAuditService) List(ctx context.Context, params dto.ListAuditLogParams) (*dto.ListAuditLogResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAuditLogResponse), args.Error(1)
}

func (m *MockAuditService) EntriesUntil(ctx context.Context, until time.Time, actions []domain.AuditAction) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, until, actions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

var _ portssvc.AuditSvc = (*MockAuditService)(nil)

// --- Mock ComplianceService ---
type MockComplianceService struct {
	mock.Mock
}

func (m *MockComplianceService) GenerateReport(ctx context.Context, reportType domain.ReportType, asOf time.Time) (*domain.ComplianceReport, error) {
	args := m.Called(ctx, reportType, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplianceReport), args.Error(1)
}

func (m *MockComplianceService) WriteCSV(w io.Writer, report *domain.ComplianceReport) error {
	return m.Called(w, report).Error(0)
}

var _ portssvc.ComplianceSvc = (*MockComplianceService)(nil)
