package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/SscSPs/access_governance_app/internal/core/services"
	"github.com/SscSPs/access_governance_app/internal/dto"
	"github.com/SscSPs/access_governance_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (s *ServicesTestSuite) TestListEmployees() {
	all, err := s.svc.Directory.ListEmployees(s.ctx, adminActor, "")
	s.Require().NoError(err)
	s.Len(all, 6)

	eng, err := s.svc.Directory.ListEmployees(s.ctx, adminActor, "engineering")
	s.Require().NoError(err)
	s.Require().Len(eng, 1)
	s.Equal("Alex Morgan", eng[0].Name)
}

func (s *ServicesTestSuite) TestGetEmployeeDetail() {
	detail, err := s.svc.Directory.GetEmployeeDetail(s.ctx, "1")
	s.Require().NoError(err)
	s.Equal("Alex Morgan", detail.Name)
	s.Len(detail.Grants, 5)
	s.Require().NotNil(detail.Manager)
	s.Equal("Robert Johnson", *detail.Manager)

	_, err = s.svc.Directory.GetEmployeeDetail(s.ctx, "999")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ServicesTestSuite) TestDashboardStats() {
	stats, err := s.svc.Directory.DashboardStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(6, stats.TotalEmployees)
	s.Equal(4, stats.ActiveEmployees)
	s.Equal(1, stats.PendingEmployees)
	s.Equal(1, stats.DisabledEmployees)
	s.Equal(13, stats.TotalApplications)
}

func (s *ServicesTestSuite) TestCreateEmployee() {
	before := s.auditCount()
	created, err := s.svc.Directory.CreateEmployee(s.ctx, adminActor, dto.CreateEmployeeRequest{
		Name: "Priya Patel", Email: "priya.patel@example.com", Department: "Security", Title: "Analyst",
	})
	s.Require().NoError(err)
	s.NotEmpty(created.ID)
	s.Equal(domain.EmployeePending, created.Status)
	s.Equal(services.DefaultAvatarURL, created.AvatarURL)
	s.Equal("Just now", created.LastActive)
	s.Require().NotNil(created.JoinDate)

	found, err := s.svc.Directory.ListEmployees(s.ctx, adminActor, "priya")
	s.Require().NoError(err)
	s.Len(found, 1)

	s.Equal(before+1, s.auditCount())
	entry := s.latestAudit()
	s.Equal(domain.ActionUserCreated, entry.Action)
	s.Equal("Admin User", entry.PerformedBy)
	s.Require().NotNil(entry.TargetUser)
	s.Equal("Priya Patel", *entry.TargetUser)
	s.Equal("New user account created in Security department", entry.Details)
}

func (s *ServicesTestSuite) TestCreateEmployee_Validation() {
	before := s.auditCount()
	_, err := s.svc.Directory.CreateEmployee(s.ctx, adminActor, dto.CreateEmployeeRequest{
		Name: "No Email", Email: "not-an-email", Department: "Ops", Title: "Ops",
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(before, s.auditCount())
}

func (s *ServicesTestSuite) TestOffboardEmployee() {
	offboarded, err := s.svc.Directory.OffboardEmployee(s.ctx, adminActor, "2")
	s.Require().NoError(err)
	s.Equal(domain.EmployeeDisabled, offboarded.Status)

	grants, err := s.svc.Directory.ListGrants(s.ctx, "2")
	s.Require().NoError(err)
	s.Empty(grants)

	entry := s.latestAudit()
	s.Equal(domain.ActionUserOffboarded, entry.Action)
	s.Equal("User account disabled and 4 application access grants revoked", entry.Details)

	before := s.auditCount()
	_, err = s.svc.Directory.OffboardEmployee(s.ctx, adminActor, "2")
	s.ErrorIs(err, apperrors.ErrAlreadyDisabled)
	s.Equal(before, s.auditCount())
}

func (s *ServicesTestSuite) TestOffboardEmployee_AlreadyDisabledSeed() {
	before := s.auditCount()
	_, err := s.svc.Directory.OffboardEmployee(s.ctx, adminActor, "5")
	s.ErrorIs(err, apperrors.ErrAlreadyDisabled)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Equal(before, s.auditCount())

	_, err = s.svc.Directory.OffboardEmployee(s.ctx, adminActor, "404")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ServicesTestSuite) TestAssignRole() {
	s.Require().NoError(s.svc.Directory.AssignRole(s.ctx, adminActor, "4", dto.AssignRoleRequest{Role: "Editor"}))
	detail, err := s.svc.Directory.GetEmployeeDetail(s.ctx, "4")
	s.Require().NoError(err)
	s.Require().NotNil(detail.Role)
	s.Equal("Editor", *detail.Role)
	s.Equal("Role changed from 'none' to 'Editor'", s.latestAudit().Details)

	s.Require().NoError(s.svc.Directory.AssignRole(s.ctx, adminActor, "4", dto.AssignRoleRequest{Role: "Owner", ApplicationID: ptr("app10")}))
	entry := s.latestAudit()
	s.Equal(domain.ActionRoleChanged, entry.Action)
	s.Equal("Role changed from 'Manager' to 'Owner'", entry.Details)
	s.Require().NotNil(entry.TargetApp)
	s.Equal("Mailchimp", *entry.TargetApp)

	grant, err := s.repos.EmployeeRepo.FindGrant(s.ctx, "4", "app10")
	s.Require().NoError(err)
	s.Equal("Owner", grant.Role)

	err = s.svc.Directory.AssignRole(s.ctx, adminActor, "4", dto.AssignRoleRequest{Role: "Owner", ApplicationID: ptr("app2")})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ServicesTestSuite) TestRevokeGrant() {
	s.Require().NoError(s.svc.Directory.RevokeGrant(s.ctx, adminActor, "3", "app8"))

	_, err := s.repos.EmployeeRepo.FindGrant(s.ctx, "3", "app8")
	s.ErrorIs(err, apperrors.ErrNotFound)

	entry := s.latestAudit()
	s.Equal(domain.ActionAccessRevoked, entry.Action)
	s.Equal("Michael Brown", *entry.TargetUser)
	s.Equal("QuickBooks", *entry.TargetApp)

	s.ErrorIs(s.svc.Directory.RevokeGrant(s.ctx, adminActor, "3", "app8"), apperrors.ErrNotFound)
}

func TestDirectoryService_AuditFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(loadFixtures(t))
	repos := memory.NewRepositoryProvider(store, memory.NewSessionRepository(""))

	auditRepo := new(MockAuditRepository)
	auditRepo.On("AppendAuditEntry", mock.Anything, mock.Anything).Return(errAuditDown)
	auditSvc := services.NewAuditService(auditRepo)
	svc := services.NewDirectoryService(repos.Tx, repos.EmployeeRepo, repos.ApplicationRepo, auditSvc)

	_, err := svc.OffboardEmployee(ctx, adminActor, "1")
	require.ErrorIs(t, err, errAuditDown)

	employee, err := repos.EmployeeRepo.FindEmployeeByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.EmployeeActive, employee.Status)
	grants, err := repos.EmployeeRepo.FindGrantsByEmployee(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, grants, 5)

	_, err = svc.CreateEmployee(ctx, adminActor, dto.CreateEmployeeRequest{
		Name: "Rolled Back", Email: "rb@example.com", Department: "Ops", Title: "Ops",
	})
	require.ErrorIs(t, err, errAuditDown)
	found, err := repos.EmployeeRepo.FindEmployees(ctx, "rolled back")
	require.NoError(t, err)
	assert.Empty(t, found)

	require.ErrorIs(t, svc.RevokeGrant(ctx, adminActor, "1", "app1"), errAuditDown)
	_, err = repos.EmployeeRepo.FindGrant(ctx, "1", "app1")
	assert.NoError(t, err)

	auditRepo.AssertNumberOfCalls(t, "AppendAuditEntry", 3)
}

func TestDirectoryService_SupersededSearch(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(loadFixtures(t), memory.WithLatency(300*time.Millisecond))
	repos := memory.NewRepositoryProvider(store, memory.NewSessionRepository(""))
	svc := services.NewDirectoryService(repos.Tx, repos.EmployeeRepo, repos.ApplicationRepo, services.NewAuditService(repos.AuditRepo))

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = svc.ListEmployees(ctx, adminActor, "a")
	}()

	time.Sleep(50 * time.Millisecond)
	latest, err := svc.ListEmployees(ctx, adminActor, "finance")
	wg.Wait()

	require.NoError(t, err)
	assert.Len(t, latest, 1)
	assert.ErrorIs(t, firstErr, apperrors.ErrSuperseded)

	other, err := svc.ListEmployees(ctx, userActor, "")
	require.NoError(t, err)
	assert.Len(t, other, 6, "searches of other identities are independent")
}
