package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/core/services"
	"github.com/SscSPs/access_governance_app/internal/platform/config"
	"github.com/SscSPs/access_governance_app/internal/repositories/memory"
	"github.com/SscSPs/access_governance_app/internal/seed"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var (
	errAuditDown = errors.New("audit store unavailable")
	fixtureClock = func() time.Time { return time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC) }
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "test-issuer",
		JWTExpiryDuration: time.Hour,
	}
}

func loadFixtures(t *testing.T) *seed.Fixtures {
	t.Helper()
	fixtures, err := seed.Load()
	require.NoError(t, err)
	return fixtures
}

var (
	adminActor = domain.Identity{ID: "admin1", Name: "Admin User", Role: domain.RoleAdmin}
	userActor  = domain.Identity{ID: "user1", Name: "Normal User", Role: domain.RoleUser, EmployeeID: ptr("1")}
)

func ptr(s string) *string { return &s }

// ServicesTestSuite runs the services against the seeded in-memory store.
type ServicesTestSuite struct {
	suite.Suite
	ctx   context.Context
	repos portsrepo.RepositoryProvider
	svc   *portssvc.ServiceContainer
}

func (s *ServicesTestSuite) SetupTest() {
	s.ctx = context.Background()
	store := memory.NewStore(loadFixtures(s.T()))
	s.repos = memory.NewRepositoryProvider(store, memory.NewSessionRepository(""))
	s.svc = services.NewServiceContainer(testConfig(), s.repos)
}

func TestServicesTestSuite(t *testing.T) {
	suite.Run(t, new(ServicesTestSuite))
}

func (s *ServicesTestSuite) auditCount() int {
	entries, err := s.repos.AuditRepo.FindAuditEntries(s.ctx, domain.AuditQuery{})
	s.Require().NoError(err)
	return len(entries)
}

func (s *ServicesTestSuite) latestAudit() domain.AuditEntry {
	entries, err := s.repos.AuditRepo.FindAuditEntries(s.ctx, domain.AuditQuery{Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	return entries[0]
}
