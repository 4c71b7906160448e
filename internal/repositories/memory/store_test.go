package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	"github.com/SscSPs/access_governance_app/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var errBoom = errors.New("boom")

type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store
	repos portsrepo.RepositoryProvider
}

func (s *StoreTestSuite) SetupTest() {
	fixtures, err := seed.Load()
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.store = NewStore(fixtures)
	s.repos = NewRepositoryProvider(s.store, NewSessionRepository(""))
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) TestFindEmployees_Search() {
	all, err := s.repos.EmployeeRepo.FindEmployees(s.ctx, "  ")
	s.Require().NoError(err)
	s.Len(all, 6)
	s.Equal("1", all[0].ID)

	finance, err := s.repos.EmployeeRepo.FindEmployees(s.ctx, "FINANCE")
	s.Require().NoError(err)
	s.Require().Len(finance, 1)
	s.Equal("Michael Brown", finance[0].Name)

	none, err := s.repos.EmployeeRepo.FindEmployees(s.ctx, "zzz")
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *StoreTestSuite) TestSaveEmployee_Duplicate() {
	err := s.repos.EmployeeRepo.SaveEmployee(s.ctx, domain.Employee{ID: "1"})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	err = s.repos.EmployeeRepo.UpdateEmployee(s.ctx, domain.Employee{ID: "missing"})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestCountEmployeesByStatus() {
	counts, err := s.repos.EmployeeRepo.CountEmployeesByStatus(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, counts[domain.EmployeeActive])
	s.Equal(1, counts[domain.EmployeePending])
	s.Equal(1, counts[domain.EmployeeDisabled])

	apps, err := s.repos.EmployeeRepo.CountGrantedApplications(s.ctx)
	s.Require().NoError(err)
	s.Equal(13, apps)
}

func (s *StoreTestSuite) TestGrants_UpsertAndDelete() {
	repo := s.repos.EmployeeRepo

	s.Require().NoError(repo.UpsertGrant(s.ctx, domain.Grant{EmployeeID: "1", ApplicationID: "app1", Role: "Admin"}))
	g, err := repo.FindGrant(s.ctx, "1", "app1")
	s.Require().NoError(err)
	s.Equal("Admin", g.Role)

	s.Require().NoError(repo.UpsertGrant(s.ctx, domain.Grant{EmployeeID: "5", ApplicationID: "app2", Role: "Viewer"}))
	grants, err := repo.FindGrantsByEmployee(s.ctx, "5")
	s.Require().NoError(err)
	s.Len(grants, 1)

	s.ErrorIs(repo.DeleteGrant(s.ctx, "1", "app9"), apperrors.ErrNotFound)
	s.Require().NoError(repo.DeleteGrant(s.ctx, "1", "app1"))
	_, err = repo.FindGrant(s.ctx, "1", "app1")
	s.ErrorIs(err, apperrors.ErrNotFound)

	n, err := repo.DeleteGrantsByEmployee(s.ctx, "2")
	s.Require().NoError(err)
	s.Equal(4, n)
	n, err = repo.DeleteGrantsByEmployee(s.ctx, "2")
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *StoreTestSuite) TestWithinTx_RollsBackEveryWrite() {
	before, err := s.repos.EmployeeRepo.FindEmployeeByID(s.ctx, "3")
	s.Require().NoError(err)

	err = s.repos.Tx.WithinTx(s.ctx, func(ctx context.Context) error {
		updated := *before
		updated.Status = domain.EmployeeDisabled
		if err := s.repos.EmployeeRepo.UpdateEmployee(ctx, updated); err != nil {
			return err
		}
		if _, err := s.repos.EmployeeRepo.DeleteGrantsByEmployee(ctx, "3"); err != nil {
			return err
		}
		if err := s.repos.EmployeeRepo.SaveEmployee(ctx, domain.Employee{ID: "new"}); err != nil {
			return err
		}
		if err := s.repos.AuditRepo.AppendAuditEntry(ctx, domain.AuditEntry{ID: "tx-entry", Timestamp: time.Now()}); err != nil {
			return err
		}
		if _, err := s.repos.RequestRepo.DecideAccessRequest(ctx, "req1", domain.AccessRequestDecision{Outcome: domain.AccessRequestDenied}); err != nil {
			return err
		}
		return errBoom
	})
	s.ErrorIs(err, errBoom)

	after, err := s.repos.EmployeeRepo.FindEmployeeByID(s.ctx, "3")
	s.Require().NoError(err)
	s.Equal(domain.EmployeeActive, after.Status)

	grants, err := s.repos.EmployeeRepo.FindGrantsByEmployee(s.ctx, "3")
	s.Require().NoError(err)
	s.Len(grants, 4)

	_, err = s.repos.EmployeeRepo.FindEmployeeByID(s.ctx, "new")
	s.ErrorIs(err, apperrors.ErrNotFound)

	entries, err := s.repos.AuditRepo.FindAuditEntries(s.ctx, domain.AuditQuery{})
	s.Require().NoError(err)
	s.Len(entries, 5)

	req, err := s.repos.RequestRepo.FindAccessRequestByID(s.ctx, "req1")
	s.Require().NoError(err)
	s.Equal(domain.AccessRequestPending, req.Status)
}

func (s *StoreTestSuite) TestIndexes_FollowWritesAndRollback() {
	err := s.repos.Tx.WithinTx(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.repos.EmployeeRepo.SaveEmployee(ctx, domain.Employee{ID: "tmp-1"}))
		s.Require().NoError(s.repos.EmployeeRepo.SaveEmployee(ctx, domain.Employee{ID: "tmp-2"}))
		s.Require().NoError(s.repos.RequestRepo.SaveAccessRequest(ctx, domain.AccessRequest{ID: "tmp-req", Status: domain.AccessRequestPending}))
		s.Require().NoError(s.repos.AuditRepo.AppendAuditEntry(ctx, domain.AuditEntry{ID: "tmp-entry", Timestamp: time.Now()}))
		return errBoom
	})
	s.ErrorIs(err, errBoom)
	s.assertIndexesConsistent()

	// Ids withdrawn by the rollback can be written again.
	s.NoError(s.repos.EmployeeRepo.SaveEmployee(s.ctx, domain.Employee{ID: "tmp-2", Name: "Second"}))
	s.NoError(s.repos.RequestRepo.SaveAccessRequest(s.ctx, domain.AccessRequest{ID: "tmp-req", Status: domain.AccessRequestPending}))
	s.NoError(s.repos.AuditRepo.AppendAuditEntry(s.ctx, domain.AuditEntry{ID: "tmp-entry", Timestamp: time.Now()}))
	s.ErrorIs(s.repos.AuditRepo.AppendAuditEntry(s.ctx, domain.AuditEntry{ID: "tmp-entry"}), apperrors.ErrDuplicate)
	s.assertIndexesConsistent()

	emp, err := s.repos.EmployeeRepo.FindEmployeeByID(s.ctx, "tmp-2")
	s.Require().NoError(err)
	s.Equal("Second", emp.Name)

	_, err = s.repos.EmployeeRepo.FindEmployeeByID(s.ctx, "tmp-1")
	s.ErrorIs(err, apperrors.ErrNotFound)

	decided, err := s.repos.RequestRepo.DecideAccessRequest(s.ctx, "tmp-req", domain.AccessRequestDecision{Outcome: domain.AccessRequestApproved})
	s.Require().NoError(err)
	s.Equal(domain.AccessRequestApproved, decided.Status)
}

func (s *StoreTestSuite) assertIndexesConsistent() {
	s.Require().Len(s.store.employeeIdx, len(s.store.employees))
	for i, e := range s.store.employees {
		s.Equal(i, s.store.employeeIdx[e.ID], e.ID)
	}
	s.Require().Len(s.store.requestIdx, len(s.store.requests))
	for i, r := range s.store.requests {
		s.Equal(i, s.store.requestIdx[r.ID], r.ID)
	}
	s.Require().Len(s.store.auditIdx, len(s.store.audit))
	for i, e := range s.store.audit {
		s.Equal(i, s.store.auditIdx[e.ID], e.ID)
	}
}

func TestRemoveByID_ShiftsLaterPositions(t *testing.T) {
	items := []domain.Employee{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	idx := indexByID(items, employeeKey)

	items = removeByID(items, idx, "a", employeeKey)
	assert.Equal(t, map[string]int{"b": 0, "c": 1}, idx)
	assert.Equal(t, "b", items[0].ID)

	items = removeByID(items, idx, "missing", employeeKey)
	assert.Len(t, items, 2)
	assert.Equal(t, -1, position(idx, "a"))
}

func (s *StoreTestSuite) TestWithinTx_NestedJoinsOuter() {
	err := s.repos.Tx.WithinTx(s.ctx, func(ctx context.Context) error {
		inner := s.repos.Tx.WithinTx(ctx, func(ctx context.Context) error {
			return s.repos.EmployeeRepo.SaveEmployee(ctx, domain.Employee{ID: "nested"})
		})
		s.Require().NoError(inner)
		return errBoom
	})
	s.ErrorIs(err, errBoom)

	_, err = s.repos.EmployeeRepo.FindEmployeeByID(s.ctx, "nested")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestDecideAccessRequest_OnlyOnce() {
	decision := domain.AccessRequestDecision{Outcome: domain.AccessRequestApproved, DecidedBy: "Admin User", DecidedAt: time.Now()}

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repos.RequestRepo.DecideAccessRequest(s.ctx, "req2", decision)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, conflicts int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperrors.ErrAlreadyDecided):
			conflicts++
		}
	}
	s.Equal(1, ok)
	s.Equal(7, conflicts)

	_, err := s.repos.RequestRepo.DecideAccessRequest(s.ctx, "nope", decision)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestFindAccessRequests_Views() {
	_, err := s.repos.RequestRepo.DecideAccessRequest(s.ctx, "req1", domain.AccessRequestDecision{Outcome: domain.AccessRequestDenied})
	s.Require().NoError(err)

	pending, err := s.repos.RequestRepo.FindAccessRequests(s.ctx, domain.AccessRequestFilter{View: domain.AccessRequestViewPending})
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal("req3", pending[0].ID, "newest first")

	processed, err := s.repos.RequestRepo.FindAccessRequests(s.ctx, domain.AccessRequestFilter{View: domain.AccessRequestViewProcessed})
	s.Require().NoError(err)
	s.Require().Len(processed, 1)
	s.Equal("req1", processed[0].ID)

	employee := "6"
	own, err := s.repos.RequestRepo.FindAccessRequests(s.ctx, domain.AccessRequestFilter{View: domain.AccessRequestViewAll, EmployeeID: &employee})
	s.Require().NoError(err)
	s.Require().Len(own, 1)
	s.Equal("req3", own[0].ID)
}

func (s *StoreTestSuite) TestFindAuditEntries_NewestFirstWithCursor() {
	entries, err := s.repos.AuditRepo.FindAuditEntries(s.ctx, domain.AuditQuery{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("log1", entries[0].ID)
	s.Equal("log2", entries[1].ID)

	cursor := domain.AuditCursor{Timestamp: entries[1].Timestamp, ID: entries[1].ID}
	rest, err := s.repos.AuditRepo.FindAuditEntries(s.ctx, domain.AuditQuery{Before: &cursor})
	s.Require().NoError(err)
	s.Require().Len(rest, 3)
	s.Equal("log3", rest[0].ID)

	s.ErrorIs(s.repos.AuditRepo.AppendAuditEntry(s.ctx, domain.AuditEntry{ID: "log1"}), apperrors.ErrDuplicate)
}

func (s *StoreTestSuite) TestCatalogAndCredentials() {
	app, err := s.repos.ApplicationRepo.FindApplicationByID(s.ctx, "app4")
	s.Require().NoError(err)
	s.Equal("AWS Console", app.Name)

	_, err = s.repos.ApplicationRepo.FindApplicationByID(s.ctx, "app99")
	s.ErrorIs(err, apperrors.ErrNotFound)

	cred, err := s.repos.CredentialRepo.FindCredentialByEmail(s.ctx, "admin@example.com")
	s.Require().NoError(err)
	s.Equal(domain.RoleAdmin, cred.Role)

	_, err = s.repos.CredentialRepo.FindCredentialByEmail(s.ctx, "ADMIN@example.com")
	s.ErrorIs(err, apperrors.ErrNotFound, "email match is exact")

	subs, err := s.repos.SubscriptionRepo.FindSubscriptions(s.ctx)
	s.Require().NoError(err)
	s.Len(subs, 7)
}

func TestStore_LatencyHonorsContext(t *testing.T) {
	store := NewStore(nil, WithLatency(time.Hour))
	repo := newEmployeeRepository(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := repo.FindEmployees(ctx, "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Reads inside a unit of work are not delayed.
	err = store.WithinTx(context.Background(), func(ctx context.Context) error {
		_, err := repo.FindEmployees(ctx, "")
		return err
	})
	assert.NoError(t, err)
}

func TestSessionRepository_Snapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	ctx := context.Background()

	repo := NewSessionRepository(path)
	assert.False(t, repo.Ready())
	n, err := repo.Restore(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, repo.Ready())

	live := domain.Session{ID: "s1", Identity: domain.Identity{ID: "admin1", Role: domain.RoleAdmin}, ExpiresAt: time.Now().Add(time.Hour)}
	expired := domain.Session{ID: "s2", ExpiresAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.SaveSession(ctx, live))
	require.NoError(t, repo.SaveSession(ctx, expired))

	restarted := NewSessionRepository(path)
	n, err = restarted.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := restarted.FindSessionByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "admin1", got.Identity.ID)

	require.NoError(t, restarted.DeleteSession(ctx, "s1"))
	require.NoError(t, restarted.DeleteSession(ctx, "unknown"))

	again := NewSessionRepository(path)
	n, err = again.Restore(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSessionRepository_MalformedSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	repo := NewSessionRepository(path)
	n, err := repo.Restore(context.Background())
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.True(t, repo.Ready())

	_, err = repo.FindSessionByID(context.Background(), "anything")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
