// Package memory implements the repository ports on top of an in-process store.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	"github.com/SscSPs/access_governance_app/internal/seed"
	"github.com/SscSPs/access_governance_app/internal/utils"
)

type txKey struct{}

// undoLog collects the compensations of every write made inside one unit of work.
type undoLog struct {
	undo []func()
}

// Store holds the directory, the access request ledger, the audit log and
// the read-only catalog data. Writers are serialized by txMu; mu guards the data.
// Employees, requests and audit entries keep insertion order and are indexed by id.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	latency time.Duration

	credentials   map[string]domain.Credential
	applications  []domain.Application
	employees     []domain.Employee
	employeeIdx   map[string]int
	grants        map[string][]domain.Grant
	requests      []domain.AccessRequest
	requestIdx    map[string]int
	audit         []domain.AuditEntry
	auditIdx      map[string]int
	subscriptions []domain.Subscription
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLatency delays every directory and ledger read made outside a unit of work.
func WithLatency(d time.Duration) StoreOption {
	return func(s *Store) {
		s.latency = d
	}
}

// NewStore returns a store pre-populated with fixtures. A nil fixtures value gives an empty store.
func NewStore(fixtures *seed.Fixtures, opts ...StoreOption) *Store {
	s := &Store{
		credentials: make(map[string]domain.Credential),
		employeeIdx: make(map[string]int),
		grants:      make(map[string][]domain.Grant),
		requestIdx:  make(map[string]int),
		auditIdx:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	if fixtures == nil {
		return s
	}

	for _, c := range fixtures.Credentials {
		s.credentials[c.Email] = c
	}
	s.applications = append(s.applications, fixtures.Applications...)
	s.employees = append(s.employees, fixtures.Employees...)
	for _, g := range fixtures.Grants {
		s.grants[g.EmployeeID] = append(s.grants[g.EmployeeID], g)
	}
	s.requests = append(s.requests, fixtures.AccessRequests...)
	s.audit = append(s.audit, fixtures.AuditLog...)
	s.subscriptions = append(s.subscriptions, fixtures.Subscriptions...)

	s.employeeIdx = indexByID(s.employees, employeeKey)
	s.requestIdx = indexByID(s.requests, requestKey)
	s.auditIdx = indexByID(s.audit, auditKey)
	return s
}

func employeeKey(e domain.Employee) string     { return e.ID }
func requestKey(r domain.AccessRequest) string { return r.ID }
func auditKey(e domain.AuditEntry) string      { return e.ID }

// indexByID maps the id of every item to its position.
func indexByID[T any](items []T, key func(T) string) map[string]int {
	idx := make(map[string]int, len(items))
	for i, item := range items {
		idx[key(item)] = i
	}
	return idx
}

// position returns the index of id, or -1.
func position(idx map[string]int, id string) int {
	if i, ok := idx[id]; ok {
		return i
	}
	return -1
}

func appendByID[T any](items []T, idx map[string]int, item T, key func(T) string) []T {
	idx[key(item)] = len(items)
	return append(items, item)
}

// removeByID deletes the item with id and shifts the positions of the items after it.
func removeByID[T any](items []T, idx map[string]int, id string, key func(T) string) []T {
	i, ok := idx[id]
	if !ok {
		return items
	}
	items = slices.Delete(items, i, i+1)
	delete(idx, id)
	for j := i; j < len(items); j++ {
		idx[key(items[j])] = j
	}
	return items
}

var _ portsrepo.TransactionManager = (*Store)(nil)

// WithinTx runs fn as one unit of work. Nested calls join the outer unit.
// When fn fails every write made through its context is undone in reverse order.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*undoLog); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		s.mu.Lock()
		for i := len(log.undo) - 1; i >= 0; i-- {
			log.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

func inTx(ctx context.Context) (*undoLog, bool) {
	log, ok := ctx.Value(txKey{}).(*undoLog)
	return log, ok
}

// write applies op under the data lock. op returns the compensation of its
// change, or an error if nothing was changed.
func (s *Store) write(ctx context.Context, op func() (func(), error)) error {
	log, ok := inTx(ctx)
	if !ok {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	undo, err := op()
	if err != nil {
		return err
	}
	if ok && undo != nil {
		log.undo = append(log.undo, undo)
	}
	return nil
}

// wait applies the configured read latency. Reads inside a unit of work are not delayed.
func (s *Store) wait(ctx context.Context) error {
	if _, ok := inTx(ctx); ok {
		return ctx.Err()
	}
	return utils.Sleep(ctx, s.latency)
}

// NewRepositoryProvider wires every repository port to store and sessions.
func NewRepositoryProvider(store *Store, sessions *SessionRepository) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Tx:               store,
		CredentialRepo:   newCredentialRepository(store),
		SessionRepo:      sessions,
		EmployeeRepo:     newEmployeeRepository(store),
		ApplicationRepo:  newApplicationRepository(store),
		RequestRepo:      newAccessRequestRepository(store),
		AuditRepo:        newAuditRepository(store),
		SubscriptionRepo: newSubscriptionRepository(store),
	}
}
