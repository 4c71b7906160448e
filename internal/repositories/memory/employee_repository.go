package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
)

type employeeRepository struct {
	store *Store
}

func newEmployeeRepository(store *Store) portsrepo.EmployeeRepositoryFacade {
	return &employeeRepository{store: store}
}

var _ portsrepo.EmployeeRepositoryFacade = (*employeeRepository)(nil)

// indexOf returns the position of employeeID in the directory, or -1. Callers hold mu.
func (r *employeeRepository) indexOf(employeeID string) int {
	return position(r.store.employeeIdx, employeeID)
}

func (r *employeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	if err := r.store.wait(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i := r.indexOf(employeeID)
	if i < 0 {
		return nil, apperrors.ErrNotFound
	}
	emp := r.store.employees[i]
	return &emp, nil
}

func (r *employeeRepository) FindEmployees(ctx context.Context, query string) ([]domain.Employee, error) {
	if err := r.store.wait(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := []domain.Employee{}
	for _, e := range r.store.employees {
		if e.Matches(query) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *employeeRepository) CountEmployeesByStatus(ctx context.Context) (map[domain.EmployeeStatus]int, error) {
	if err := r.store.wait(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[domain.EmployeeStatus]int, 3)
	for _, e := range r.store.employees {
		counts[e.Status]++
	}
	return counts, nil
}

func (r *employeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	return r.store.write(ctx, func() (func(), error) {
		if r.indexOf(employee.ID) >= 0 {
			return nil, fmt.Errorf("employee %s: %w", employee.ID, apperrors.ErrDuplicate)
		}
		r.store.employees = appendByID(r.store.employees, r.store.employeeIdx, employee, employeeKey)
		return func() {
			r.store.employees = removeByID(r.store.employees, r.store.employeeIdx, employee.ID, employeeKey)
		}, nil
	})
}

func (r *employeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	return r.store.write(ctx, func() (func(), error) {
		i := r.indexOf(employee.ID)
		if i < 0 {
			return nil, fmt.Errorf("employee %s: %w", employee.ID, apperrors.ErrNotFound)
		}
		prev := r.store.employees[i]
		r.store.employees[i] = employee
		return func() {
			if j := r.indexOf(prev.ID); j >= 0 {
				r.store.employees[j] = prev
			}
		}, nil
	})
}

func (r *employeeRepository) FindGrantsByEmployee(ctx context.Context, employeeID string) ([]domain.Grant, error) {
	if err := r.store.wait(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Grant, len(r.store.grants[employeeID]))
	copy(out, r.store.grants[employeeID])
	return out, nil
}

func (r *employeeRepository) FindGrant(ctx context.Context, employeeID, applicationID string) (*domain.Grant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, g := range r.store.grants[employeeID] {
		if g.ApplicationID == applicationID {
			grant := g
			return &grant, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *employeeRepository) CountGrantedApplications(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	apps := make(map[string]struct{})
	for _, grants := range r.store.grants {
		for _, g := range grants {
			apps[g.ApplicationID] = struct{}{}
		}
	}
	return len(apps), nil
}

// restoreGrants returns a compensation that puts back the previous grant list of employeeID.
func (r *employeeRepository) restoreGrants(employeeID string) func() {
	prev, existed := r.store.grants[employeeID]
	prev = slices.Clone(prev)
	return func() {
		if existed {
			r.store.grants[employeeID] = prev
		} else {
			delete(r.store.grants, employeeID)
		}
	}
}

func (r *employeeRepository) UpsertGrant(ctx context.Context, grant domain.Grant) error {
	return r.store.write(ctx, func() (func(), error) {
		undo := r.restoreGrants(grant.EmployeeID)
		grants := r.store.grants[grant.EmployeeID]
		if i := slices.IndexFunc(grants, func(g domain.Grant) bool { return g.ApplicationID == grant.ApplicationID }); i >= 0 {
			next := slices.Clone(grants)
			next[i] = grant
			r.store.grants[grant.EmployeeID] = next
		} else {
			r.store.grants[grant.EmployeeID] = append(slices.Clone(grants), grant)
		}
		return undo, nil
	})
}

func (r *employeeRepository) DeleteGrant(ctx context.Context, employeeID, applicationID string) error {
	return r.store.write(ctx, func() (func(), error) {
		grants := r.store.grants[employeeID]
		i := slices.IndexFunc(grants, func(g domain.Grant) bool { return g.ApplicationID == applicationID })
		if i < 0 {
			return nil, fmt.Errorf("grant %s/%s: %w", employeeID, applicationID, apperrors.ErrNotFound)
		}
		undo := r.restoreGrants(employeeID)
		r.store.grants[employeeID] = slices.Delete(slices.Clone(grants), i, i+1)
		return undo, nil
	})
}

func (r *employeeRepository) DeleteGrantsByEmployee(ctx context.Context, employeeID string) (int, error) {
	var removed int
	err := r.store.write(ctx, func() (func(), error) {
		removed = len(r.store.grants[employeeID])
		if removed == 0 {
			return nil, nil
		}
		undo := r.restoreGrants(employeeID)
		delete(r.store.grants, employeeID)
		return undo, nil
	})
	return removed, err
}

type applicationRepository struct {
	store *Store
}

func newApplicationRepository(store *Store) portsrepo.ApplicationReader {
	return &applicationRepository{store: store}
}

func (r *applicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, app := range r.store.applications {
		if app.ID == applicationID {
			a := app
			return &a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *applicationRepository) FindApplications(ctx context.Context) ([]domain.Application, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]domain.Application{}, r.store.applications...), nil
}

type credentialRepository struct {
	store *Store
}

func newCredentialRepository(store *Store) portsrepo.CredentialReader {
	return &credentialRepository{store: store}
}

func (r *credentialRepository) FindCredentialByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.credentials[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}
