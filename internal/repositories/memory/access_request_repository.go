package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/access_governance_app/internal/apperrors"
	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
)

type accessRequestRepository struct {
	store *Store
}

func newAccessRequestRepository(store *Store) portsrepo.AccessRequestRepositoryFacade {
	return &accessRequestRepository{store: store}
}

var _ portsrepo.AccessRequestRepositoryFacade = (*accessRequestRepository)(nil)

func (r *accessRequestRepository) indexOf(requestID string) int {
	return position(r.store.requestIdx, requestID)
}

func (r *accessRequestRepository) FindAccessRequestByID(ctx context.Context, requestID string) (*domain.AccessRequest, error) {
	if err := r.store.wait(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i := r.indexOf(requestID)
	if i < 0 {
		return nil, apperrors.ErrNotFound
	}
	req := r.store.requests[i]
	return &req, nil
}

func (r *accessRequestRepository) FindAccessRequests(ctx context.Context, filter domain.AccessRequestFilter) ([]domain.AccessRequest, error) {
	if err := r.store.wait(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := []domain.AccessRequest{}
	for _, req := range r.store.requests {
		if !filter.View.Includes(req.Status) {
			continue
		}
		if filter.EmployeeID != nil && req.UserID != *filter.EmployeeID {
			continue
		}
		out = append(out, req)
	}
	slices.SortStableFunc(out, func(a, b domain.AccessRequest) int {
		if !a.RequestDate.Equal(b.RequestDate) {
			return b.RequestDate.Compare(a.RequestDate)
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *accessRequestRepository) SaveAccessRequest(ctx context.Context, request domain.AccessRequest) error {
	return r.store.write(ctx, func() (func(), error) {
		if r.indexOf(request.ID) >= 0 {
			return nil, fmt.Errorf("access request %s: %w", request.ID, apperrors.ErrDuplicate)
		}
		r.store.requests = appendByID(r.store.requests, r.store.requestIdx, request, requestKey)
		return func() {
			r.store.requests = removeByID(r.store.requests, r.store.requestIdx, request.ID, requestKey)
		}, nil
	})
}

func (r *accessRequestRepository) DecideAccessRequest(ctx context.Context, requestID string, decision domain.AccessRequestDecision) (*domain.AccessRequest, error) {
	var decided domain.AccessRequest
	err := r.store.write(ctx, func() (func(), error) {
		i := r.indexOf(requestID)
		if i < 0 {
			return nil, apperrors.ErrNotFound
		}
		prev := r.store.requests[i]
		if prev.Status != domain.AccessRequestPending {
			return nil, apperrors.ErrAlreadyDecided
		}

		next := prev
		decidedAt := decision.DecidedAt
		decidedBy := decision.DecidedBy
		next.Status = decision.Outcome
		next.Reason = decision.Reason
		next.DecidedBy = &decidedBy
		next.DecidedAt = &decidedAt
		r.store.requests[i] = next
		decided = next

		return func() {
			if j := r.indexOf(requestID); j >= 0 {
				r.store.requests[j] = prev
			}
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &decided, nil
}
