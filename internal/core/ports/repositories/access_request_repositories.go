package repositories

import (
	"context"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
)

// AccessRequestReader defines read operations for the ledger.
type AccessRequestReader interface {
	// FindAccessRequestByID returns apperrors.ErrNotFound for unknown ids.
	FindAccessRequestByID(ctx context.Context, requestID string) (*domain.AccessRequest, error)

	// FindAccessRequests returns the matching requests, newest request first.
	FindAccessRequests(ctx context.Context, filter domain.AccessRequestFilter) ([]domain.AccessRequest, error)
}

// AccessRequestWriter defines write operations for the ledger.
type AccessRequestWriter interface {
	// SaveAccessRequest inserts a new pending request.
	SaveAccessRequest(ctx context.Context, request domain.AccessRequest) error

	// DecideAccessRequest moves a pending request to the decision's outcome.
	// Returns apperrors.ErrNotFound for unknown ids and apperrors.ErrAlreadyDecided
	// when the request is no longer pending.
	DecideAccessRequest(ctx context.Context, requestID string, decision domain.AccessRequestDecision) (*domain.AccessRequest, error)
}

// AccessRequestRepositoryFacade combines all ledger repository interfaces.
type AccessRequestRepositoryFacade interface {
	AccessRequestReader
	AccessRequestWriter
}
