package services

import (
	"context"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/SscSPs/access_governance_app/internal/dto"
)

// AccessRequestReaderSvc defines read operations for the ledger.
type AccessRequestReaderSvc interface {
	GetAccessRequest(ctx context.Context, requestID string) (*domain.AccessRequest, error)
	ListAccessRequests(ctx context.Context, view domain.AccessRequestView) ([]domain.AccessRequest, error)
	ListPending(ctx context.Context) ([]domain.AccessRequest, error)
	ListProcessed(ctx context.Context) ([]domain.AccessRequest, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]domain.AccessRequest, error)
}

// AccessRequestWriterSvc defines audited mutations of the ledger.
type AccessRequestWriterSvc interface {
	// Submit files a pending request on behalf of requester.
	Submit(ctx context.Context, requester domain.Identity, req dto.SubmitAccessRequest) (*domain.AccessRequest, error)

	// Decide applies an admin decision. Returns apperrors.ErrNotFound for unknown
	// ids and apperrors.ErrAlreadyDecided when the request is terminal.
	Decide(ctx context.Context, actor domain.Identity, requestID string, req dto.DecideAccessRequest) (*domain.AccessRequest, error)
}

// AccessRequestSvcFacade combines all ledger service interfaces.
type AccessRequestSvcFacade interface {
	AccessRequestReaderSvc
	AccessRequestWriterSvc
}
