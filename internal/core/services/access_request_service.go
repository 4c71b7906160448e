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
	"github.com/SscSPs/access_governance_app/internal/platform/metrics"
	"github.com/google/uuid"
)

// accessRequestService implements the access request ledger.
type accessRequestService struct {
	BaseService
	tx           portsrepo.TransactionManager
	requestRepo  portsrepo.AccessRequestRepositoryFacade
	employeeRepo portsrepo.EmployeeRepositoryFacade
	appRepo      portsrepo.ApplicationReader
	auditSvc     portssvc.AuditSvc
}

// AccessRequestOption is a functional option for configuring the ledger service
type AccessRequestOption func(*accessRequestService)

// WithAccessRequestClock replaces the clock used to stamp requests and decisions.
func WithAccessRequestClock(clock func() time.Time) AccessRequestOption {
	return func(s *accessRequestService) {
		s.Clock = clock
	}
}

// NewAccessRequestService creates a new AccessRequestService.
func NewAccessRequestService(
	tx portsrepo.TransactionManager,
	requestRepo portsrepo.AccessRequestRepositoryFacade,
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	appRepo portsrepo.ApplicationReader,
	auditSvc portssvc.AuditSvc,
	options ...AccessRequestOption,
) portssvc.AccessRequestSvcFacade {
	svc := &accessRequestService{
		tx:           tx,
		requestRepo:  requestRepo,
		employeeRepo: employeeRepo,
		appRepo:      appRepo,
		auditSvc:     auditSvc,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccessRequestSvcFacade = (*accessRequestService)(nil)

func (s *accessRequestService) GetAccessRequest(ctx context.Context, requestID string) (*domain.AccessRequest, error) {
	req, err := s.requestRepo.FindAccessRequestByID(ctx, requestID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get access request", slog.String("request_id", requestID))
		}
		return nil, err
	}
	return req, nil
}

func (s *accessRequestService) ListAccessRequests(ctx context.Context, view domain.AccessRequestView) ([]domain.AccessRequest, error) {
	return s.list(ctx, domain.AccessRequestFilter{View: view})
}

func (s *accessRequestService) ListPending(ctx context.Context) ([]domain.AccessRequest, error) {
	return s.list(ctx, domain.AccessRequestFilter{View: domain.AccessRequestViewPending})
}

func (s *accessRequestService) ListProcessed(ctx context.Context) ([]domain.AccessRequest, error) {
	return s.list(ctx, domain.AccessRequestFilter{View: domain.AccessRequestViewProcessed})
}

func (s *accessRequestService) ListForEmployee(ctx context.Context, employeeID string) ([]domain.AccessRequest, error) {
	return s.list(ctx, domain.AccessRequestFilter{View: domain.AccessRequestViewAll, EmployeeID: &employeeID})
}

func (s *accessRequestService) list(ctx context.Context, filter domain.AccessRequestFilter) ([]domain.AccessRequest, error) {
	if filter.View == "" {
		filter.View = domain.AccessRequestViewAll
	}
	requests, err := s.requestRepo.FindAccessRequests(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list access requests", slog.String("view", string(filter.View)))
		return nil, err
	}
	return requests, nil
}

func (s *accessRequestService) Submit(ctx context.Context, requester domain.Identity, req dto.SubmitAccessRequest) (*domain.AccessRequest, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	if requester.EmployeeID == nil {
		return nil, fmt.Errorf("%w: requester is not linked to a directory record", apperrors.ErrValidation)
	}

	var created *domain.AccessRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		employee, err := s.employeeRepo.FindEmployeeByID(ctx, *requester.EmployeeID)
		if err != nil {
			return err
		}
		app, err := s.appRepo.FindApplicationByID(ctx, req.ApplicationID)
		if err != nil {
			return err
		}

		request := domain.AccessRequest{
			ID:              uuid.NewString(),
			UserID:          employee.ID,
			UserName:        employee.Name,
			UserEmail:       employee.Email,
			UserAvatarURL:   employee.AvatarURL,
			ApplicationID:   app.ID,
			ApplicationName: app.Name,
			ApplicationIcon: app.Icon,
			RequestedRole:   req.RequestedRole,
			Justification:   req.Reason,
			RequestDate:     s.Now(),
			Status:          domain.AccessRequestPending,
		}
		if err := s.requestRepo.SaveAccessRequest(ctx, request); err != nil {
			return err
		}
		if _, err := s.auditSvc.Record(ctx, requester, domain.ActionAccessRequestCreated,
			domain.AuditTarget{User: strPtr(employee.Name), App: strPtr(app.Name)},
			fmt.Sprintf("Requested %s access to %s", request.RequestedRole, app.Name)); err != nil {
			return err
		}
		created = &request
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to submit access request", slog.String("application_id", req.ApplicationID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Access request submitted", slog.String("request_id", created.ID))
	return created, nil
}

func (s *accessRequestService) Decide(ctx context.Context, actor domain.Identity, requestID string, req dto.DecideAccessRequest) (*domain.AccessRequest, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	decision := domain.AccessRequestDecision{
		Outcome:   req.Outcome,
		DecidedBy: actor.Name,
		DecidedAt: s.Now(),
	}
	action := domain.ActionAccessRequestApproved
	verb := "Approved"
	if req.Outcome == domain.AccessRequestDenied {
		decision.Reason = req.Reason
		action = domain.ActionAccessRequestDenied
		verb = "Denied"
	}

	var decided *domain.AccessRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		updated, err := s.requestRepo.DecideAccessRequest(ctx, requestID, decision)
		if err != nil {
			return err
		}
		if updated.Status == domain.AccessRequestApproved {
			if err := s.grantApproved(ctx, updated, decision.DecidedAt); err != nil {
				return err
			}
		}
		if _, err := s.auditSvc.Record(ctx, actor, action,
			domain.AuditTarget{User: strPtr(updated.UserName), App: strPtr(updated.ApplicationName)},
			fmt.Sprintf("%s request for %s access to %s", verb, updated.RequestedRole, updated.ApplicationName)); err != nil {
			return err
		}
		decided = updated
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to decide access request", slog.String("request_id", requestID))
		}
		return nil, err
	}

	metrics.AccessRequestsDecided.WithLabelValues(string(decided.Status)).Inc()
	s.LogInfo(ctx, "Access request decided", slog.String("request_id", requestID), slog.String("outcome", string(decided.Status)))
	return decided, nil
}

// grantApproved gives the requesting employee the approved access. A grant
// for the same application is replaced.
func (s *accessRequestService) grantApproved(ctx context.Context, req *domain.AccessRequest, at time.Time) error {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, req.UserID)
	if err != nil {
		return err
	}
	if employee.Status == domain.EmployeeDisabled {
		return apperrors.ErrEmployeeDisabled
	}

	grant := domain.Grant{
		EmployeeID:      employee.ID,
		ApplicationID:   req.ApplicationID,
		ApplicationName: req.ApplicationName,
		Icon:            req.ApplicationIcon,
		Role:            req.RequestedRole,
		GrantedAt:       at,
	}
	app, err := s.appRepo.FindApplicationByID(ctx, req.ApplicationID)
	switch {
	case err == nil:
		grant.ApplicationType = app.Type
	case !errors.Is(err, apperrors.ErrNotFound):
		return err
	}
	return s.employeeRepo.UpsertGrant(ctx, grant)
}
