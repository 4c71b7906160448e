package services

import (
	"context"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
)

type authorizationService struct {
	sessions portssvc.SessionSvc
}

// NewAuthorizationService creates the navigation gate. Navigation reports
// loading until sessions has finished restoring.
func NewAuthorizationService(sessions portssvc.SessionSvc) portssvc.AuthorizationSvc {
	return &authorizationService{sessions: sessions}
}

func (s *authorizationService) CanAccess(route string, identity *domain.Identity) bool {
	return domain.CanAccess(route, identity)
}

func (s *authorizationService) Navigate(ctx context.Context, target string, identity *domain.Identity) domain.NavigationDecision {
	policy := domain.PolicyFor(target)
	decision := domain.NavigationDecision{Target: policy.Path}

	switch {
	case !s.sessions.Ready():
		decision.State = domain.NavigationLoading
	case policy.Allows(identity):
		decision.State = domain.NavigationAuthorized
	case identity == nil:
		decision.State = domain.NavigationUnauthenticated
		decision.RedirectTo = strPtr(domain.LoginRoute)
	default:
		decision.State = domain.NavigationForbidden
		decision.RedirectTo = strPtr(domain.DefaultRoute)
	}
	return decision
}
