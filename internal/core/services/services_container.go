package services

import (
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/access_governance_app/internal/core/ports/services"
	"github.com/SscSPs/access_governance_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Session service first since the navigation gate depends on it
	container.Session = NewSessionService(cfg, repos.CredentialRepo, repos.SessionRepo)
	container.Authorization = NewAuthorizationService(container.Session)

	// Every audited mutation appends through the same audit service
	container.Audit = NewAuditService(repos.AuditRepo)

	container.Directory = NewDirectoryService(repos.Tx, repos.EmployeeRepo, repos.ApplicationRepo, container.Audit)
	container.AccessRequest = NewAccessRequestService(repos.Tx, repos.RequestRepo, repos.EmployeeRepo, repos.ApplicationRepo, container.Audit)
	container.Spend = NewSpendService(repos.SubscriptionRepo)
	container.Compliance = NewComplianceService(container.Audit, container.Spend)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.SessionSvc             = (*sessionService)(nil)
	_ portssvc.AuthorizationSvc       = (*authorizationService)(nil)
	_ portssvc.DirectorySvcFacade     = (*directoryService)(nil)
	_ portssvc.AccessRequestSvcFacade = (*accessRequestService)(nil)
)
