package pgsql

import (
	portsrepo "github.com/SscSPs/access_governance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL repositories. The login table and
// sessions are not stored in the database; credentials and sessions supply them.
func NewRepositoryProvider(dbPool *pgxpool.Pool, credentials portsrepo.CredentialReader, sessions portsrepo.SessionRepositoryFacade) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Tx:               &BaseRepository{Pool: dbPool},
		CredentialRepo:   credentials,
		SessionRepo:      sessions,
		EmployeeRepo:     newPgxEmployeeRepository(dbPool),
		ApplicationRepo:  newPgxApplicationRepository(dbPool),
		RequestRepo:      newPgxAccessRequestRepository(dbPool),
		AuditRepo:        newPgxAuditRepository(dbPool),
		SubscriptionRepo: newPgxSubscriptionRepository(dbPool),
	}
}
