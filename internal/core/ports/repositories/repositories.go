package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	Tx               TransactionManager
	CredentialRepo   CredentialReader
	SessionRepo      SessionRepositoryFacade
	EmployeeRepo     EmployeeRepositoryFacade
	ApplicationRepo  ApplicationReader
	RequestRepo      AccessRequestRepositoryFacade
	AuditRepo        AuditRepositoryFacade
	SubscriptionRepo SubscriptionReader
}
