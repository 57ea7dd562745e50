package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	BusinessRepo    BusinessRepository
	CredentialRepo  CredentialRepository
	TransactionRepo TransactionRepository
	AggregateRepo   AggregateRepository
}
