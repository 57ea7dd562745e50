package pgsql

import (
	portsrepo "github.com/finsight/finsight_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql-backed repository to the shared
// connection pool.
func NewRepositoryProvider(db *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BusinessRepo:    newPgxBusinessRepository(db),
		CredentialRepo:  newPgxCredentialRepository(db),
		TransactionRepo: newPgxTransactionRepository(db),
		AggregateRepo:   newPgxAggregateRepository(db),
	}
}
