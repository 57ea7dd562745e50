package repositories

import (
	"context"

	"github.com/finsight/finsight_backend/internal/core/domain"
)

// TransactionRepository persists synchronized canonical transaction sets.
type TransactionRepository interface {
	// ReplaceTransactions atomically replaces the entire stored set for the
	// (business, provider) pair with the given ordered sequence. It never
	// merges against a prior fetch.
	ReplaceTransactions(ctx context.Context, businessID string, provider domain.Provider, txns []domain.CanonicalTransaction) error

	// FindTransactions returns the stored set in its persisted order.
	// An empty slice (not an error) is returned when nothing is stored.
	FindTransactions(ctx context.Context, businessID string, provider domain.Provider) ([]domain.CanonicalTransaction, error)
}
