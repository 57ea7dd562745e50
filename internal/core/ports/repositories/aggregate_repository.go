package repositories

import (
	"context"

	"github.com/finsight/finsight_backend/internal/core/domain"
)

// AggregateRepository persists derived customer aggregates, keyed uniquely by
// business id.
type AggregateRepository interface {
	// UpsertAggregate inserts or fully overwrites the aggregate for the
	// business (upsert-replace, no merge).
	UpsertAggregate(ctx context.Context, aggregate domain.CustomerAggregate) error

	// FindAggregate returns apperrors.ErrNotFound when absent.
	FindAggregate(ctx context.Context, businessID string) (*domain.CustomerAggregate, error)
}
