package services

import (
	"context"

	"github.com/finsight/finsight_backend/internal/core/domain"
)

// AggregationSvcFacade recomputes derived customer/subscription summaries.
type AggregationSvcFacade interface {
	// SummarizeCustomers fetches the business's customers, subscriptions and
	// products from the payment provider, rebuilds the per-year/per-month
	// aggregate, overwrites the stored aggregate, and returns it.
	SummarizeCustomers(ctx context.Context, businessID string) (*domain.CustomerAggregate, error)
}
