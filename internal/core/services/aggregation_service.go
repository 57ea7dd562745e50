package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finsight/finsight_backend/internal/core/domain"
	portsprov "github.com/finsight/finsight_backend/internal/core/ports/providers"
	portsrepo "github.com/finsight/finsight_backend/internal/core/ports/repositories"
	portssvc "github.com/finsight/finsight_backend/internal/core/ports/services"
)

// AggregationService recomputes the customer/subscription summary for a
// business from the payment provider's customer, subscription and product
// lists. The stored aggregate is derived data: it is rebuilt from scratch and
// overwritten on every invocation.
type AggregationService struct {
	connections   portssvc.ConnectionSvcFacade
	paymentData   portsprov.PaymentDataSource
	aggregateRepo portsrepo.AggregateRepository
}

// NewAggregationService creates an AggregationService.
func NewAggregationService(
	connections portssvc.ConnectionSvcFacade,
	paymentData portsprov.PaymentDataSource,
	aggregateRepo portsrepo.AggregateRepository,
) *AggregationService {
	return &AggregationService{
		connections:   connections,
		paymentData:   paymentData,
		aggregateRepo: aggregateRepo,
	}
}

var _ portssvc.AggregationSvcFacade = (*AggregationService)(nil)

// SummarizeCustomers fetches the connected account's records, rebuilds the
// aggregate, and upserts it keyed by business id.
func (s *AggregationService) SummarizeCustomers(ctx context.Context, businessID string) (*domain.CustomerAggregate, error) {
	creds, err := s.connections.EnsureValidCredentials(ctx, businessID, domain.ProviderStripe)
	if err != nil {
		return nil, err
	}

	subscriptions, err := s.paymentData.ListSubscriptions(ctx, creds.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	products, err := s.paymentData.ListProducts(ctx, creds.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	aggregate := BuildCustomerAggregate(businessID, subscriptions, products, time.Now())
	if err := s.aggregateRepo.UpsertAggregate(ctx, aggregate); err != nil {
		return nil, fmt.Errorf("failed to persist customer aggregate: %w", err)
	}
	return &aggregate, nil
}

// BuildCustomerAggregate is the pure aggregation step: no I/O, deterministic
// for a fixed now.
//
// Subscriptions are grouped by resolved product name; unresolved product ids
// land in the "Unknown Subscription" bucket rather than being dropped. Each
// subscription increments its bucket's total and month counter for the
// calendar year/month of its creation instant, interpreted in server-local
// time. average_customers is floor(global distinct customer count / 12),
// written identically into every bucket; this cross-bucket behavior is
// preserved legacy semantics (see DESIGN.md). Distinct customers are the
// unique customer ids observed across all subscription records.
func BuildCustomerAggregate(
	businessID string,
	subscriptions []portsprov.PaymentSubscription,
	products []portsprov.PaymentProduct,
	now time.Time,
) domain.CustomerAggregate {
	productNames := make(map[string]string, len(products))
	for _, p := range products {
		productNames[p.ProductID] = p.Name
	}

	buckets := make(map[string]domain.SubscriptionBucket)
	distinctCustomers := make(map[string]struct{}, len(subscriptions))

	for _, sub := range subscriptions {
		distinctCustomers[sub.CustomerID] = struct{}{}

		name := productNames[sub.ProductID]
		if name == "" {
			name = domain.UnknownSubscription
		}

		bucket, ok := buckets[name]
		if !ok {
			bucket = domain.SubscriptionBucket{Data: make(map[int]domain.YearData)}
			buckets[name] = bucket
		}

		created := sub.Created.In(now.Location())
		year := created.Year()
		yearData, ok := bucket.Data[year]
		if !ok {
			yearData = domain.YearData{MonthlyData: domain.NewMonthlyData()}
		}

		yearData.TotalCustomers++
		month := created.Month().String()
		count := yearData.MonthlyData[month]
		count.Actual++
		yearData.MonthlyData[month] = count
		bucket.Data[year] = yearData
	}

	average := len(distinctCustomers) / 12
	for _, bucket := range buckets {
		for year, yearData := range bucket.Data {
			yearData.AverageCustomers = average
			bucket.Data[year] = yearData
		}
	}

	return domain.CustomerAggregate{
		BusinessID:     businessID,
		TotalCustomers: len(distinctCustomers),
		Subscriptions:  buckets,
		UpdatedAt:      now,
	}
}
