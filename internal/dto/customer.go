package dto

import (
	"time"

	"github.com/finsight/finsight_backend/internal/core/domain"
)

// CustomerAggregateResponse is the serialized yearly/monthly customer summary.
type CustomerAggregateResponse struct {
	BID            string                               `json:"BID"`
	Message        string                               `json:"message"`
	TotalCustomers int                                  `json:"total_customers"`
	UpdatedAt      time.Time                            `json:"updatedAt"`
	Subscription   map[string]domain.SubscriptionBucket `json:"subscription"`
}

// ToCustomerAggregateResponse converts a stored aggregate.
func ToCustomerAggregateResponse(a *domain.CustomerAggregate) CustomerAggregateResponse {
	return CustomerAggregateResponse{
		BID:            a.BusinessID,
		Message:        "Customers actuals details retrieved",
		TotalCustomers: a.TotalCustomers,
		UpdatedAt:      a.UpdatedAt,
		Subscription:   a.Subscriptions,
	}
}
