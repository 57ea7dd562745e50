package domain

import "time"

// MonthNames are the aggregation bucket keys, in calendar order.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// UnknownSubscription is the bucket for subscriptions whose product id does
// not resolve to a product name. Such records are counted, never dropped.
const UnknownSubscription = "Unknown Subscription"

// MonthCount holds the number of subscription creation events in one month.
type MonthCount struct {
	Actual int `json:"actual"`
}

// YearData is the per-year rollup inside one subscription bucket.
//
// AverageCustomers is the business-wide distinct customer count divided by 12
// (floor), applied identically to every bucket. This cross-bucket value is
// intentional legacy behavior; see DESIGN.md.
type YearData struct {
	TotalCustomers   int                   `json:"total_customers"`
	AverageCustomers int                   `json:"average_customers"`
	MonthlyData      map[string]MonthCount `json:"monthly_data"`
}

// SubscriptionBucket groups yearly data under one product/plan name.
type SubscriptionBucket struct {
	Data map[int]YearData `json:"data"`
}

// CustomerAggregate is the derived customer/subscription summary for one
// business. It is fully recomputed and overwritten on each invocation.
type CustomerAggregate struct {
	BusinessID     string                        `json:"businessID"`
	TotalCustomers int                           `json:"total_customers"`
	Subscriptions  map[string]SubscriptionBucket `json:"subscription"`
	UpdatedAt      time.Time                     `json:"updatedAt"`
}

// NewMonthlyData returns a zeroed month map covering all twelve months, so
// serialized aggregates always carry every month key.
func NewMonthlyData() map[string]MonthCount {
	data := make(map[string]MonthCount, len(MonthNames))
	for _, m := range MonthNames {
		data[m] = MonthCount{}
	}
	return data
}
