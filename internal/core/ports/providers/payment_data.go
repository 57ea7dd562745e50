package providers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentSubscription is a subscription record from the payment provider.
type PaymentSubscription struct {
	SubscriptionID string
	CustomerID     string
	ProductID      string
	Status         string
	Created        time.Time
}

// PaymentProduct is a product/plan record from the payment provider.
type PaymentProduct struct {
	ProductID string
	Name      string
}

// PaymentCharge is a charge record from the payment provider.
type PaymentCharge struct {
	ChargeID      string
	Amount        decimal.Decimal
	Currency      string
	Status        string
	Description   string
	Created       time.Time
	CustomerID    string
	CustomerEmail string
	PaymentMethod string
}

// PaymentRefund is a refund record from the payment provider.
type PaymentRefund struct {
	RefundID      string
	Amount        decimal.Decimal
	Currency      string
	Status        string
	Reason        string
	Created       time.Time
	PaymentIntent string
}

// PaymentDataSource exposes the payment provider's list endpoints consumed by
// the aggregation and sales services. An empty accountID targets the platform
// account; otherwise calls run against the connected account.
type PaymentDataSource interface {
	ListSubscriptions(ctx context.Context, accountID string) ([]PaymentSubscription, error)
	ListProducts(ctx context.Context, accountID string) ([]PaymentProduct, error)
	// ListCharges filters by customer when customerID is non-empty.
	ListCharges(ctx context.Context, accountID, customerID string) ([]PaymentCharge, error)
	ListRefunds(ctx context.Context, accountID string) ([]PaymentRefund, error)
}
