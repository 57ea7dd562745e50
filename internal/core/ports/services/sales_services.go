package services

import (
	"context"

	"github.com/finsight/finsight_backend/internal/core/ports/providers"
)

// SalesSvcFacade lists payment-provider charges and refunds for the platform
// account. customerID, when non-empty, restricts charges to one customer.
type SalesSvcFacade interface {
	ListCharges(ctx context.Context, customerID string) ([]providers.PaymentCharge, error)
	ListRefunds(ctx context.Context) ([]providers.PaymentRefund, error)
}
