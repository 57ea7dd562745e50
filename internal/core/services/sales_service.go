package services

import (
	"context"
	"fmt"

	portsprov "github.com/finsight/finsight_backend/internal/core/ports/providers"
	portssvc "github.com/finsight/finsight_backend/internal/core/ports/services"
)

// SalesService lists payment-provider charges and refunds for the platform
// account. It performs no persistence: results are formatted and returned.
type SalesService struct {
	paymentData portsprov.PaymentDataSource
}

// NewSalesService creates a SalesService.
func NewSalesService(paymentData portsprov.PaymentDataSource) *SalesService {
	return &SalesService{paymentData: paymentData}
}

var _ portssvc.SalesSvcFacade = (*SalesService)(nil)

// ListCharges returns platform charges, optionally for one customer.
func (s *SalesService) ListCharges(ctx context.Context, customerID string) ([]portsprov.PaymentCharge, error) {
	charges, err := s.paymentData.ListCharges(ctx, "", customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list charges: %w", err)
	}
	return charges, nil
}

// ListRefunds returns platform refunds.
func (s *SalesService) ListRefunds(ctx context.Context) ([]portsprov.PaymentRefund, error) {
	refunds, err := s.paymentData.ListRefunds(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list refunds: %w", err)
	}
	return refunds, nil
}
