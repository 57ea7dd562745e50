package services_test

import (
	"context"
	"testing"
	"time"

	portsprov "github.com/finsight/finsight_backend/internal/core/ports/providers"
	"github.com/finsight/finsight_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCharges_TargetsPlatformAccount(t *testing.T) {
	ctx := context.Background()
	mockData := new(MockPaymentDataSource)
	service := services.NewSalesService(mockData)

	charges := []portsprov.PaymentCharge{{
		ChargeID: "ch_1",
		Amount:   decimal.New(1999, -2),
		Currency: "usd",
		Created:  time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
	}}
	// Empty accountID: charge listings run against the platform account,
	// not a connected account.
	mockData.On("ListCharges", ctx, "", "cus_42").Return(charges, nil).Once()

	got, err := service.ListCharges(ctx, "cus_42")

	require.NoError(t, err)
	assert.Equal(t, charges, got)
	mockData.AssertExpectations(t)
}

func TestListRefunds_PropagatesProviderError(t *testing.T) {
	ctx := context.Background()
	mockData := new(MockPaymentDataSource)
	service := services.NewSalesService(mockData)

	mockData.On("ListRefunds", ctx, "").Return(nil, assert.AnError).Once()

	got, err := service.ListRefunds(ctx)

	require.Error(t, err)
	assert.Nil(t, got)
}
