package services

import (
	portsprov "github.com/finsight/finsight_backend/internal/core/ports/providers"
	portsrepo "github.com/finsight/finsight_backend/internal/core/ports/repositories"
	portssvc "github.com/finsight/finsight_backend/internal/core/ports/services"
	"github.com/finsight/finsight_backend/internal/platform/config"
)

// ProviderSet bundles the concrete provider adapters for injection.
type ProviderSet struct {
	Payment    portsprov.ProviderAdapter
	Accounting portsprov.ProviderAdapter
	// PaymentData is the payment provider's list API, implemented by the
	// same adapter as Payment.
	PaymentData portsprov.PaymentDataSource
}

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, providers ProviderSet) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Business = NewBusinessService(cfg, repos.BusinessRepo)
	container.Connection = NewConnectionService(repos.BusinessRepo, repos.CredentialRepo, providers.Payment, providers.Accounting)
	container.Sync = NewSyncService(container.Connection, repos.TransactionRepo, providers.Payment, providers.Accounting)
	container.Aggregation = NewAggregationService(container.Connection, providers.PaymentData, repos.AggregateRepo)
	container.Sales = NewSalesService(providers.PaymentData)

	return container
}
