package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/finsight/finsight_backend/internal/apperrors"
	"github.com/finsight/finsight_backend/internal/core/domain"
	portsprov "github.com/finsight/finsight_backend/internal/core/ports/providers"
	portsrepo "github.com/finsight/finsight_backend/internal/core/ports/repositories"
	portssvc "github.com/finsight/finsight_backend/internal/core/ports/services"
)

// SyncService walks a provider's paginated ledger to exhaustion and replaces
// the stored transaction set for the business.
//
// Each call is an independent, complete walk from the first page; there is no
// resumption of a prior partial walk. Concurrent calls for the same business
// are not coordinated: the last completed call's upsert wins. This is a known
// limitation of the snapshot model.
type SyncService struct {
	connections     portssvc.ConnectionSvcFacade
	transactionRepo portsrepo.TransactionRepository
	adapters        map[domain.Provider]portsprov.ProviderAdapter
}

// NewSyncService creates a SyncService over the given adapters.
func NewSyncService(
	connections portssvc.ConnectionSvcFacade,
	transactionRepo portsrepo.TransactionRepository,
	adapters ...portsprov.ProviderAdapter,
) *SyncService {
	byProvider := make(map[domain.Provider]portsprov.ProviderAdapter, len(adapters))
	for _, adapter := range adapters {
		byProvider[adapter.Provider()] = adapter
	}
	return &SyncService{
		connections:     connections,
		transactionRepo: transactionRepo,
		adapters:        byProvider,
	}
}

var _ portssvc.SyncSvcFacade = (*SyncService)(nil)

// SyncAll fetches every ledger page sequentially, normalizes and accumulates
// the records in provider return order, and on success replaces the stored
// set. On the first auth failure it refreshes the credentials once and
// retries the failed page once; a second auth failure, or any other failure,
// aborts the walk with ErrSyncIncomplete and persists nothing.
func (s *SyncService) SyncAll(ctx context.Context, businessID string, provider domain.Provider) ([]domain.CanonicalTransaction, error) {
	adapter, ok := s.adapters[provider]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for provider %q: %w", provider, apperrors.ErrValidation)
	}

	creds, err := s.connections.EnsureValidCredentials(ctx, businessID, provider)
	if err != nil {
		return nil, err
	}

	var accumulated []domain.CanonicalTransaction
	var cursor *string
	refreshed := false

	for {
		page, err := adapter.FetchLedgerPage(ctx, *creds, cursor)
		if errors.Is(err, apperrors.ErrProviderAuth) && !refreshed {
			refreshed = true
			creds, err = s.connections.RefreshCredentials(ctx, businessID, provider)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", apperrors.ErrSyncIncomplete, err)
			}
			page, err = adapter.FetchLedgerPage(ctx, *creds, cursor)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: page fetch failed: %v", apperrors.ErrSyncIncomplete, err)
		}

		for _, raw := range page.Records {
			accumulated = append(accumulated, adapter.Normalize(raw))
		}

		if page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}

	if err := s.transactionRepo.ReplaceTransactions(ctx, businessID, provider, accumulated); err != nil {
		return nil, fmt.Errorf("failed to persist synchronized transactions: %w", err)
	}
	return accumulated, nil
}
