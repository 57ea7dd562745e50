package services

import (
	"context"

	"github.com/finsight/finsight_backend/internal/core/domain"
)

// SyncSvcFacade performs full ledger synchronization runs.
type SyncSvcFacade interface {
	// SyncAll walks every ledger page for the business's connected provider
	// account, normalizes the records, replaces the stored set, and returns
	// the full ordered sequence. A mid-walk failure yields
	// apperrors.ErrSyncIncomplete and leaves the prior stored set untouched.
	SyncAll(ctx context.Context, businessID string, provider domain.Provider) ([]domain.CanonicalTransaction, error)
}
