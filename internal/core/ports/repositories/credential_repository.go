package repositories

import (
	"context"

	"github.com/finsight/finsight_backend/internal/core/domain"
)

// CredentialRepository persists OAuth credential records, one per
// (business, provider) pair.
type CredentialRepository interface {
	// UpsertCredential inserts the record or fully overwrites the existing
	// one for the same (business, provider) pair. Never duplicates.
	UpsertCredential(ctx context.Context, record domain.CredentialRecord) error

	// FindCredential returns apperrors.ErrNotFound when the business has no
	// stored credential for the provider.
	FindCredential(ctx context.Context, businessID string, provider domain.Provider) (*domain.CredentialRecord, error)
}
