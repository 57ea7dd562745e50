package services

import (
	"context"

	"github.com/finsight/finsight_backend/internal/core/domain"
)

// ConnectionSvcFacade drives the OAuth connection lifecycle for a provider.
type ConnectionSvcFacade interface {
	// Initiate builds the provider's authorization URL for the business.
	// Fails with apperrors.ErrNotFound when the business does not exist.
	Initiate(ctx context.Context, businessID string, provider domain.Provider) (string, error)

	// CompleteHandshake exchanges a returned authorization code and upserts
	// the credential record keyed by (business, provider), returning the
	// stored record. A repeated handshake overwrites the prior tokens.
	CompleteHandshake(ctx context.Context, businessID string, provider domain.Provider, code string) (*domain.CredentialRecord, error)

	// EnsureValidCredentials returns the stored credentials. It fails with
	// apperrors.ErrNotFound when no credential exists; it never performs a
	// network call speculatively.
	EnsureValidCredentials(ctx context.Context, businessID string, provider domain.Provider) (*domain.CredentialRecord, error)

	// RefreshCredentials rotates the token pair via the provider and persists
	// the result before returning it. Fails with apperrors.ErrOAuthRefresh
	// when the provider rejects the refresh token.
	RefreshCredentials(ctx context.Context, businessID string, provider domain.Provider) (*domain.CredentialRecord, error)
}
