package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finsight/finsight_backend/internal/apperrors"
	"github.com/finsight/finsight_backend/internal/core/domain"
	portsprov "github.com/finsight/finsight_backend/internal/core/ports/providers"
	portsrepo "github.com/finsight/finsight_backend/internal/core/ports/repositories"
	portssvc "github.com/finsight/finsight_backend/internal/core/ports/services"
)

// ConnectionService drives the OAuth connection lifecycle. It is
// provider-agnostic: provider specifics live behind the adapter contract.
type ConnectionService struct {
	businessRepo   portsrepo.BusinessRepository
	credentialRepo portsrepo.CredentialRepository
	adapters       map[domain.Provider]portsprov.ProviderAdapter
}

// NewConnectionService creates a ConnectionService over the given adapters.
func NewConnectionService(
	businessRepo portsrepo.BusinessRepository,
	credentialRepo portsrepo.CredentialRepository,
	adapters ...portsprov.ProviderAdapter,
) *ConnectionService {
	byProvider := make(map[domain.Provider]portsprov.ProviderAdapter, len(adapters))
	for _, adapter := range adapters {
		byProvider[adapter.Provider()] = adapter
	}
	return &ConnectionService{
		businessRepo:   businessRepo,
		credentialRepo: credentialRepo,
		adapters:       byProvider,
	}
}

var _ portssvc.ConnectionSvcFacade = (*ConnectionService)(nil)

func (s *ConnectionService) adapter(provider domain.Provider) (portsprov.ProviderAdapter, error) {
	adapter, ok := s.adapters[provider]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for provider %q: %w", provider, apperrors.ErrValidation)
	}
	return adapter, nil
}

// Initiate builds the authorization URL after confirming the business exists.
func (s *ConnectionService) Initiate(ctx context.Context, businessID string, provider domain.Provider) (string, error) {
	adapter, err := s.adapter(provider)
	if err != nil {
		return "", err
	}
	if _, err := s.businessRepo.FindBusinessByID(ctx, businessID); err != nil {
		return "", fmt.Errorf("failed to resolve business for connect: %w", err)
	}
	return adapter.AuthorizationURL(businessID), nil
}

// CompleteHandshake exchanges the code and upserts the credential record
// keyed by (business, provider). A second handshake for the same pair
// overwrites the first: at most one record exists per pair.
func (s *ConnectionService) CompleteHandshake(ctx context.Context, businessID string, provider domain.Provider, code string) (*domain.CredentialRecord, error) {
	adapter, err := s.adapter(provider)
	if err != nil {
		return nil, err
	}

	tokens, err := adapter.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := domain.CredentialRecord{
		BusinessID:    businessID,
		Provider:      provider,
		AccountID:     tokens.AccountID,
		AccessToken:   tokens.AccessToken,
		RefreshToken:  tokens.RefreshToken,
		ConnectedAt:   now,
		LastUpdatedAt: now,
	}
	if err := s.credentialRepo.UpsertCredential(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist credential record: %w", err)
	}
	return &record, nil
}

// EnsureValidCredentials returns the stored credentials for the pair. There
// is no expiry tracking here: validity is established by using the token and
// refreshing once on an auth failure (see SyncService). No network call is
// made when no credential exists.
func (s *ConnectionService) EnsureValidCredentials(ctx context.Context, businessID string, provider domain.Provider) (*domain.CredentialRecord, error) {
	record, err := s.credentialRepo.FindCredential(ctx, businessID, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials for %s: %w", provider, err)
	}
	return record, nil
}

// RefreshCredentials rotates the token pair and persists it before returning.
// The rotated refresh token replaces the stored one: latest wins.
func (s *ConnectionService) RefreshCredentials(ctx context.Context, businessID string, provider domain.Provider) (*domain.CredentialRecord, error) {
	adapter, err := s.adapter(provider)
	if err != nil {
		return nil, err
	}

	record, err := s.credentialRepo.FindCredential(ctx, businessID, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials for refresh: %w", err)
	}

	tokens, err := adapter.Refresh(ctx, record.RefreshToken)
	if err != nil {
		return nil, err
	}

	record.AccessToken = tokens.AccessToken
	record.RefreshToken = tokens.RefreshToken
	record.LastUpdatedAt = time.Now()
	if err := s.credentialRepo.UpsertCredential(ctx, *record); err != nil {
		return nil, fmt.Errorf("failed to persist rotated credentials: %w", err)
	}
	return record, nil
}
