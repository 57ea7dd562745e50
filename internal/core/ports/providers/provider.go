package providers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finsight/finsight_backend/internal/core/domain"
)

// TokenSet is the result of an authorization-code exchange or a refresh.
// AccountID is only populated by an exchange (the provider reports which
// account/organization was connected).
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	AccountID    string
	Expiry       time.Time
}

// LedgerPage is one page of provider-native transaction data.
// A nil NextCursor signals exhaustion.
type LedgerPage struct {
	Records    []json.RawMessage
	NextCursor *string
}

// ProviderAdapter encapsulates one provider's OAuth endpoints, its paginated
// ledger-fetch endpoint, and the mapping from provider-native records to the
// canonical transaction shape. The orchestrator and synchronizer depend only
// on this contract.
type ProviderAdapter interface {
	Provider() domain.Provider

	// AuthorizationURL builds the provider's authorize URL with the business
	// id embedded as the opaque state parameter.
	AuthorizationURL(businessID string) string

	// ExchangeCode trades an authorization code for tokens.
	// Fails with apperrors.ErrOAuthExchange on a provider rejection, carrying
	// the provider's error description when present.
	ExchangeCode(ctx context.Context, code string) (TokenSet, error)

	// Refresh trades a refresh token for a rotated token pair.
	// Fails with apperrors.ErrOAuthRefresh when the token is invalid/expired.
	Refresh(ctx context.Context, refreshToken string) (TokenSet, error)

	// FetchLedgerPage retrieves one page of ledger data. A nil cursor starts
	// the walk from the first page. Auth failures are reported as
	// apperrors.ErrProviderAuth, other failures as apperrors.ErrProviderAPI.
	FetchLedgerPage(ctx context.Context, creds domain.CredentialRecord, cursor *string) (LedgerPage, error)

	// Normalize maps one provider-native record to the canonical shape.
	// It is pure and total: missing or malformed fields map to defined
	// defaults, never to an error.
	Normalize(raw json.RawMessage) domain.CanonicalTransaction
}
