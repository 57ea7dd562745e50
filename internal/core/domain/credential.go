package domain

import "time"

// Provider identifies a connected third-party platform.
type Provider string

const (
	// ProviderStripe is the payment provider (Stripe Connect).
	ProviderStripe Provider = "stripe"
	// ProviderXero is the accounting provider.
	ProviderXero Provider = "xero"
)

// CredentialRecord is the stored OAuth token set for one (business, provider)
// pair. At most one record exists per pair; a completed code exchange or a
// token refresh fully overwrites the prior values, so the latest refresh
// token always wins.
type CredentialRecord struct {
	BusinessID string   `json:"businessID"`
	Provider   Provider `json:"provider"`
	// AccountID is the provider-assigned identifier for the connected
	// account (Stripe connected-account id, Xero tenant id).
	AccountID     string    `json:"accountID"`
	AccessToken   string    `json:"-"`
	RefreshToken  string    `json:"-"`
	ConnectedAt   time.Time `json:"connectedAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
