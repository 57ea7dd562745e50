// Package stripe implements the payment-provider adapter against the Stripe
// Connect OAuth flow and the Stripe REST API.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/finsight/finsight_backend/internal/apperrors"
	"github.com/finsight/finsight_backend/internal/core/domain"
	"github.com/finsight/finsight_backend/internal/core/ports/providers"
	"github.com/finsight/finsight_backend/internal/platform/config"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
)

const (
	authorizeURL = "https://connect.stripe.com/oauth/authorize"
	tokenURL     = "https://connect.stripe.com/oauth/token"
	apiBaseURL   = "https://api.stripe.com"

	// pageSize is the maximum Stripe allows per list call.
	pageSize = 100
)

// Adapter implements providers.ProviderAdapter and providers.PaymentDataSource
// for Stripe. The ledger endpoint paginates with a "has more" flag plus a
// starting_after cursor holding the last object id of the previous page.
type Adapter struct {
	oauthConfig *oauth2.Config
	secretKey   string
	baseURL     string
	httpClient  *http.Client
}

// NewAdapter builds a Stripe adapter from application config.
func NewAdapter(cfg *config.Config) *Adapter {
	return &Adapter{
		oauthConfig: &oauth2.Config{
			ClientID: cfg.StripeClientID,
			// Stripe Connect authenticates the token endpoint with the
			// platform secret key.
			ClientSecret: cfg.StripeSecretKey,
			RedirectURL:  cfg.StripeRedirectURL,
			Scopes:       []string{"read_write"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   authorizeURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		secretKey:  cfg.StripeSecretKey,
		baseURL:    apiBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient overrides the HTTP client and API base URL, for tests.
func (a *Adapter) WithHTTPClient(client *http.Client, baseURL string) *Adapter {
	a.httpClient = client
	a.baseURL = baseURL
	return a
}

func (a *Adapter) Provider() domain.Provider {
	return domain.ProviderStripe
}

// AuthorizationURL embeds the business id as the opaque state parameter,
// round-tripped by Stripe's redirect.
func (a *Adapter) AuthorizationURL(businessID string) string {
	return a.oauthConfig.AuthCodeURL(businessID)
}

func (a *Adapter) ExchangeCode(ctx context.Context, code string) (providers.TokenSet, error) {
	token, err := a.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return providers.TokenSet{}, fmt.Errorf("%w: %s", apperrors.ErrOAuthExchange, oauthErrorDescription(err))
	}
	accountID, _ := token.Extra("stripe_user_id").(string)
	return providers.TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		AccountID:    accountID,
		Expiry:       token.Expiry,
	}, nil
}

func (a *Adapter) Refresh(ctx context.Context, refreshToken string) (providers.TokenSet, error) {
	source := a.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return providers.TokenSet{}, fmt.Errorf("%w: %s", apperrors.ErrOAuthRefresh, oauthErrorDescription(err))
	}
	rotated := token.RefreshToken
	if rotated == "" {
		// Stripe does not always rotate; the caller keeps the prior token.
		rotated = refreshToken
	}
	return providers.TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: rotated,
		Expiry:       token.Expiry,
	}, nil
}

// FetchLedgerPage retrieves one page of balance transactions for the
// connected account, in Stripe's native (newest-first) return order.
func (a *Adapter) FetchLedgerPage(ctx context.Context, creds domain.CredentialRecord, cursor *string) (providers.LedgerPage, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", pageSize))
	if cursor != nil {
		params.Set("starting_after", *cursor)
	}

	var page struct {
		Data    []json.RawMessage `json:"data"`
		HasMore bool              `json:"has_more"`
	}
	if err := a.getJSON(ctx, "/v1/balance_transactions", params, creds.AccessToken, creds.AccountID, &page); err != nil {
		return providers.LedgerPage{}, err
	}

	var next *string
	if page.HasMore && len(page.Data) > 0 {
		var last struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(page.Data[len(page.Data)-1], &last); err != nil || last.ID == "" {
			return providers.LedgerPage{}, fmt.Errorf("%w: balance transaction page missing cursor id", apperrors.ErrProviderAPI)
		}
		next = &last.ID
	}
	return providers.LedgerPage{Records: page.Data, NextCursor: next}, nil
}

// balanceTransaction is the subset of Stripe's balance transaction object the
// normalizer reads. Every field is optional.
type balanceTransaction struct {
	ID                string `json:"id"`
	Amount            int64  `json:"amount"` // minor units
	Currency          string `json:"currency"`
	Created           int64  `json:"created"`
	Description       string `json:"description"`
	ReportingCategory string `json:"reporting_category"`
	Status            string `json:"status"`
	Source            struct {
		BillingDetails struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"billing_details"`
	} `json:"source"`
}

// Normalize maps one balance transaction to the canonical shape. It is total:
// malformed input or missing optional fields produce defaults, never errors.
func (a *Adapter) Normalize(raw json.RawMessage) domain.CanonicalTransaction {
	var bt balanceTransaction
	_ = json.Unmarshal(raw, &bt)

	direction := domain.DirectionInflow
	if bt.Amount < 0 {
		direction = domain.DirectionOutflow
	}

	description := bt.Description
	if description == "" {
		description = bt.ReportingCategory
	}
	if description == "" {
		description = "N/A"
	}

	status := bt.Status
	if status == "" {
		status = "N/A"
	}

	counterparty := bt.Source.BillingDetails.Name
	if counterparty == "" {
		counterparty = bt.Source.BillingDetails.Email
	}
	if counterparty == "" {
		counterparty = "N/A"
	}

	var date time.Time
	if bt.Created > 0 {
		date = time.Unix(bt.Created, 0).UTC()
	}

	return domain.CanonicalTransaction{
		TransactionID:    bt.ID,
		Amount:           decimal.New(bt.Amount, -2), // minor to major units
		Currency:         strings.ToUpper(bt.Currency),
		Date:             date,
		Description:      description,
		Status:           status,
		Direction:        direction,
		CounterpartyName: counterparty,
		Raw:              raw,
	}
}

// getJSON performs an authenticated GET against the Stripe API. accountID,
// when non-empty, scopes the call to a connected account.
func (a *Adapter) getJSON(ctx context.Context, path string, params url.Values, bearer, accountID string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", apperrors.ErrProviderAPI, err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if accountID != "" {
		req.Header.Set("Stripe-Account", accountID)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrProviderAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: stripe returned 401 for %s", apperrors.ErrProviderAuth, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: stripe returned %d for %s: %s", apperrors.ErrProviderAPI, resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", apperrors.ErrProviderAPI, path, err)
	}
	return nil
}

// oauthErrorDescription surfaces the provider-supplied error description when
// the oauth2 package reports a token endpoint rejection.
func oauthErrorDescription(err error) string {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.ErrorDescription != "" {
			return retrieveErr.ErrorDescription
		}
		if body := strings.TrimSpace(string(retrieveErr.Body)); body != "" {
			return body
		}
	}
	return err.Error()
}
