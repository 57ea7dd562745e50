// Package xero implements the accounting-provider adapter against the Xero
// OAuth 2.0 flow and the Xero accounting API.
package xero

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
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
	authorizeURL = "https://login.xero.com/identity/connect/authorize"
	tokenURL     = "https://identity.xero.com/connect/token"
	apiBaseURL   = "https://api.xero.com"

	// pageSize is Xero's page size for BankTransactions.
	pageSize = 100

	// dateLayout matches Xero's DateString fields (no zone designator;
	// values are organization-local).
	dateLayout = "2006-01-02T15:04:05"
)

// Adapter implements providers.ProviderAdapter for Xero. The ledger endpoint
// paginates with a numeric page cursor; a short page signals exhaustion.
type Adapter struct {
	oauthConfig *oauth2.Config
	baseURL     string
	httpClient  *http.Client
}

// NewAdapter builds a Xero adapter from application config.
func NewAdapter(cfg *config.Config) *Adapter {
	return &Adapter{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.XeroClientID,
			ClientSecret: cfg.XeroClientSecret,
			RedirectURL:  cfg.XeroRedirectURL,
			Scopes:       []string{"openid", "profile", "email", "accounting.transactions", "accounting.contacts"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authorizeURL,
				TokenURL: tokenURL,
			},
		},
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
	return domain.ProviderXero
}

// AuthorizationURL embeds the business id as the opaque state parameter.
func (a *Adapter) AuthorizationURL(businessID string) string {
	return a.oauthConfig.AuthCodeURL(businessID)
}

// ExchangeCode trades the code for tokens, then resolves the connected
// organization's tenant id, which every accounting API call requires.
func (a *Adapter) ExchangeCode(ctx context.Context, code string) (providers.TokenSet, error) {
	token, err := a.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return providers.TokenSet{}, fmt.Errorf("%w: %s", apperrors.ErrOAuthExchange, oauthErrorDescription(err))
	}

	tenantID, err := a.tenantID(ctx, token.AccessToken)
	if err != nil {
		return providers.TokenSet{}, err
	}

	return providers.TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		AccountID:    tenantID,
		Expiry:       token.Expiry,
	}, nil
}

func (a *Adapter) Refresh(ctx context.Context, refreshToken string) (providers.TokenSet, error) {
	source := a.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return providers.TokenSet{}, fmt.Errorf("%w: %s", apperrors.ErrOAuthRefresh, oauthErrorDescription(err))
	}
	// Xero rotates the refresh token on every refresh; the new one must
	// replace the old one.
	rotated := token.RefreshToken
	if rotated == "" {
		rotated = refreshToken
	}
	return providers.TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: rotated,
		Expiry:       token.Expiry,
	}, nil
}

// FetchLedgerPage retrieves one page of bank transactions for the connected
// organization, newest-first, with deleted entries filtered out. The cursor
// is a 1-based page number.
func (a *Adapter) FetchLedgerPage(ctx context.Context, creds domain.CredentialRecord, cursor *string) (providers.LedgerPage, error) {
	page := 1
	if cursor != nil {
		parsed, err := strconv.Atoi(*cursor)
		if err != nil || parsed < 1 {
			return providers.LedgerPage{}, fmt.Errorf("%w: invalid page cursor %q", apperrors.ErrProviderAPI, *cursor)
		}
		page = parsed
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("order", "Date DESC")

	var body struct {
		BankTransactions []json.RawMessage `json:"BankTransactions"`
	}
	if err := a.getJSON(ctx, "/api.xro/2.0/BankTransactions", params, creds, &body); err != nil {
		return providers.LedgerPage{}, err
	}

	records := make([]json.RawMessage, 0, len(body.BankTransactions))
	for _, raw := range body.BankTransactions {
		var header struct {
			Status string `json:"Status"`
		}
		_ = json.Unmarshal(raw, &header)
		if header.Status == "DELETED" {
			continue
		}
		records = append(records, raw)
	}

	var next *string
	if len(body.BankTransactions) == pageSize {
		cursorValue := strconv.Itoa(page + 1)
		next = &cursorValue
	}
	return providers.LedgerPage{Records: records, NextCursor: next}, nil
}

// bankTransaction is the subset of Xero's bank transaction object the
// normalizer reads. Every field is optional.
type bankTransaction struct {
	BankTransactionID string  `json:"BankTransactionID"`
	Type              string  `json:"Type"` // SPEND or RECEIVE (and variants)
	Status            string  `json:"Status"`
	Total             float64 `json:"Total"`
	CurrencyCode      string  `json:"CurrencyCode"`
	DateString        string  `json:"DateString"`
	Reference         string  `json:"Reference"`
	Contact           struct {
		Name string `json:"Name"`
	} `json:"Contact"`
	BankAccount struct {
		Name string `json:"Name"`
	} `json:"BankAccount"`
}

// Normalize maps one bank transaction to the canonical shape. SPEND entries
// become negative outflows. It is total: malformed input yields defaults.
func (a *Adapter) Normalize(raw json.RawMessage) domain.CanonicalTransaction {
	var bt bankTransaction
	_ = json.Unmarshal(raw, &bt)

	direction := domain.DirectionInflow
	amount := decimal.NewFromFloat(bt.Total)
	if strings.HasPrefix(strings.ToUpper(bt.Type), "SPEND") {
		direction = domain.DirectionOutflow
		amount = amount.Neg()
	}

	status := bt.Status
	if status == "" {
		status = "AUTHORISED"
	}

	description := bt.Reference
	if description == "" {
		description = "N/A"
	}

	counterparty := bt.Contact.Name
	if counterparty == "" {
		counterparty = bt.BankAccount.Name
	}
	if counterparty == "" {
		counterparty = "N/A"
	}

	var date time.Time
	if bt.DateString != "" {
		// Organization-local time resolved against the server zone; Xero
		// does not report an offset here.
		if parsed, err := time.ParseInLocation(dateLayout, bt.DateString, time.Local); err == nil {
			date = parsed
		}
	}

	return domain.CanonicalTransaction{
		TransactionID:    bt.BankTransactionID,
		Amount:           amount,
		Currency:         strings.ToUpper(bt.CurrencyCode),
		Date:             date,
		Description:      description,
		Status:           status,
		Direction:        direction,
		CounterpartyName: counterparty,
		Raw:              raw,
	}
}

// tenantID resolves the first connected organization. Fails when no
// organization is connected.
func (a *Adapter) tenantID(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/connections", nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", apperrors.ErrProviderAPI, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrProviderAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", fmt.Errorf("%w: xero returned 401 for /connections", apperrors.ErrProviderAuth)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: xero returned %d for /connections", apperrors.ErrProviderAPI, resp.StatusCode)
	}

	var connections []struct {
		TenantID string `json:"tenantId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&connections); err != nil {
		return "", fmt.Errorf("%w: decode /connections response: %v", apperrors.ErrProviderAPI, err)
	}
	if len(connections) == 0 {
		return "", fmt.Errorf("%w: no Xero organization connected", apperrors.ErrProviderAPI)
	}
	return connections[0].TenantID, nil
}

func (a *Adapter) getJSON(ctx context.Context, path string, params url.Values, creds domain.CredentialRecord, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", apperrors.ErrProviderAPI, err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Xero-tenant-id", creds.AccountID)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrProviderAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: xero returned 401 for %s", apperrors.ErrProviderAuth, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: xero returned %d for %s: %s", apperrors.ErrProviderAPI, resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", apperrors.ErrProviderAPI, path, err)
	}
	return nil
}

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
