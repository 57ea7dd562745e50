package services_test

import (
	"context"
	"encoding/json"

	"github.com/finsight/finsight_backend/internal/core/domain"
	portsprov "github.com/finsight/finsight_backend/internal/core/ports/providers"
	"github.com/stretchr/testify/mock"
)

// --- Mock BusinessRepository ---
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	var business *domain.Business
	if args.Get(0) != nil {
		business = args.Get(0).(*domain.Business)
	}
	return business, args.Error(1)
}

func (m *MockBusinessRepository) FindBusinessByEmail(ctx context.Context, email string) (*domain.Business, error) {
	args := m.Called(ctx, email)
	var business *domain.Business
	if args.Get(0) != nil {
		business = args.Get(0).(*domain.Business)
	}
	return business, args.Error(1)
}

// --- Mock CredentialRepository ---
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) UpsertCredential(ctx context.Context, record domain.CredentialRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCredentialRepository) FindCredential(ctx context.Context, businessID string, provider domain.Provider) (*domain.CredentialRecord, error) {
	args := m.Called(ctx, businessID, provider)
	var record *domain.CredentialRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.CredentialRecord)
	}
	return record, args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ReplaceTransactions(ctx context.Context, businessID string, provider domain.Provider, txns []domain.CanonicalTransaction) error {
	args := m.Called(ctx, businessID, provider, txns)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactions(ctx context.Context, businessID string, provider domain.Provider) ([]domain.CanonicalTransaction, error) {
	args := m.Called(ctx, businessID, provider)
	var txns []domain.CanonicalTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.CanonicalTransaction)
	}
	return txns, args.Error(1)
}

// --- Mock AggregateRepository ---
type MockAggregateRepository struct {
	mock.Mock
}

func (m *MockAggregateRepository) UpsertAggregate(ctx context.Context, aggregate domain.CustomerAggregate) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAggregateRepository) FindAggregate(ctx context.Context, businessID string) (*domain.CustomerAggregate, error) {
	args := m.Called(ctx, businessID)
	var aggregate *domain.CustomerAggregate
	if args.Get(0) != nil {
		aggregate = args.Get(0).(*domain.CustomerAggregate)
	}
	return aggregate, args.Error(1)
}

// --- Mock ProviderAdapter ---
type MockProviderAdapter struct {
	mock.Mock
	provider domain.Provider
}

func (m *MockProviderAdapter) Provider() domain.Provider {
	return m.provider
}

func (m *MockProviderAdapter) AuthorizationURL(businessID string) string {
	args := m.Called(businessID)
	return args.String(0)
}

func (m *MockProviderAdapter) ExchangeCode(ctx context.Context, code string) (portsprov.TokenSet, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(portsprov.TokenSet), args.Error(1)
}

func (m *MockProviderAdapter) Refresh(ctx context.Context, refreshToken string) (portsprov.TokenSet, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(portsprov.TokenSet), args.Error(1)
}

func (m *MockProviderAdapter) FetchLedgerPage(ctx context.Context, creds domain.CredentialRecord, cursor *string) (portsprov.LedgerPage, error) {
	args := m.Called(ctx, creds, cursor)
	return args.Get(0).(portsprov.LedgerPage), args.Error(1)
}

func (m *MockProviderAdapter) Normalize(raw json.RawMessage) domain.CanonicalTransaction {
	// Deterministic passthrough: the raw record's id becomes the
	// transaction id, so tests can assert on ordering.
	var rec struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(raw, &rec)
	return domain.CanonicalTransaction{TransactionID: rec.ID, Raw: raw}
}

// --- Mock ConnectionSvcFacade ---
type MockConnectionService struct {
	mock.Mock
}

func (m *MockConnectionService) Initiate(ctx context.Context, businessID string, provider domain.Provider) (string, error) {
	args := m.Called(ctx, businessID, provider)
	return args.String(0), args.Error(1)
}

func (m *MockConnectionService) CompleteHandshake(ctx context.Context, businessID string, provider domain.Provider, code string) (*domain.CredentialRecord, error) {
	args := m.Called(ctx, businessID, provider, code)
	var record *domain.CredentialRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.CredentialRecord)
	}
	return record, args.Error(1)
}

func (m *MockConnectionService) EnsureValidCredentials(ctx context.Context, businessID string, provider domain.Provider) (*domain.CredentialRecord, error) {
	args := m.Called(ctx, businessID, provider)
	var record *domain.CredentialRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.CredentialRecord)
	}
	return record, args.Error(1)
}

func (m *MockConnectionService) RefreshCredentials(ctx context.Context, businessID string, provider domain.Provider) (*domain.CredentialRecord, error) {
	args := m.Called(ctx, businessID, provider)
	var record *domain.CredentialRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.CredentialRecord)
	}
	return record, args.Error(1)
}

// --- Mock PaymentDataSource ---
type MockPaymentDataSource struct {
	mock.Mock
}

func (m *MockPaymentDataSource) ListSubscriptions(ctx context.Context, accountID string) ([]portsprov.PaymentSubscription, error) {
	args := m.Called(ctx, accountID)
	var subs []portsprov.PaymentSubscription
	if args.Get(0) != nil {
		subs = args.Get(0).([]portsprov.PaymentSubscription)
	}
	return subs, args.Error(1)
}

func (m *MockPaymentDataSource) ListProducts(ctx context.Context, accountID string) ([]portsprov.PaymentProduct, error) {
	args := m.Called(ctx, accountID)
	var products []portsprov.PaymentProduct
	if args.Get(0) != nil {
		products = args.Get(0).([]portsprov.PaymentProduct)
	}
	return products, args.Error(1)
}

func (m *MockPaymentDataSource) ListCharges(ctx context.Context, accountID, customerID string) ([]portsprov.PaymentCharge, error) {
	args := m.Called(ctx, accountID, customerID)
	var charges []portsprov.PaymentCharge
	if args.Get(0) != nil {
		charges = args.Get(0).([]portsprov.PaymentCharge)
	}
	return charges, args.Error(1)
}

func (m *MockPaymentDataSource) ListRefunds(ctx context.Context, accountID string) ([]portsprov.PaymentRefund, error) {
	args := m.Called(ctx, accountID)
	var refunds []portsprov.PaymentRefund
	if args.Get(0) != nil {
		refunds = args.Get(0).([]portsprov.PaymentRefund)
	}
	return refunds, args.Error(1)
}
