package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finsight/finsight_backend/internal/apperrors"
	"github.com/finsight/finsight_backend/internal/core/domain"
	portsprov "github.com/finsight/finsight_backend/internal/core/ports/providers"
	portssvc "github.com/finsight/finsight_backend/internal/core/ports/services"
	"github.com/finsight/finsight_backend/internal/dto"
	"github.com/finsight/finsight_backend/internal/handlers"
	"github.com/finsight/finsight_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock services ---

type MockBusinessService struct {
	mock.Mock
}

func (m *MockBusinessService) RegisterBusiness(ctx context.Context, req dto.RegisterBusinessRequest) (*domain.Business, string, error) {
	args := m.Called(ctx, req)
	var business *domain.Business
	if args.Get(0) != nil {
		business = args.Get(0).(*domain.Business)
	}
	return business, args.String(1), args.Error(2)
}

func (m *MockBusinessService) GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

type MockConnectionService struct {
	mock.Mock
}

func (m *MockConnectionService) Initiate(ctx context.Context, businessID string, provider domain.Provider) (string, error) {
	args := m.Called(ctx, businessID, provider)
	return args.String(0), args.Error(1)
}

func (m *MockConnectionService) CompleteHandshake(ctx context.Context, businessID string, provider domain.Provider, code string) (*domain.CredentialRecord, error) {
	args := m.Called(ctx, businessID, provider, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CredentialRecord), args.Error(1)
}

func (m *MockConnectionService) EnsureValidCredentials(ctx context.Context, businessID string, provider domain.Provider) (*domain.CredentialRecord, error) {
	args := m.Called(ctx, businessID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CredentialRecord), args.Error(1)
}

func (m *MockConnectionService) RefreshCredentials(ctx context.Context, businessID string, provider domain.Provider) (*domain.CredentialRecord, error) {
	args := m.Called(ctx, businessID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CredentialRecord), args.Error(1)
}

type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) SyncAll(ctx context.Context, businessID string, provider domain.Provider) ([]domain.CanonicalTransaction, error) {
	args := m.Called(ctx, businessID, provider)
	var txns []domain.CanonicalTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.CanonicalTransaction)
	}
	return txns, args.Error(1)
}

type MockAggregationService struct {
	mock.Mock
}

func (m *MockAggregationService) SummarizeCustomers(ctx context.Context, businessID string) (*domain.CustomerAggregate, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerAggregate), args.Error(1)
}

type MockSalesService struct {
	mock.Mock
}

func (m *MockSalesService) ListCharges(ctx context.Context, customerID string) ([]portsprov.PaymentCharge, error) {
	args := m.Called(ctx, customerID)
	var charges []portsprov.PaymentCharge
	if args.Get(0) != nil {
		charges = args.Get(0).([]portsprov.PaymentCharge)
	}
	return charges, args.Error(1)
}

func (m *MockSalesService) ListRefunds(ctx context.Context) ([]portsprov.PaymentRefund, error) {
	args := m.Called(ctx)
	var refunds []portsprov.PaymentRefund
	if args.Get(0) != nil {
		refunds = args.Get(0).([]portsprov.PaymentRefund)
	}
	return refunds, args.Error(1)
}

// --- Test Suite ---

type HandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockBusiness    *MockBusinessService
	mockConnection  *MockConnectionService
	mockSync        *MockSyncService
	mockAggregation *MockAggregationService
	mockSales       *MockSalesService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockBusiness = new(MockBusinessService)
	suite.mockConnection = new(MockConnectionService)
	suite.mockSync = new(MockSyncService)
	suite.mockAggregation = new(MockAggregationService)
	suite.mockSales = new(MockSalesService)

	container := &portssvc.ServiceContainer{
		Business:    suite.mockBusiness,
		Connection:  suite.mockConnection,
		Sync:        suite.mockSync,
		Aggregation: suite.mockAggregation,
		Sales:       suite.mockSales,
	}

	suite.router = gin.New()
	noopLimit := func(c *gin.Context) { c.Next() }
	handlers.RegisterRoutes(suite.router, &config.Config{}, container, noopLimit)
}

func (suite *HandlerTestSuite) performJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestHealthAndRoot() {
	w := suite.performJSON(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.performJSON(http.MethodGet, "/", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "API is running")
}

func (suite *HandlerTestSuite) TestRegisterBusiness_Created() {
	business := &domain.Business{BusinessID: "biz-1", Name: "Acme", Email: "owner@acme.example"}
	suite.mockBusiness.On("RegisterBusiness", mock.Anything, mock.AnythingOfType("dto.RegisterBusinessRequest")).Return(business, "signed-token", nil).Once()
	suite.mockConnection.On("Initiate", mock.Anything, "biz-1", domain.ProviderStripe).Return("https://connect.stripe.com/oauth/authorize?state=biz-1", nil).Once()

	w := suite.performJSON(http.MethodPost, "/auth/register", dto.RegisterBusinessRequest{
		Name:     "Acme",
		Email:    "owner@acme.example",
		Password: "password123",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.RegisterBusinessResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("biz-1", resp.Data.ID)
	suite.Equal("signed-token", resp.Data.Token)
	suite.Contains(resp.Data.StripeRedirectURL, "state=biz-1")
}

func (suite *HandlerTestSuite) TestRegisterBusiness_DuplicateEmail() {
	suite.mockBusiness.On("RegisterBusiness", mock.Anything, mock.AnythingOfType("dto.RegisterBusinessRequest")).Return(nil, "", apperrors.ErrDuplicate).Once()

	w := suite.performJSON(http.MethodPost, "/auth/register", dto.RegisterBusinessRequest{
		Name:     "Acme",
		Email:    "owner@acme.example",
		Password: "password123",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestRegisterBusiness_InvalidPayload() {
	w := suite.performJSON(http.MethodPost, "/auth/register", map[string]string{"name": "Acme"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBusiness.AssertNotCalled(suite.T(), "RegisterBusiness", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestStripeConnect_Success() {
	suite.mockConnection.On("Initiate", mock.Anything, "biz-1", domain.ProviderStripe).Return("https://connect.stripe.com/oauth/authorize?state=biz-1", nil).Once()

	w := suite.performJSON(http.MethodPost, "/connect/connect", dto.ConnectRequest{BID: "biz-1"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StripeConnectResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("biz-1", resp.BID)
	suite.Contains(resp.StripeAuthURL, "state=biz-1")
}

func (suite *HandlerTestSuite) TestStripeConnect_MissingBID() {
	w := suite.performJSON(http.MethodPost, "/connect/connect", map[string]string{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockConnection.AssertNotCalled(suite.T(), "Initiate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestStripeCallback_Success() {
	record := &domain.CredentialRecord{BusinessID: "biz-1", Provider: domain.ProviderStripe, AccountID: "acct_123"}
	suite.mockConnection.On("CompleteHandshake", mock.Anything, "biz-1", domain.ProviderStripe, "auth-code").Return(record, nil).Once()

	w := suite.performJSON(http.MethodGet, "/connect/stripe/callback?code=auth-code&state=biz-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StripeCallbackResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("acct_123", resp.StripeUserID)
}

func (suite *HandlerTestSuite) TestStripeCallback_MissingParams() {
	w := suite.performJSON(http.MethodGet, "/connect/stripe/callback?code=auth-code", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockConnection.AssertNotCalled(suite.T(), "CompleteHandshake", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestSyncTransactions_Success() {
	txns := []domain.CanonicalTransaction{{
		TransactionID: "txn_1",
		Amount:        decimal.New(1050, -2),
		Currency:      "USD",
		Date:          time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC),
		Description:   "Payment",
		Status:        "available",
		Direction:     domain.DirectionInflow,
	}}
	suite.mockSync.On("SyncAll", mock.Anything, "biz-1", domain.ProviderStripe).Return(txns, nil).Once()

	w := suite.performJSON(http.MethodPost, "/connect/transactions", dto.ConnectRequest{BID: "biz-1"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SyncTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Count)
	suite.Equal("10.50", resp.Transactions[0].Amount)
}

func (suite *HandlerTestSuite) TestSyncTransactions_NoCredentialsIs404() {
	suite.mockSync.On("SyncAll", mock.Anything, "biz-1", domain.ProviderStripe).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performJSON(http.MethodPost, "/connect/transactions", dto.ConnectRequest{BID: "biz-1"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestSyncTransactions_IncompleteIs500() {
	suite.mockSync.On("SyncAll", mock.Anything, "biz-1", domain.ProviderStripe).Return(nil, apperrors.ErrSyncIncomplete).Once()

	w := suite.performJSON(http.MethodPost, "/connect/transactions", dto.ConnectRequest{BID: "biz-1"})

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *HandlerTestSuite) TestXeroBankTransactions_RequiresBID() {
	w := suite.performJSON(http.MethodGet, "/xero/bank_transactions", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSync.AssertNotCalled(suite.T(), "SyncAll", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestXeroBankTransactions_Success() {
	txns := []domain.CanonicalTransaction{{
		TransactionID: "bt-1",
		Amount:        decimal.NewFromInt(-20),
		Currency:      "NZD",
		Date:          time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC),
		Direction:     domain.DirectionOutflow,
	}}
	suite.mockSync.On("SyncAll", mock.Anything, "biz-1", domain.ProviderXero).Return(txns, nil).Once()

	w := suite.performJSON(http.MethodGet, "/xero/bank_transactions?BID=biz-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.XeroBankTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 1)
}

func (suite *HandlerTestSuite) TestActualCustomers_Success() {
	aggregate := &domain.CustomerAggregate{
		BusinessID:     "biz-1",
		TotalCustomers: 3,
		Subscriptions:  map[string]domain.SubscriptionBucket{},
		UpdatedAt:      time.Now(),
	}
	suite.mockAggregation.On("SummarizeCustomers", mock.Anything, "biz-1").Return(aggregate, nil).Once()

	w := suite.performJSON(http.MethodPost, "/customers/actual_customer", dto.ConnectRequest{BID: "biz-1"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CustomerAggregateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.TotalCustomers)
	suite.Equal("biz-1", resp.BID)
}

func (suite *HandlerTestSuite) TestListRefunds_Success() {
	refunds := []portsprov.PaymentRefund{{
		RefundID: "re_1",
		Amount:   decimal.New(500, -2),
		Currency: "usd",
		Status:   "succeeded",
		Created:  time.Date(2025, time.May, 2, 9, 30, 0, 0, time.UTC),
	}}
	suite.mockSales.On("ListRefunds", mock.Anything).Return(refunds, nil).Once()

	w := suite.performJSON(http.MethodGet, "/sales/refunds", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListRefundsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Refunds, 1)
	suite.Equal("5.00", resp.Refunds[0].Amount)
	suite.Equal("USD", resp.Refunds[0].Currency)
	suite.Equal("N/A", resp.Refunds[0].Reason)
}

func (suite *HandlerTestSuite) TestListCustomerCharges_PassesCustomerID() {
	suite.mockSales.On("ListCharges", mock.Anything, "cus_42").Return([]portsprov.PaymentCharge{}, nil).Once()

	w := suite.performJSON(http.MethodGet, "/sales/actual_sales/cus_42", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSales.AssertExpectations(suite.T())
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
