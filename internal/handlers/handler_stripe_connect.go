package handlers

import (
	"log/slog"
	"net/http"

	"github.com/finsight/finsight_backend/internal/core/domain"
	portssvc "github.com/finsight/finsight_backend/internal/core/ports/services"
	"github.com/finsight/finsight_backend/internal/dto"
	"github.com/finsight/finsight_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// stripeConnectHandler drives the Stripe Connect handshake and ledger sync.
type stripeConnectHandler struct {
	connectionService portssvc.ConnectionSvcFacade
	syncService       portssvc.SyncSvcFacade
}

func newStripeConnectHandler(cs portssvc.ConnectionSvcFacade, ss portssvc.SyncSvcFacade) *stripeConnectHandler {
	return &stripeConnectHandler{
		connectionService: cs,
		syncService:       ss,
	}
}

// registerStripeRoutes registers the Stripe connection routes.
func registerStripeRoutes(r *gin.RouterGroup, cs portssvc.ConnectionSvcFacade, ss portssvc.SyncSvcFacade) {
	h := newStripeConnectHandler(cs, ss)

	connect := r.Group("/connect")
	{
		connect.POST("/connect", h.initiateConnect)
		connect.GET("/stripe/callback", h.callback)
		connect.POST("/transactions", h.syncTransactions)
	}
}

func (h *stripeConnectHandler) initiateConnect(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for connect request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"message": "BID is required", "error": err.Error()})
		return
	}

	authURL, err := h.connectionService.Initiate(c.Request.Context(), req.BID, domain.ProviderStripe)
	if err != nil {
		logger.Error("Failed to initiate Stripe connect", slog.String("business_id", req.BID), slog.String("error", err.Error()))
		respondError(c, "Failed to initiate Stripe connection", err)
		return
	}

	c.JSON(http.StatusOK, dto.StripeConnectResponse{
		Message:       "Stripe connect URL generated",
		BID:           req.BID,
		StripeAuthURL: authURL,
	})
}

func (h *stripeConnectHandler) callback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Query("code")
	// state carries the business id set when the authorize URL was built.
	businessID := c.Query("state")
	if code == "" || businessID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "code and state query parameters are required", "error": "missing code or state"})
		return
	}

	record, err := h.connectionService.CompleteHandshake(c.Request.Context(), businessID, domain.ProviderStripe, code)
	if err != nil {
		logger.Error("Stripe handshake failed", slog.String("business_id", businessID), slog.String("error", err.Error()))
		respondError(c, "Failed to complete Stripe connection", err)
		return
	}

	logger.Info("Stripe account connected", slog.String("business_id", businessID), slog.String("stripe_user_id", record.AccountID))
	c.JSON(http.StatusOK, dto.StripeCallbackResponse{
		Message:      "Stripe account connected successfully",
		BID:          businessID,
		StripeUserID: record.AccountID,
	})
}

func (h *stripeConnectHandler) syncTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for sync request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"message": "BID is required", "error": err.Error()})
		return
	}

	txns, err := h.syncService.SyncAll(c.Request.Context(), req.BID, domain.ProviderStripe)
	if err != nil {
		logger.Error("Stripe transaction sync failed", slog.String("business_id", req.BID), slog.String("error", err.Error()))
		respondError(c, "Failed to sync Stripe transactions", err)
		return
	}

	logger.Info("Stripe transactions synced", slog.String("business_id", req.BID), slog.Int("count", len(txns)))
	c.JSON(http.StatusOK, dto.SyncTransactionsResponse{
		Message:      "Transactions synced successfully",
		Count:        len(txns),
		Transactions: dto.ToTransactionResponses(txns),
	})
}
