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

// xeroHandler drives the Xero OAuth handshake and bank transaction sync.
type xeroHandler struct {
	connectionService portssvc.ConnectionSvcFacade
	syncService       portssvc.SyncSvcFacade
}

func newXeroHandler(cs portssvc.ConnectionSvcFacade, ss portssvc.SyncSvcFacade) *xeroHandler {
	return &xeroHandler{
		connectionService: cs,
		syncService:       ss,
	}
}

// registerXeroRoutes registers the Xero connection routes.
func registerXeroRoutes(r *gin.RouterGroup, cs portssvc.ConnectionSvcFacade, ss portssvc.SyncSvcFacade) {
	h := newXeroHandler(cs, ss)

	xero := r.Group("/xero")
	{
		xero.POST("/connect", h.initiateConnect)
		xero.GET("/callback", h.callback)
		xero.GET("/bank_transactions", h.bankTransactions)
	}
}

func (h *xeroHandler) initiateConnect(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for Xero connect request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"message": "BID is required", "error": err.Error()})
		return
	}

	authURL, err := h.connectionService.Initiate(c.Request.Context(), req.BID, domain.ProviderXero)
	if err != nil {
		logger.Error("Failed to initiate Xero connect", slog.String("business_id", req.BID), slog.String("error", err.Error()))
		respondError(c, "Failed to initiate Xero connection", err)
		return
	}

	c.JSON(http.StatusOK, dto.XeroConnectResponse{
		BID:     req.BID,
		Message: "Xero authorize URL generated",
		URL:     authURL,
	})
}

func (h *xeroHandler) callback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Query("code")
	businessID := c.Query("state")
	if code == "" || businessID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "code and state query parameters are required", "error": "missing code or state"})
		return
	}

	record, err := h.connectionService.CompleteHandshake(c.Request.Context(), businessID, domain.ProviderXero, code)
	if err != nil {
		logger.Error("Xero handshake failed", slog.String("business_id", businessID), slog.String("error", err.Error()))
		respondError(c, "Failed to complete Xero connection", err)
		return
	}

	logger.Info("Xero organization connected", slog.String("business_id", businessID), slog.String("tenant_id", record.AccountID))
	c.JSON(http.StatusOK, dto.XeroCallbackResponse{
		Message:      "Xero connected successfully",
		AccessToken:  record.AccessToken,
		RefreshToken: record.RefreshToken,
	})
}

func (h *xeroHandler) bankTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Query("BID")
	if businessID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "BID query parameter is required", "error": "missing BID"})
		return
	}

	txns, err := h.syncService.SyncAll(c.Request.Context(), businessID, domain.ProviderXero)
	if err != nil {
		logger.Error("Xero bank transaction sync failed", slog.String("business_id", businessID), slog.String("error", err.Error()))
		respondError(c, "Failed to fetch Xero bank transactions", err)
		return
	}

	logger.Info("Xero bank transactions synced", slog.String("business_id", businessID), slog.Int("count", len(txns)))
	c.JSON(http.StatusOK, dto.XeroBankTransactionsResponse{
		Transactions: dto.ToDatedTransactionEntries(txns),
	})
}
