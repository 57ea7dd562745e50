package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finsight/finsight_backend/internal/core/ports/services"
	"github.com/finsight/finsight_backend/internal/dto"
	"github.com/finsight/finsight_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// salesHandler serves formatted platform charge and refund listings.
type salesHandler struct {
	salesService portssvc.SalesSvcFacade
}

func newSalesHandler(ss portssvc.SalesSvcFacade) *salesHandler {
	return &salesHandler{salesService: ss}
}

// registerSalesRoutes registers the sales listing routes.
func registerSalesRoutes(r *gin.RouterGroup, ss portssvc.SalesSvcFacade) {
	h := newSalesHandler(ss)

	sales := r.Group("/sales")
	{
		sales.GET("/actual_sales", h.listCharges)
		sales.GET("/actual_sales/:customerId", h.listCustomerCharges)
		sales.GET("/refunds", h.listRefunds)
	}
}

func (h *salesHandler) listCharges(c *gin.Context) {
	h.respondCharges(c, "")
}

func (h *salesHandler) listCustomerCharges(c *gin.Context) {
	h.respondCharges(c, c.Param("customerId"))
}

func (h *salesHandler) respondCharges(c *gin.Context, customerID string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	charges, err := h.salesService.ListCharges(c.Request.Context(), customerID)
	if err != nil {
		logger.Error("Failed to list charges", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		respondError(c, "Failed to retrieve sales", err)
		return
	}

	c.JSON(http.StatusOK, dto.ListChargesResponse{
		Message:      "Sales retrieved successfully",
		CustomerID:   customerID,
		Transactions: dto.ToChargeResponses(charges),
	})
}

func (h *salesHandler) listRefunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	refunds, err := h.salesService.ListRefunds(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list refunds", slog.String("error", err.Error()))
		respondError(c, "Failed to retrieve refunds", err)
		return
	}

	c.JSON(http.StatusOK, dto.ListRefundsResponse{
		Message: "Refunds retrieved successfully",
		Refunds: dto.ToRefundResponses(refunds),
	})
}
