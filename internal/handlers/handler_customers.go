package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finsight/finsight_backend/internal/core/ports/services"
	"github.com/finsight/finsight_backend/internal/dto"
	"github.com/finsight/finsight_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// customerHandler serves the recomputed customer/subscription aggregates.
type customerHandler struct {
	aggregationService portssvc.AggregationSvcFacade
}

func newCustomerHandler(as portssvc.AggregationSvcFacade) *customerHandler {
	return &customerHandler{aggregationService: as}
}

// registerCustomerRoutes registers the customer analytics routes.
func registerCustomerRoutes(r *gin.RouterGroup, as portssvc.AggregationSvcFacade) {
	h := newCustomerHandler(as)

	customers := r.Group("/customers")
	{
		customers.POST("/actual_customer", h.actualCustomers)
	}
}

func (h *customerHandler) actualCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for customer aggregate request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"message": "BID is required", "error": err.Error()})
		return
	}

	aggregate, err := h.aggregationService.SummarizeCustomers(c.Request.Context(), req.BID)
	if err != nil {
		logger.Error("Failed to summarize customers", slog.String("business_id", req.BID), slog.String("error", err.Error()))
		respondError(c, "Failed to retrieve customer actuals", err)
		return
	}

	logger.Info("Customer aggregate recomputed", slog.String("business_id", req.BID), slog.Int("total_customers", aggregate.TotalCustomers))
	c.JSON(http.StatusOK, dto.ToCustomerAggregateResponse(aggregate))
}
