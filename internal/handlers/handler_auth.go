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

// authHandler handles business account registration.
type authHandler struct {
	businessService   portssvc.BusinessSvcFacade
	connectionService portssvc.ConnectionSvcFacade
}

func newAuthHandler(bs portssvc.BusinessSvcFacade, cs portssvc.ConnectionSvcFacade) *authHandler {
	return &authHandler{
		businessService:   bs,
		connectionService: cs,
	}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, bs portssvc.BusinessSvcFacade, cs portssvc.ConnectionSvcFacade) {
	h := newAuthHandler(bs, cs)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.registerBusiness)
	}
}

func (h *authHandler) registerBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for register request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration payload", "error": err.Error()})
		return
	}

	business, token, err := h.businessService.RegisterBusiness(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to register business", slog.String("error", err.Error()))
		respondError(c, "Failed to register business", err)
		return
	}

	// The onboarding flow continues with Stripe, so the authorize URL is
	// handed back with the account details.
	stripeURL, err := h.connectionService.Initiate(c.Request.Context(), business.BusinessID, domain.ProviderStripe)
	if err != nil {
		logger.Error("Failed to build Stripe authorize URL", slog.String("error", err.Error()))
		respondError(c, "Failed to build Stripe authorize URL", err)
		return
	}

	logger.Info("Business registered", slog.String("business_id", business.BusinessID))
	c.JSON(http.StatusCreated, dto.ToRegisterBusinessResponse(business, stripeURL, token))
}
