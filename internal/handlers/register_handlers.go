package handlers

import (
	"errors"
	"net/http"

	"github.com/finsight/finsight_backend/internal/apperrors"
	portssvc "github.com/finsight/finsight_backend/internal/core/ports/services"
	"github.com/finsight/finsight_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces. rateLimit is applied to the provider-facing route groups only;
// registration and liveness stay unthrottled.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimit gin.HandlerFunc,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is running"})
	})

	registerAuthRoutes(r, services.Business, services.Connection)

	limited := r.Group("", rateLimit)
	registerStripeRoutes(limited, services.Connection, services.Sync)
	registerXeroRoutes(limited, services.Connection, services.Sync)
	registerCustomerRoutes(limited, services.Aggregation)
	registerSalesRoutes(limited, services.Sales)
}

// respondError converts a service error to the JSON error envelope, mapping
// the sentinel taxonomy to HTTP statuses.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"message": message, "error": err.Error()})
}
