package services

import (
	"context"

	"github.com/finsight/finsight_backend/internal/core/domain"
	"github.com/finsight/finsight_backend/internal/dto"
)

// BusinessSvcFacade defines business account operations.
type BusinessSvcFacade interface {
	// RegisterBusiness creates a new business account and returns it together
	// with a signed session token. Fails with apperrors.ErrDuplicate when the
	// email is already registered.
	RegisterBusiness(ctx context.Context, req dto.RegisterBusinessRequest) (*domain.Business, string, error)

	// GetBusinessByID fails with apperrors.ErrNotFound for an unknown id.
	GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)
}
