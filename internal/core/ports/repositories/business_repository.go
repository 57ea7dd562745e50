package repositories

import (
	"context"

	"github.com/finsight/finsight_backend/internal/core/domain"
)

// BusinessRepository persists business accounts.
type BusinessRepository interface {
	// SaveBusiness inserts a new business. Returns apperrors.ErrDuplicate
	// when the email is already registered.
	SaveBusiness(ctx context.Context, business domain.Business) error

	// FindBusinessByID returns apperrors.ErrNotFound when absent.
	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)

	// FindBusinessByEmail returns apperrors.ErrNotFound when absent.
	FindBusinessByEmail(ctx context.Context, email string) (*domain.Business, error)
}
