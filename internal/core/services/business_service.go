package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finsight/finsight_backend/internal/apperrors"
	"github.com/finsight/finsight_backend/internal/core/domain"
	portsrepo "github.com/finsight/finsight_backend/internal/core/ports/repositories"
	portssvc "github.com/finsight/finsight_backend/internal/core/ports/services"
	"github.com/finsight/finsight_backend/internal/dto"
	"github.com/finsight/finsight_backend/internal/platform/config"
	"github.com/finsight/finsight_backend/internal/utils"
	"github.com/google/uuid"
)

// BusinessService manages business account registration and lookup.
type BusinessService struct {
	cfg          *config.Config
	businessRepo portsrepo.BusinessRepository
}

// NewBusinessService creates a BusinessService.
func NewBusinessService(cfg *config.Config, businessRepo portsrepo.BusinessRepository) *BusinessService {
	return &BusinessService{cfg: cfg, businessRepo: businessRepo}
}

var _ portssvc.BusinessSvcFacade = (*BusinessService)(nil)

// RegisterBusiness creates a new business account with a bcrypt password
// hash and returns it with a signed session token. The email must not be
// registered already.
func (s *BusinessService) RegisterBusiness(ctx context.Context, req dto.RegisterBusinessRequest) (*domain.Business, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.businessRepo.FindBusinessByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check for existing business: %w", err)
	}
	if existing != nil {
		return nil, "", fmt.Errorf("business already exists for %s: %w", email, apperrors.ErrDuplicate)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	business := domain.Business{
		BusinessID:   uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: passwordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.businessRepo.SaveBusiness(ctx, business); err != nil {
		return nil, "", fmt.Errorf("failed to create business: %w", err)
	}

	token, err := utils.GenerateSessionToken(business.BusinessID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	return &business, token, nil
}

// GetBusinessByID resolves a business or fails with apperrors.ErrNotFound.
func (s *BusinessService) GetBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get business by ID: %w", err)
	}
	return business, nil
}
