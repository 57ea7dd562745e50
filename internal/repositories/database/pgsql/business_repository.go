package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finsight/finsight_backend/internal/apperrors"
	"github.com/finsight/finsight_backend/internal/core/domain"
	portsrepo "github.com/finsight/finsight_backend/internal/core/ports/repositories"
	"github.com/finsight/finsight_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaks.
const uniqueViolation = "23505"

type PgxBusinessRepository struct {
	db *pgxpool.Pool
}

func newPgxBusinessRepository(db *pgxpool.Pool) portsrepo.BusinessRepository {
	return &PgxBusinessRepository{db: db}
}

var _ portsrepo.BusinessRepository = (*PgxBusinessRepository)(nil)

func toModelBusiness(d domain.Business) models.Business {
	return models.Business{
		BusinessID:   d.BusinessID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainBusiness(m models.Business) domain.Business {
	return domain.Business{
		BusinessID:   m.BusinessID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func (r *PgxBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	m := toModelBusiness(business)
	query := `
        INSERT INTO businesses (business_id, name, email, password_hash, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		m.BusinessID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("business email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save business: %w", apperrors.ErrPersistence)
	}
	return nil
}

func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := `
		SELECT business_id, name, email, password_hash, created_at, last_updated_at
		FROM businesses
		WHERE business_id = $1;
	`
	return r.scanBusiness(r.db.QueryRow(ctx, query, businessID), businessID)
}

func (r *PgxBusinessRepository) FindBusinessByEmail(ctx context.Context, email string) (*domain.Business, error) {
	query := `
		SELECT business_id, name, email, password_hash, created_at, last_updated_at
		FROM businesses
		WHERE email = $1;
	`
	return r.scanBusiness(r.db.QueryRow(ctx, query, email), email)
}

func (r *PgxBusinessRepository) scanBusiness(row pgx.Row, key string) (*domain.Business, error) {
	var m models.Business
	err := row.Scan(
		&m.BusinessID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find business %s: %w", key, err)
	}
	d := toDomainBusiness(m)
	return &d, nil
}
