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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCredentialRepository struct {
	db *pgxpool.Pool
}

func newPgxCredentialRepository(db *pgxpool.Pool) portsrepo.CredentialRepository {
	return &PgxCredentialRepository{db: db}
}

var _ portsrepo.CredentialRepository = (*PgxCredentialRepository)(nil)

func toModelCredential(d domain.CredentialRecord) models.Credential {
	return models.Credential{
		BusinessID:    d.BusinessID,
		Provider:      string(d.Provider),
		AccountID:     d.AccountID,
		AccessToken:   d.AccessToken,
		RefreshToken:  d.RefreshToken,
		ConnectedAt:   d.ConnectedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

func toDomainCredential(m models.Credential) domain.CredentialRecord {
	return domain.CredentialRecord{
		BusinessID:    m.BusinessID,
		Provider:      domain.Provider(m.Provider),
		AccountID:     m.AccountID,
		AccessToken:   m.AccessToken,
		RefreshToken:  m.RefreshToken,
		ConnectedAt:   m.ConnectedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// UpsertCredential inserts or fully overwrites the stored record for the
// (business, provider) pair. The conflict target enforces the at-most-one
// invariant; the rotated refresh token always replaces the prior one.
func (r *PgxCredentialRepository) UpsertCredential(ctx context.Context, record domain.CredentialRecord) error {
	m := toModelCredential(record)
	query := `
        INSERT INTO provider_credentials (business_id, provider, account_id, access_token, refresh_token, connected_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (business_id, provider) DO UPDATE SET
            account_id = EXCLUDED.account_id,
            access_token = EXCLUDED.access_token,
            refresh_token = EXCLUDED.refresh_token,
            last_updated_at = EXCLUDED.last_updated_at;
    `
	_, err := r.db.Exec(ctx, query,
		m.BusinessID,
		m.Provider,
		m.AccountID,
		m.AccessToken,
		m.RefreshToken,
		m.ConnectedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert credential for %s/%s: %w", m.BusinessID, m.Provider, apperrors.ErrPersistence)
	}
	return nil
}

func (r *PgxCredentialRepository) FindCredential(ctx context.Context, businessID string, provider domain.Provider) (*domain.CredentialRecord, error) {
	query := `
		SELECT business_id, provider, account_id, access_token, refresh_token, connected_at, last_updated_at
		FROM provider_credentials
		WHERE business_id = $1 AND provider = $2;
	`
	var m models.Credential
	err := r.db.QueryRow(ctx, query, businessID, string(provider)).Scan(
		&m.BusinessID,
		&m.Provider,
		&m.AccountID,
		&m.AccessToken,
		&m.RefreshToken,
		&m.ConnectedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credential for %s/%s: %w", businessID, provider, err)
	}
	d := toDomainCredential(m)
	return &d, nil
}
