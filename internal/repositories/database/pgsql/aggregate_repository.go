package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/finsight/finsight_backend/internal/apperrors"
	"github.com/finsight/finsight_backend/internal/core/domain"
	portsrepo "github.com/finsight/finsight_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAggregateRepository struct {
	db *pgxpool.Pool
}

func newPgxAggregateRepository(db *pgxpool.Pool) portsrepo.AggregateRepository {
	return &PgxAggregateRepository{db: db}
}

var _ portsrepo.AggregateRepository = (*PgxAggregateRepository)(nil)

func (r *PgxAggregateRepository) UpsertAggregate(ctx context.Context, agg domain.CustomerAggregate) error {
	data, err := json.Marshal(agg.Subscriptions)
	if err != nil {
		return fmt.Errorf("failed to marshal aggregate data: %w", apperrors.ErrPersistence)
	}

	query := `
        INSERT INTO customer_aggregates (business_id, total_customers, data, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (business_id) DO UPDATE SET
            total_customers = EXCLUDED.total_customers,
            data            = EXCLUDED.data,
            updated_at      = EXCLUDED.updated_at;
    `
	if _, err := r.db.Exec(ctx, query, agg.BusinessID, agg.TotalCustomers, data, agg.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert customer aggregate: %w", apperrors.ErrPersistence)
	}
	return nil
}

func (r *PgxAggregateRepository) FindAggregate(ctx context.Context, businessID string) (*domain.CustomerAggregate, error) {
	query := `
        SELECT business_id, total_customers, data, updated_at
        FROM customer_aggregates
        WHERE business_id = $1;
    `
	var agg domain.CustomerAggregate
	var data []byte
	err := r.db.QueryRow(ctx, query, businessID).Scan(&agg.BusinessID, &agg.TotalCustomers, &data, &agg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer aggregate for business %s: %w", businessID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find customer aggregate: %w", err)
	}
	if err := json.Unmarshal(data, &agg.Subscriptions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal aggregate data: %w", err)
	}
	return &agg, nil
}
