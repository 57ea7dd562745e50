package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/finsight/finsight_backend/internal/apperrors"
	"github.com/finsight/finsight_backend/internal/core/domain"
	portsrepo "github.com/finsight/finsight_backend/internal/core/ports/repositories"
	"github.com/finsight/finsight_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	db *pgxpool.Pool
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{db: db}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

// ReplaceTransactions deletes the stored set for the (business, provider)
// pair and bulk-inserts the new sequence inside one database transaction, so
// readers never observe a partially replaced set.
func (r *PgxTransactionRepository) ReplaceTransactions(ctx context.Context, businessID string, provider domain.Provider, txns []domain.CanonicalTransaction) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin replace transaction: %w", apperrors.ErrPersistence)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM provider_transactions WHERE business_id = $1 AND provider = $2;`,
		businessID, string(provider),
	); err != nil {
		return fmt.Errorf("failed to clear prior transaction set: %w", apperrors.ErrPersistence)
	}

	insertSQL := `
        INSERT INTO provider_transactions
            (business_id, provider, position, transaction_id, amount, currency, txn_date, description, status, direction, counterparty_name, raw)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	batch := &pgx.Batch{}
	for i, t := range txns {
		raw := []byte(t.Raw)
		if raw == nil {
			raw = []byte("{}")
		}
		// position preserves provider return order
		batch.Queue(insertSQL,
			businessID, string(provider), i,
			t.TransactionID, t.Amount, t.Currency, t.Date,
			t.Description, t.Status, string(t.Direction), t.CounterpartyName, raw,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range txns {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert transaction set: %w", apperrors.ErrPersistence)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close insert batch: %w", apperrors.ErrPersistence)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction set: %w", apperrors.ErrPersistence)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactions(ctx context.Context, businessID string, provider domain.Provider) ([]domain.CanonicalTransaction, error) {
	query := `
        SELECT transaction_id, amount, currency, txn_date, description, status, direction, counterparty_name, raw
        FROM provider_transactions
        WHERE business_id = $1 AND provider = $2
        ORDER BY position;
    `
	rows, err := r.db.Query(ctx, query, businessID, string(provider))
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.CanonicalTransaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.Amount,
			&m.Currency,
			&m.TxnDate,
			&m.Description,
			&m.Status,
			&m.Direction,
			&m.CounterpartyName,
			&m.Raw,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, domain.CanonicalTransaction{
			TransactionID:    m.TransactionID,
			Amount:           m.Amount,
			Currency:         m.Currency,
			Date:             m.TxnDate,
			Description:      m.Description,
			Status:           m.Status,
			Direction:        domain.TransactionDirection(m.Direction),
			CounterpartyName: m.CounterpartyName,
			Raw:              json.RawMessage(m.Raw),
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}
