package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of one canonical transaction.
// Position preserves the provider's return order within a sync run.
type Transaction struct {
	BusinessID       string          `db:"business_id"`
	Provider         string          `db:"provider"`
	Position         int             `db:"position"`
	TransactionID    string          `db:"transaction_id"`
	Amount           decimal.Decimal `db:"amount"`
	Currency         string          `db:"currency"`
	TxnDate          time.Time       `db:"txn_date"`
	Description      string          `db:"description"`
	Status           string          `db:"status"`
	Direction        string          `db:"direction"`
	CounterpartyName string          `db:"counterparty_name"`
	Raw              []byte          `db:"raw"`
}
