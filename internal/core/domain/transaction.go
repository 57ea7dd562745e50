package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection marks whether money moved into or out of the business.
type TransactionDirection string

const (
	DirectionInflow  TransactionDirection = "inflow"
	DirectionOutflow TransactionDirection = "outflow"
)

// CanonicalTransaction is a normalized, provider-agnostic ledger entry.
// Amounts are in major currency units, signed (outflows negative).
type CanonicalTransaction struct {
	TransactionID    string               `json:"transactionId"`
	Amount           decimal.Decimal      `json:"amount"`
	Currency         string               `json:"currency"` // ISO code, uppercased
	Date             time.Time            `json:"date"`
	Description      string               `json:"description"`
	Status           string               `json:"status"`
	Direction        TransactionDirection `json:"direction"`
	CounterpartyName string               `json:"counterpartyName"`
	// Raw preserves the provider-native record for audit.
	Raw json.RawMessage `json:"raw,omitempty"`
}
