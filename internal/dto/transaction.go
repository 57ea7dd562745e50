package dto

import (
	"time"

	"github.com/finsight/finsight_backend/internal/core/domain"
)

// TransactionResponse is the serialized canonical transaction. Amounts are
// rendered with two decimal places in major currency units.
type TransactionResponse struct {
	TransactionID    string `json:"transactionId"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
	Date             string `json:"date"`
	Description      string `json:"description"`
	Status           string `json:"status"`
	Direction        string `json:"direction"`
	CounterpartyName string `json:"counterpartyName"`
}

// ToTransactionResponse converts one canonical transaction.
func ToTransactionResponse(t domain.CanonicalTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:    t.TransactionID,
		Amount:           t.Amount.StringFixed(2),
		Currency:         t.Currency,
		Date:             t.Date.Format(time.RFC3339),
		Description:      t.Description,
		Status:           t.Status,
		Direction:        string(t.Direction),
		CounterpartyName: t.CounterpartyName,
	}
}

// ToTransactionResponses converts a slice, preserving order.
func ToTransactionResponses(txns []domain.CanonicalTransaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = ToTransactionResponse(t)
	}
	return out
}

// DatedTransactionEntry keys one transaction by its ISO-8601 date, the shape
// the accounting-ledger route returns.
type DatedTransactionEntry map[string]TransactionResponse

// ToDatedTransactionEntries converts a slice into date-keyed entries.
func ToDatedTransactionEntries(txns []domain.CanonicalTransaction) []DatedTransactionEntry {
	out := make([]DatedTransactionEntry, len(txns))
	for i, t := range txns {
		key := "unknown_date"
		if !t.Date.IsZero() {
			key = t.Date.Format(time.RFC3339)
		}
		out[i] = DatedTransactionEntry{key: ToTransactionResponse(t)}
	}
	return out
}
