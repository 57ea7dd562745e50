package dto

import (
	"fmt"
	"strings"

	"github.com/finsight/finsight_backend/internal/core/ports/providers"
)

// ChargeResponse is one formatted payment charge.
type ChargeResponse struct {
	TransactionID string `json:"transactionId"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	CustomerID    string `json:"customerId"`
	CustomerEmail string `json:"customerEmail"`
	PaymentMethod string `json:"paymentMethod"`
}

// RefundResponse is one formatted refund.
type RefundResponse struct {
	RefundID      string `json:"refundId"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	Reason        string `json:"reason"`
	Created       string `json:"created"`
	PaymentIntent string `json:"paymentIntent"`
}

// ListChargesResponse wraps the charge list.
type ListChargesResponse struct {
	Message      string           `json:"message"`
	CustomerID   string           `json:"customerId,omitempty"`
	Transactions []ChargeResponse `json:"transactions"`
}

// ListRefundsResponse wraps the refund list.
type ListRefundsResponse struct {
	Message string           `json:"message"`
	Refunds []RefundResponse `json:"refunds"`
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// ToChargeResponse formats one provider charge.
func ToChargeResponse(c providers.PaymentCharge) ChargeResponse {
	description := c.Description
	if description == "" {
		description = "No description"
	}
	return ChargeResponse{
		TransactionID: c.ChargeID,
		Amount:        c.Amount.StringFixed(2),
		Currency:      strings.ToUpper(c.Currency),
		Status:        c.Status,
		Description:   description,
		Date:          c.Created.Format("2006-01-02"),
		Time:          c.Created.Format("15:04:05"),
		CustomerID:    orNA(c.CustomerID),
		CustomerEmail: orNA(c.CustomerEmail),
		PaymentMethod: orNA(c.PaymentMethod),
	}
}

// ToChargeResponses formats a slice of charges, preserving order.
func ToChargeResponses(charges []providers.PaymentCharge) []ChargeResponse {
	out := make([]ChargeResponse, len(charges))
	for i, c := range charges {
		out[i] = ToChargeResponse(c)
	}
	return out
}

// ToRefundResponses formats a slice of refunds, preserving order.
func ToRefundResponses(refunds []providers.PaymentRefund) []RefundResponse {
	out := make([]RefundResponse, len(refunds))
	for i, r := range refunds {
		out[i] = RefundResponse{
			RefundID:      r.RefundID,
			Amount:        r.Amount.StringFixed(2),
			Currency:      strings.ToUpper(r.Currency),
			Status:        r.Status,
			Reason:        orNA(r.Reason),
			Created:       fmt.Sprintf("%s %s", r.Created.Format("2006-01-02"), r.Created.Format("15:04:05")),
			PaymentIntent: orNA(r.PaymentIntent),
		}
	}
	return out
}
