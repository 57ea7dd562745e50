package stripe

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/finsight/finsight_backend/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

// The list calls below run with the platform secret key; a non-empty
// accountID scopes them to a connected account via the Stripe-Account header.

func (a *Adapter) ListSubscriptions(ctx context.Context, accountID string) ([]providers.PaymentSubscription, error) {
	var page struct {
		Data []struct {
			ID       string `json:"id"`
			Customer string `json:"customer"`
			Status   string `json:"status"`
			Created  int64  `json:"created"`
			Items    struct {
				Data []struct {
					Price struct {
						Product string `json:"product"`
					} `json:"price"`
				} `json:"data"`
			} `json:"items"`
		} `json:"data"`
	}
	if err := a.getJSON(ctx, "/v1/subscriptions", listParams(), a.secretKey, accountID, &page); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	out := make([]providers.PaymentSubscription, len(page.Data))
	for i, s := range page.Data {
		productID := ""
		if len(s.Items.Data) > 0 {
			productID = s.Items.Data[0].Price.Product
		}
		out[i] = providers.PaymentSubscription{
			SubscriptionID: s.ID,
			CustomerID:     s.Customer,
			ProductID:      productID,
			Status:         s.Status,
			Created:        time.Unix(s.Created, 0),
		}
	}
	return out, nil
}

func (a *Adapter) ListProducts(ctx context.Context, accountID string) ([]providers.PaymentProduct, error) {
	var page struct {
		Data []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := a.getJSON(ctx, "/v1/products", listParams(), a.secretKey, accountID, &page); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]providers.PaymentProduct, len(page.Data))
	for i, p := range page.Data {
		out[i] = providers.PaymentProduct{ProductID: p.ID, Name: p.Name}
	}
	return out, nil
}

func (a *Adapter) ListCharges(ctx context.Context, accountID, customerID string) ([]providers.PaymentCharge, error) {
	params := listParams()
	if customerID != "" {
		params.Set("customer", customerID)
	}
	var page struct {
		Data []struct {
			ID             string `json:"id"`
			Amount         int64  `json:"amount"`
			Currency       string `json:"currency"`
			Status         string `json:"status"`
			Description    string `json:"description"`
			Created        int64  `json:"created"`
			Customer       string `json:"customer"`
			BillingDetails struct {
				Email string `json:"email"`
			} `json:"billing_details"`
			PaymentMethodDetails struct {
				Type string `json:"type"`
				Card struct {
					Brand string `json:"brand"`
					Last4 string `json:"last4"`
				} `json:"card"`
			} `json:"payment_method_details"`
		} `json:"data"`
	}
	if err := a.getJSON(ctx, "/v1/charges", params, a.secretKey, accountID, &page); err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}
	out := make([]providers.PaymentCharge, len(page.Data))
	for i, c := range page.Data {
		method := c.PaymentMethodDetails.Type
		if c.PaymentMethodDetails.Card.Brand != "" {
			method = fmt.Sprintf("%s **** %s", strings.ToUpper(c.PaymentMethodDetails.Card.Brand), c.PaymentMethodDetails.Card.Last4)
		}
		out[i] = providers.PaymentCharge{
			ChargeID:      c.ID,
			Amount:        decimal.New(c.Amount, -2),
			Currency:      c.Currency,
			Status:        c.Status,
			Description:   c.Description,
			Created:       time.Unix(c.Created, 0),
			CustomerID:    c.Customer,
			CustomerEmail: c.BillingDetails.Email,
			PaymentMethod: method,
		}
	}
	return out, nil
}

func (a *Adapter) ListRefunds(ctx context.Context, accountID string) ([]providers.PaymentRefund, error) {
	var page struct {
		Data []struct {
			ID            string `json:"id"`
			Amount        int64  `json:"amount"`
			Currency      string `json:"currency"`
			Status        string `json:"status"`
			Reason        string `json:"reason"`
			Created       int64  `json:"created"`
			PaymentIntent string `json:"payment_intent"`
		} `json:"data"`
	}
	if err := a.getJSON(ctx, "/v1/refunds", listParams(), a.secretKey, accountID, &page); err != nil {
		return nil, fmt.Errorf("list refunds: %w", err)
	}
	out := make([]providers.PaymentRefund, len(page.Data))
	for i, r := range page.Data {
		out[i] = providers.PaymentRefund{
			RefundID:      r.ID,
			Amount:        decimal.New(r.Amount, -2),
			Currency:      r.Currency,
			Status:        r.Status,
			Reason:        r.Reason,
			Created:       time.Unix(r.Created, 0),
			PaymentIntent: r.PaymentIntent,
		}
	}
	return out, nil
}

func listParams() url.Values {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", pageSize))
	return params
}
