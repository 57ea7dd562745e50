package dto

// ConnectRequest identifies the business initiating a provider connection.
type ConnectRequest struct {
	BID string `json:"BID" binding:"required"`
}

// StripeConnectResponse carries the generated Stripe Connect URL.
type StripeConnectResponse struct {
	Message       string `json:"message"`
	BID           string `json:"BID"`
	StripeAuthURL string `json:"stripeAuthUrl"`
}

// StripeCallbackResponse confirms a completed Stripe handshake.
type StripeCallbackResponse struct {
	Message      string `json:"message"`
	BID          string `json:"BID"`
	StripeUserID string `json:"stripe_user_id"`
}

// SyncTransactionsResponse returns a full synchronization result.
type SyncTransactionsResponse struct {
	Message      string                `json:"message"`
	Count        int                   `json:"count"`
	Transactions []TransactionResponse `json:"transactions"`
}

// XeroConnectResponse carries the generated Xero authorize URL.
type XeroConnectResponse struct {
	BID     string `json:"BID"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// XeroCallbackResponse confirms a completed Xero handshake.
type XeroCallbackResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// XeroBankTransactionsResponse lists the normalized accounting ledger,
// entries keyed by ISO date.
type XeroBankTransactionsResponse struct {
	Transactions []DatedTransactionEntry `json:"transactions"`
}
