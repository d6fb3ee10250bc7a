package openrouter

import "context"

// Credits reports account balance totals in USD.
type Credits struct {
	TotalCredits float64 `json:"total_credits"`
	TotalUsage   float64 `json:"total_usage"`
}

// Remaining returns the unspent balance.
func (c Credits) Remaining() float64 {
	return c.TotalCredits - c.TotalUsage
}

// GetCredits returns the credit balance of the authenticated account.
func (c *Client) GetCredits(ctx context.Context) (*Credits, error) {
	var out apiResponse[Credits]
	if err := c.getJSON(ctx, "/credits", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CoinbaseChargeRequest starts a crypto payment for credit top-up.
type CoinbaseChargeRequest struct {
	Amount  float64 `json:"amount"` // USD
	Sender  string  `json:"sender"`
	ChainID int     `json:"chain_id"`
}

// CoinbaseCharge holds the web3 calldata for a created charge.
type CoinbaseCharge struct {
	ID        string         `json:"id"`
	CreatedAt string         `json:"created_at,omitempty"`
	ExpiresAt string         `json:"expires_at,omitempty"`
	Web3Data  map[string]any `json:"web3_data,omitempty"`
}

// CreateCoinbaseCharge creates a Coinbase charge to purchase credits.
func (c *Client) CreateCoinbaseCharge(ctx context.Context, req *CoinbaseChargeRequest) (*CoinbaseCharge, error) {
	var out apiResponse[CoinbaseCharge]
	if err := c.postJSON(ctx, "/credits/coinbase", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
