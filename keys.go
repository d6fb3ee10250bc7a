package openrouter

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CurrentKey describes the API key making the request.
type CurrentKey struct {
	Label             string   `json:"label"`
	Usage             float64  `json:"usage"`
	Limit             *float64 `json:"limit,omitempty"`
	LimitRemaining    *float64 `json:"limit_remaining,omitempty"`
	IsFreeTier        bool     `json:"is_free_tier"`
	IsProvisioningKey bool     `json:"is_provisioning_key,omitempty"`
	RateLimit         *struct {
		Requests int    `json:"requests"`
		Interval string `json:"interval"`
	} `json:"rate_limit,omitempty"`
}

// GetCurrentKey returns usage and limits for the configured API key.
func (c *Client) GetCurrentKey(ctx context.Context) (*CurrentKey, error) {
	var out apiResponse[CurrentKey]
	if err := c.getJSON(ctx, "/key", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// APIKey is one managed key under a provisioning key.
type APIKey struct {
	Hash      string   `json:"hash"`
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Disabled  bool     `json:"disabled"`
	Limit     *float64 `json:"limit,omitempty"`
	Usage     float64  `json:"usage"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// CreatedAPIKey is the create response; Key is the secret and is only
// ever returned here.
type CreatedAPIKey struct {
	APIKey
	Key string `json:"key"`
}

// CreateKeyRequest names a new managed key.
type CreateKeyRequest struct {
	Name  string   `json:"name"`
	Limit *float64 `json:"limit,omitempty"`
}

// UpdateKeyRequest changes a managed key. Nil fields are left unchanged.
type UpdateKeyRequest struct {
	Name     *string  `json:"name,omitempty"`
	Disabled *bool    `json:"disabled,omitempty"`
	Limit    *float64 `json:"limit,omitempty"`
}

// Key management endpoints authenticate with the provisioning key when
// one is configured, falling back to the regular API key.

// ListKeys returns the managed keys, most recent first.
func (c *Client) ListKeys(ctx context.Context, offset int, includeDisabled bool) ([]APIKey, error) {
	query := url.Values{}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	if includeDisabled {
		query.Set("include_disabled", "true")
	}
	if len(query) == 0 {
		query = nil
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/keys", query, nil, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out apiResponse[[]APIKey]
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateKey creates a managed key and returns it with its secret.
func (c *Client) CreateKey(ctx context.Context, create *CreateKeyRequest) (*CreatedAPIKey, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/keys", nil, create, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out apiResponse[CreatedAPIKey]
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	c.logger.Info("api key created", "label", out.Data.Label)
	return &out.Data, nil
}

// GetKey returns one managed key by its hash.
func (c *Client) GetKey(ctx context.Context, hash string) (*APIKey, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/keys/"+url.PathEscape(hash), nil, nil, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out apiResponse[APIKey]
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateKey applies the non-nil fields of update to a managed key.
func (c *Client) UpdateKey(ctx context.Context, hash string, update *UpdateKeyRequest) (*APIKey, error) {
	req, err := c.newRequest(ctx, http.MethodPatch, "/keys/"+url.PathEscape(hash), nil, update, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out apiResponse[APIKey]
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteKey removes a managed key.
func (c *Client) DeleteKey(ctx context.Context, hash string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/keys/"+url.PathEscape(hash), nil, nil, c.provisioningOrAPIKey())
	if err != nil {
		return err
	}

	if err := c.do(req, nil); err != nil {
		return err
	}

	c.logger.Info("api key deleted", "hash", hash)
	return nil
}
