package openrouter

import (
	"context"
	"net/http"
	"net/url"
)

// ActivityItem is one day of usage for one endpoint.
type ActivityItem struct {
	Date               string  `json:"date"`
	Model              string  `json:"model"`
	ModelPermaslug     string  `json:"model_permaslug"`
	EndpointID         string  `json:"endpoint_id"`
	ProviderName       string  `json:"provider_name"`
	Usage              float64 `json:"usage"`
	BYOKUsageInference float64 `json:"byok_usage_inference"`
	Requests           float64 `json:"requests"`
	PromptTokens       float64 `json:"prompt_tokens"`
	CompletionTokens   float64 `json:"completion_tokens"`
	ReasoningTokens    float64 `json:"reasoning_tokens"`
}

// GetActivity returns per-endpoint daily usage for the account. date is
// optional and narrows the result to one day in YYYY-MM-DD form.
func (c *Client) GetActivity(ctx context.Context, date string) ([]ActivityItem, error) {
	var query url.Values
	if date != "" {
		query = url.Values{"date": {date}}
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/activity", query, nil, c.provisioningOrAPIKey())
	if err != nil {
		return nil, err
	}

	var out apiResponse[[]ActivityItem]
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
