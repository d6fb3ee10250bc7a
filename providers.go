package openrouter

import "context"

// Provider is the public metadata for one inference provider.
type Provider struct {
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	PrivacyPolicyURL  string `json:"privacy_policy_url,omitempty"`
	TermsOfServiceURL string `json:"terms_of_service_url,omitempty"`
	StatusPageURL     string `json:"status_page_url,omitempty"`
}

// ListProviders returns all providers routable through the API.
func (c *Client) ListProviders(ctx context.Context) ([]Provider, error) {
	var out apiResponse[[]Provider]
	if err := c.getJSON(ctx, "/providers", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// PercentileStats holds latency or throughput percentiles over a window.
type PercentileStats struct {
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	P99 float64 `json:"p99"`
}

// ZDREndpoint describes one endpoint with a zero-data-retention policy.
type ZDREndpoint struct {
	Name                string           `json:"name"`
	ModelID             string           `json:"model_id"`
	ModelName           string           `json:"model_name"`
	ProviderName        string           `json:"provider_name"`
	Tag                 string           `json:"tag"`
	ContextLength       int              `json:"context_length"`
	Pricing             *ModelPricing    `json:"pricing,omitempty"`
	Quantization        string           `json:"quantization,omitempty"`
	MaxCompletionTokens *int             `json:"max_completion_tokens,omitempty"`
	MaxPromptTokens     *int             `json:"max_prompt_tokens,omitempty"`
	SupportedParameters []string         `json:"supported_parameters,omitempty"`
	Status              *int             `json:"status,omitempty"`
	UptimeLast30m       *float64         `json:"uptime_last_30m,omitempty"`
	LatencyLast30m      *PercentileStats `json:"latency_last_30m,omitempty"`
	ThroughputLast30m   *PercentileStats `json:"throughput_last_30m,omitempty"`
}

// ListZDREndpoints returns the endpoints that enforce zero data retention.
func (c *Client) ListZDREndpoints(ctx context.Context) ([]ZDREndpoint, error) {
	var out apiResponse[[]ZDREndpoint]
	if err := c.getJSON(ctx, "/endpoints/zdr", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
