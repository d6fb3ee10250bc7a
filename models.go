package openrouter

import (
	"context"
	"net/url"
)

// Model describes one model available through the API.
type Model struct {
	ID                  string             `json:"id"`
	CanonicalSlug       string             `json:"canonical_slug,omitempty"`
	Name                string             `json:"name"`
	Created             int64              `json:"created"`
	Description         string             `json:"description,omitempty"`
	ContextLength       int                `json:"context_length"`
	Architecture        *ModelArchitecture `json:"architecture,omitempty"`
	Pricing             *ModelPricing      `json:"pricing,omitempty"`
	TopProvider         *TopProvider       `json:"top_provider,omitempty"`
	PerRequestLimits    map[string]any     `json:"per_request_limits,omitempty"`
	SupportedParameters []string           `json:"supported_parameters,omitempty"`
}

// ModelArchitecture describes modalities and tokenization.
type ModelArchitecture struct {
	Modality         string   `json:"modality,omitempty"`
	InputModalities  []string `json:"input_modalities,omitempty"`
	OutputModalities []string `json:"output_modalities,omitempty"`
	Tokenizer        string   `json:"tokenizer,omitempty"`
	InstructType     string   `json:"instruct_type,omitempty"`
}

// ModelPricing lists per-unit prices as decimal strings in USD.
type ModelPricing struct {
	Prompt            string `json:"prompt,omitempty"`
	Completion        string `json:"completion,omitempty"`
	Request           string `json:"request,omitempty"`
	Image             string `json:"image,omitempty"`
	WebSearch         string `json:"web_search,omitempty"`
	InternalReasoning string `json:"internal_reasoning,omitempty"`
}

// TopProvider summarizes the highest-ranked provider for a model.
type TopProvider struct {
	ContextLength       int  `json:"context_length,omitempty"`
	MaxCompletionTokens int  `json:"max_completion_tokens,omitempty"`
	IsModerated         bool `json:"is_moderated,omitempty"`
}

// ListModelsOptions filters the model listing.
type ListModelsOptions struct {
	Category string // e.g. "programming"
}

// ListModels returns the models available through the API.
func (c *Client) ListModels(ctx context.Context, opts *ListModelsOptions) ([]Model, error) {
	var query url.Values
	if opts != nil && opts.Category != "" {
		query = url.Values{"category": {opts.Category}}
	}

	var out apiResponse[[]Model]
	if err := c.getJSON(ctx, "/models", query, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListUserModels returns the models filtered by the account's provider
// and data policy settings.
func (c *Client) ListUserModels(ctx context.Context) ([]Model, error) {
	var out apiResponse[[]Model]
	if err := c.getJSON(ctx, "/models/user", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

type modelsCount struct {
	Count int `json:"count"`
}

// CountModels returns the number of models available through the API.
func (c *Client) CountModels(ctx context.Context) (int, error) {
	var out apiResponse[modelsCount]
	if err := c.getJSON(ctx, "/models/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Data.Count, nil
}

// ModelEndpoint describes one provider endpoint serving a model.
type ModelEndpoint struct {
	Name                string        `json:"name"`
	ProviderName        string        `json:"provider_name,omitempty"`
	ContextLength       int           `json:"context_length"`
	MaxCompletionTokens int           `json:"max_completion_tokens,omitempty"`
	Pricing             *ModelPricing `json:"pricing,omitempty"`
	SupportedParameters []string      `json:"supported_parameters,omitempty"`
	Quantization        string        `json:"quantization,omitempty"`
	Status              *int          `json:"status,omitempty"`
	UptimeLast30m       *float64      `json:"uptime_last_30m,omitempty"`
}

// ModelEndpoints is the per-model endpoint listing.
type ModelEndpoints struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	Architecture *ModelArchitecture `json:"architecture,omitempty"`
	Endpoints    []ModelEndpoint    `json:"endpoints"`
}

// ListModelEndpoints returns the provider endpoints serving the model
// identified by author and slug, e.g. ("deepseek", "deepseek-chat").
func (c *Client) ListModelEndpoints(ctx context.Context, author, slug string) (*ModelEndpoints, error) {
	path := "/models/" + url.PathEscape(author) + "/" + url.PathEscape(slug) + "/endpoints"

	var out apiResponse[ModelEndpoints]
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
