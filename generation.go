package openrouter

import (
	"context"
	"net/url"
)

// Generation is the post-hoc accounting record of one completed request,
// queried by the response id.
type Generation struct {
	ID                     string   `json:"id"`
	Model                  string   `json:"model"`
	ProviderName           string   `json:"provider_name,omitempty"`
	CreatedAt              string   `json:"created_at,omitempty"`
	Streamed               bool     `json:"streamed,omitempty"`
	Cancelled              bool     `json:"cancelled,omitempty"`
	TotalCost              float64  `json:"total_cost"`
	CacheDiscount          *float64 `json:"cache_discount,omitempty"`
	Origin                 string   `json:"origin,omitempty"`
	Usage                  float64  `json:"usage,omitempty"`
	TokensPrompt           int      `json:"tokens_prompt,omitempty"`
	TokensCompletion       int      `json:"tokens_completion,omitempty"`
	NativeTokensPrompt     int      `json:"native_tokens_prompt,omitempty"`
	NativeTokensCompletion int      `json:"native_tokens_completion,omitempty"`
	NativeTokensReasoning  int      `json:"native_tokens_reasoning,omitempty"`
	NumMediaPrompt         int      `json:"num_media_prompt,omitempty"`
	NumMediaCompletion     int      `json:"num_media_completion,omitempty"`
	GenerationTime         float64  `json:"generation_time,omitempty"`
	LatencyMs              float64  `json:"latency,omitempty"`
	ModerationLatencyMs    *float64 `json:"moderation_latency,omitempty"`
	FinishReason           string   `json:"finish_reason,omitempty"`
	NativeFinishReason     string   `json:"native_finish_reason,omitempty"`
}

// GetGeneration returns the accounting record for a completed generation.
// Records become available shortly after a request finishes, not
// synchronously with it.
func (c *Client) GetGeneration(ctx context.Context, id string) (*Generation, error) {
	query := url.Values{"id": {id}}

	var out apiResponse[Generation]
	if err := c.getJSON(ctx, "/generation", query, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
