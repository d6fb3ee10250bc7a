package openrouter

import "context"

// EmbeddingsRequest is the body of POST /embeddings.
type EmbeddingsRequest struct {
	Model          string               `json:"model"`
	Input          any                  `json:"input"` // string or []string
	EncodingFormat string               `json:"encoding_format,omitempty"`
	Dimensions     int                  `json:"dimensions,omitempty"`
	User           string               `json:"user,omitempty"`
	Provider       *ProviderPreferences `json:"provider,omitempty"`
}

// Embedding is one embedding vector of the response.
type Embedding struct {
	Index     int       `json:"index"`
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingsResponse is the response of POST /embeddings.
type EmbeddingsResponse struct {
	ID    string      `json:"id,omitempty"`
	Model string      `json:"model"`
	Data  []Embedding `json:"data"`
	Usage *Usage      `json:"usage,omitempty"`
}

// CreateEmbeddings generates embedding vectors for the given input.
func (c *Client) CreateEmbeddings(ctx context.Context, req *EmbeddingsRequest) (*EmbeddingsResponse, error) {
	var out EmbeddingsResponse
	if err := c.postJSON(ctx, "/embeddings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
