package openrouter

import "context"

// CompletionRequest is the body of POST /completions, the legacy
// text-completion surface.
type CompletionRequest struct {
	Model             string               `json:"model"`
	Prompt            string               `json:"prompt"`
	Stream            bool                 `json:"stream,omitempty"`
	MaxTokens         int                  `json:"max_tokens,omitempty"`
	Temperature       *float64             `json:"temperature,omitempty"`
	Seed              *int                 `json:"seed,omitempty"`
	TopP              *float64             `json:"top_p,omitempty"`
	TopK              *int                 `json:"top_k,omitempty"`
	FrequencyPenalty  *float64             `json:"frequency_penalty,omitempty"`
	PresencePenalty   *float64             `json:"presence_penalty,omitempty"`
	RepetitionPenalty *float64             `json:"repetition_penalty,omitempty"`
	Stop              []string             `json:"stop,omitempty"`
	Models            []string             `json:"models,omitempty"`
	Provider          *ProviderPreferences `json:"provider,omitempty"`
	Transforms        []string             `json:"transforms,omitempty"`
	User              string               `json:"user,omitempty"`
}

// NewCompletionRequest builds a text completion request.
func NewCompletionRequest(model, prompt string) *CompletionRequest {
	return &CompletionRequest{Model: model, Prompt: prompt}
}

func (r *CompletionRequest) WithMaxTokens(n int) *CompletionRequest {
	r.MaxTokens = n
	return r
}

func (r *CompletionRequest) WithTemperature(t float64) *CompletionRequest {
	r.Temperature = &t
	return r
}

func (r *CompletionRequest) WithProvider(prefs ProviderPreferences) *CompletionRequest {
	r.Provider = &prefs
	return r
}

// CompletionChoice is one text completion choice.
type CompletionChoice struct {
	Index        int     `json:"index"`
	Text         string  `json:"text"`
	FinishReason *string `json:"finish_reason"`
}

// CompletionResponse is the non-streaming response of POST /completions.
type CompletionResponse struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Created int64              `json:"created"`
	Choices []CompletionChoice `json:"choices"`
	Usage   *Usage             `json:"usage,omitempty"`
}

// Text returns the text of the first choice, or "".
func (r *CompletionResponse) Text() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Text
}

// CreateCompletion sends a non-streaming text completion request.
func (c *Client) CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	body := *req
	body.Stream = false

	var out CompletionResponse
	if err := c.postJSON(ctx, "/completions", &body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StreamCompletion sends a streaming text completion request. The wire
// format matches chat completion chunks with text deltas in place of
// message deltas, so the stream carries content and done events only.
func (c *Client) StreamCompletion(ctx context.Context, req *CompletionRequest, opts ...StreamOption) (*Stream, error) {
	body := *req
	body.Stream = true

	c.logger.Debug("streaming completion", "model", body.Model)

	return c.stream(ctx, "/completions", &body, chatAdapter{}, opts...)
}
