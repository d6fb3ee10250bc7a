package openrouter

import "context"

// ResponsesRequest is the body of POST /responses.
type ResponsesRequest struct {
	Model           string               `json:"model"`
	Input           any                  `json:"input"` // string or []ResponsesInputItem
	Instructions    string               `json:"instructions,omitempty"`
	Stream          bool                 `json:"stream,omitempty"`
	MaxOutputTokens int                  `json:"max_output_tokens,omitempty"`
	Temperature     *float64             `json:"temperature,omitempty"`
	TopP            *float64             `json:"top_p,omitempty"`
	Tools           []ResponsesTool      `json:"tools,omitempty"`
	ToolChoice      any                  `json:"tool_choice,omitempty"`
	Provider        *ProviderPreferences `json:"provider,omitempty"`
	Reasoning       *ReasoningConfig     `json:"reasoning,omitempty"`
	Metadata        map[string]string    `json:"metadata,omitempty"`
}

// ResponsesInputItem is one structured input entry when Input is a list.
type ResponsesInputItem struct {
	Type    string `json:"type"` // message, function_call_output
	Role    string `json:"role,omitempty"`
	Content any    `json:"content,omitempty"`
	CallID  string `json:"call_id,omitempty"`
	Output  string `json:"output,omitempty"`
}

// ResponsesTool is a function tool in the responses shape, where the
// schema sits flat on the tool instead of under a function object.
type ResponsesTool struct {
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	Strict      *bool          `json:"strict,omitempty"`
}

// NewResponsesRequest builds a responses request with plain text input.
func NewResponsesRequest(model, input string) *ResponsesRequest {
	return &ResponsesRequest{Model: model, Input: input}
}

func (r *ResponsesRequest) WithInstructions(s string) *ResponsesRequest {
	r.Instructions = s
	return r
}

func (r *ResponsesRequest) WithMaxOutputTokens(n int) *ResponsesRequest {
	r.MaxOutputTokens = n
	return r
}

func (r *ResponsesRequest) WithTemperature(t float64) *ResponsesRequest {
	r.Temperature = &t
	return r
}

func (r *ResponsesRequest) WithTools(tools ...ResponsesTool) *ResponsesRequest {
	r.Tools = append(r.Tools, tools...)
	return r
}

// ResponsesOutput is one item of the completed response output list.
type ResponsesOutput struct {
	Type      string                   `json:"type"` // message, function_call, reasoning
	ID        string                   `json:"id,omitempty"`
	Role      string                   `json:"role,omitempty"`
	Status    string                   `json:"status,omitempty"`
	Content   []ResponsesOutputContent `json:"content,omitempty"`
	CallID    string                   `json:"call_id,omitempty"`
	Name      string                   `json:"name,omitempty"`
	Arguments string                   `json:"arguments,omitempty"`
}

// ResponsesOutputContent is one content part of a message output item.
type ResponsesOutputContent struct {
	Type string `json:"type"` // output_text, refusal
	Text string `json:"text,omitempty"`
}

// ResponsesResponse is the non-streaming response of POST /responses.
type ResponsesResponse struct {
	ID        string            `json:"id"`
	Model     string            `json:"model"`
	Status    string            `json:"status"`
	CreatedAt int64             `json:"created_at"`
	Output    []ResponsesOutput `json:"output"`
	Usage     *ResponsesUsage   `json:"usage,omitempty"`
	Error     *wireError        `json:"error,omitempty"`
}

// OutputText concatenates the text parts of all message output items.
func (r *ResponsesResponse) OutputText() string {
	var text string
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				text += part.Text
			}
		}
	}
	return text
}

// CreateResponse sends a non-streaming responses request.
func (c *Client) CreateResponse(ctx context.Context, req *ResponsesRequest) (*ResponsesResponse, error) {
	body := *req
	body.Stream = false

	var out ResponsesResponse
	if err := c.postJSON(ctx, "/responses", &body, &out); err != nil {
		return nil, err
	}
	if out.Error != nil {
		return nil, out.Error
	}
	return &out, nil
}

// StreamResponse sends a streaming responses request. Only the
// response.completed event finalizes the stream; a [DONE] sentinel or
// EOF without it is reported as an unexpected end of stream.
func (c *Client) StreamResponse(ctx context.Context, req *ResponsesRequest, opts ...StreamOption) (*Stream, error) {
	body := *req
	body.Stream = true

	c.logger.Debug("streaming response", "model", body.Model)

	return c.stream(ctx, "/responses", &body, responsesAdapter{}, opts...)
}
