package openrouter

import "context"

// AnthropicMessage is one turn of an Anthropic-shape conversation.
// Content is either a string or a []AnthropicContentBlock.
type AnthropicMessage struct {
	Role    string `json:"role"` // user or assistant
	Content any    `json:"content"`
}

// AnthropicContentBlock is one structured content part.
type AnthropicContentBlock struct {
	Type      string         `json:"type"` // text, tool_use, tool_result, thinking
	Text      string         `json:"text,omitempty"`
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Input     map[string]any `json:"input,omitempty"`
	ToolUseID string         `json:"tool_use_id,omitempty"`
	Content   any            `json:"content,omitempty"`
	Thinking  string         `json:"thinking,omitempty"`
	Signature string         `json:"signature,omitempty"`
}

// AnthropicTool is a tool definition in the Anthropic shape, with the
// JSON Schema under input_schema.
type AnthropicTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema"`
}

// AnthropicThinkingConfig enables extended thinking.
type AnthropicThinkingConfig struct {
	Type         string `json:"type"` // enabled or disabled
	BudgetTokens int    `json:"budget_tokens,omitempty"`
}

// MessagesRequest is the body of POST /messages, the Anthropic-compatible
// surface. MaxTokens is required by the wire contract.
type MessagesRequest struct {
	Model         string                   `json:"model"`
	Messages      []AnthropicMessage       `json:"messages"`
	MaxTokens     int                      `json:"max_tokens"`
	System        any                      `json:"system,omitempty"`
	Stream        bool                     `json:"stream,omitempty"`
	Temperature   *float64                 `json:"temperature,omitempty"`
	TopP          *float64                 `json:"top_p,omitempty"`
	TopK          *int                     `json:"top_k,omitempty"`
	StopSequences []string                 `json:"stop_sequences,omitempty"`
	Tools         []AnthropicTool          `json:"tools,omitempty"`
	ToolChoice    any                      `json:"tool_choice,omitempty"`
	Thinking      *AnthropicThinkingConfig `json:"thinking,omitempty"`
	Provider      *ProviderPreferences     `json:"provider,omitempty"`
}

// NewMessagesRequest builds an Anthropic-shape request.
func NewMessagesRequest(model string, maxTokens int, messages []AnthropicMessage) *MessagesRequest {
	return &MessagesRequest{Model: model, MaxTokens: maxTokens, Messages: messages}
}

func (r *MessagesRequest) WithSystem(system string) *MessagesRequest {
	r.System = system
	return r
}

func (r *MessagesRequest) WithTemperature(t float64) *MessagesRequest {
	r.Temperature = &t
	return r
}

func (r *MessagesRequest) WithTools(tools ...AnthropicTool) *MessagesRequest {
	r.Tools = append(r.Tools, tools...)
	return r
}

func (r *MessagesRequest) WithThinking(budgetTokens int) *MessagesRequest {
	r.Thinking = &AnthropicThinkingConfig{Type: "enabled", BudgetTokens: budgetTokens}
	return r
}

// MessagesResponse is the non-streaming response of POST /messages.
type MessagesResponse struct {
	ID           string                  `json:"id"`
	Type         string                  `json:"type"` // message
	Role         string                  `json:"role"`
	Model        string                  `json:"model"`
	Content      []AnthropicContentBlock `json:"content"`
	StopReason   string                  `json:"stop_reason,omitempty"`
	StopSequence string                  `json:"stop_sequence,omitempty"`
	Usage        *AnthropicUsage         `json:"usage,omitempty"`
}

// AnthropicUsage is token accounting in the Anthropic shape.
type AnthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Text concatenates the text content blocks of the response.
func (r *MessagesResponse) Text() string {
	var text string
	for _, block := range r.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text
}

// CreateMessage sends a non-streaming Anthropic-shape request.
func (c *Client) CreateMessage(ctx context.Context, req *MessagesRequest) (*MessagesResponse, error) {
	body := *req
	body.Stream = false

	var out MessagesResponse
	if err := c.postJSON(ctx, "/messages", &body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StreamMessage sends a streaming Anthropic-shape request. The stream
// finalizes on message_stop; content block indices from the wire are
// carried onto tool call fragments unchanged.
func (c *Client) StreamMessage(ctx context.Context, req *MessagesRequest, opts ...StreamOption) (*Stream, error) {
	body := *req
	body.Stream = true

	c.logger.Debug("streaming message", "model", body.Model)

	return c.stream(ctx, "/messages", &body, newMessagesAdapter(), opts...)
}
