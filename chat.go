package openrouter

import (
	"context"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
	RoleDeveloper Role = "developer"
)

// ChatMessage is one turn of a chat conversation.
type ChatMessage struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	Name       string     `json:"name,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// NewChatMessage builds a message with the given role and content.
func NewChatMessage(role Role, content string) ChatMessage {
	return ChatMessage{Role: role, Content: content}
}

// NewToolResultMessage builds the tool-role message that answers a tool
// call from the assistant.
func NewToolResultMessage(toolCallID, content string) ChatMessage {
	return ChatMessage{Role: RoleTool, ToolCallID: toolCallID, Content: content}
}

// Tool is a function the model may call.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction describes the callable function and its JSON Schema.
type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// NewTool builds a function tool definition.
func NewTool(name, description string, parameters map[string]any) Tool {
	return Tool{
		Type: "function",
		Function: ToolFunction{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// ReasoningConfig controls reasoning/chain-of-thought generation.
type ReasoningConfig struct {
	Effort    string `json:"effort,omitempty"` // minimal, low, medium, high, xhigh
	MaxTokens int    `json:"max_tokens,omitempty"`
	Exclude   bool   `json:"exclude,omitempty"`
	Enabled   *bool  `json:"enabled,omitempty"`
}

// UsageConfig asks the API to include token accounting in the response
// (and in the final streamed chunk).
type UsageConfig struct {
	Include bool `json:"include"`
}

// ChatCompletionRequest is the body of POST /chat/completions. Optional
// numeric knobs are pointers so that zero values can be sent explicitly.
type ChatCompletionRequest struct {
	Model             string               `json:"model"`
	Messages          []ChatMessage        `json:"messages"`
	Stream            bool                 `json:"stream,omitempty"`
	MaxTokens         int                  `json:"max_tokens,omitempty"`
	Temperature       *float64             `json:"temperature,omitempty"`
	Seed              *int                 `json:"seed,omitempty"`
	TopP              *float64             `json:"top_p,omitempty"`
	TopK              *int                 `json:"top_k,omitempty"`
	FrequencyPenalty  *float64             `json:"frequency_penalty,omitempty"`
	PresencePenalty   *float64             `json:"presence_penalty,omitempty"`
	RepetitionPenalty *float64             `json:"repetition_penalty,omitempty"`
	LogitBias         map[string]float64   `json:"logit_bias,omitempty"`
	TopLogprobs       int                  `json:"top_logprobs,omitempty"`
	MinP              *float64             `json:"min_p,omitempty"`
	TopA              *float64             `json:"top_a,omitempty"`
	Stop              []string             `json:"stop,omitempty"`
	Transforms        []string             `json:"transforms,omitempty"`
	Models            []string             `json:"models,omitempty"`
	Route             string               `json:"route,omitempty"`
	Provider          *ProviderPreferences `json:"provider,omitempty"`
	Reasoning         *ReasoningConfig     `json:"reasoning,omitempty"`
	ResponseFormat    *ResponseFormat      `json:"response_format,omitempty"`
	Tools             []Tool               `json:"tools,omitempty"`
	ToolChoice        any                  `json:"tool_choice,omitempty"`
	ParallelToolCalls *bool                `json:"parallel_tool_calls,omitempty"`
	Usage             *UsageConfig         `json:"usage,omitempty"`
	User              string               `json:"user,omitempty"`
}

// NewChatCompletionRequest builds a request for the given model and
// conversation. Optional fields chain fluently:
//
//	req := openrouter.NewChatCompletionRequest("deepseek/deepseek-chat", msgs).
//	    WithMaxTokens(256).
//	    WithTemperature(0.7)
func NewChatCompletionRequest(model string, messages []ChatMessage) *ChatCompletionRequest {
	return &ChatCompletionRequest{Model: model, Messages: messages}
}

func (r *ChatCompletionRequest) WithMaxTokens(n int) *ChatCompletionRequest {
	r.MaxTokens = n
	return r
}

func (r *ChatCompletionRequest) WithTemperature(t float64) *ChatCompletionRequest {
	r.Temperature = &t
	return r
}

func (r *ChatCompletionRequest) WithSeed(seed int) *ChatCompletionRequest {
	r.Seed = &seed
	return r
}

func (r *ChatCompletionRequest) WithTopP(p float64) *ChatCompletionRequest {
	r.TopP = &p
	return r
}

func (r *ChatCompletionRequest) WithTopK(k int) *ChatCompletionRequest {
	r.TopK = &k
	return r
}

func (r *ChatCompletionRequest) WithTools(tools ...Tool) *ChatCompletionRequest {
	r.Tools = append(r.Tools, tools...)
	return r
}

func (r *ChatCompletionRequest) WithToolChoice(choice any) *ChatCompletionRequest {
	r.ToolChoice = choice
	return r
}

func (r *ChatCompletionRequest) WithProvider(prefs ProviderPreferences) *ChatCompletionRequest {
	r.Provider = &prefs
	return r
}

func (r *ChatCompletionRequest) WithReasoning(cfg ReasoningConfig) *ChatCompletionRequest {
	r.Reasoning = &cfg
	return r
}

func (r *ChatCompletionRequest) WithResponseFormat(format ResponseFormat) *ChatCompletionRequest {
	r.ResponseFormat = &format
	return r
}

func (r *ChatCompletionRequest) WithModels(models ...string) *ChatCompletionRequest {
	r.Models = append(r.Models, models...)
	return r
}

func (r *ChatCompletionRequest) WithUsageAccounting() *ChatCompletionRequest {
	r.Usage = &UsageConfig{Include: true}
	return r
}

// ChatResponseMessage is the assistant message of a non-streaming choice.
type ChatResponseMessage struct {
	Role             string            `json:"role"`
	Content          string            `json:"content"`
	Reasoning        string            `json:"reasoning,omitempty"`
	ReasoningDetails []ReasoningDetail `json:"reasoning_details,omitempty"`
	ToolCalls        []ToolCall        `json:"tool_calls,omitempty"`
}

// ChatChoice is one completion choice.
type ChatChoice struct {
	Index              int                  `json:"index"`
	Message            *ChatResponseMessage `json:"message,omitempty"`
	FinishReason       *string              `json:"finish_reason"`
	NativeFinishReason string               `json:"native_finish_reason,omitempty"`
	Error              *wireError           `json:"error,omitempty"`
}

// ChatCompletionResponse is the non-streaming response of
// POST /chat/completions.
type ChatCompletionResponse struct {
	ID                string       `json:"id"`
	Model             string       `json:"model"`
	Created           int64        `json:"created"`
	Provider          string       `json:"provider,omitempty"`
	SystemFingerprint string       `json:"system_fingerprint,omitempty"`
	Choices           []ChatChoice `json:"choices"`
	Usage             *Usage       `json:"usage,omitempty"`
}

// Content returns the text content of the first choice, or "".
func (r *ChatCompletionResponse) Content() string {
	if len(r.Choices) == 0 || r.Choices[0].Message == nil {
		return ""
	}
	return r.Choices[0].Message.Content
}

// CreateChatCompletion sends a non-streaming chat completion request.
func (c *Client) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	body := *req
	body.Stream = false

	c.logger.Debug("sending chat completion", "model", body.Model, "messages", len(body.Messages))

	var out ChatCompletionResponse
	if err := c.postJSON(ctx, "/chat/completions", &body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StreamChatCompletion sends a streaming chat completion request and
// returns the unified event stream. The stream terminates on the first of
// a non-null finish reason or the transport [DONE] sentinel.
func (c *Client) StreamChatCompletion(ctx context.Context, req *ChatCompletionRequest, opts ...StreamOption) (*Stream, error) {
	body := *req
	body.Stream = true

	c.logger.Debug("streaming chat completion", "model", body.Model, "messages", len(body.Messages))

	return c.stream(ctx, "/chat/completions", &body, chatAdapter{}, opts...)
}
