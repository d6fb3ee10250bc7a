package openrouter

import "encoding/json"

// EventType identifies which variant of a stream Event is active.
type EventType string

const (
	// EventContentDelta carries a fragment of assistant text content.
	EventContentDelta EventType = "content_delta"

	// EventReasoningDelta carries a fragment of reasoning/chain-of-thought text.
	EventReasoningDelta EventType = "reasoning_delta"

	// EventReasoningDetails carries structured reasoning detail blocks
	// (e.g. encrypted or signed reasoning).
	EventReasoningDetails EventType = "reasoning_details"

	// EventToolCallDelta carries an incremental tool call fragment.
	EventToolCallDelta EventType = "tool_call_delta"

	// EventDone is the successful terminal event. It carries the assembled
	// tool calls, finish reason and usage metadata.
	EventDone EventType = "done"

	// EventError is the failure terminal event.
	EventError EventType = "error"
)

// Event is a single element of the unified stream produced by a Stream.
// Exactly one variant is populated, selected by Type. Content and reasoning
// deltas arrive in wire order; Done or Error is emitted exactly once and
// nothing follows it.
type Event struct {
	Type EventType

	// Text holds the delta fragment for EventContentDelta and
	// EventReasoningDelta.
	Text string

	// ReasoningDetails holds the detail blocks for EventReasoningDetails.
	ReasoningDetails []ReasoningDetail

	// ToolCall holds the fragment for EventToolCallDelta.
	ToolCall *PartialToolCall

	// Done holds terminal metadata for EventDone.
	Done *DoneEvent

	// Err holds the failure for EventError.
	Err error
}

// ReasoningDetail is a structured reasoning block attached to a delta.
type ReasoningDetail struct {
	Type      string `json:"type,omitempty"`
	Text      string `json:"text,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Data      string `json:"data,omitempty"`
	ID        string `json:"id,omitempty"`
	Format    string `json:"format,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// PartialToolCall is one incremental fragment of a tool call. Identity is
// the Index, which is stable for the lifetime of one stream; the ID may
// arrive late or, for some protocols, never.
type PartialToolCall struct {
	Index    int
	ID       string
	Type     string
	Function PartialFunctionCall
}

// PartialFunctionCall carries only the delta for this fragment, never the
// running total. The accumulator owns the running total.
type PartialFunctionCall struct {
	Name      string
	Arguments string
}

// FunctionCall is the function portion of a fully assembled tool call.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCall is a fully assembled tool call as reported on the Done event,
// or as part of a non-streaming response message.
type ToolCall struct {
	Index    int          `json:"index,omitempty"`
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// ArgumentsMap parses the accumulated arguments as a JSON object. An empty
// arguments string parses as an empty map.
func (t ToolCall) ArgumentsMap() (map[string]any, error) {
	if t.Function.Arguments == "" {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(t.Function.Arguments), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// MalformedToolCall describes a tool call whose accumulated arguments did
// not parse at finalization. A malformed call never invalidates calls at
// other indices.
type MalformedToolCall struct {
	Index     int
	ID        string
	Name      string
	Arguments string
	Reason    string
}

// FinishReason is the normalized reason a model stopped generating.
type FinishReason string

const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonToolCalls     FinishReason = "tool_calls"
	FinishReasonContentFilter FinishReason = "content_filter"
	FinishReasonError         FinishReason = "error"
)

// Usage reports token accounting for one generation.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// DoneEvent is the metadata carried by the successful terminal event.
type DoneEvent struct {
	// ID is the response id reported by the API.
	ID string

	// Model is the model that generated the response.
	Model string

	// FinishReason is empty when the wire protocol never reported one.
	FinishReason FinishReason

	// Usage is nil when the API did not include usage accounting.
	Usage *Usage

	// ToolCalls holds every fully assembled, well-formed tool call in
	// insertion order. Empty when the model invoked no tools.
	ToolCalls []ToolCall

	// Malformed holds per-call finalization failures, isolated from the
	// well-formed calls above.
	Malformed []MalformedToolCall
}
