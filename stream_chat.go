package openrouter

import (
	"encoding/json"
	"fmt"
)

// chatStreamChunk models one SSE data payload from the chat completions
// endpoint. All delta fields are optional; a chunk may carry only content,
// only tool call fragments, only a finish reason, or only usage.
type chatStreamChunk struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Choices []chatStreamChoice `json:"choices"`
	Usage   *Usage             `json:"usage,omitempty"`
	Error   *wireError         `json:"error,omitempty"`
}

type chatStreamChoice struct {
	Delta        chatStreamDelta `json:"delta"`
	Text         *string         `json:"text,omitempty"`
	FinishReason *string         `json:"finish_reason"`
	Error        *wireError      `json:"error,omitempty"`
}

type chatStreamDelta struct {
	Role             string              `json:"role,omitempty"`
	Content          *string             `json:"content,omitempty"`
	Reasoning        *string             `json:"reasoning,omitempty"`
	ReasoningDetails []ReasoningDetail   `json:"reasoning_details,omitempty"`
	ToolCalls        []chatToolCallDelta `json:"tool_calls,omitempty"`
	FunctionCall     *FunctionCall       `json:"function_call,omitempty"`
}

// chatToolCallDelta is one incremental tool call fragment. The first
// fragment for a call carries the id and function name; later fragments
// carry only argument text. The index may be omitted entirely for models
// that only ever emit a single call.
type chatToolCallDelta struct {
	Index    *int   `json:"index"`
	ID       string `json:"id,omitempty"`
	Type     string `json:"type,omitempty"`
	Function struct {
		Name      string `json:"name,omitempty"`
		Arguments string `json:"arguments,omitempty"`
	} `json:"function"`
}

// errorCode tolerates both spellings the wire uses: numeric codes on the
// chat surface, string codes elsewhere.
type errorCode string

func (c *errorCode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = errorCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = errorCode(n.String())
	return nil
}

// wireError is the in-band error object some chunks embed.
type wireError struct {
	Code    errorCode      `json:"code,omitempty"`
	Message string         `json:"message"`
	Type    string         `json:"type,omitempty"`
	Meta    map[string]any `json:"metadata,omitempty"`
}

func (e *wireError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("openrouter: upstream error %s: %s", e.Code, e.Message)
	}
	return "openrouter: upstream error: " + e.Message
}

// chatAdapter maps chat-completions chunks to unified events. The stream
// is terminal when a choice carries a non-null finish reason or when the
// decoder observes the [DONE] sentinel; whichever arrives first finalizes
// the stream, after the terminal chunk itself is fully processed. Chunks
// between the finish reason and the sentinel still merge metadata, so a
// trailing usage-only chunk lands on the Done event.
type chatAdapter struct{}

func (chatAdapter) terminatesOnSentinel() bool { return true }

func (chatAdapter) adapt(f frame, st *streamState) ([]Event, error) {
	var chunk chatStreamChunk
	if err := json.Unmarshal(f.data, &chunk); err != nil {
		return nil, fmt.Errorf("decode chat completion chunk: %w", err)
	}

	if chunk.Error != nil {
		st.failure = chunk.Error
		return nil, nil
	}

	if chunk.ID != "" {
		st.id = chunk.ID
	}
	if chunk.Model != "" {
		st.model = chunk.Model
	}
	if chunk.Usage != nil {
		st.usage = chunk.Usage
	}

	var events []Event
	for _, choice := range chunk.Choices {
		if choice.Error != nil {
			st.failure = choice.Error
			return nil, nil
		}

		// Text completion chunks carry the delta as a bare text field.
		if choice.Text != nil && *choice.Text != "" {
			events = append(events, Event{Type: EventContentDelta, Text: *choice.Text})
		}

		delta := choice.Delta
		if delta.Content != nil && *delta.Content != "" {
			events = append(events, Event{Type: EventContentDelta, Text: *delta.Content})
		}
		if delta.Reasoning != nil && *delta.Reasoning != "" {
			events = append(events, Event{Type: EventReasoningDelta, Text: *delta.Reasoning})
		}
		if len(delta.ReasoningDetails) > 0 {
			events = append(events, Event{Type: EventReasoningDetails, ReasoningDetails: delta.ReasoningDetails})
		}

		for _, tc := range delta.ToolCalls {
			idx := 0
			if tc.Index != nil {
				idx = *tc.Index
			}
			events = append(events, Event{
				Type: EventToolCallDelta,
				ToolCall: &PartialToolCall{
					Index: idx,
					ID:    tc.ID,
					Type:  tc.Type,
					Function: PartialFunctionCall{
						Name:      tc.Function.Name,
						Arguments: tc.Function.Arguments,
					},
				},
			})
		}

		// Legacy function_call deltas: single call, no index, no id.
		if fc := delta.FunctionCall; fc != nil {
			events = append(events, Event{
				Type: EventToolCallDelta,
				ToolCall: &PartialToolCall{
					Index: 0,
					Function: PartialFunctionCall{
						Name:      fc.Name,
						Arguments: fc.Arguments,
					},
				},
			})
		}

		if choice.FinishReason != nil && *choice.FinishReason != "" && *choice.FinishReason != "null" {
			st.finishReason = FinishReason(*choice.FinishReason)
			st.done = true
		}
	}

	return events, nil
}
