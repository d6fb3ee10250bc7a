package openrouter

import (
	"encoding/json"
	"fmt"
)

// responsesStreamEvent models one SSE payload from the Responses endpoint.
// The wire format tags every payload with an open-ended "type" string;
// fields beyond the tag are populated per kind.
type responsesStreamEvent struct {
	Type        string               `json:"type"`
	Delta       string               `json:"delta,omitempty"`
	OutputIndex *int                 `json:"output_index,omitempty"`
	Item        *responsesOutputItem `json:"item,omitempty"`
	Response    *responsesPayload    `json:"response,omitempty"`
	Code        errorCode            `json:"code,omitempty"`
	Message     string               `json:"message,omitempty"`
}

type responsesOutputItem struct {
	Type      string `json:"type"`
	ID        string `json:"id,omitempty"`
	CallID    string `json:"call_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

type responsesPayload struct {
	ID     string          `json:"id"`
	Model  string          `json:"model"`
	Status string          `json:"status"`
	Usage  *ResponsesUsage `json:"usage,omitempty"`
	Error  *wireError      `json:"error,omitempty"`
}

// ResponsesUsage is token accounting in the responses shape.
type ResponsesUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// responsesAdapter maps Responses-shape events to unified events.
//
// Termination is deliberately narrow: only the top-level
// "response.completed" kind ends the stream successfully. Sub-resource
// kinds whose names also end in "completed" (content parts, output items,
// partials) arrive before later content and must not terminate anything.
type responsesAdapter struct{}

func (responsesAdapter) terminatesOnSentinel() bool { return false }

func (responsesAdapter) adapt(f frame, st *streamState) ([]Event, error) {
	var ev responsesStreamEvent
	if err := json.Unmarshal(f.data, &ev); err != nil {
		return nil, fmt.Errorf("decode responses event: %w", err)
	}

	switch ev.Type {
	case "response.output_text.delta":
		if ev.Delta == "" {
			return nil, nil
		}
		return []Event{{Type: EventContentDelta, Text: ev.Delta}}, nil

	case "response.reasoning_text.delta", "response.reasoning_summary_text.delta":
		if ev.Delta == "" {
			return nil, nil
		}
		return []Event{{Type: EventReasoningDelta, Text: ev.Delta}}, nil

	case "response.output_item.added":
		if ev.Item == nil || ev.Item.Type != "function_call" {
			return nil, nil
		}
		idx := 0
		if ev.OutputIndex != nil {
			idx = *ev.OutputIndex
		}
		return []Event{{
			Type: EventToolCallDelta,
			ToolCall: &PartialToolCall{
				Index: idx,
				ID:    ev.Item.CallID,
				Type:  "function",
				Function: PartialFunctionCall{
					Name:      ev.Item.Name,
					Arguments: ev.Item.Arguments,
				},
			},
		}}, nil

	case "response.function_call_arguments.delta":
		idx := 0
		if ev.OutputIndex != nil {
			idx = *ev.OutputIndex
		}
		return []Event{{
			Type: EventToolCallDelta,
			ToolCall: &PartialToolCall{
				Index:    idx,
				Function: PartialFunctionCall{Arguments: ev.Delta},
			},
		}}, nil

	case "response.completed":
		if r := ev.Response; r != nil {
			if r.ID != "" {
				st.id = r.ID
			}
			if r.Model != "" {
				st.model = r.Model
			}
			if r.Usage != nil {
				st.usage = &Usage{
					PromptTokens:     r.Usage.InputTokens,
					CompletionTokens: r.Usage.OutputTokens,
					TotalTokens:      r.Usage.TotalTokens,
				}
			}
		}
		if st.finishReason == "" {
			st.finishReason = FinishReasonStop
		}
		st.done = true
		return nil, nil

	case "response.failed":
		if ev.Response != nil && ev.Response.Error != nil {
			st.failure = ev.Response.Error
		} else {
			st.failure = fmt.Errorf("openrouter: response failed")
		}
		return nil, nil

	case "error":
		st.failure = &wireError{Code: ev.Code, Message: ev.Message}
		return nil, nil

	default:
		// Upstream adds event kinds over time; unrecognized kinds are
		// skipped, never treated as terminal or fatal.
		return nil, nil
	}
}
