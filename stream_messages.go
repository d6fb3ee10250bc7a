package openrouter

import (
	"encoding/json"
	"fmt"
)

// messagesStreamEvent models one SSE payload from the Anthropic-compatible
// Messages endpoint.
type messagesStreamEvent struct {
	Type         string                `json:"type"`
	Index        *int                  `json:"index,omitempty"`
	Message      *messagesMessageInfo  `json:"message,omitempty"`
	ContentBlock *messagesContentBlock `json:"content_block,omitempty"`
	Delta        *messagesDelta        `json:"delta,omitempty"`
	Usage        *AnthropicUsage       `json:"usage,omitempty"`
	Error        *wireError            `json:"error,omitempty"`
}

type messagesMessageInfo struct {
	ID    string         `json:"id"`
	Model string         `json:"model"`
	Usage *AnthropicUsage `json:"usage,omitempty"`
}

type messagesContentBlock struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type messagesDelta struct {
	Type        string `json:"type"`
	Text        string `json:"text,omitempty"`
	PartialJSON string `json:"partial_json,omitempty"`
	Thinking    string `json:"thinking,omitempty"`
	Signature   string `json:"signature,omitempty"`

	// Present on message_delta.
	StopReason   string `json:"stop_reason,omitempty"`
	StopSequence string `json:"stop_sequence,omitempty"`
}

// messagesAdapter maps Messages-shape events to unified events.
//
// The wire protocol announces each tool call once, on content_block_start,
// and then omits id and name from every following input_json_delta. The
// block index is the only correlation key, so it is carried verbatim onto
// every fragment derived from that block. That index bookkeeping is the
// only state an adapter instance holds, scoped to one stream.
type messagesAdapter struct {
	blocks map[int]string // block index -> content block type
}

func newMessagesAdapter() *messagesAdapter {
	return &messagesAdapter{blocks: make(map[int]string)}
}

func (*messagesAdapter) terminatesOnSentinel() bool { return false }

func (a *messagesAdapter) adapt(f frame, st *streamState) ([]Event, error) {
	var ev messagesStreamEvent
	if err := json.Unmarshal(f.data, &ev); err != nil {
		return nil, fmt.Errorf("decode messages event: %w", err)
	}

	switch ev.Type {
	case "message_start":
		if m := ev.Message; m != nil {
			st.id = m.ID
			st.model = m.Model
			if m.Usage != nil {
				st.usage = &Usage{
					PromptTokens: m.Usage.InputTokens,
					TotalTokens:  m.Usage.InputTokens,
				}
			}
		}
		return nil, nil

	case "content_block_start":
		if ev.Index == nil || ev.ContentBlock == nil {
			return nil, nil
		}
		idx := *ev.Index
		a.blocks[idx] = ev.ContentBlock.Type
		if ev.ContentBlock.Type != "tool_use" && ev.ContentBlock.Type != "server_tool_use" {
			return nil, nil
		}
		return []Event{{
			Type: EventToolCallDelta,
			ToolCall: &PartialToolCall{
				Index: idx,
				ID:    ev.ContentBlock.ID,
				Type:  "function",
				Function: PartialFunctionCall{
					Name: ev.ContentBlock.Name,
				},
			},
		}}, nil

	case "content_block_delta":
		if ev.Index == nil || ev.Delta == nil {
			return nil, nil
		}
		idx := *ev.Index
		switch ev.Delta.Type {
		case "text_delta":
			if ev.Delta.Text == "" {
				return nil, nil
			}
			return []Event{{Type: EventContentDelta, Text: ev.Delta.Text}}, nil
		case "thinking_delta":
			if ev.Delta.Thinking == "" {
				return nil, nil
			}
			return []Event{{Type: EventReasoningDelta, Text: ev.Delta.Thinking}}, nil
		case "signature_delta":
			return []Event{{
				Type: EventReasoningDetails,
				ReasoningDetails: []ReasoningDetail{{
					Type:      "signature",
					Signature: ev.Delta.Signature,
				}},
			}}, nil
		case "input_json_delta":
			return []Event{{
				Type: EventToolCallDelta,
				ToolCall: &PartialToolCall{
					Index:    idx,
					Function: PartialFunctionCall{Arguments: ev.Delta.PartialJSON},
				},
			}}, nil
		default:
			return nil, nil
		}

	case "content_block_stop":
		return nil, nil

	case "message_delta":
		if ev.Delta != nil && ev.Delta.StopReason != "" {
			st.finishReason = convertAnthropicStopReason(ev.Delta.StopReason)
		}
		if ev.Usage != nil {
			if st.usage == nil {
				st.usage = &Usage{}
			}
			st.usage.CompletionTokens = ev.Usage.OutputTokens
			st.usage.TotalTokens = st.usage.PromptTokens + ev.Usage.OutputTokens
		}
		return nil, nil

	case "message_stop":
		st.done = true
		return nil, nil

	case "ping":
		return nil, nil

	case "error":
		if ev.Error != nil {
			st.failure = ev.Error
		} else {
			st.failure = fmt.Errorf("openrouter: messages stream error")
		}
		return nil, nil

	default:
		return nil, nil
	}
}

// convertAnthropicStopReason maps Anthropic stop reasons onto the unified
// finish reasons.
func convertAnthropicStopReason(reason string) FinishReason {
	switch reason {
	case "end_turn", "stop_sequence", "pause_turn":
		return FinishReasonStop
	case "max_tokens":
		return FinishReasonLength
	case "tool_use":
		return FinishReasonToolCalls
	case "refusal":
		return FinishReasonContentFilter
	default:
		return FinishReason(reason)
	}
}
