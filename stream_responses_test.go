package openrouter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responsesFrames(events ...string) string {
	var b strings.Builder
	for _, e := range events {
		b.WriteString("data: ")
		b.WriteString(e)
		b.WriteString("\n\n")
	}
	return b.String()
}

func TestResponsesStream_ContentAndCompletion(t *testing.T) {
	raw := responsesFrames(
		`{"type":"response.created","response":{"id":"resp-1","status":"in_progress"}}`,
		`{"type":"response.output_text.delta","delta":"Hello"}`,
		`{"type":"response.output_text.delta","delta":" there"}`,
		`{"type":"response.completed","response":{"id":"resp-1","model":"openai/gpt-4o","status":"completed","usage":{"input_tokens":4,"output_tokens":2,"total_tokens":6}}}`,
	)

	events := collectEvents(t, raw, responsesAdapter{})
	require.Len(t, events, 3)

	assert.Equal(t, EventContentDelta, events[0].Type)
	assert.Equal(t, "Hello", events[0].Text)
	assert.Equal(t, " there", events[1].Text)

	done := events[2]
	require.Equal(t, EventDone, done.Type)
	assert.Equal(t, "resp-1", done.Done.ID)
	assert.Equal(t, "openai/gpt-4o", done.Done.Model)
	assert.Equal(t, FinishReasonStop, done.Done.FinishReason)
	require.NotNil(t, done.Done.Usage)
	assert.Equal(t, 4, done.Done.Usage.PromptTokens)
	assert.Equal(t, 2, done.Done.Usage.CompletionTokens)
}

func TestResponsesStream_SubResourceCompletedKindsDoNotTerminate(t *testing.T) {
	// Kinds whose names merely end in "completed" must be skipped; only
	// the top-level response.completed finalizes the stream.
	raw := responsesFrames(
		`{"type":"response.content_part.completed"}`,
		`{"type":"partial.completed"}`,
		`{"type":"response.output_text.delta","delta":"A"}`,
		`{"type":"response.output_item.completed"}`,
		`{"type":"response.output_text.delta","delta":"B"}`,
		`{"type":"response.completed","response":{"id":"resp-2","model":"openai/gpt-4o","status":"completed"}}`,
	)

	events := collectEvents(t, raw, responsesAdapter{})
	require.Len(t, events, 3)
	assert.Equal(t, "A", events[0].Text)
	assert.Equal(t, "B", events[1].Text)
	assert.Equal(t, EventDone, events[2].Type)
}

func TestResponsesStream_SentinelWithoutCompletionIsError(t *testing.T) {
	raw := responsesFrames(
		`{"type":"response.output_text.delta","delta":"partial"}`,
		"[DONE]",
	)

	events := collectEvents(t, raw, responsesAdapter{})
	require.Len(t, events, 2)
	assert.Equal(t, EventContentDelta, events[0].Type)
	require.Equal(t, EventError, events[1].Type)
	assert.ErrorIs(t, events[1].Err, ErrUnexpectedEndOfStream)
}

func TestResponsesStream_EOFWithoutCompletionIsError(t *testing.T) {
	raw := responsesFrames(`{"type":"response.output_text.delta","delta":"partial"}`)

	events := collectEvents(t, raw, responsesAdapter{})
	require.Equal(t, EventError, events[len(events)-1].Type)
	assert.ErrorIs(t, events[len(events)-1].Err, ErrUnexpectedEndOfStream)
}

func TestResponsesStream_ToolCallAssembly(t *testing.T) {
	raw := responsesFrames(
		`{"type":"response.output_item.added","output_index":0,"item":{"type":"function_call","id":"fc_1","call_id":"call_weather","name":"get_weather","arguments":""}}`,
		`{"type":"response.function_call_arguments.delta","output_index":0,"delta":"{\"city\":"}`,
		`{"type":"response.function_call_arguments.delta","output_index":0,"delta":"\"Paris\"}"}`,
		`{"type":"response.function_call_arguments.done","output_index":0,"arguments":"{\"city\":\"Paris\"}"}`,
		`{"type":"response.completed","response":{"id":"resp-3","model":"openai/gpt-4o","status":"completed"}}`,
	)

	events := collectEvents(t, raw, responsesAdapter{})
	done := events[len(events)-1]
	require.Equal(t, EventDone, done.Type)
	require.Len(t, done.Done.ToolCalls, 1)

	call := done.Done.ToolCalls[0]
	assert.Equal(t, "call_weather", call.ID)
	assert.Equal(t, "get_weather", call.Function.Name)
	assert.Equal(t, `{"city":"Paris"}`, call.Function.Arguments)
}

func TestResponsesStream_NonFunctionOutputItemsIgnored(t *testing.T) {
	raw := responsesFrames(
		`{"type":"response.output_item.added","output_index":0,"item":{"type":"message","id":"msg_1"}}`,
		`{"type":"response.output_text.delta","delta":"plain text"}`,
		`{"type":"response.completed","response":{"id":"resp-4","model":"openai/gpt-4o","status":"completed"}}`,
	)

	events := collectEvents(t, raw, responsesAdapter{})
	require.Len(t, events, 2)
	assert.Equal(t, EventContentDelta, events[0].Type)

	done := events[1]
	require.Equal(t, EventDone, done.Type)
	assert.Empty(t, done.Done.ToolCalls)
}

func TestResponsesStream_ReasoningDeltas(t *testing.T) {
	raw := responsesFrames(
		`{"type":"response.reasoning_text.delta","delta":"let me think"}`,
		`{"type":"response.reasoning_summary_text.delta","delta":"summary"}`,
		`{"type":"response.completed","response":{"id":"resp-5","model":"openai/o3","status":"completed"}}`,
	)

	events := collectEvents(t, raw, responsesAdapter{})
	require.Len(t, events, 3)
	assert.Equal(t, EventReasoningDelta, events[0].Type)
	assert.Equal(t, "let me think", events[0].Text)
	assert.Equal(t, EventReasoningDelta, events[1].Type)
}

func TestResponsesStream_FailedEvent(t *testing.T) {
	raw := responsesFrames(
		`{"type":"response.failed","response":{"id":"resp-6","status":"failed","error":{"code":"server_error","message":"upstream exploded"}}}`,
	)

	events := collectEvents(t, raw, responsesAdapter{})
	require.Len(t, events, 1)
	require.Equal(t, EventError, events[0].Type)
	assert.Contains(t, events[0].Err.Error(), "upstream exploded")
}

func TestResponsesStream_ErrorEvent(t *testing.T) {
	raw := responsesFrames(
		`{"type":"error","code":"invalid_request","message":"bad input"}`,
	)

	events := collectEvents(t, raw, responsesAdapter{})
	require.Len(t, events, 1)
	require.Equal(t, EventError, events[0].Type)
	assert.Contains(t, events[0].Err.Error(), "bad input")
}
