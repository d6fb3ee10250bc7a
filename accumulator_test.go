package openrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulator_InsertionOrderPreserved(t *testing.T) {
	acc := newToolCallAccumulator()

	// Index 2 arrives before index 0.
	acc.apply(&PartialToolCall{Index: 2, ID: "call_two", Function: PartialFunctionCall{Name: "second", Arguments: "{}"}})
	acc.apply(&PartialToolCall{Index: 0, ID: "call_zero", Function: PartialFunctionCall{Name: "first", Arguments: "{}"}})
	acc.apply(&PartialToolCall{Index: 2, Function: PartialFunctionCall{}})

	calls, malformed := acc.finalize()
	require.Empty(t, malformed)
	require.Len(t, calls, 2)
	assert.Equal(t, 2, calls[0].Index)
	assert.Equal(t, 0, calls[1].Index)
}

func TestAccumulator_LateIDAndName(t *testing.T) {
	acc := newToolCallAccumulator()

	acc.apply(&PartialToolCall{Index: 0, Function: PartialFunctionCall{Arguments: `{"a"`}})
	acc.apply(&PartialToolCall{Index: 0, ID: "call_late", Function: PartialFunctionCall{Name: "late_name", Arguments: `:1}`}})

	calls, malformed := acc.finalize()
	require.Empty(t, malformed)
	require.Len(t, calls, 1)
	assert.Equal(t, "call_late", calls[0].ID)
	assert.Equal(t, "late_name", calls[0].Function.Name)
	assert.Equal(t, `{"a":1}`, calls[0].Function.Arguments)
}

func TestAccumulator_EmptyFragmentIsNoOp(t *testing.T) {
	acc := newToolCallAccumulator()

	acc.apply(&PartialToolCall{Index: 0, ID: "call_a", Function: PartialFunctionCall{Name: "f", Arguments: `{"x":`}})
	acc.apply(&PartialToolCall{Index: 0, Function: PartialFunctionCall{Arguments: ""}})
	acc.apply(&PartialToolCall{Index: 0, Function: PartialFunctionCall{Arguments: `1}`}})

	calls, malformed := acc.finalize()
	require.Empty(t, malformed)
	require.Len(t, calls, 1)
	assert.Equal(t, `{"x":1}`, calls[0].Function.Arguments)
}

func TestAccumulator_FailureIsolation(t *testing.T) {
	acc := newToolCallAccumulator()

	acc.apply(&PartialToolCall{Index: 0, ID: "call_ok", Function: PartialFunctionCall{Name: "good", Arguments: `{"ok":1}`}})
	acc.apply(&PartialToolCall{Index: 1, ID: "call_broken", Function: PartialFunctionCall{Name: "bad", Arguments: `{"never closed`}})
	acc.apply(&PartialToolCall{Index: 2, ID: "call_also_ok", Function: PartialFunctionCall{Name: "fine", Arguments: `[1,2]`}})

	calls, malformed := acc.finalize()
	require.Len(t, calls, 2)
	assert.Equal(t, "good", calls[0].Function.Name)
	assert.Equal(t, "fine", calls[1].Function.Name)

	require.Len(t, malformed, 1)
	assert.Equal(t, 1, malformed[0].Index)
	assert.Equal(t, "arguments are not valid JSON", malformed[0].Reason)
	assert.Equal(t, `{"never closed`, malformed[0].Arguments)
}

func TestAccumulator_DefaultsForMissingIDAndType(t *testing.T) {
	acc := newToolCallAccumulator()

	acc.apply(&PartialToolCall{Index: 0, Function: PartialFunctionCall{Name: "anon", Arguments: "{}"}})

	calls, malformed := acc.finalize()
	require.Empty(t, malformed)
	require.Len(t, calls, 1)
	assert.NotEmpty(t, calls[0].ID)
	assert.Contains(t, calls[0].ID, "call_")
	assert.Equal(t, "function", calls[0].Type)
}

func TestAccumulator_Empty(t *testing.T) {
	acc := newToolCallAccumulator()

	calls, malformed := acc.finalize()
	assert.Empty(t, calls)
	assert.Empty(t, malformed)
}
