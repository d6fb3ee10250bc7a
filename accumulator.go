package openrouter

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// toolCallState is the running accumulation for a single tool call index.
type toolCallState struct {
	id   string
	typ  string
	name string
	args strings.Builder
}

// toolCallAccumulator merges incremental tool call fragments into complete
// calls, keyed by the per-stream call index. Each Stream owns exactly one
// accumulator; it is never shared across streams.
type toolCallAccumulator struct {
	order []int
	calls map[int]*toolCallState
}

func newToolCallAccumulator() *toolCallAccumulator {
	return &toolCallAccumulator{calls: make(map[int]*toolCallState)}
}

// apply merges one fragment. The argument fragment is appended verbatim to
// the running buffer for that index; an empty fragment is a no-op append.
func (a *toolCallAccumulator) apply(p *PartialToolCall) {
	st, ok := a.calls[p.Index]
	if !ok {
		st = &toolCallState{}
		a.calls[p.Index] = st
		a.order = append(a.order, p.Index)
	}
	if p.ID != "" {
		st.id = p.ID
	}
	if p.Type != "" {
		st.typ = p.Type
	}
	if p.Function.Name != "" {
		st.name = p.Function.Name
	}
	st.args.WriteString(p.Function.Arguments)
}

// finalize validates every tracked buffer and splits the results into
// well-formed calls and isolated per-call failures, both in insertion
// order. A failure at one index never affects the others.
func (a *toolCallAccumulator) finalize() ([]ToolCall, []MalformedToolCall) {
	var calls []ToolCall
	var malformed []MalformedToolCall

	for _, idx := range a.order {
		st := a.calls[idx]
		args := st.args.String()

		if st.name == "" {
			malformed = append(malformed, MalformedToolCall{
				Index:     idx,
				ID:        st.id,
				Arguments: args,
				Reason:    "missing function name",
			})
			continue
		}

		// An empty buffer means a zero-argument call, not a parse failure.
		if args != "" && !json.Valid([]byte(args)) {
			malformed = append(malformed, MalformedToolCall{
				Index:     idx,
				ID:        st.id,
				Name:      st.name,
				Arguments: args,
				Reason:    "arguments are not valid JSON",
			})
			continue
		}

		id := st.id
		if id == "" {
			// Legacy function_call deltas never carry an id.
			id = "call_" + uuid.NewString()
		}

		typ := st.typ
		if typ == "" {
			typ = "function"
		}

		calls = append(calls, ToolCall{
			Index: idx,
			ID:    id,
			Type:  typ,
			Function: FunctionCall{
				Name:      st.name,
				Arguments: args,
			},
		})
	}

	return calls, malformed
}
