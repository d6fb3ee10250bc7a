package openrouter

import (
	"errors"
	"io"
	"log/slog"
)

// ErrUnexpectedEndOfStream reports a transport that closed before the
// protocol's terminal event was observed, including the empty-transport
// case of zero frames.
var ErrUnexpectedEndOfStream = errors.New("openrouter: stream ended without a terminal event")

// streamState is the per-stream metadata updated by the protocol adapter
// as frames arrive. It is owned by exactly one Stream.
type streamState struct {
	id           string
	model        string
	usage        *Usage
	finishReason FinishReason

	// done is set by the adapter when its termination rule fires.
	done bool

	// failure is set by the adapter when the protocol reports an in-band
	// error; it ends the stream with an Error terminal.
	failure error
}

// protocolAdapter maps one decoded wire frame into zero or more unified
// events. Adapters own their protocol's termination rule and record it on
// the stream state; they never emit terminal events themselves.
type protocolAdapter interface {
	adapt(f frame, st *streamState) ([]Event, error)

	// terminatesOnSentinel reports whether the transport [DONE] sentinel is
	// a legitimate terminal for this protocol.
	terminatesOnSentinel() bool
}

// StreamOption configures a Stream at construction.
type StreamOption func(*Stream)

// WithFinalToolCallsOnly suppresses incremental EventToolCallDelta events;
// tool calls are still accumulated and surface fully assembled on the Done
// event. Content and reasoning deltas are unaffected.
func WithFinalToolCallsOnly() StreamOption {
	return func(s *Stream) { s.finalOnly = true }
}

// Stream is a finite, non-restartable sequence of unified events decoded
// from one live response body. It is consumed by a single reader:
//
//	for stream.Next() {
//	    ev := stream.Event()
//	    ...
//	}
//
// Next blocks only on the next transport chunk. Exactly one terminal event
// (Done or Error) is emitted; Next returns false after it. Closing the
// stream before the terminal event releases the connection and discards
// all accumulator state without finalizing anything.
type Stream struct {
	body    io.ReadCloser
	dec     *sseDecoder
	adapter protocolAdapter
	state   streamState
	acc     *toolCallAccumulator
	logger  *slog.Logger

	pending    []Event
	cur        Event
	finalOnly  bool
	finalized  bool
	terminated bool
	closed     bool
}

func newStream(body io.ReadCloser, adapter protocolAdapter, logger *slog.Logger, opts ...StreamOption) *Stream {
	s := &Stream{
		body:    body,
		dec:     newSSEDecoder(body),
		adapter: adapter,
		acc:     newToolCallAccumulator(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next advances the stream and reports whether an event is available via
// Event. It returns false once the terminal event has been consumed or the
// stream has been closed.
func (s *Stream) Next() bool {
	for {
		if s.closed && !s.terminated {
			return false
		}

		if len(s.pending) > 0 {
			s.cur = s.pending[0]
			s.pending = s.pending[1:]
			if s.cur.Type == EventDone || s.cur.Type == EventError {
				s.terminated = true
				s.release()
			}
			return true
		}

		if s.terminated || s.finalized {
			return false
		}

		if s.state.done {
			s.drain()
			s.finish()
			continue
		}

		f, err := s.dec.next()
		switch {
		case errors.Is(err, errSentinel):
			if s.adapter.terminatesOnSentinel() {
				s.state.done = true
			} else {
				s.fail(ErrUnexpectedEndOfStream)
			}
			continue

		case errors.Is(err, io.EOF):
			s.fail(ErrUnexpectedEndOfStream)
			continue

		case err != nil:
			s.fail(err)
			continue
		}

		if len(f.data) == 0 {
			continue
		}

		events, err := s.adapter.adapt(f, &s.state)
		if err != nil {
			s.fail(err)
			continue
		}
		if s.state.failure != nil {
			s.fail(s.state.failure)
			continue
		}

		for i := range events {
			ev := events[i]
			if ev.Type == EventToolCallDelta {
				s.acc.apply(ev.ToolCall)
				if s.finalOnly {
					continue
				}
			}
			s.pending = append(s.pending, ev)
		}
	}
}

// Event returns the event produced by the last successful call to Next.
func (s *Stream) Event() Event {
	return s.cur
}

// Close releases the underlying connection. Closing before the terminal
// event discards accumulator state; no terminal event is produced and no
// tool call is finalized. Close is idempotent.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.body == nil {
		return nil
	}
	return s.body.Close()
}

// drain reads the remaining frames up to the transport sentinel before the
// Done terminal is built. The chat surface keeps delivering frames after
// the finish reason when usage accounting is on, ending with a usage-only
// chunk; the adapter merges that usage into the state. Events from drained
// frames are discarded.
func (s *Stream) drain() {
	if !s.adapter.terminatesOnSentinel() {
		return
	}
	for {
		f, err := s.dec.next()
		if err != nil {
			return
		}
		if len(f.data) == 0 {
			continue
		}
		if _, err := s.adapter.adapt(f, &s.state); err != nil {
			return
		}
	}
}

// finish runs tool-call finalization and queues the Done terminal.
func (s *Stream) finish() {
	if s.finalized {
		return
	}
	s.finalized = true

	calls, malformed := s.acc.finalize()
	if len(malformed) > 0 {
		s.logger.Warn("stream finalized with malformed tool calls",
			"id", s.state.id,
			"malformed", len(malformed),
		)
	}

	s.pending = append(s.pending, Event{
		Type: EventDone,
		Done: &DoneEvent{
			ID:           s.state.id,
			Model:        s.state.model,
			FinishReason: s.state.finishReason,
			Usage:        s.state.usage,
			ToolCalls:    calls,
			Malformed:    malformed,
		},
	})
}

// fail queues the Error terminal. It is a no-op once a terminal is queued.
func (s *Stream) fail(err error) {
	if s.finalized {
		return
	}
	s.finalized = true

	s.logger.Error("stream failed", "id", s.state.id, "error", err)
	s.pending = append(s.pending, Event{Type: EventError, Err: err})
}

func (s *Stream) release() {
	if s.closed {
		return
	}
	s.closed = true
	if s.body != nil {
		s.body.Close()
	}
}
