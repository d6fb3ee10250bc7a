package openrouter

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drippingReader yields at most n bytes per Read so frames always span
// several transport chunks.
type drippingReader struct {
	r io.Reader
	n int
}

func (d *drippingReader) Read(p []byte) (int, error) {
	if len(p) > d.n {
		p = p[:d.n]
	}
	return d.r.Read(p)
}

func TestSSEDecoder_BasicFrames(t *testing.T) {
	input := "data: {\"a\":1}\n\ndata: {\"b\":2}\n\n"
	dec := newSSEDecoder(strings.NewReader(input))

	f, err := dec.next()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(f.data))

	f, err = dec.next()
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(f.data))

	_, err = dec.next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSSEDecoder_FramesSpanChunkBoundaries(t *testing.T) {
	input := "data: {\"content\":\"hello world\"}\n\ndata: [DONE]\n\n"
	dec := newSSEDecoder(&drippingReader{r: strings.NewReader(input), n: 3})

	f, err := dec.next()
	require.NoError(t, err)
	assert.Equal(t, `{"content":"hello world"}`, string(f.data))

	_, err = dec.next()
	assert.ErrorIs(t, err, errSentinel)
}

func TestSSEDecoder_EventNames(t *testing.T) {
	input := "event: message_start\ndata: {\"type\":\"message_start\"}\n\n"
	dec := newSSEDecoder(strings.NewReader(input))

	f, err := dec.next()
	require.NoError(t, err)
	assert.Equal(t, "message_start", f.event)
	assert.Equal(t, `{"type":"message_start"}`, string(f.data))
}

func TestSSEDecoder_MultiLineData(t *testing.T) {
	input := "data: line one\ndata: line two\n\n"
	dec := newSSEDecoder(strings.NewReader(input))

	f, err := dec.next()
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", string(f.data))
}

func TestSSEDecoder_SkipsCommentsAndKeepAlives(t *testing.T) {
	input := ": keep-alive\n\n: another comment\ndata: {\"a\":1}\n\n\n\n"
	dec := newSSEDecoder(strings.NewReader(input))

	f, err := dec.next()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(f.data))

	_, err = dec.next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSSEDecoder_CRLFLines(t *testing.T) {
	input := "data: {\"a\":1}\r\n\r\ndata: [DONE]\r\n\r\n"
	dec := newSSEDecoder(strings.NewReader(input))

	f, err := dec.next()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(f.data))

	_, err = dec.next()
	assert.ErrorIs(t, err, errSentinel)
}

func TestSSEDecoder_SentinelStops(t *testing.T) {
	input := "data: [DONE]\n\ndata: {\"a\":1}\n\n"
	dec := newSSEDecoder(strings.NewReader(input))

	_, err := dec.next()
	assert.ErrorIs(t, err, errSentinel)

	// Nothing after the sentinel is ever surfaced.
	_, err = dec.next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSSEDecoder_TrailingFrameWithoutBlankLine(t *testing.T) {
	input := "data: {\"a\":1}"
	dec := newSSEDecoder(strings.NewReader(input))

	f, err := dec.next()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(f.data))

	_, err = dec.next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSSEDecoder_EmptyBody(t *testing.T) {
	dec := newSSEDecoder(strings.NewReader(""))

	_, err := dec.next()
	assert.ErrorIs(t, err, io.EOF)
}
