package openrouter

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// errSentinel is returned by the decoder when the transport-level terminal
// sentinel frame ("data: [DONE]") is observed. No further frames are
// produced after it.
var errSentinel = errors.New("sse: terminal sentinel")

// frame is one logical wire frame: the optional SSE event name and the
// joined data payload. A frame may span any number of raw transport chunks.
type frame struct {
	event string
	data  []byte
}

// sseDecoder turns the raw ordered byte stream of a chunked response body
// into discrete frames. It reassembles frames split across chunk
// boundaries, drops comment/keep-alive lines, and recognizes the [DONE]
// sentinel. The decoder is not restartable.
type sseDecoder struct {
	r       *bufio.Reader
	stopped bool
	eof     bool
}

func newSSEDecoder(r io.Reader) *sseDecoder {
	return &sseDecoder{r: bufio.NewReader(r)}
}

// next returns the next frame, errSentinel when the [DONE] sentinel is
// seen, or io.EOF when the transport closed. After errSentinel or io.EOF
// every subsequent call returns io.EOF.
func (d *sseDecoder) next() (frame, error) {
	if d.stopped || d.eof {
		return frame{}, io.EOF
	}

	var f frame
	var data []string

	for {
		line, err := d.r.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		if err != nil {
			if !errors.Is(err, io.EOF) {
				return frame{}, err
			}
			d.eof = true
			// Some upstreams close the connection without a final blank
			// line; dispatch the pending frame instead of dropping it.
			if line != "" {
				if payload, ok := strings.CutPrefix(line, "data:"); ok {
					data = append(data, strings.TrimPrefix(payload, " "))
				}
			}
			if len(data) == 0 {
				return frame{}, io.EOF
			}
			break
		}

		if line == "" {
			if f.event == "" && len(data) == 0 {
				continue // keep-alive blank line between frames
			}
			break
		}

		if strings.HasPrefix(line, ":") {
			continue // SSE comment / keep-alive
		}

		if name, ok := strings.CutPrefix(line, "event:"); ok {
			f.event = strings.TrimSpace(name)
			continue
		}

		if payload, ok := strings.CutPrefix(line, "data:"); ok {
			data = append(data, strings.TrimPrefix(payload, " "))
			continue
		}

		// Other SSE fields (id:, retry:) carry nothing we consume.
	}

	joined := strings.Join(data, "\n")
	if joined == "[DONE]" {
		d.stopped = true
		return frame{}, errSentinel
	}

	f.data = []byte(joined)
	return f, nil
}
