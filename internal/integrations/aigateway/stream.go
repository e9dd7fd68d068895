package aigateway

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// StreamReader incrementally parses a chat-completions SSE stream into
// content fragments. Chunk boundaries in the underlying reader are
// irrelevant: lines are assembled regardless of how the body was split.
type StreamReader struct {
	scanner *bufio.Scanner
	done    bool
}

// NewStreamReader wraps an SSE body.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{scanner: bufio.NewScanner(r)}
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Next returns the next non-empty content fragment. It returns io.EOF at the
// [DONE] marker or the end of the body; the marker itself is never part of
// the content.
func (r *StreamReader) Next() (string, error) {
	if r.done {
		return "", io.EOF
	}
	for r.scanner.Scan() {
		line := strings.TrimSuffix(r.scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimSpace(line[len("data: "):])
		if data == "[DONE]" {
			r.done = true
			return "", io.EOF
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Tolerate keep-alive or vendor-specific lines.
			continue
		}
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			return chunk.Choices[0].Delta.Content, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	r.done = true
	return "", io.EOF
}

// Collect drains the stream and returns the assembled assistant message.
func Collect(r io.Reader) (string, error) {
	sr := NewStreamReader(r)
	var b strings.Builder
	for {
		fragment, err := sr.Next()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return b.String(), err
		}
		b.WriteString(fragment)
	}
}
