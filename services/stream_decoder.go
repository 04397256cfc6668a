package services

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

const streamDonePrefix = "data: [DONE]"

// chatStreamChunk mirrors the chat-completions stream payload; only the
// content path matters here.
type chatStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// DecodeStream consumes an SSE-framed chat-completion stream and returns
// the accumulated text. onSnapshot, when non-nil, receives the full
// accumulated text after every content delta so callers can render
// partial output as it arrives.
//
// Lines are buffered across reads, so a JSON payload split between two
// chunks is only parsed once its trailing newline arrives. A line that
// fails to parse is dropped and the stream keeps going; after the [DONE]
// sentinel remaining input is drained without extracting content.
func DecodeStream(ctx context.Context, r io.Reader, onSnapshot func(accumulated string)) (string, error) {
	br := bufio.NewReader(r)
	var acc strings.Builder
	done := false

	emit := func(line string) {
		delta, ok := extractContentDelta(line)
		if !ok || delta == "" {
			return
		}
		acc.WriteString(delta)
		if onSnapshot != nil {
			onSnapshot(acc.String())
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return acc.String(), err
		}

		line, err := br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				// The transport closed; the final line never got its
				// newline. Parsing it is best-effort.
				if !done && line != "" && !strings.HasPrefix(line, streamDonePrefix) {
					emit(line)
				}
				return acc.String(), nil
			}
			return acc.String(), err
		}
		if done {
			continue
		}

		line = strings.TrimRight(line, "\r\n")
		if line == streamDonePrefix {
			done = true
			continue
		}
		emit(line)
	}
}

// extractContentDelta pulls choices[0].delta.content out of a single
// "data: {...}" line. ok is false for non-data lines and malformed JSON.
func extractContentDelta(line string) (string, bool) {
	const prefix = "data: "
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	var chunk chatStreamChunk
	if err := json.Unmarshal([]byte(line[len(prefix):]), &chunk); err != nil {
		return "", false
	}
	if len(chunk.Choices) == 0 {
		return "", false
	}
	return chunk.Choices[0].Delta.Content, true
}
