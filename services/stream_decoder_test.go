package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader yields the underlying data in fixed-size slices so tests
// can force payload lines to straddle read boundaries.
type chunkReader struct {
	data []byte
	size int
	pos  int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	end := c.pos + c.size
	if end > len(c.data) {
		end = len(c.data)
	}
	n := copy(p, c.data[c.pos:end])
	c.pos += n
	return n, nil
}

func dataLine(content string) string {
	return `data: {"choices":[{"delta":{"content":"` + content + `"}}]}` + "\n"
}

func TestDecodeStreamAccumulates(t *testing.T) {
	stream := dataLine("Olá") + dataLine(", ") + dataLine("casal!") + "data: [DONE]\n"

	got, err := DecodeStream(context.Background(), strings.NewReader(stream), nil)
	require.NoError(t, err)
	assert.Equal(t, "Olá, casal!", got)
}

func TestDecodeStreamChunkingInvariance(t *testing.T) {
	stream := dataLine("primeira ") + dataLine("parte ") + dataLine("do texto") + "data: [DONE]\n"

	whole, err := DecodeStream(context.Background(), strings.NewReader(stream), nil)
	require.NoError(t, err)

	for _, size := range []int{1, 2, 3, 7, 16, 64} {
		got, err := DecodeStream(context.Background(), &chunkReader{data: []byte(stream), size: size}, nil)
		require.NoError(t, err, "chunk size %d", size)
		assert.Equal(t, whole, got, "chunk size %d", size)
	}
}

func TestDecodeStreamSkipsMalformedLines(t *testing.T) {
	stream := dataLine("antes") +
		"data: {not json at all\n" +
		": keep-alive comment\n" +
		"event: something\n" +
		dataLine("depois") +
		"data: [DONE]\n"

	got, err := DecodeStream(context.Background(), strings.NewReader(stream), nil)
	require.NoError(t, err)
	assert.Equal(t, "antesdepois", got)
}

func TestDecodeStreamStopsExtractingAfterDone(t *testing.T) {
	stream := dataLine("fim") + "data: [DONE]\n" + dataLine("fantasma")

	got, err := DecodeStream(context.Background(), strings.NewReader(stream), nil)
	require.NoError(t, err)
	assert.Equal(t, "fim", got)
}

func TestDecodeStreamSnapshots(t *testing.T) {
	stream := dataLine("a") + dataLine("b") + dataLine("c") + "data: [DONE]\n"

	var snaps []string
	_, err := DecodeStream(context.Background(), strings.NewReader(stream), func(acc string) {
		snaps = append(snaps, acc)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "ab", "abc"}, snaps)
}

func TestDecodeStreamFinalLineWithoutNewline(t *testing.T) {
	// Transport closed before the last newline arrived.
	stream := dataLine("quase ") + strings.TrimSuffix(dataLine("lá"), "\n")

	got, err := DecodeStream(context.Background(), strings.NewReader(stream), nil)
	require.NoError(t, err)
	assert.Equal(t, "quase lá", got)
}

func TestDecodeStreamCRLF(t *testing.T) {
	stream := strings.ReplaceAll(dataLine("um")+dataLine("dois")+"data: [DONE]\n", "\n", "\r\n")

	got, err := DecodeStream(context.Background(), strings.NewReader(stream), nil)
	require.NoError(t, err)
	assert.Equal(t, "umdois", got)
}

type failingReader struct {
	head string
	read bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.read {
		f.read = true
		return copy(p, f.head), nil
	}
	return 0, errors.New("connection reset")
}

func TestDecodeStreamKeepsTextOnTransportError(t *testing.T) {
	got, err := DecodeStream(context.Background(), &failingReader{head: dataLine("parcial")}, nil)
	require.Error(t, err)
	assert.Equal(t, "parcial", got)
}

func TestDecodeStreamContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := DecodeStream(ctx, strings.NewReader(dataLine("nunca")), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, got)
}

func TestExtractContentDelta(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		want  string
		valid bool
	}{
		{"content", `data: {"choices":[{"delta":{"content":"oi"}}]}`, "oi", true},
		{"empty delta", `data: {"choices":[{"delta":{}}]}`, "", true},
		{"no choices", `data: {"choices":[]}`, "", false},
		{"not a data line", `event: ping`, "", false},
		{"bad json", `data: {broken`, "", false},
		{"missing space after colon", `data:{"choices":[{"delta":{"content":"x"}}]}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractContentDelta(tt.line)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
