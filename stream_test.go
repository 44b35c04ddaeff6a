package jsonrepair

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamer_ChunkedCommentAndTrailingComma(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamer(&buf, DefaultOptions())

	require.NoError(t, s.Push([]byte("[1, 2 ")))
	// Nothing can be confirmed yet: the array hasn't closed.
	require.Equal(t, "", buf.String())

	require.NoError(t, s.Push([]byte("/*c*/, 3,]")))
	require.NoError(t, s.Flush())

	require.Equal(t, "[1,2,3]", buf.String())
}

func TestStreamer_NDJSONAggregationOnFlush(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.StreamNDJSONAggregate = true
	s := NewStreamer(&buf, opts)

	require.NoError(t, s.Push([]byte("{\"a\":1}\n")))
	require.NoError(t, s.Push([]byte("{\"b\":2}")))
	require.NoError(t, s.Flush())

	require.Equal(t, `[{"a":1},{"b":2}]`, buf.String())
}

func TestStreamer_WithoutAggregationValuesAreConcatenated(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamer(&buf, DefaultOptions())

	require.NoError(t, s.Push([]byte("{\"a\":1}\n{\"b\":2}")))
	require.NoError(t, s.Flush())

	require.Equal(t, `{"a":1}{"b":2}`, buf.String())
}

func TestStreamer_DepthExceededIsTerminal(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.MaxDepth = 1
	s := NewStreamer(&buf, opts)

	err := s.Push([]byte("[[1]]"))
	require.Error(t, err)
	var rerr *RepairError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, KindDepthExceeded, rerr.ErrKind())

	// The driver is unusable after a hard error: it keeps returning it.
	err2 := s.Push([]byte("1"))
	require.Error(t, err2)

	err3 := s.Flush()
	require.Error(t, err3)
}

func TestStreamer_PushAfterFlushErrors(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamer(&buf, DefaultOptions())
	require.NoError(t, s.Push([]byte("1")))
	require.NoError(t, s.Flush())

	err := s.Push([]byte("2"))
	require.Error(t, err)
}

func TestStreamer_NDJSONAggregationMatchesNonStreamingWithPythonStyleSeparators(t *testing.T) {
	opts := DefaultOptions()
	opts.StreamNDJSONAggregate = true
	opts.PythonStyleSeparators = true

	var buf bytes.Buffer
	s := NewStreamer(&buf, opts)
	require.NoError(t, s.Push([]byte("{\"a\": 1}\n{\"b\": 2}\n{\"c\": 3}")))
	require.NoError(t, s.Flush())

	nonStreaming, err := RepairToString("{\"a\": 1}\n{\"b\": 2}\n{\"c\": 3}", opts)
	require.NoError(t, err)

	require.Equal(t, nonStreaming, buf.String())
	require.Equal(t, `[{"a": 1}, {"b": 2}, {"c": 3}]`, buf.String())
}

func TestStreamer_FencedWrapperWaitsForClosingFence(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamer(&buf, DefaultOptions())

	require.NoError(t, s.Push([]byte("```json\n{\"x\":1}\n")))
	require.Equal(t, "", buf.String())

	require.NoError(t, s.Push([]byte("```")))
	require.NoError(t, s.Flush())

	require.Equal(t, `{"x":1}`, buf.String())
}
