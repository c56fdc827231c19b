package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitWriter("production", &buf)
	t.Cleanup(func() { InitWriter("development", &bytes.Buffer{}) })

	ctx := WithRequestID(context.Background(), "req-1")
	FromContext(ctx).Info("hello", "n", 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.EqualValues(t, 1, line["n"])
}

func TestRequestID_Empty(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
}

func TestInitWriter_DevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	InitWriter("development", &buf)
	Get().Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
