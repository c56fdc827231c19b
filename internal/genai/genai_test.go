package genai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
)

func TestDecodeObject(t *testing.T) {
	obj, err := DecodeObject(`{"a": 1}`)
	require.NoError(t, err)
	assert.Equal(t, float64(1), obj["a"])

	obj, err = DecodeObject(`[{"a": 2}, {"a": 3}]`)
	require.NoError(t, err)
	assert.Equal(t, float64(2), obj["a"])

	obj, err = DecodeObject("```json\n{\"a\": 4}\n```")
	require.NoError(t, err)
	assert.Equal(t, float64(4), obj["a"])

	for _, bad := range []string{`not json`, `[]`, `"text"`, `[1, 2]`, `42`} {
		_, err := DecodeObject(bad)
		assert.True(t, errors.Is(err, apperrors.ErrBadUpstreamResponse), bad)
	}
}

func TestGemini_MissingKeyIsConfigurationError(t *testing.T) {
	_, err := NewGeminiClient(GeminiConfig{}).Generate(context.Background(), Request{Prompt: "hi"})
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}

func TestGemini_SendsPromptAndReturnsText(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"ok\":"},{"text":"true}"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient(GeminiConfig{APIKey: "k", BaseURL: srv.URL, Model: "test-model"})
	text, err := c.Generate(context.Background(), Request{
		Prompt:     "plan",
		ExpectJSON: true,
		Image:      &Image{MIMEType: "image/png", Data: []byte{1, 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &sent))
	assert.Contains(t, body, `"text":"plan"`)
	assert.Contains(t, body, `"mimeType":"image/png"`)
	assert.Contains(t, body, `"responseMimeType":"application/json"`)
}

func TestGemini_RequestModelOverridesDefault(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient(GeminiConfig{APIKey: "k", BaseURL: srv.URL, Model: "text-model"})
	text, err := c.Generate(context.Background(), Request{Prompt: "x", Model: "vision-model"})
	require.NoError(t, err)
	assert.Equal(t, "hi", text)
	assert.Equal(t, "/v1beta/models/vision-model:generateContent", path)
}

func TestGemini_ServerErrorIsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiClient(GeminiConfig{APIKey: "k", BaseURL: srv.URL}).Generate(context.Background(), Request{Prompt: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamUnavailable))
}

func TestGemini_NoCandidatesIsBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := NewGeminiClient(GeminiConfig{APIKey: "k", BaseURL: srv.URL}).Generate(context.Background(), Request{Prompt: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrBadUpstreamResponse))
}

func TestGemini_UnreachableIsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewGeminiClient(GeminiConfig{APIKey: "k", BaseURL: url}).Generate(context.Background(), Request{Prompt: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamUnavailable))
}
