// Package genai is the client side of the external text/vision generation service.
// The rest of the code only depends on the Generator interface.
package genai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
)

// Image is inline binary input for vision requests.
type Image struct {
	MIMEType string
	Data     []byte
}

// Request is one generation call.
type Request struct {
	Prompt string
	// ExpectJSON asks the provider for a JSON body. Callers still validate it with DecodeObject.
	ExpectJSON bool
	Image      *Image
	// Model overrides the client's default model when set.
	Model string
}

// Generator turns a prompt into text.
//
// Errors are *apperrors.AppError of kind configuration (missing key),
// upstream unavailable (transport/5xx) or bad upstream response.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// DecodeObject parses generated text that must be a JSON object. A non-empty list
// is unwrapped to its first element; anything else that is not an object fails.
func DecodeObject(text string) (map[string]any, error) {
	var data any
	if err := json.Unmarshal([]byte(stripFence(text)), &data); err != nil {
		return nil, apperrors.BadUpstreamResponse("generated content is not valid JSON: %v", err)
	}

	if list, ok := data.([]any); ok {
		if len(list) == 0 {
			return nil, apperrors.BadUpstreamResponse("generated content is an empty list")
		}
		data = list[0]
	}

	obj, ok := data.(map[string]any)
	if !ok {
		return nil, apperrors.BadUpstreamResponse("generated content is not a JSON object")
	}
	return obj, nil
}

// stripFence removes a surrounding ```json … ``` block some models add despite instructions.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
