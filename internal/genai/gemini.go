package genai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	sdk "google.golang.org/genai"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
)

// GeminiConfig holds the Gemini client settings.
type GeminiConfig struct {
	// APIKey is required at call time, not at construction, so the service can
	// start without it and only the generation routes fail.
	APIKey string

	// BaseURL overrides the SDK's default endpoint (tests point it at httptest).
	BaseURL string

	// Model is used when a request does not name one (default gemini-2.0-flash).
	Model string

	// Timeout per request (default 60s).
	Timeout time.Duration
}

// DefaultGeminiConfig returns the default configuration without an API key.
func DefaultGeminiConfig() GeminiConfig {
	return GeminiConfig{
		Model:   "gemini-2.0-flash",
		Timeout: 60 * time.Second,
	}
}

// GeminiClient generates content through the Gemini API. It is safe for concurrent use.
type GeminiClient struct {
	cfg GeminiConfig

	mu     sync.Mutex
	client *sdk.Client
}

// NewGeminiClient fills unset fields from DefaultGeminiConfig. The SDK client is
// created on first use.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	def := DefaultGeminiConfig()
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &GeminiClient{cfg: cfg}
}

func (c *GeminiClient) sdkClient(ctx context.Context) (*sdk.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}

	client, err := sdk.NewClient(ctx, &sdk.ClientConfig{
		APIKey:      c.cfg.APIKey,
		Backend:     sdk.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: c.cfg.Timeout},
		HTTPOptions: sdk.HTTPOptions{BaseURL: c.cfg.BaseURL},
	})
	if err != nil {
		return nil, apperrors.Configuration("gemini client: %v", err)
	}
	c.client = client
	return client, nil
}

// Generate sends req and returns the concatenated text of the first candidate.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	if c.cfg.APIKey == "" {
		return "", apperrors.Configuration("GEMINI_API_KEY is not configured")
	}
	client, err := c.sdkClient(ctx)
	if err != nil {
		return "", err
	}

	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}

	parts := []*sdk.Part{sdk.NewPartFromText(req.Prompt)}
	if req.Image != nil {
		parts = append(parts, sdk.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	contents := []*sdk.Content{sdk.NewContentFromParts(parts, sdk.RoleUser)}

	var genCfg *sdk.GenerateContentConfig
	if req.ExpectJSON {
		genCfg = &sdk.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := client.Models.GenerateContent(ctx, model, contents, genCfg)
	if err != nil {
		return "", upstreamError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", apperrors.BadUpstreamResponse("generation response has no candidates")
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			sb.WriteString(p.Text)
		}
	}
	return sb.String(), nil
}

// upstreamError maps SDK failures: API status errors and transport errors both
// mean the generation service could not serve the call.
func upstreamError(err error) error {
	var apiErr sdk.APIError
	if errors.As(err, &apiErr) {
		return apperrors.UpstreamUnavailable(err, "generation service returned %d", apiErr.Code)
	}
	var apiErrPtr *sdk.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apperrors.UpstreamUnavailable(err, "generation service returned %d", apiErrPtr.Code)
	}
	return apperrors.UpstreamUnavailable(err, "generation service unreachable")
}
