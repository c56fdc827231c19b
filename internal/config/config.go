package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
)

// Event store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config contains runtime configuration required by the service.
type Config struct {
	Env      string `toml:"env"`
	HTTPAddr string `toml:"http_addr"`

	EventBackend   string        `toml:"event_backend"`
	DBURL          string        `toml:"db_url"`
	SQLitePath     string        `toml:"sqlite_path"`
	DurableTimeout time.Duration `toml:"durable_timeout"`

	// APIKeysRaw has the form "client1:key1,client2:key2".
	APIKeysRaw string            `toml:"api_keys"`
	APIKeys    map[string]string `toml:"-"` // apiKey -> clientID

	GeminiAPIKey      string  `toml:"gemini_api_key"`
	GeminiModel       string  `toml:"gemini_model"`
	GeminiVisionModel string  `toml:"gemini_vision_model"`
	GeminiBaseURL     string  `toml:"gemini_base_url"`
	GenAIRatePerSec   float64 `toml:"genai_rate_per_sec"`
	GenAIBurst        int     `toml:"genai_burst"`

	AnalyticsScanLimit int `toml:"analytics_scan_limit"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Env:                "development",
		HTTPAddr:           ":8080",
		SQLitePath:         "data/events.db",
		DurableTimeout:     2 * time.Second,
		GeminiModel:        "gemini-2.0-flash",
		GeminiVisionModel:  "gemini-1.5-flash",
		GenAIRatePerSec:    2,
		GenAIBurst:         5,
		AnalyticsScanLimit: 10000,
	}
}

// Load reads the optional TOML file at CONFIG_PATH, then applies environment overrides.
func Load() (Config, error) {
	return LoadWith(os.Getenv)
}

// LoadWith is Load with an explicit environment lookup.
func LoadWith(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(getenv("CONFIG_PATH")); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, apperrors.Configuration("reading %s: %v", path, err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.finish(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("APP_ENV", &c.Env)
	str("HTTP_ADDR", &c.HTTPAddr)
	str("EVENT_BACKEND", &c.EventBackend)
	str("DB_URL", &c.DBURL)
	str("SQLITE_PATH", &c.SQLitePath)
	str("API_KEYS", &c.APIKeysRaw)
	str("GEMINI_API_KEY", &c.GeminiAPIKey)
	str("GEMINI_MODEL", &c.GeminiModel)
	str("GEMINI_VISION_MODEL", &c.GeminiVisionModel)
	str("GEMINI_BASE_URL", &c.GeminiBaseURL)

	if v := strings.TrimSpace(getenv("DURABLE_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return apperrors.Configuration("DURABLE_TIMEOUT must be a positive duration, got %q", v)
		}
		c.DurableTimeout = d
	}
	if v := strings.TrimSpace(getenv("GENAI_RATE_PER_SEC")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return apperrors.Configuration("GENAI_RATE_PER_SEC must be a number, got %q", v)
		}
		c.GenAIRatePerSec = f
	}
	for key, dst := range map[string]*int{
		"GENAI_BURST":          &c.GenAIBurst,
		"ANALYTICS_SCAN_LIMIT": &c.AnalyticsScanLimit,
	} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return apperrors.Configuration("%s must be an integer, got %q", key, v)
			}
			*dst = n
		}
	}
	return nil
}

// finish derives defaults that depend on other values and rejects invalid combinations.
func (c *Config) finish() error {
	switch c.Env {
	case "development", "production":
	default:
		return apperrors.Configuration(`APP_ENV must be "development" or "production", got %q`, c.Env)
	}

	if c.EventBackend == "" {
		c.EventBackend = BackendMemory
		if c.DBURL != "" {
			c.EventBackend = BackendPostgres
		}
	}
	switch c.EventBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DBURL == "" {
			return apperrors.Configuration("EVENT_BACKEND=postgres requires DB_URL")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return apperrors.Configuration("EVENT_BACKEND=sqlite requires SQLITE_PATH")
		}
	default:
		return apperrors.Configuration("unknown EVENT_BACKEND %q", c.EventBackend)
	}

	if c.DurableTimeout <= 0 {
		return apperrors.Configuration("durable timeout must be positive")
	}
	if c.GenAIRatePerSec <= 0 || c.GenAIBurst < 1 {
		return apperrors.Configuration("generation rate and burst must be positive")
	}
	if c.AnalyticsScanLimit < 1 {
		return apperrors.Configuration("ANALYTICS_SCAN_LIMIT must be positive")
	}

	keys, err := parseAPIKeys(c.APIKeysRaw)
	if err != nil {
		return err
	}
	c.APIKeys = keys
	return nil
}

// parseAPIKeys parses "client1:key1,client2:key2". An empty string means no keys.
func parseAPIKeys(raw string) (map[string]string, error) {
	keys := map[string]string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts := strings.SplitN(p, ":", 2)
		if len(parts) != 2 {
			return nil, apperrors.Configuration(`API_KEYS must be "client:key,client:key"`)
		}
		client := strings.TrimSpace(parts[0])
		key := strings.TrimSpace(parts[1])
		if client == "" || key == "" {
			return nil, apperrors.Configuration(`API_KEYS must be "client:key,client:key"`)
		}
		keys[key] = client
	}
	return keys, nil
}
