package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWith(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.EventBackend)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Second, cfg.DurableTimeout)
	assert.Equal(t, 10000, cfg.AnalyticsScanLimit)
	assert.Empty(t, cfg.APIKeys)
}

func TestLoad_DBURLSelectsPostgres(t *testing.T) {
	cfg, err := LoadWith(envOf(map[string]string{"DB_URL": "postgres://x"}))
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.EventBackend)
}

func TestLoad_APIKeys(t *testing.T) {
	cfg, err := LoadWith(envOf(map[string]string{"API_KEYS": "mobile:k1, web:k2"}))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"k1": "mobile", "k2": "web"}, cfg.APIKeys)
}

func TestLoad_InvalidValuesAreConfigurationErrors(t *testing.T) {
	cases := []map[string]string{
		{"API_KEYS": "no-colon"},
		{"EVENT_BACKEND": "redis"},
		{"EVENT_BACKEND": "postgres"},
		{"DURABLE_TIMEOUT": "soon"},
		{"GENAI_BURST": "many"},
		{"APP_ENV": "staging"},
	}
	for _, env := range cases {
		_, err := LoadWith(envOf(env))
		assert.True(t, errors.Is(err, apperrors.ErrConfiguration), "%v", env)
	}
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
event_backend = "sqlite"
sqlite_path = "/tmp/from-file.db"
durable_timeout = "500ms"
genai_burst = 9
`), 0o600))

	cfg, err := LoadWith(envOf(map[string]string{
		"CONFIG_PATH": path,
		"SQLITE_PATH": "/tmp/from-env.db",
	}))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.EventBackend)
	assert.Equal(t, "/tmp/from-env.db", cfg.SQLitePath)
	assert.Equal(t, 500*time.Millisecond, cfg.DurableTimeout)
	assert.Equal(t, 9, cfg.GenAIBurst)
}
