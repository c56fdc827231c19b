package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := NewRootCmd("test")
	for _, name := range []string{"serve", "catalog", "simulate"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestCatalogCmd_PrintsEcoRanking(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)

	var tools []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tools))
	require.Len(t, tools, 5)
	assert.Equal(t, "claude", tools[0].ID)
	assert.Equal(t, "stable_diffusion", tools[4].ID)
}

func TestSimulateCmd(t *testing.T) {
	out, err := run(t, "simulate", "--tool", "capcut", "--uses", "5")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "capcut", report["tool_id"])
	assert.InDelta(t, 8.0, report["consumption_wh"], 1e-9)
}

func TestSimulateCmd_UnknownTool(t *testing.T) {
	_, err := run(t, "simulate", "--tool", "nope")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestSimulateCmd_RequiresTool(t *testing.T) {
	_, err := run(t, "simulate")
	assert.Error(t, err)
}
