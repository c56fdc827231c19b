package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PratikDhanave/ai-eco-analytics/internal/catalog"
	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
	"github.com/PratikDhanave/ai-eco-analytics/internal/store"
)

func newEngine(t *testing.T, events ...models.UsageEvent) *Engine {
	t.Helper()
	s := store.NewMemory()
	for _, e := range events {
		s.Record(context.Background(), e)
	}
	return NewEngine(s, catalog.Default(), 0)
}

func mentor(user, tool string) models.UsageEvent {
	return models.UsageEvent{UserID: user, EventType: models.EventMentorResponse, RecommendedToolID: tool}
}

func TestTopTools_CountsMentorResponses(t *testing.T) {
	e := newEngine(t, mentor("u1", "chatgpt"), mentor("u1", "chatgpt"), mentor("u1", "claude"))

	got := e.TopTools(context.Background(), 1)

	require.Len(t, got, 1)
	assert.Equal(t, "chatgpt", got[0].ID)
	assert.Equal(t, 2, got[0].Uses)
	assert.Equal(t, "ChatGPT", got[0].Name)
	require.NotNil(t, got[0].EcoScore)
	assert.Equal(t, 78.0, *got[0].EcoScore)
}

func TestTopTools_TiesKeepFirstSeenOrder(t *testing.T) {
	e := newEngine(t,
		mentor("u1", "stable_diffusion"),
		mentor("u2", "claude"),
		mentor("u3", "claude"),
		mentor("u4", "stable_diffusion"),
		mentor("u5", "capcut"),
	)

	got := e.TopTools(context.Background(), 5)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"stable_diffusion", "claude", "capcut"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestTopTools_ToolFromPayloadAndUnknownIDs(t *testing.T) {
	e := newEngine(t,
		models.UsageEvent{UserID: "u1", EventType: models.EventMentorResponse,
			Payload: map[string]any{"recommended_tool": "mystery-ai"}},
		models.UsageEvent{UserID: "u1", EventType: "click", RecommendedToolID: "chatgpt"},
	)

	got := e.TopTools(context.Background(), 5)

	require.Len(t, got, 1, "only mentor responses count")
	assert.Equal(t, "mystery-ai", got[0].ID)
	assert.Equal(t, "mystery-ai", got[0].Name)
	assert.Nil(t, got[0].EcoScore)
}

func TestTopTools_NonPositiveN(t *testing.T) {
	e := newEngine(t, mentor("u1", "chatgpt"))
	assert.Empty(t, e.TopTools(context.Background(), 0))
}

func TestCategoryBreakdown(t *testing.T) {
	e := newEngine(t,
		models.UsageEvent{UserID: "u1", EventType: "x", Category: "texto"},
		models.UsageEvent{UserID: "u1", EventType: "x", Payload: map[string]any{"category": "design"}},
		models.UsageEvent{UserID: "u1", EventType: "x", Payload: map[string]any{"category": "design"}},
		models.UsageEvent{UserID: "u1", EventType: "x"},
	)

	got := e.CategoryBreakdown(context.Background())

	assert.Equal(t, []CategoryCount{{Category: "design", Uses: 2}, {Category: "texto", Uses: 1}}, got)
}

func TestUserEco_Thresholds(t *testing.T) {
	cases := []struct {
		calls int
		level string
	}{
		{0, LevelLow},
		{10, LevelLow},
		{11, LevelModerate},
		{40, LevelModerate},
		{41, LevelHigh},
	}

	for _, tc := range cases {
		events := make([]models.UsageEvent, 0, tc.calls)
		for i := 0; i < tc.calls; i++ {
			events = append(events, mentor("u1", "claude"))
		}
		got := newEngine(t, events...).UserEco(context.Background(), "u1")

		assert.Equal(t, tc.calls, got.TotalCalls)
		assert.Equal(t, tc.level, got.ConsumptionLevel, "calls=%d", tc.calls)
		assert.InDelta(t, float64(tc.calls)*0.003, got.KWhEstimate, 1e-9)
		assert.InDelta(t, float64(tc.calls)*0.003*0.4, got.CO2EstimateKg, 1e-9)
	}
}

func TestUserEco_FiltersUserAndTypes(t *testing.T) {
	e := newEngine(t,
		mentor("u1", "claude"),
		mentor("u1", "gemini"),
		mentor("u1", "gemini"),
		models.UsageEvent{UserID: "u1", EventType: models.EventVisionEnvironment},
		models.UsageEvent{UserID: "u1", EventType: "click", RecommendedToolID: "capcut"},
		mentor("u2", "capcut"),
	)

	got := e.UserEco(context.Background(), "u1")

	assert.Equal(t, 4, got.TotalCalls)
	require.NotNil(t, got.MostUsedTool)
	assert.Equal(t, "gemini", *got.MostUsedTool)
}

func TestUserEco_CountsFailedCalls(t *testing.T) {
	failed := false
	events := make([]models.UsageEvent, 0, 41)
	for i := 0; i < 40; i++ {
		events = append(events, mentor("u1", "chatgpt"))
	}
	events = append(events, models.UsageEvent{
		UserID: "u1", EventType: models.EventMentorResponse, RecommendedToolID: "claude", Success: &failed,
	})
	e := newEngine(t, events...)

	got := e.UserEco(context.Background(), "u1")
	assert.Equal(t, 41, got.TotalCalls)
	assert.Equal(t, LevelHigh, got.ConsumptionLevel)

	uses := 0
	for _, rt := range e.TopTools(context.Background(), 5) {
		uses += rt.Uses
	}
	assert.Equal(t, got.TotalCalls, uses, "top tools and user eco read the same calls")
}

func TestUserEco_NoToolMeansNilMostUsed(t *testing.T) {
	e := newEngine(t, models.UsageEvent{UserID: "u1", EventType: models.EventVisionEnvironment})

	got := e.UserEco(context.Background(), "u1")
	assert.Equal(t, 1, got.TotalCalls)
	assert.Nil(t, got.MostUsedTool)
}

func TestUserToolBreakdown(t *testing.T) {
	e := newEngine(t,
		mentor("u1", "capcut"),
		mentor("u1", "capcut"),
		mentor("u1", "claude"),
		mentor("u1", "unknown"),
		mentor("u2", "claude"),
	)

	got := e.UserToolBreakdown(context.Background(), "u1")

	require.Len(t, got.Tools, 2)
	assert.Equal(t, "capcut", got.Tools[0].ToolID)
	assert.InDelta(t, 3.2, got.Tools[0].ConsumptionWh, 1e-9)
	assert.InDelta(t, 3.2+2.2, got.TotalConsumptionWh, 1e-9)
}

func TestResultsIdenticalAcrossBackends(t *testing.T) {
	// Analytics only see List output, so a memory store and a durable-backed store
	// holding the same events must agree.
	events := []models.UsageEvent{mentor("u1", "claude"), mentor("u1", "chatgpt"), mentor("u2", "claude")}

	mem := newEngine(t, events...)
	dur := NewEngine(staticLister(mem.events.List(context.Background(), 100)), catalog.Default(), 0)

	ctx := context.Background()
	assert.Equal(t, mem.TopTools(ctx, 5), dur.TopTools(ctx, 5))
	assert.Equal(t, mem.UserEco(ctx, "u1"), dur.UserEco(ctx, "u1"))
}

type staticLister []models.UsageEvent

func (s staticLister) List(_ context.Context, limit int) []models.UsageEvent {
	if limit > len(s) {
		limit = len(s)
	}
	return s[:limit]
}
