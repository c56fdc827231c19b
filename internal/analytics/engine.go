// Package analytics derives rankings and consumption estimates from the usage
// event log. Every result is a pure function of the log contents and the catalog.
package analytics

import (
	"context"
	"sort"

	"github.com/PratikDhanave/ai-eco-analytics/internal/catalog"
	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
)

// Consumption policy. These are fixed estimates, not measurements.
const (
	// KWhPerCall is the energy attributed to one generation call.
	KWhPerCall = 0.003
	// CO2KgPerKWh is the grid emission factor.
	CO2KgPerKWh = 0.4
	// LowMaxCalls is the highest call count still rated "low".
	LowMaxCalls = 10
	// ModerateMaxCalls is the highest call count still rated "moderate".
	ModerateMaxCalls = 40

	// DefaultScanLimit is how many recent events a computation reads.
	DefaultScanLimit = 10000
)

// Consumption levels.
const (
	LevelLow      = "low"
	LevelModerate = "moderate"
	LevelHigh     = "high"
)

// EventLister is the read side of the event store.
type EventLister interface {
	List(ctx context.Context, limit int) []models.UsageEvent
}

// Engine computes analytics over an event source.
type Engine struct {
	events    EventLister
	catalog   *catalog.Catalog
	scanLimit int
}

// NewEngine returns an engine reading at most scanLimit recent events per computation.
func NewEngine(events EventLister, cat *catalog.Catalog, scanLimit int) *Engine {
	if scanLimit <= 0 {
		scanLimit = DefaultScanLimit
	}
	return &Engine{events: events, catalog: cat, scanLimit: scanLimit}
}

// RankedTool is one entry of the top-tools ranking.
type RankedTool struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Uses     int      `json:"uses"`
	EcoScore *float64 `json:"eco_score"`
}

// CategoryCount is one entry of the category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Uses     int    `json:"uses"`
}

// UserEco is the per-user consumption estimate.
type UserEco struct {
	UserID           string  `json:"user_id"`
	TotalCalls       int     `json:"total_calls"`
	KWhEstimate      float64 `json:"kwh_estimate"`
	CO2EstimateKg    float64 `json:"co2_estimate_kg"`
	MostUsedTool     *string `json:"most_used_tool"`
	ConsumptionLevel string  `json:"consumption_level"`
}

// ToolUsage is one tool's share in a user's breakdown.
type ToolUsage struct {
	ToolID        string  `json:"tool_id"`
	Name          string  `json:"name"`
	Uses          int     `json:"uses"`
	ConsumptionWh float64 `json:"consumption_wh"`
}

// UserTools is a user's per-tool breakdown with the summed catalog power draw.
type UserTools struct {
	UserID             string      `json:"user_id"`
	TotalConsumptionWh float64     `json:"total_consumption_wh"`
	Tools              []ToolUsage `json:"tools"`
}

// TopTools ranks the tools recommended in mentor responses by count, descending.
// Ties keep the order in which tools first appeared in the log.
func (e *Engine) TopTools(ctx context.Context, topN int) []RankedTool {
	if topN <= 0 {
		return []RankedTool{}
	}

	c := newCounter()
	e.eachChronological(ctx, func(evt models.UsageEvent) {
		if evt.EventType != models.EventMentorResponse {
			return
		}
		if id := evt.ToolID(); id != "" {
			c.add(id)
		}
	})

	ranked := c.ranked()
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	out := make([]RankedTool, 0, len(ranked))
	for _, kc := range ranked {
		tool := e.catalog.GetOrDefault(kc.key)
		entry := RankedTool{ID: tool.ID, Name: tool.DisplayName, Uses: kc.count}
		if tool.Known {
			score := tool.EcoScore
			entry.EcoScore = &score
		}
		out = append(out, entry)
	}
	return out
}

// CategoryBreakdown counts events per non-empty category, descending.
func (e *Engine) CategoryBreakdown(ctx context.Context) []CategoryCount {
	c := newCounter()
	e.eachChronological(ctx, func(evt models.UsageEvent) {
		if cat := evt.CategoryName(); cat != "" {
			c.add(cat)
		}
	})

	ranked := c.ranked()
	out := make([]CategoryCount, 0, len(ranked))
	for _, kc := range ranked {
		out = append(out, CategoryCount{Category: kc.key, Uses: kc.count})
	}
	return out
}

// UserEco estimates a user's footprint from their generation calls
// (mentor responses and workspace vision analyses).
func (e *Engine) UserEco(ctx context.Context, userID string) UserEco {
	calls := 0
	tools := newCounter()
	e.eachChronological(ctx, func(evt models.UsageEvent) {
		if evt.UserID != userID || !countsAsCall(evt) {
			return
		}
		calls++
		if id := evt.ToolID(); id != "" {
			tools.add(id)
		}
	})

	kwh := float64(calls) * KWhPerCall
	out := UserEco{
		UserID:           userID,
		TotalCalls:       calls,
		KWhEstimate:      kwh,
		CO2EstimateKg:    kwh * CO2KgPerKWh,
		ConsumptionLevel: ConsumptionLevel(calls),
	}
	if ranked := tools.ranked(); len(ranked) > 0 {
		top := ranked[0].key
		out.MostUsedTool = &top
	}
	return out
}

// UserToolBreakdown lists the tools a user was recommended with the catalog
// power draw multiplied out. Tools missing from the catalog are left out.
func (e *Engine) UserToolBreakdown(ctx context.Context, userID string) UserTools {
	c := newCounter()
	e.eachChronological(ctx, func(evt models.UsageEvent) {
		if evt.UserID != userID {
			return
		}
		if id := evt.ToolID(); id != "" {
			c.add(id)
		}
	})

	out := UserTools{UserID: userID, Tools: []ToolUsage{}}
	for _, kc := range c.ranked() {
		tool := e.catalog.GetOrDefault(kc.key)
		if !tool.Known {
			continue
		}
		wh := tool.PowerDrawWh * float64(kc.count)
		out.TotalConsumptionWh += wh
		out.Tools = append(out.Tools, ToolUsage{
			ToolID:        tool.ID,
			Name:          tool.DisplayName,
			Uses:          kc.count,
			ConsumptionWh: wh,
		})
	}
	return out
}

// ConsumptionLevel rates a call count against the fixed thresholds.
func ConsumptionLevel(calls int) string {
	switch {
	case calls <= LowMaxCalls:
		return LevelLow
	case calls <= ModerateMaxCalls:
		return LevelModerate
	default:
		return LevelHigh
	}
}

// countsAsCall reports whether evt is a generation call, whatever its outcome.
func countsAsCall(evt models.UsageEvent) bool {
	return evt.EventType == models.EventMentorResponse || evt.EventType == models.EventVisionEnvironment
}

// eachChronological visits the scanned events oldest first, so first-seen order
// in counters follows arrival order. List returns newest first.
func (e *Engine) eachChronological(ctx context.Context, fn func(models.UsageEvent)) {
	events := e.events.List(ctx, e.scanLimit)
	for i := len(events) - 1; i >= 0; i-- {
		fn(events[i])
	}
}

type keyCount struct {
	key   string
	count int
}

// counter counts keys and remembers the order they were first seen in.
type counter struct {
	index map[string]int
	items []keyCount
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(key string) {
	i, ok := c.index[key]
	if !ok {
		i = len(c.items)
		c.index[key] = i
		c.items = append(c.items, keyCount{key: key})
	}
	c.items[i].count++
}

// ranked sorts by count descending; the stable sort keeps first-seen order on ties.
func (c *counter) ranked() []keyCount {
	out := append([]keyCount(nil), c.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	return out
}
