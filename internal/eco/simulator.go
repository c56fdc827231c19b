// Package eco ranks catalog tools by sustainability and estimates the savings of
// switching to a lower-consumption tool.
package eco

import (
	"math"
	"sort"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
	"github.com/PratikDhanave/ai-eco-analytics/internal/catalog"
)

// CO2GramsPerWh is the emission factor applied to simulated consumption.
const CO2GramsPerWh = 0.475

// DefaultUses is the number of uses simulated when the caller gives none.
const DefaultUses = 10

// Simulator works on the catalog alone.
type Simulator struct {
	catalog *catalog.Catalog
}

func NewSimulator(cat *catalog.Catalog) *Simulator {
	return &Simulator{catalog: cat}
}

// Report is the result of SimulateImpact. Figures are rounded to two decimals.
type Report struct {
	ToolID        string  `json:"tool_id"`
	Uses          int     `json:"uses"`
	ConsumptionWh float64 `json:"consumption_wh"`
	CO2Grams      float64 `json:"co2_g"`
	AlternativeID string  `json:"alternative_id"`
	SavingsWh     float64 `json:"savings_wh"`
}

// RankByEco orders tools by eco score (high first), then power draw (low first),
// then id, so equal inputs always produce the same sequence.
func (s *Simulator) RankByEco() []catalog.Tool {
	return RankByEco(s.catalog.All())
}

// RankByEco sorts a copy of tools with the eco ordering.
func RankByEco(tools []catalog.Tool) []catalog.Tool {
	out := append([]catalog.Tool(nil), tools...)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.EcoScore != b.EcoScore {
			return a.EcoScore > b.EcoScore
		}
		if a.PowerDrawWh != b.PowerDrawWh {
			return a.PowerDrawWh < b.PowerDrawWh
		}
		return a.ID < b.ID
	})
	return out
}

// SimulateImpact estimates the footprint of uses calls to toolID and the saving
// from moving to the best-ranked tool with a strictly lower power draw. When no
// such tool exists the top-ranked tool is reported regardless, possibly toolID itself.
func (s *Simulator) SimulateImpact(toolID string, uses int) (Report, error) {
	chosen, err := s.catalog.Lookup(toolID)
	if err != nil {
		return Report{}, err
	}
	if uses < 1 {
		return Report{}, apperrors.Validation("uses must be at least 1, got %d", uses)
	}

	ranking := s.RankByEco()
	alt := ranking[0]
	for _, t := range ranking {
		if t.ID != chosen.ID && t.PowerDrawWh < chosen.PowerDrawWh {
			alt = t
			break
		}
	}

	consumption := chosen.PowerDrawWh * float64(uses)
	savings := math.Max(0, chosen.PowerDrawWh-alt.PowerDrawWh) * float64(uses)

	return Report{
		ToolID:        chosen.ID,
		Uses:          uses,
		ConsumptionWh: round2(consumption),
		CO2Grams:      round2(consumption * CO2GramsPerWh),
		AlternativeID: alt.ID,
		SavingsWh:     round2(savings),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
