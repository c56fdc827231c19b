// Package recommend ranks catalog tools for a user from their stored preferences.
package recommend

import (
	"sort"

	"github.com/PratikDhanave/ai-eco-analytics/internal/catalog"
	"github.com/PratikDhanave/ai-eco-analytics/internal/eco"
	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
)

// TopN is the number of tools recommended.
const TopN = 5

// EcoPreference switches the ranking to the eco ordering.
const EcoPreference = "eco"

// Profiles looks up stored user profiles.
type Profiles interface {
	Get(id string) (models.UserProfile, bool)
}

// Engine applies a single rule: "eco" preference (or no profile) ranks by eco score,
// anything else ranks by speed.
type Engine struct {
	catalog  *catalog.Catalog
	profiles Profiles
}

func NewEngine(cat *catalog.Catalog, profiles Profiles) *Engine {
	return &Engine{catalog: cat, profiles: profiles}
}

// Report is the recommendation for one user. Level and Goals are set only when
// a profile exists.
type Report struct {
	UserID          string         `json:"user_id"`
	Level           models.Level   `json:"level,omitempty"`
	Goals           []string       `json:"goals,omitempty"`
	Ranking         string         `json:"ranking"`
	Recommendations []catalog.Tool `json:"recommendations"`
}

// Ranking names.
const (
	RankingEco   = "eco"
	RankingSpeed = "speed"
)

// ForUser returns the top tools for userID.
func (e *Engine) ForUser(userID string) Report {
	profile, ok := e.profiles.Get(userID)
	if !ok {
		return Report{UserID: userID, Ranking: RankingEco, Recommendations: top(eco.RankByEco(e.catalog.All()))}
	}

	r := Report{UserID: userID, Level: profile.Level, Goals: profile.Goals}
	if profile.Prefers(EcoPreference) {
		r.Ranking = RankingEco
		r.Recommendations = top(eco.RankByEco(e.catalog.All()))
	} else {
		r.Ranking = RankingSpeed
		r.Recommendations = top(bySpeed(e.catalog.All()))
	}
	return r
}

// bySpeed sorts fastest first; equal speeds keep catalog order.
func bySpeed(tools []catalog.Tool) []catalog.Tool {
	sort.SliceStable(tools, func(i, j int) bool { return tools[i].Speed > tools[j].Speed })
	return tools
}

func top(tools []catalog.Tool) []catalog.Tool {
	if len(tools) > TopN {
		return tools[:TopN]
	}
	return tools
}
