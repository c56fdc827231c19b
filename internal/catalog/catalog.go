// Package catalog holds the static registry of known AI tools and their
// performance and energy attributes. A Catalog is immutable once built.
package catalog

import (
	"sort"
	"strings"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
)

// Tool is the profile of one AI tool.
type Tool struct {
	ID              string   `json:"id"`
	DisplayName     string   `json:"display_name"`
	Specializations []string `json:"specializations"`
	Speed           float64  `json:"speed"`
	Cost            float64  `json:"cost"`
	Safety          float64  `json:"safety"`
	EcoScore        float64  `json:"eco_score"`
	PowerDrawWh     float64  `json:"power_draw_wh"`

	// Known is false for placeholder profiles returned by GetOrDefault.
	Known bool `json:"-"`
}

// Catalog maps tool ids to profiles, preserving the order tools were registered in.
type Catalog struct {
	order []string
	tools map[string]Tool
}

// New builds a catalog. Later duplicates of an id replace earlier ones but keep the
// original position.
func New(tools ...Tool) *Catalog {
	c := &Catalog{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		t.Known = true
		t.Specializations = append([]string(nil), t.Specializations...)
		if _, dup := c.tools[t.ID]; !dup {
			c.order = append(c.order, t.ID)
		}
		c.tools[t.ID] = t
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(
		Tool{ID: "chatgpt", DisplayName: "ChatGPT", Specializations: []string{"texto", "analise_dados", "mentor"},
			Speed: 8, Cost: 0.6, Safety: 8, EcoScore: 78, PowerDrawWh: 2.4},
		Tool{ID: "claude", DisplayName: "Claude", Specializations: []string{"texto", "analise_dados"},
			Speed: 7, Cost: 0.55, Safety: 9, EcoScore: 82, PowerDrawWh: 2.2},
		Tool{ID: "gemini", DisplayName: "Gemini", Specializations: []string{"texto", "analise_dados", "imagem"},
			Speed: 8, Cost: 0.5, Safety: 8, EcoScore: 80, PowerDrawWh: 2.1},
		Tool{ID: "capcut", DisplayName: "CapCut", Specializations: []string{"edicao_video", "design"},
			Speed: 6, Cost: 0.2, Safety: 6, EcoScore: 70, PowerDrawWh: 1.6},
		Tool{ID: "stable_diffusion", DisplayName: "Stable Diffusion", Specializations: []string{"imagem", "design"},
			Speed: 5, Cost: 0.3, Safety: 7, EcoScore: 65, PowerDrawWh: 5.0},
	)
}

func (c *Catalog) get(id string) (Tool, bool) {
	t, ok := c.tools[id]
	if !ok {
		return Tool{}, false
	}
	return t.clone(), true
}

// GetOrDefault never fails: unknown ids yield a placeholder named after the id with Known=false.
func (c *Catalog) GetOrDefault(id string) Tool {
	if t, ok := c.get(id); ok {
		return t
	}
	return Tool{ID: id, DisplayName: id}
}

// Lookup is Get with a NotFound error for unknown ids.
func (c *Catalog) Lookup(id string) (Tool, error) {
	t, ok := c.get(id)
	if !ok {
		return Tool{}, apperrors.NotFound("unknown tool id %q", id)
	}
	return t, nil
}

// All returns every tool in registration order.
func (c *Catalog) All() []Tool {
	out := make([]Tool, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.tools[id].clone())
	}
	return out
}

// ForCategory returns the first tool specialised in category, or the fastest tool
// when none is. ok is false only for an empty catalog.
func (c *Catalog) ForCategory(category string) (Tool, bool) {
	want := normalize(category)
	for _, id := range c.order {
		t := c.tools[id]
		for _, s := range t.Specializations {
			if normalize(s) == want {
				return t.clone(), true
			}
		}
	}

	all := c.All()
	if len(all) == 0 {
		return Tool{}, false
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Speed > all[j].Speed })
	return all[0], true
}

func (t Tool) clone() Tool {
	t.Specializations = append([]string(nil), t.Specializations...)
	return t
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
