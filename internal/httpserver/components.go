package httpserver

import (
	"github.com/PratikDhanave/ai-eco-analytics/internal/analytics"
	"github.com/PratikDhanave/ai-eco-analytics/internal/catalog"
	"github.com/PratikDhanave/ai-eco-analytics/internal/config"
	"github.com/PratikDhanave/ai-eco-analytics/internal/eco"
	"github.com/PratikDhanave/ai-eco-analytics/internal/genai"
	"github.com/PratikDhanave/ai-eco-analytics/internal/iot"
	"github.com/PratikDhanave/ai-eco-analytics/internal/mentor"
	"github.com/PratikDhanave/ai-eco-analytics/internal/recommend"
	"github.com/PratikDhanave/ai-eco-analytics/internal/store"
	"github.com/PratikDhanave/ai-eco-analytics/internal/users"
)

// Components is everything the router serves.
type Components struct {
	Store     *store.EventStore
	Catalog   *catalog.Catalog
	Analytics *analytics.Engine
	Simulator *eco.Simulator
	Users     *users.Store
	Recommend *recommend.Engine
	Iot       *iot.Registry
	Mentor    *mentor.Service
}

// NewComponents builds the domain components around an opened event store and a
// generation service.
func NewComponents(cfg config.Config, st *store.EventStore, gen genai.Generator) *Components {
	cat := catalog.Default()
	profiles := users.NewStore()
	eng := analytics.NewEngine(st, cat, cfg.AnalyticsScanLimit)

	return &Components{
		Store:     st,
		Catalog:   cat,
		Analytics: eng,
		Simulator: eco.NewSimulator(cat),
		Users:     profiles,
		Recommend: recommend.NewEngine(cat, profiles),
		Iot:       iot.NewRegistry(st, cfg.AnalyticsScanLimit),
		Mentor:    mentor.NewService(gen, cat, eng, st, mentor.Config{VisionModel: cfg.GeminiVisionModel}),
	}
}
