package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
	"github.com/PratikDhanave/ai-eco-analytics/internal/catalog"
	"github.com/PratikDhanave/ai-eco-analytics/internal/eco"
)

// RegisterCatalogRoutes registers catalog listing and the eco simulator.
//
// GET /catalog
// GET /catalog/eco-ranking
// GET /eco/simulate?tool_id=ID&uses=N   (uses defaults to 10)
func RegisterCatalogRoutes(r gin.IRouter, cat *catalog.Catalog, sim *eco.Simulator) {
	r.GET("/catalog", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tools": cat.All()})
	})

	r.GET("/catalog/eco-ranking", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tools": sim.RankByEco()})
	})

	r.GET("/eco/simulate", func(c *gin.Context) {
		toolID := c.Query("tool_id")
		if toolID == "" {
			apperrors.Respond(c, apperrors.Validation("tool_id is required"))
			return
		}
		uses, err := queryInt(c, "uses", eco.DefaultUses)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		report, err := sim.SimulateImpact(toolID, uses)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	})
}
