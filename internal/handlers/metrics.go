package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/ai-eco-analytics/internal/analytics"
	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
)

// RegisterMetricRoutes registers the analytics read endpoints.
//
// GET /analytics/top-tools?top=N   (default 5)
// GET /analytics/categories
// GET /analytics/users/:id/eco
// GET /analytics/users/:id/tools
func RegisterMetricRoutes(r gin.IRouter, eng *analytics.Engine) {
	g := r.Group("/analytics")

	g.GET("/top-tools", func(c *gin.Context) {
		top, err := queryInt(c, "top", 5)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tools": eng.TopTools(c.Request.Context(), top)})
	})

	g.GET("/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": eng.CategoryBreakdown(c.Request.Context())})
	})

	g.GET("/users/:id/eco", func(c *gin.Context) {
		c.JSON(http.StatusOK, eng.UserEco(c.Request.Context(), c.Param("id")))
	})

	g.GET("/users/:id/tools", func(c *gin.Context) {
		c.JSON(http.StatusOK, eng.UserToolBreakdown(c.Request.Context(), c.Param("id")))
	})
}
