package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
	"github.com/PratikDhanave/ai-eco-analytics/internal/store"
)

const (
	defaultEventLimit = 100
	maxEventLimit     = 1000
)

// RegisterEventRoutes registers the telemetry endpoints.
//
// POST /events
// - Server assigns id and timestamp; clients cannot set either
// - Always succeeds once the body is valid: a durable write failure only
//   switches the store to memory
//
// GET /events?limit=N
// - Most recent first; limit defaults to 100 and is capped at 1000
func RegisterEventRoutes(r gin.IRouter, st *store.EventStore, guard gin.HandlerFunc) {
	r.POST("/events", guard, func(c *gin.Context) {
		var req models.EventIngestRequest
		if err := bindJSON(c, &req); err != nil {
			apperrors.Respond(c, err)
			return
		}

		res := st.Record(c.Request.Context(), req.Event())
		c.JSON(http.StatusCreated, models.EventIngestResponse{Status: res.Status, EventID: res.EventID})
	})

	r.GET("/events", func(c *gin.Context) {
		limit, err := queryInt(c, "limit", defaultEventLimit)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		if limit > maxEventLimit {
			limit = maxEventLimit
		}

		events := st.List(c.Request.Context(), limit)
		c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
	})
}
