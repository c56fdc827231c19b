package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
	"github.com/PratikDhanave/ai-eco-analytics/internal/iot"
	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
)

// RegisterIotRoutes registers the device registry and the current-context view.
func RegisterIotRoutes(r gin.IRouter, reg *iot.Registry, guard gin.HandlerFunc) {
	r.POST("/iot/devices", guard, func(c *gin.Context) {
		var d models.Device
		if err := bindJSON(c, &d); err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, reg.UpsertDevice(d))
	})

	r.GET("/iot/devices", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"devices": reg.Devices()})
	})

	r.POST("/iot/events", guard, func(c *gin.Context) {
		var evt models.IotEvent
		if err := bindJSON(c, &evt); err != nil {
			apperrors.Respond(c, err)
			return
		}
		total := reg.RecordEvent(evt)
		c.JSON(http.StatusCreated, gin.H{"status": "ok", "total_events": total})
	})

	r.GET("/context", func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			apperrors.Respond(c, apperrors.Validation("user_id is required"))
			return
		}
		c.JSON(http.StatusOK, reg.CurrentContext(c.Request.Context(), userID))
	})
}
