package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
	"github.com/PratikDhanave/ai-eco-analytics/internal/models"
	"github.com/PratikDhanave/ai-eco-analytics/internal/recommend"
	"github.com/PratikDhanave/ai-eco-analytics/internal/users"
)

// RegisterUserRoutes registers profile management and recommendations.
func RegisterUserRoutes(r gin.IRouter, profiles *users.Store, rec *recommend.Engine, guard gin.HandlerFunc) {
	r.POST("/users", guard, func(c *gin.Context) {
		var p models.UserProfile
		if err := bindJSON(c, &p); err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, profiles.Upsert(p))
	})

	r.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"users": profiles.List()})
	})

	r.GET("/users/:id", func(c *gin.Context) {
		p, ok := profiles.Get(c.Param("id"))
		if !ok {
			apperrors.Respond(c, apperrors.NotFound("user %q not found", c.Param("id")))
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.GET("/recommendations", func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			apperrors.Respond(c, apperrors.Validation("user_id is required"))
			return
		}
		c.JSON(http.StatusOK, rec.ForUser(userID))
	})
}
