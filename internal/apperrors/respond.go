package apperrors

import (
	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/ai-eco-analytics/internal/logger"
)

// ErrorResponse is the JSON envelope for failed requests.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// Respond writes err as a JSON error envelope and aborts the gin chain.
// Server-side kinds (>= 500) are logged with the request id; internal details are not leaked.
func Respond(c *gin.Context, err error) {
	ae := From(err)
	if ae.HTTPCode >= 500 {
		logger.FromContext(c.Request.Context()).Error("request failed",
			"code", ae.Code, "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(ae.HTTPCode, ErrorResponse{Error: ae})
}
