package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
	"github.com/PratikDhanave/ai-eco-analytics/internal/validate"
)

// bindJSON decodes the body into dst and validates it.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperrors.Validation("invalid JSON payload: %v", err)
	}
	return validate.Struct(dst)
}

// queryInt reads an integer query parameter, returning def when it is absent.
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Validation("%s must be an integer", key)
	}
	return n, nil
}
