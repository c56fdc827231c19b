package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
)

// clientCtxKey is the Gin context key holding the authenticated client id.
const clientCtxKey = "client_id"

const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware maps X-API-Key to a client id. With no keys configured the
// service is open and every request passes through without a client id.
func APIKeyMiddleware(keys map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(keys) == 0 {
			c.Next()
			return
		}
		apiKey := strings.TrimSpace(c.GetHeader(APIKeyHeader))
		clientID, ok := keys[apiKey]
		if !ok || apiKey == "" {
			apperrors.Respond(c, apperrors.Unauthorized("missing or unknown API key"))
			return
		}
		c.Set(clientCtxKey, clientID)
		c.Next()
	}
}

// ClientID returns the authenticated client id, or "" on an open service.
func ClientID(c *gin.Context) string {
	v, _ := c.Get(clientCtxKey)
	s, _ := v.(string)
	return s
}
