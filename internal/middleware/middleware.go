package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/PratikDhanave/ai-eco-analytics/internal/apperrors"
	"github.com/PratikDhanave/ai-eco-analytics/internal/auth"
	"github.com/PratikDhanave/ai-eco-analytics/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses an incoming X-Request-ID or generates one, and attaches it to
// the request context so every log line of the request carries it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log := logger.FromContext(c.Request.Context())
		fields := []any{
			slog.String("client_ip", c.ClientIP()),
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("duration", duration),
			slog.Int("size_bytes", c.Writer.Size()),
		}
		// Set by the API key middleware further down the chain.
		if clientID := auth.ClientID(c); clientID != "" {
			fields = append(fields, slog.String("client_id", clientID))
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("http server error", fields...)
		case status >= 400:
			log.Warn("http client error", fields...)
		default:
			log.Info("http request", fields...)
		}
	}
}

// RateLimit rejects requests beyond perSecond (with the given burst) with RATE_LIMITED.
// The limiter is shared by every route the middleware is attached to.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			apperrors.Respond(c, apperrors.RateLimited("too many generation requests, retry shortly"))
			return
		}
		c.Next()
	}
}
