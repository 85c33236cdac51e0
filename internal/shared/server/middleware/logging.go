package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"methodology-advisor/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	ConsultationIDKey = "consultationId"
	MatchCountKey     = "matchCount"
	FiredRulesKey     = "firedRules"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if v, ok := c.Get(ConsultationIDKey); ok {
			fields["consultation_id"] = v
		}
		if v, ok := c.Get(MatchCountKey); ok {
			fields["match_count"] = v
		}
		if v, ok := c.Get(FiredRulesKey); ok {
			fields["fired_rules"] = v
		}
		telemetry.Info("request.complete", fields)
	}
}
