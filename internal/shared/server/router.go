package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"methodology-advisor/internal/consultations"
	"methodology-advisor/internal/services/health"
	"methodology-advisor/internal/shared/config"
	"methodology-advisor/internal/shared/metrics"
	"methodology-advisor/internal/shared/server/middleware"
	"methodology-advisor/internal/shared/server/respond"
	"methodology-advisor/internal/shared/telemetry"
	"methodology-advisor/internal/web"
)

const (
	rateLimitGroupRead  = "READ"
	rateLimitGroupInfer = "INFER"
)

// RouterDeps holds the handlers wired into the router.
type RouterDeps struct {
	Config              config.Config
	Health              *health.Service
	ConsultationHandler *consultations.Handler
	RateLimiter         *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	cfg := deps.Config
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(cfg, deps.RateLimiter)),
	)

	if err := web.RegisterRoutes(r); err != nil {
		telemetry.Error("router.web_disabled", map[string]any{"error": err})
	}
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		st := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, st)
	})

	if deps.ConsultationHandler != nil {
		deps.ConsultationHandler.RegisterRoutes(api)
		deps.ConsultationHandler.RegisterLegacyRoutes(r)
	}

	return r
}

// rateLimitConfig limits inference requests at the configured rate and reads
// at four times that rate. A non-positive rate disables limiting.
func rateLimitConfig(cfg config.Config, limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	rules := map[string]middleware.RateLimitRule{}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		rules[rateLimitGroupInfer] = middleware.RateLimitRule{Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst}
		rules[rateLimitGroupRead] = middleware.RateLimitRule{Rate: cfg.RateLimitRPS * 4, Burst: cfg.RateLimitBurst * 4}
	}
	return middleware.RateLimitConfig{
		Rules:        rules,
		DefaultGroup: rateLimitGroupRead,
		Limiter:      limiter,
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost {
				return rateLimitGroupInfer
			}
			return rateLimitGroupRead
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
