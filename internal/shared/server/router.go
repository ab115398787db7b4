package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"verdicto-api/internal/analysis"
	"verdicto-api/internal/laws"
	"verdicto-api/internal/services/health"
	"verdicto-api/internal/shared/config"
	"verdicto-api/internal/shared/metrics"
	"verdicto-api/internal/shared/server/middleware"
	"verdicto-api/internal/shared/server/respond"
)

const analyzeRateLimitGroup = "ANALYZE"

// RouterDeps are the handlers the router mounts.
type RouterDeps struct {
	Health   *health.Service
	Laws     *laws.Handler
	Analysis *analysis.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, deps RouterDeps) *gin.Engine {
	if !cfg.IsDevLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		metrics.Middleware(),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil, "")
	}
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	r.GET("/ready", func(c *gin.Context) {
		ready := healthSvc.Ready(c.Request.Context())
		status := http.StatusOK
		if !ready.Ready {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, ready)
	})
	r.GET("/metrics", metrics.Handler())

	if deps.Laws != nil {
		deps.Laws.RegisterRoutes(r)
	}
	if deps.Analysis != nil {
		limit := middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: analyzeRateLimitGroup,
			Rules: map[string]middleware.RateLimitRule{
				analyzeRateLimitGroup: {Rate: cfg.AnalyzeRate, Burst: cfg.AnalyzeBurst},
			},
		})
		deps.Analysis.RegisterRoutes(r, limit)
	}

	return r
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
