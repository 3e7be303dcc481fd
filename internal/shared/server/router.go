package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Weboses/analyse.arsenio/internal/analysis"
	"github.com/Weboses/analyse.arsenio/internal/services/health"
	"github.com/Weboses/analyse.arsenio/internal/shared/config"
	"github.com/Weboses/analyse.arsenio/internal/shared/metrics"
	"github.com/Weboses/analyse.arsenio/internal/shared/server/middleware"
	"github.com/Weboses/analyse.arsenio/internal/shared/server/respond"
)

// RouterDeps carries the handlers and services the router mounts.
type RouterDeps struct {
	Config   config.Config
	Analysis *analysis.Handler
	Health   *health.Service
	Metrics  *metrics.Metrics
}

// rate limit groups for the public funnel endpoints
const (
	rateGroupStart   = "ANALYZE_START"
	rateGroupProcess = "ANALYZE_PROCESS"
	rateGroupStatus  = "ANALYZE_STATUS"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			rateGroupStart:   {Rate: 0.2, Burst: 3},
			rateGroupProcess: {Rate: 0.5, Burst: 5},
			rateGroupStatus:  {Rate: 5, Burst: 20},
		},
		GroupFor: rateGroupFor,
	}))

	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	if deps.Analysis != nil {
		deps.Analysis.Register(api)
	}
	if deps.Metrics != nil {
		r.GET("/metrics", deps.Metrics.Handler())
	}

	return r
}

func rateGroupFor(c *gin.Context) string {
	switch c.FullPath() {
	case "/api/analyze/start":
		return rateGroupStart
	case "/api/analyze/process":
		return rateGroupProcess
	case "/api/analyze/:id/status":
		return rateGroupStatus
	default:
		return ""
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
