package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/pinterest-downloader/internal/config"
	"github.com/ignatzorin/pinterest-downloader/internal/http/handlers"
	"github.com/ignatzorin/pinterest-downloader/internal/http/middleware"
	"github.com/ignatzorin/pinterest-downloader/internal/metrics"
	"github.com/ignatzorin/pinterest-downloader/internal/web"
)

// Маршруты, которые перечисляются в ответе на неизвестный путь.
var availableEndpoints = []string{
	"GET /api/download?url=<pinterest_url>",
	"GET /api/health",
	"GET /api/rules",
	"GET /health",
}

func SetupRouter(
	cfg *config.Config,
	downloadHandler *handlers.DownloadHandler,
	healthHandler *handlers.HealthHandler,
	rulesHandler *handlers.RulesHandler,
	m *metrics.Metrics,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	if m != nil {
		r.Use(middleware.MetricsMiddleware(m))
	}
	r.Use(middleware.Recovery())
	// Детали ошибок отдаём клиенту только вне production.
	r.Use(middleware.ErrorHandler(!cfg.IsProduction()))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/", web.Index)
	r.StaticFS("/static", web.Static())
	r.GET("/health", healthHandler.Health)

	if m != nil && cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/rules", rulesHandler.Rules)
		api.GET("/download",
			middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod),
			downloadHandler.Download,
		)
	}

	r.NoRoute(handlers.NotFound(availableEndpoints))

	return r
}
