package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"relocation_quest/internal/session"
)

type RouterConfig struct {
	Logger   *slog.Logger
	Handler  *Handler
	Sessions session.Provider
	Registry *prometheus.Registry
	Debug    bool
}

func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug
	e.Validator = NewValidator()

	metrics := NewMetrics(cfg.Registry)
	sessions := NewSessionMiddleware(cfg.Sessions, metrics, cfg.Logger)
	h := cfg.Handler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(cfg.Logger))
	e.Use(metrics.Middleware())

	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	e.GET("/sitemap.xml", h.Sitemap)

	api := e.Group("/api")
	api.GET("/articles", h.ListArticles)
	api.GET("/articles/:slug", h.GetArticle)
	api.GET("/destinations", h.ListDestinations)
	api.GET("/destinations/:slug", h.GetDestination)
	api.POST("/search", h.Search)
	api.GET("/user/recent-topics", h.RecentTopics)

	profile := api.Group("/user-profile", sessions.RequireSession())
	profile.GET("", h.GetProfile)
	profile.POST("", h.UpdateProfile)

	return e
}
