package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polkiloo/bistro/internal/config"
	"github.com/polkiloo/bistro/internal/server/http/dto"
	"github.com/polkiloo/bistro/internal/server/http/handlers"
	"github.com/polkiloo/bistro/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.RestaurantFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics())
	engine.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	engine.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	engine.Use(middleware.Timeout(cfg.RequestTimeout))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Response{Success: false, Message: "Route not found"})
	})

	menuHandler := handlers.NewMenuHandler(facade, logger)
	orderHandler := handlers.NewOrderHandler(facade, logger)
	statsHandler := handlers.NewStatsHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	menu := api.Group("/menu")
	menu.GET("", menuHandler.List)
	menu.GET("/search", menuHandler.Search)
	menu.GET("/:id", menuHandler.Get)
	menu.POST("", menuHandler.Create)
	menu.PUT("/:id", menuHandler.Update)
	menu.DELETE("/:id", menuHandler.Delete)
	menu.PATCH("/:id/availability", menuHandler.ToggleAvailability)

	orders := api.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.GET("/stats", statsHandler.Stats)
	orders.GET("/search", orderHandler.Search)
	orders.GET("/analytics/top-sellers", statsHandler.TopSellers)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("", orderHandler.Create)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus)

	return engine
}
