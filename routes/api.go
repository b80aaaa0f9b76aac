package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cn-address-parser/app/controllers"
)

// SetupAPIRoutes thiết lập các route parse (có xác thực).
func SetupAPIRoutes(router *gin.Engine, parseController *controllers.ParseController, authCfg AuthConfig, logger *zap.Logger) {
	api := router.Group("/", AuthMiddleware(authCfg, logger))
	{
		api.POST("/parse", parseController.ParseAddress)
		api.POST("/parse/batch", parseController.BatchParse)
		api.GET("/stats/cache", parseController.CacheStats)
	}
}

// SetupHealthRoutes thiết lập health check routes (không xác thực).
func SetupHealthRoutes(router *gin.Engine, parseController *controllers.ParseController) {
	router.GET("/health", parseController.HealthCheck)
	router.GET("/ready", parseController.HealthCheck)
	router.GET("/live", parseController.HealthCheck)
}

// SetupMetricsRoutes thiết lập endpoint Prometheus.
func SetupMetricsRoutes(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// SetupAllRoutes thiết lập middleware chung và toàn bộ routes.
func SetupAllRoutes(router *gin.Engine, parseController *controllers.ParseController, authCfg AuthConfig, logger *zap.Logger) {
	router.Use(RequestIDMiddleware())
	router.Use(MetricsMiddleware())

	SetupWebRoutes(router)
	SetupHealthRoutes(router, parseController)
	SetupMetricsRoutes(router)
	SetupAPIRoutes(router, parseController, authCfg, logger)
}
