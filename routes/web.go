package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cn-address-parser/app/controllers"
)

// SetupWebRoutes thiết lập trang giới thiệu service.
func SetupWebRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "CN Address Parser",
			"version": controllers.ServiceVersion,
			"endpoints": map[string]string{
				"parse":   "POST /parse",
				"batch":   "POST /parse/batch",
				"health":  "GET /health",
				"metrics": "GET /metrics",
			},
		})
	})
}
