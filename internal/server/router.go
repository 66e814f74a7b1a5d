// internal/server/router.go
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"template-forge/internal/common/logger"
)

// NewRouter builds the gin engine with middleware and routes wired.
func NewRouter(handler *Handler, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(log))

	api := router.Group("/api")
	{
		api.POST("/generate", handler.Generate)
		api.POST("/publish", handler.Publish)
		api.POST("/preview", handler.Preview)
	}

	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
