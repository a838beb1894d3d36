package server

import (
	"signer-core/internal/handler"
	"signer-core/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHTTPRouter builds the side server: health and Prometheus metrics.
func NewHTTPRouter() *gin.Engine {
	// 0. Register metrics
	monitor.Init()

	// 1. Engine without the request logger; zap owns the logs
	r := gin.New()
	r.Use(gin.Recovery())

	// 2. Middleware
	r.Use(monitor.PrometheusMiddleware())

	// 3. Routes
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
