package handler

import (
	"signer-core/internal/handler/response"
	"signer-core/pkg/config"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness of the device process on the side server.
func HealthCheck(c *gin.Context) {
	response.JSONSuccess(c, gin.H{
		"status":  "UP",
		"version": config.Global.App.Version,
		"service": config.Global.App.Name,
	})
}
