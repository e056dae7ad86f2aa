package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jobtegrity/detector/internal/metrics"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, m *metrics.Metrics) {
	// Health and readiness probes
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := router.Group("/api")
	api.POST("/predict", handler.Predict) // POST /api/predict
	api.GET("/history", handler.History)  // GET /api/history
}
