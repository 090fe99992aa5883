package api

import (
	"paymux/pkg/logger"
	"paymux/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// NewGinEngine builds the engine with the shared middleware chain.
// Correlation runs first so every later middleware and handler logs
// with the request ID already in context.
func NewGinEngine(l *logger.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(logger.CorrelationMiddleware(), metrics.GinMiddleware(), l.GinBodyLogger(), gin.Recovery())
	return engine
}
