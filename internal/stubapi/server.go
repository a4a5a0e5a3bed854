// Package stubapi emulates the Catalog and Processing services over a shared
// SQLite product store so the consumer can run without the real upstreams.
package stubapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samvad-hq/catalog-consumer/internal/logger"
)

// NewCatalogRouter serves the catalog API under /api.
func NewCatalogRouter(store *ProductStore, log logger.Logger) *gin.Engine {
	log = ensureLogger(log)
	s := &catalogServer{store: store, log: log}

	router := newRouter("catalog", log)
	products := router.Group("/api/products")
	{
		products.GET("", s.handleList())
		products.POST("", s.handleCreate())
		products.GET("/:id", s.handleGet())
		products.PUT("/:id", s.handleUpdate())
		products.DELETE("/:id", s.handleDelete())
	}
	return router
}

// NewProcessingRouter serves the processing API under /api.
func NewProcessingRouter(store *ProductStore, log logger.Logger) *gin.Engine {
	log = ensureLogger(log)
	s := &processingServer{store: store, log: log, now: time.Now}

	router := newRouter("processing", log)
	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealth())
		api.GET("/products", s.handleList())
		api.POST("/products", s.handleCreate())
		api.GET("/products/stats", s.handleStats())
		api.GET("/country/:code/products", s.handleByCountry())
	}
	return router
}

func newRouter(service string, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(service, log))
	return router
}

// requestLogger logs one debug line per request through the shared logger.
func requestLogger(service string, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.DebugObj("stub request", "stub_request", map[string]any{
			"service":    service,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"request_id": c.GetHeader("X-Request-ID"),
			"latency_ms": time.Since(start).Milliseconds(),
		})
	}
}

func ensureLogger(log logger.Logger) logger.Logger {
	if log == nil {
		return logger.NopLogger{}
	}
	return log
}
