package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsletter-press/internal/service"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	editionHandler := NewEditionHandler(services, log)
	adminHandler := NewAdminHandler(services, log)
	exportHandler := NewExportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck(services))

	// API v1
	v1 := router.Group("/v1")
	{
		// Reader endpoints
		editions := v1.Group("/editions")
		{
			editions.GET("", editionHandler.ListEditions)
			editions.GET("/latest", editionHandler.LatestEdition)
			editions.GET("/:id", editionHandler.GetEdition)
			editions.GET("/:id/export", exportHandler.ExportMarkdown)
		}
		v1.GET("/exports", exportHandler.ExportCSV)

		// Admin endpoints
		admin := v1.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)
			admin.POST("/logout", requireAdmin(services.Auth), adminHandler.Logout)
			admin.POST("/refresh", requireAdmin(services.Auth), adminHandler.Refresh)
		}
		v1.POST("/editions", requireAdmin(services.Auth), adminHandler.CreateEdition)
	}

	return router
}

// healthCheck returns the health status and the active backing store
func healthCheck(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"source":    services.Edition.Source(),
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "newsletter-press",
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// requireAdmin rejects requests without a live admin session token
func requireAdmin(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Enabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin access is not configured"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !auth.Valid(token) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin session required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
