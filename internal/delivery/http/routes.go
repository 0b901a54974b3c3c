package http

import (
	"github.com/gin-gonic/gin"
	"github.com/invoicebot/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Telegram webhook ingestion; the path is registered with the Bot API
	router.POST("/webhook", handler.Webhook)

	// Direct REST variant of the bot command
	router.GET("/generate-invoice", handler.GenerateInvoice)

	return router
}
