package main

import (
	"fmt"
	"os"

	"imbalance-report/internal/analysis"
	"imbalance-report/internal/api/handlers"
	"imbalance-report/internal/api/middleware"
	"imbalance-report/internal/data"
	"imbalance-report/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	if err := logging.Setup(logLevel, "console"); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	client := data.NewElexonClient(os.Getenv("ELEXON_BASE_URL"))
	reportHandler := handlers.NewReportHandler(client, analysis.DefaultTopK, true)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/report", reportHandler.GetReport)
		api.GET("/report/charts.xlsx", reportHandler.GetChartsXLSX)
		api.GET("/report/summary.pdf", reportHandler.GetSummaryPDF)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("addr", addr).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
