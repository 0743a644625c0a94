package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/api"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/config"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/logger"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/repository"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Hotel Database Service")

	// Initialize database
	if err := repository.InitDB(cfg.DatabaseService.Driver, cfg.DatabaseService.DatabaseURL); err != nil {
		zap.L().Fatal("Failed to initialize database",
			zap.Error(err))
	}
	defer repository.Close()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	// Root endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Hotel Database Service is running",
			"version": "1.0.0",
		})
	})

	// Setup table API routes
	api.SetupDatabaseRoutes(r)

	// Print startup info
	rule := strings.Repeat("=", 61)
	fmt.Println(rule)
	fmt.Println("🚀 Starting Database Service")
	fmt.Println(rule)
	fmt.Printf("📊 Service: Hotel Table API\n")
	fmt.Printf("🌐 URL: http://%s\n", cfg.GetDatabaseServiceAddr())
	fmt.Printf("💾 Database: %s (%s)\n", cfg.DatabaseService.DatabaseURL, cfg.DatabaseService.Driver)
	fmt.Println(rule)

	// Start HTTP server
	if err := r.Run(cfg.GetDatabaseServiceAddr()); err != nil {
		zap.L().Fatal("Failed to start server",
			zap.Error(err))
	}
}
