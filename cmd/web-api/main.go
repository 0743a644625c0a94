package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/api"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/assets"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/config"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/logger"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/redis"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/repository"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/service"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/store"
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

	logger.Info("Starting Hotel Report Web API")

	// Local mode opens the database in-process
	if cfg.Store.Mode == "" || cfg.Store.Mode == store.ModeLocal {
		if err := repository.InitDB(cfg.DatabaseService.Driver, cfg.DatabaseService.DatabaseURL); err != nil {
			zap.L().Fatal("Failed to initialize database",
				zap.Error(err))
		}
		defer repository.Close()
	}

	st, err := store.FromConfig(cfg.Store)
	if err != nil {
		zap.L().Fatal("Failed to create store", zap.Error(err))
	}

	// Initialize Redis (optional)
	var shared assets.SharedStore
	if cfg.RedisService.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redis.Init(ctx, cfg); err != nil {
			zap.L().Warn("Redis initialization failed, asset cache will be per-process",
				zap.Error(err))
		} else {
			shared = redis.AssetStore{Prefix: "hotel:"}
			defer redis.Close()
		}
		cancel()
	}

	svc := service.NewFromConfig(cfg, st, shared)

	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Create router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	// Setup routes
	api.SetupRouter(r, svc, cfg.JWT.SecretKey)

	// Print startup info
	rule := strings.Repeat("=", 61)
	fmt.Println(rule)
	fmt.Println("🌐 Starting Web API Service")
	fmt.Println(rule)
	fmt.Printf("📊 Service: Hotel Report API (%s)\n", cfg.Report.HotelName)
	fmt.Printf("🌐 URL: http://%s\n", cfg.GetWebServiceAddr())
	fmt.Printf("💾 Store: %s\n", cfg.Store.Mode)
	fmt.Printf("✉️  E-mail sharing: %t\n", cfg.SMTPConfigured())
	fmt.Println(rule)

	// Start server
	if err := r.Run(cfg.GetWebServiceAddr()); err != nil {
		zap.L().Fatal("Failed to start server",
			zap.Error(err))
	}
}
