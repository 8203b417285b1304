package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/pedroShimpa/chessdb-api/config"
	"github.com/pedroShimpa/chessdb-api/internal/cache"
	"github.com/pedroShimpa/chessdb-api/internal/logger"
	"github.com/pedroShimpa/chessdb-api/internal/repositories"
	"github.com/pedroShimpa/chessdb-api/internal/routes"
	"github.com/pedroShimpa/chessdb-api/internal/services"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	envPath := flag.String("env", "", "directory holding .env files")
	flag.Parse()

	cfg, err := config.Load(*configFile, *envPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.Mode, cfg.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer appLog.Sync()

	db, err := config.OpenDB(cfg.Database, cfg.Debug)
	if err != nil {
		appLog.Fatal("database unavailable", "driver", cfg.Database.Driver, "error", err)
	}

	var store cache.Store = cache.Nop{}
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedis(context.Background(), cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		}, appLog)
		if err != nil {
			appLog.Warn("running without cache", "error", err)
		} else {
			defer redisCache.Close()
			store = redisCache
		}
	}

	repo := repositories.NewRepository(db, appLog)
	explorer := services.NewExplorerService(repo, store, appLog)

	if cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, explorer, appLog, cfg.CORS.AllowedOrigins)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	appLog.Info("listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		appLog.Fatal("server stopped", "error", err)
	}
}
