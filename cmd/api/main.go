package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollment-api/internal/server"
	"github.com/noah-isme/enrollment-api/internal/service"
	"github.com/noah-isme/enrollment-api/pkg/cache"
	"github.com/noah-isme/enrollment-api/pkg/config"
	"github.com/noah-isme/enrollment-api/pkg/database"
	"github.com/noah-isme/enrollment-api/pkg/logger"
	"github.com/noah-isme/enrollment-api/pkg/tracing"
)

// @title Enrollment API
// @version 1.0.0
// @description Courses, students and the enrollments between them
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, *cfg, os.Stdout, logr)
	if err != nil {
		logr.Fatal("failed to init tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logr.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err), zap.String("driver", cfg.Database.Driver))
	}
	defer db.Close() //nolint:errcheck

	if cfg.Database.AutoMigrate {
		applied, err := database.NewMigrator(db, logr).Up(ctx)
		if err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
		logr.Info("migrations applied", zap.Strings("versions", applied))
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}

	router := server.NewRouter(server.Dependencies{
		Config:  cfg,
		DB:      db,
		Redis:   redisClient,
		Logger:  logr,
		Metrics: service.NewMetricsService(),
	})

	srv := server.New(cfg.Port, router, cfg.ShutdownTimeout, logr)
	logr.Info("starting enrollment api", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
	if err := srv.Run(ctx); err != nil {
		logr.Error("server exited with error", zap.Error(err))
	}
}
