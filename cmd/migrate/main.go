package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/noah-isme/enrollment-api/pkg/config"
	"github.com/noah-isme/enrollment-api/pkg/database"
	"github.com/noah-isme/enrollment-api/pkg/logger"
)

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

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	applied, err := database.NewMigrator(db, logr).Up(context.Background())
	if err != nil {
		logr.Fatal("migration failed", zap.Error(err))
	}
	if len(applied) == 0 {
		logr.Info("database already up to date")
		return
	}
	logr.Info("migrations applied", zap.Strings("versions", applied))
}
