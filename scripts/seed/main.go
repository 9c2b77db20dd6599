package main

import (
	"context"
	"time"

	"github.com/blaisecz/meal-cycle/internal/config"
	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/blaisecz/meal-cycle/internal/repository"
	"github.com/blaisecz/meal-cycle/internal/seed"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.LogLevel}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}

	profile, err := config.LoadProfile(cfg)
	if err != nil {
		logger.Fatal("Failed to load cycle profile", "error", err)
	}

	ownerID, err := uuid.Parse(cfg.OwnerID)
	if err != nil {
		logger.Fatal("Invalid OWNER_ID", "error", err)
	}

	db, err := config.NewDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	// Auto-migrate
	if err := repository.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate", "error", err)
	}

	if err := seed.Run(context.Background(), repository.NewCycleRepository(db), ownerID, profile, time.Now().UTC()); err != nil {
		logger.Fatal("Seed failed", "error", err)
	}
}
