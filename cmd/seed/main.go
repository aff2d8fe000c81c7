package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/seed"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.AppEnv)

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	if err := seed.Run(context.Background(), db, cfg.SeedAdminPassword); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("data seeded", "admin", "admin@bhasbi.com", "user", "user@bhasbi.com")
}
