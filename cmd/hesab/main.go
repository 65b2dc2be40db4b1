package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/diewo77/hesab/internal/cli"
	"github.com/diewo77/hesab/internal/config"
	"github.com/diewo77/hesab/internal/db"
	"github.com/diewo77/hesab/internal/logger"
)

func main() {
	// Load environment variables from a .env file when present.
	_ = godotenv.Load()

	cfg := config.Load()

	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	applog := logger.WithComponent("main")

	conn, err := db.Open(cfg.Database)
	if err != nil {
		applog.Fatal().Err(err).Msg("failed to open database")
	}

	if cfg.Seed {
		if err := db.Seed(conn); err != nil {
			applog.Fatal().Err(err).Msg("seeding failed")
		}
	}

	app := cli.New(cfg, conn)
	if err := app.Execute(); err != nil {
		applog.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
