package main

import (
	"context"
	"log"

	"github.com/alexivanou/skycast/internal/config"
	"github.com/alexivanou/skycast/internal/database"
	"github.com/alexivanou/skycast/internal/migrations"
	"github.com/alexivanou/skycast/internal/repository"
	"github.com/alexivanou/skycast/internal/seeder"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	// Ensure the schema exists; an in-memory database starts blank
	if err := migrations.Up(ctx, db, cfg.DB.Type); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Starting data import...",
		zap.String("data_dir", cfg.Seeder.DataDir),
		zap.Int("min_population", cfg.Seeder.MinPopulation),
		zap.Strings("countries", cfg.Seeder.Countries),
	)

	repos := repository.NewRepositories(db, cfg.DB.Type)
	parser := seeder.NewParser(cfg.Seeder.DataDir, cfg.Seeder)

	result, err := seeder.Seed(ctx, parser, repos, logger)
	if err != nil {
		logger.Fatal("Data import failed", zap.Error(err))
	}

	logger.Info("Data import completed successfully!",
		zap.Int("countries", result.Countries),
		zap.Int("cities", result.Cities),
	)
}
