package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/skycast/internal/api"
	"github.com/alexivanou/skycast/internal/config"
	"github.com/alexivanou/skycast/internal/database"
	applog "github.com/alexivanou/skycast/internal/logger"
	"github.com/alexivanou/skycast/internal/migrations"
	"github.com/alexivanou/skycast/internal/provider"
	"github.com/alexivanou/skycast/internal/repository"
	"github.com/alexivanou/skycast/internal/seeder"
	"github.com/alexivanou/skycast/internal/service"
	"github.com/alexivanou/skycast/internal/stats"
	"github.com/alexivanou/skycast/internal/view"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := applog.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	client := provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.Timeout)

	var (
		geocoder  provider.Geocoder = client
		gazetteer provider.Geocoder
		db        *sqlx.DB
	)

	if cfg.Geocoder.Source == config.GeocoderLocal {
		db, err = openGazetteer(context.Background(), cfg, logger)
		if err != nil {
			logger.Fatal("Failed to prepare gazetteer", zap.Error(err))
		}
		defer db.Close()

		repos := repository.NewRepositories(db, cfg.DB.Type)
		local := provider.NewGazetteerGeocoder(repos.City, cfg.Geocoder.Limit)
		geocoder, gazetteer = local, local
	}
	logger.Info("Using geocoder", zap.String("geocoder", geocoder.Name()), zap.String("provider", cfg.Provider.BaseURL))

	svc := service.NewService(geocoder, client, cfg.Dashboard, logger)

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Fatal("Failed to load templates", zap.Error(err))
	}

	statsCollector := stats.NewCollector(db, cfg.DB, geocoder.Name())
	router := api.NewRouter(svc, renderer, statsCollector, gazetteer, cfg.Dashboard, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Provider.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// openGazetteer connects, migrates and, when the city table is empty,
// seeds the local geocoder database.
func openGazetteer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	if err := migrations.Up(ctx, db, cfg.DB.Type); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	isEmpty, err := repository.IsDatabaseEmpty(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if !isEmpty {
		return db, nil
	}

	logger.Info("Database is empty, auto-seeding data...")
	repos := repository.NewRepositories(db, cfg.DB.Type)
	parser := seeder.NewParser(cfg.Seeder.DataDir, cfg.Seeder)
	result, err := seeder.Seed(ctx, parser, repos, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to auto-seed database: %w", err)
	}
	logger.Info("Database seeded successfully",
		zap.Int("countries", result.Countries),
		zap.Int("cities", result.Cities),
	)
	return db, nil
}
