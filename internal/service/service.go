package service

import (
	"time"

	"github.com/alexivanou/skycast/internal/config"
	"github.com/alexivanou/skycast/internal/forecast"
	"github.com/alexivanou/skycast/internal/provider"
	"go.uber.org/zap"
)

// Service provides the dashboard's suggestion and weather flows
type Service struct {
	geocoder  provider.Geocoder
	forecasts provider.ForecastSource
	builder   *forecast.Builder
	cfg       config.DashboardConfig
	now       func() time.Time
	logger    *zap.Logger
}

// NewService creates a new service instance
func NewService(
	geocoder provider.Geocoder,
	forecasts provider.ForecastSource,
	cfg config.DashboardConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		geocoder:  geocoder,
		forecasts: forecasts,
		builder:   forecast.NewBuilder(cfg.ForecastDays, cfg.Location()),
		cfg:       cfg,
		now:       time.Now,
		logger:    logger,
	}
}
