package service

import (
	"context"

	"github.com/alexivanou/skycast/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	SuggestLocations(ctx context.Context, req model.SuggestRequest) (*model.SuggestResponse, error)
	Dashboard(ctx context.Context, target model.WeatherTarget) (*model.DashboardView, error)
	DefaultTarget() (model.WeatherTarget, error)
	TargetFromText(text string) (model.WeatherTarget, error)
}
