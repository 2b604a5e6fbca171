package provider

import (
	"context"
	"errors"

	"github.com/alexivanou/skycast/internal/model"
)

// ErrStatus is returned when a collaborator answers with a non-200 status
var ErrStatus = errors.New("unexpected status")

// Geocoder resolves free text to location candidates
type Geocoder interface {
	// Geocode returns the raw candidates for a query, in provider order
	Geocode(ctx context.Context, query string) ([]model.LocationSuggestion, error)

	// Name returns the geocoder's name
	Name() string
}

// ForecastSource fetches current conditions plus the 3-hourly forecast
type ForecastSource interface {
	FetchForecast(ctx context.Context, target model.WeatherTarget) (*model.ForecastResponse, error)

	// Name returns the source's name
	Name() string
}
