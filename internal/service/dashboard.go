package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexivanou/skycast/internal/forecast"
	"github.com/alexivanou/skycast/internal/model"
	"github.com/alexivanou/skycast/internal/suggest"
	"go.uber.org/zap"
)

const defaultLimit = 10

// SuggestLocations runs one geocode lookup and returns the deduplicated,
// ranked candidates. Short queries never reach the geocoder. Lookup failures
// are logged and yield an empty list.
func (s *Service) SuggestLocations(ctx context.Context, req model.SuggestRequest) (*model.SuggestResponse, error) {
	empty := &model.SuggestResponse{Results: []model.LocationSuggestion{}}

	query := strings.TrimSpace(req.Query)
	if utf8.RuneCountInString(query) < s.minQueryLength() {
		return empty, nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	locations, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		s.logger.Warn("Failed to fetch location suggestions",
			zap.String("query", query),
			zap.String("geocoder", s.geocoder.Name()),
			zap.Error(err),
		)
		return empty, nil
	}

	results := suggest.Prepare(locations)
	if len(results) > limit {
		results = results[:limit]
	}
	return &model.SuggestResponse{Results: results}, nil
}

// Dashboard fetches the forecast once and builds the full view. Any failure
// is returned whole; there is no partial view.
func (s *Service) Dashboard(ctx context.Context, target model.WeatherTarget) (*model.DashboardView, error) {
	resp, err := s.forecasts.FetchForecast(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	view, err := s.builder.Build(resp, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return view, nil
}

// DefaultTarget is the location shown on first load
func (s *Service) DefaultTarget() (model.WeatherTarget, error) {
	return s.TargetFromText(s.cfg.DefaultLocation)
}

// TargetFromText applies the default country rule to typed text
func (s *Service) TargetFromText(text string) (model.WeatherTarget, error) {
	return forecast.ParseLocation(text, s.cfg.DefaultCountry)
}

func (s *Service) minQueryLength() int {
	if s.cfg.MinQueryLength <= 0 {
		return suggest.DefaultMinQueryLength
	}
	return s.cfg.MinQueryLength
}
