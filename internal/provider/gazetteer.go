package provider

import (
	"context"
	"fmt"

	"github.com/alexivanou/skycast/internal/model"
)

// LocationSearcher is the gazetteer query the local geocoder needs
type LocationSearcher interface {
	SearchLocations(ctx context.Context, query string, limit int) ([]model.LocationSuggestion, error)
}

// GazetteerGeocoder answers geocode lookups from the seeded city table
type GazetteerGeocoder struct {
	searcher LocationSearcher
	limit    int
}

// NewGazetteerGeocoder creates a geocoder returning at most limit candidates
func NewGazetteerGeocoder(searcher LocationSearcher, limit int) *GazetteerGeocoder {
	if limit <= 0 {
		limit = 10
	}
	return &GazetteerGeocoder{searcher: searcher, limit: limit}
}

// Name returns the geocoder name
func (g *GazetteerGeocoder) Name() string {
	return "gazetteer"
}

// Geocode searches the gazetteer by name prefix
func (g *GazetteerGeocoder) Geocode(ctx context.Context, query string) ([]model.LocationSuggestion, error) {
	results, err := g.searcher.SearchLocations(ctx, query, g.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search gazetteer: %w", err)
	}
	return results, nil
}

var _ Geocoder = (*GazetteerGeocoder)(nil)
