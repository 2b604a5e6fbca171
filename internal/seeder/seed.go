package seeder

import (
	"context"
	"fmt"

	"github.com/alexivanou/skycast/internal/model"
	"github.com/alexivanou/skycast/internal/repository"
	"go.uber.org/zap"
)

// Result summarizes one import run
type Result struct {
	Countries int
	Cities    int
}

// Seed imports countries then cities. Cities are streamed in batches so the
// full table never sits in memory.
func Seed(ctx context.Context, parser *Parser, repos *repository.Container, logger *zap.Logger) (*Result, error) {
	logger.Info("Parsing countries...")
	countries, err := parser.ParseCountries()
	if err != nil {
		return nil, fmt.Errorf("failed to parse countries: %w", err)
	}

	logger.Info("Inserting countries...", zap.Int("count", len(countries)))
	if err := repos.Country.BulkInsertCountries(ctx, countries); err != nil {
		return nil, fmt.Errorf("failed to insert countries: %w", err)
	}
	known := make(map[string]bool, len(countries))
	for _, c := range countries {
		known[c.Code] = true
	}

	admin1, err := parser.ParseAdmin1Names()
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin1 names: %w", err)
	}

	logger.Info("Importing cities (streaming mode)...")
	var total int
	err = parser.ProcessCities(admin1, func(batch []model.City) error {
		filtered := batch[:0]
		for _, c := range batch {
			if known[c.CountryCode] {
				filtered = append(filtered, c)
			}
		}
		if err := repos.City.BulkInsertCities(ctx, filtered); err != nil {
			return fmt.Errorf("failed to insert cities batch: %w", err)
		}
		total += len(filtered)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{Countries: len(countries), Cities: total}, nil
}
