package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/skycast/internal/model"
	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

type pgCityRepository struct {
	db *sqlx.DB
}

func (r *pgCityRepository) SearchLocations(ctx context.Context, query string, limit int) ([]model.LocationSuggestion, error) {
	q := `
		SELECT id, country_code, name, admin1, population, lat, lon
		FROM cities
		WHERE LOWER(name) LIKE LOWER($1) || '%'
		ORDER BY population DESC, id
		LIMIT $2
	`
	var cities []model.City
	if err := r.db.SelectContext(ctx, &cities, q, escapeLike(query), limit); err != nil {
		return nil, fmt.Errorf("failed to search cities: %w", err)
	}
	return toSuggestions(cities), nil
}

func (r *pgCityRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	return chunks(cities, 1000, func(batch []model.City) error {
		_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO cities (id, country_code, name, admin1, population, lat, lon)
		VALUES (:id, :country_code, :name, :admin1, :population, :lat, :lon)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			admin1 = EXCLUDED.admin1,
			population = EXCLUDED.population,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon`,
			batch)
		return err
	})
}

func (r *pgCityRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM cities"); err != nil {
		return 0, err
	}
	return count, nil
}

type pgCountryRepository struct {
	db *sqlx.DB
}

func (r *pgCountryRepository) BulkInsertCountries(ctx context.Context, countries []model.Country) error {
	return chunks(countries, 500, func(batch []model.Country) error {
		_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO countries (code, name)
		VALUES (:code, :name)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name`,
			batch)
		return err
	})
}
