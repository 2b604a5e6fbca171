package repository

import (
	"context"
	"fmt"

	"github.com/alexivanou/skycast/internal/model"
	"github.com/jmoiron/sqlx"
)

type sqliteCityRepository struct {
	db *sqlx.DB
}

func (r *sqliteCityRepository) SearchLocations(ctx context.Context, query string, limit int) ([]model.LocationSuggestion, error) {
	q := `
		SELECT id, country_code, name, admin1, population, lat, lon
		FROM cities
		WHERE LOWER(name) LIKE LOWER(?) || '%' ESCAPE '\'
		ORDER BY population DESC, id
		LIMIT ?
	`
	var cities []model.City
	if err := r.db.SelectContext(ctx, &cities, q, escapeLike(query), limit); err != nil {
		return nil, fmt.Errorf("failed to search cities: %w", err)
	}
	return toSuggestions(cities), nil
}

func (r *sqliteCityRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	// 100 rows * 7 params stays well below the SQLite variable limit
	return chunks(cities, 100, func(batch []model.City) error {
		_, err := r.db.NamedExecContext(ctx, `
		INSERT OR REPLACE INTO cities (id, country_code, name, admin1, population, lat, lon)
		VALUES (:id, :country_code, :name, :admin1, :population, :lat, :lon)`,
			batch)
		return err
	})
}

func (r *sqliteCityRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM cities"); err != nil {
		return 0, err
	}
	return count, nil
}

type sqliteCountryRepository struct {
	db *sqlx.DB
}

func (r *sqliteCountryRepository) BulkInsertCountries(ctx context.Context, countries []model.Country) error {
	return chunks(countries, 200, func(batch []model.Country) error {
		_, err := r.db.NamedExecContext(ctx, `
		INSERT OR REPLACE INTO countries (code, name)
		VALUES (:code, :name)`,
			batch)
		return err
	})
}
