package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexivanou/skycast/internal/config"
	"github.com/alexivanou/skycast/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// pgUndefinedTable is the postgres SQLSTATE for a missing relation.
const pgUndefinedTable = "42P01"

// CityRepository defines gazetteer operations for cities
type CityRepository interface {
	SearchLocations(ctx context.Context, query string, limit int) ([]model.LocationSuggestion, error)
	BulkInsertCities(ctx context.Context, cities []model.City) error
	Count(ctx context.Context) (int, error)
}

// CountryRepository defines operations for countries
type CountryRepository interface {
	BulkInsertCountries(ctx context.Context, countries []model.Country) error
}

// Container holds all repositories
type Container struct {
	City    CityRepository
	Country CountryRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{
			City:    &pgCityRepository{db: db},
			Country: &pgCountryRepository{db: db},
		}
	}

	// Default to SQLite
	return &Container{
		City:    &sqliteCityRepository{db: db},
		Country: &sqliteCountryRepository{db: db},
	}
}

// IsDatabaseEmpty reports whether the gazetteer has no cities yet. A missing
// table counts as empty.
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM cities"); err != nil {
		if isMissingTable(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to count cities: %w", err)
	}
	return count == 0, nil
}

func isMissingTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}
	return strings.Contains(err.Error(), "no such table")
}

func toSuggestions(cities []model.City) []model.LocationSuggestion {
	results := make([]model.LocationSuggestion, 0, len(cities))
	for _, c := range cities {
		results = append(results, c.Suggestion())
	}
	return results
}

// escapeLike escapes LIKE wildcards in user input; '\' is the escape char.
func escapeLike(s string) string {
	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '%' || ch == '_' || ch == '\\' {
			r = append(r, '\\')
		}
		r = append(r, ch)
	}
	return string(r)
}

func chunks[T any](items []T, size int, fn func([]T) error) error {
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		if err := fn(items[i:end]); err != nil {
			return err
		}
	}
	return nil
}
