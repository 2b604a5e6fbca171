package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Provider  ProviderConfig
	Geocoder  GeocoderConfig
	Dashboard DashboardConfig
	DB        DBConfig
	Seeder    SeederConfig
	Log       LogConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// GeocoderSource selects where suggestions come from
type GeocoderSource string

const (
	GeocoderRemote GeocoderSource = "remote"
	GeocoderLocal  GeocoderSource = "local"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// ProviderConfig describes the weather and geocoding collaborator
type ProviderConfig struct {
	BaseURL string
	Timeout time.Duration
}

// GeocoderConfig controls the suggestion backend
type GeocoderConfig struct {
	Source GeocoderSource
	Limit  int
}

// DashboardConfig holds the interaction settings of the search box and
// the weather view
type DashboardConfig struct {
	DefaultLocation string
	DefaultCountry  string
	Debounce        time.Duration
	MinQueryLength  int
	ForecastDays    int
	Timezone        string
}

// Location resolves the configured timezone, falling back to local time.
func (c DashboardConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DBConfig holds gazetteer database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		if c.Name != "" && c.Name != "skycast" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// SeederConfig holds settings for gazetteer import
type SeederConfig struct {
	DataDir       string
	BatchSize     int
	MinPopulation int
	Countries     []string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string
	Development bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	source := GeocoderSource(getEnv("GEOCODER_SOURCE", "remote"))
	if source != GeocoderRemote && source != GeocoderLocal {
		source = GeocoderRemote
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
		},
		Provider: ProviderConfig{
			BaseURL: strings.TrimRight(getEnv("PROVIDER_BASE_URL", "https://api.gg2.io"), "/"),
			Timeout: getEnvAsDuration("PROVIDER_TIMEOUT", 10*time.Second),
		},
		Geocoder: GeocoderConfig{
			Source: source,
			Limit:  getEnvAsInt("GEOCODER_LIMIT", 10),
		},
		Dashboard: DashboardConfig{
			DefaultLocation: getEnv("DEFAULT_LOCATION", "London"),
			DefaultCountry:  strings.ToUpper(getEnv("DEFAULT_COUNTRY", "GB")),
			Debounce:        getEnvAsDuration("SUGGEST_DEBOUNCE", 300*time.Millisecond),
			MinQueryLength:  getEnvAsInt("SUGGEST_MIN_LENGTH", 4),
			ForecastDays:    getEnvAsInt("FORECAST_DAYS", 5),
			Timezone:        getEnv("DASHBOARD_TZ", ""),
		},
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "skycast"),
			Password: getEnv("DB_PASSWORD", "skycast_password"),
			Name:     getEnv("DB_NAME", "skycast"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Seeder: SeederConfig{
			DataDir:       getEnv("SEEDER_DATA_DIR", "data"),
			BatchSize:     getEnvAsInt("SEEDER_BATCH_SIZE", 1000),
			MinPopulation: getEnvAsInt("SEEDER_MIN_POPULATION", 15000),
			Countries:     getEnvAsSlice("SEEDER_COUNTRIES"),
		},
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnv("APP_ENV", "production") == "development",
		},
	}

	if config.Dashboard.MinQueryLength < 1 {
		return nil, fmt.Errorf("SUGGEST_MIN_LENGTH must be positive, got %d", config.Dashboard.MinQueryLength)
	}
	if config.Dashboard.ForecastDays < 1 {
		return nil, fmt.Errorf("FORECAST_DAYS must be positive, got %d", config.Dashboard.ForecastDays)
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
