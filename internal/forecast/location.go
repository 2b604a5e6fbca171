package forecast

import (
	"errors"
	"strings"

	"github.com/alexivanou/skycast/internal/model"
)

// DefaultCountry is appended to locations typed without a country code
const DefaultCountry = "GB"

// ErrEmptyLocation is returned for blank search input
var ErrEmptyLocation = errors.New("location is empty")

// ParseLocation turns search box text into a weather target. Text without a
// comma gets ",<country>" appended; country falls back to DefaultCountry.
func ParseLocation(text, country string) (model.WeatherTarget, error) {
	location := strings.TrimSpace(text)
	if location == "" {
		return model.WeatherTarget{}, ErrEmptyLocation
	}
	if country == "" {
		country = DefaultCountry
	}
	if !strings.Contains(location, ",") {
		location = location + "," + country
	}
	return model.WeatherTarget{Location: location}, nil
}

// AtCoordinates targets a coordinate pair, used for selected suggestions
func AtCoordinates(lat, lon float64) model.WeatherTarget {
	return model.WeatherTarget{Coordinates: &model.Coordinate{Lat: lat, Lon: lon}}
}
