package seeder

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexivanou/skycast/internal/config"
	"github.com/alexivanou/skycast/internal/model"
)

const (
	countriesFile = "countryInfo.txt"
	admin1File    = "admin1CodesASCII.txt"
	citiesFile    = "cities1000.txt"
	citiesZip     = "cities1000.zip"
)

// Parser parses GeoNames data files
type Parser struct {
	dataDir       string
	batchSize     int
	minPopulation int
	countries     map[string]bool
}

// NewParser creates a new parser instance with config
func NewParser(dataDir string, seederCfg config.SeederConfig) *Parser {
	countries := make(map[string]bool)
	for _, code := range seederCfg.Countries {
		countries[strings.ToUpper(code)] = true
	}

	return &Parser{
		dataDir:       dataDir,
		batchSize:     seederCfg.BatchSize,
		minPopulation: seederCfg.MinPopulation,
		countries:     countries,
	}
}

// ParseCountries parses countryInfo.txt
func (p *Parser) ParseCountries() ([]model.Country, error) {
	file, err := os.Open(filepath.Join(p.dataDir, countriesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", countriesFile, err)
	}
	defer file.Close()

	var countries []model.Country
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := scanner.Text()

		// Skip comments
		if strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 5 {
			continue
		}

		code := parts[0]
		name := parts[4]
		if code == "" || name == "" || !p.allowed(code) {
			continue
		}

		countries = append(countries, model.Country{Code: code, Name: name})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", countriesFile, err)
	}

	return countries, nil
}

// ParseAdmin1Names reads admin1CodesASCII.txt into "CC.code" -> name. The
// file is optional; without it cities keep their raw admin1 code.
func (p *Parser) ParseAdmin1Names() (map[string]string, error) {
	names := make(map[string]string)

	file, err := os.Open(filepath.Join(p.dataDir, admin1File))
	if err != nil {
		if os.IsNotExist(err) {
			return names, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", admin1File, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), "\t")
		if len(parts) < 2 || parts[0] == "" {
			continue
		}
		names[parts[0]] = parts[1]
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", admin1File, err)
	}
	return names, nil
}

// ParseCities parses cities1000 (txt or zip) and returns every city that
// passes the population and country filters.
func (p *Parser) ParseCities(admin1 map[string]string) ([]model.City, error) {
	var cities []model.City
	err := p.ProcessCities(admin1, func(batch []model.City) error {
		cities = append(cities, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cities, nil
}

// ProcessCities streams cities to callback in batches of the configured size
func (p *Parser) ProcessCities(admin1 map[string]string, callback func(batch []model.City) error) error {
	// Check if file is zipped
	zipPath := filepath.Join(p.dataDir, citiesZip)
	if _, err := os.Stat(zipPath); err == nil {
		r, err := zip.OpenReader(zipPath)
		if err != nil {
			return fmt.Errorf("failed to open zip: %w", err)
		}
		defer r.Close()

		for _, f := range r.File {
			if strings.HasSuffix(f.Name, ".txt") {
				rc, err := f.Open()
				if err != nil {
					return fmt.Errorf("failed to open file in zip: %w", err)
				}
				defer rc.Close()
				return p.processCitiesFromReader(rc, admin1, callback)
			}
		}
		return fmt.Errorf("no txt file found in zip")
	}

	file, err := os.Open(filepath.Join(p.dataDir, citiesFile))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", citiesFile, err)
	}
	defer file.Close()

	return p.processCitiesFromReader(file, admin1, callback)
}

func (p *Parser) processCitiesFromReader(reader io.Reader, admin1 map[string]string, callback func(batch []model.City) error) error {
	buf := make([]byte, 0, 64*1024)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(buf, 1024*1024)

	batchSize := p.batchSize
	if batchSize <= 0 {
		batchSize = 1000
	}
	batch := make([]model.City, 0, batchSize)

	for scanner.Scan() {
		city, ok := p.parseCity(scanner.Text(), admin1)
		if !ok {
			continue
		}

		batch = append(batch, city)
		if len(batch) >= batchSize {
			if err := callback(batch); err != nil {
				return fmt.Errorf("city callback error: %w", err)
			}
			batch = make([]model.City, 0, batchSize)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan cities: %w", err)
	}

	if len(batch) > 0 {
		if err := callback(batch); err != nil {
			return fmt.Errorf("city callback error: %w", err)
		}
	}
	return nil
}

// parseCity reads one row of the GeoNames main table:
// 0 id, 1 name, 4 lat, 5 lon, 8 country, 10 admin1, 14 population.
func (p *Parser) parseCity(line string, admin1 map[string]string) (model.City, bool) {
	parts := strings.Split(line, "\t")
	if len(parts) < 15 {
		return model.City{}, false
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return model.City{}, false
	}

	countryCode := parts[8]
	if countryCode == "" || !p.allowed(countryCode) {
		return model.City{}, false
	}

	population, err := strconv.Atoi(parts[14])
	if err != nil || population < p.minPopulation {
		return model.City{}, false
	}

	lat, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return model.City{}, false
	}

	lon, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return model.City{}, false
	}

	state := parts[10]
	if name, ok := admin1[countryCode+"."+state]; ok {
		state = name
	}

	return model.City{
		ID:          id,
		CountryCode: countryCode,
		Name:        parts[1],
		Admin1:      state,
		Population:  population,
		Lat:         lat,
		Lon:         lon,
	}, true
}

func (p *Parser) allowed(countryCode string) bool {
	return len(p.countries) == 0 || p.countries[countryCode]
}
