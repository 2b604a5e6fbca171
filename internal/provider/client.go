package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/alexivanou/skycast/internal/model"
)

const maxBodyBytes = 4 << 20

// Client talks to the weather and geocoding collaborator. It implements both
// Geocoder and ForecastSource.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a collaborator client for baseURL (no trailing slash)
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider name
func (c *Client) Name() string {
	return "gg2"
}

// Geocode calls GET /geocode?q=<query>
func (c *Client) Geocode(ctx context.Context, query string) ([]model.LocationSuggestion, error) {
	params := url.Values{}
	params.Set("q", query)

	body, err := c.get(ctx, c.baseURL+"/geocode?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var locations []model.LocationSuggestion
	if err := json.Unmarshal(body, &locations); err != nil {
		return nil, fmt.Errorf("failed to parse geocode response: %w", err)
	}
	return locations, nil
}

// FetchForecast calls GET /?lat=&lon= for coordinate targets and
// GET /?location=name,CC otherwise. It issues exactly one request.
func (c *Client) FetchForecast(ctx context.Context, target model.WeatherTarget) (*model.ForecastResponse, error) {
	params := url.Values{}
	if target.ByCoordinates() {
		params.Set("lat", strconv.FormatFloat(target.Coordinates.Lat, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(target.Coordinates.Lon, 'f', -1, 64))
	} else {
		params.Set("location", target.Location)
	}

	body, err := c.get(ctx, c.baseURL+"/?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var forecast model.ForecastResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}
	return &forecast, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %d from %s", ErrStatus, resp.StatusCode, req.URL.Path)
	}
	return body, nil
}

// Verify that Client implements the required interfaces
var (
	_ Geocoder       = (*Client)(nil)
	_ ForecastSource = (*Client)(nil)
)
