package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexivanou/skycast/internal/config"
	"github.com/alexivanou/skycast/internal/forecast"
	"github.com/alexivanou/skycast/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockGeocoder implements provider.Geocoder
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, query string) ([]model.LocationSuggestion, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LocationSuggestion), args.Error(1)
}

func (m *MockGeocoder) Name() string { return "mock-geocoder" }

// MockForecastSource implements provider.ForecastSource
type MockForecastSource struct {
	mock.Mock
}

func (m *MockForecastSource) FetchForecast(ctx context.Context, target model.WeatherTarget) (*model.ForecastResponse, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ForecastResponse), args.Error(1)
}

func (m *MockForecastSource) Name() string { return "mock-forecast" }

func testConfig() config.DashboardConfig {
	return config.DashboardConfig{
		DefaultLocation: "London",
		DefaultCountry:  "GB",
		MinQueryLength:  4,
		ForecastDays:    5,
		Timezone:        "UTC",
	}
}

func TestService_SuggestLocations(t *testing.T) {
	tests := []struct {
		name          string
		req           model.SuggestRequest
		setupMocks    func(*MockGeocoder)
		expectedNames []string
		expectCall    bool
	}{
		{
			name: "ranked and deduplicated",
			req:  model.SuggestRequest{Query: "Paris"},
			setupMocks: func(g *MockGeocoder) {
				g.On("Geocode", mock.Anything, "Paris").Return([]model.LocationSuggestion{
					{Name: "Paris", Country: "FR"},
					{Name: "Paris", Country: "US", State: "Texas"},
					{Name: "PARIS", Country: "us", State: "Tennessee"},
					{Name: "Paris", Country: "GB"},
				}, nil)
			},
			expectedNames: []string{"GB", "US", "FR"},
			expectCall:    true,
		},
		{
			name: "limit applied after ranking",
			req:  model.SuggestRequest{Query: "Paris", Limit: 1},
			setupMocks: func(g *MockGeocoder) {
				g.On("Geocode", mock.Anything, "Paris").Return([]model.LocationSuggestion{
					{Name: "Paris", Country: "FR"},
					{Name: "Paris", Country: "GB"},
				}, nil)
			},
			expectedNames: []string{"GB"},
			expectCall:    true,
		},
		{
			name:          "query too short",
			req:           model.SuggestRequest{Query: " Par "},
			expectedNames: []string{},
		},
		{
			name: "geocoder failure is silent",
			req:  model.SuggestRequest{Query: "Paris"},
			setupMocks: func(g *MockGeocoder) {
				g.On("Geocode", mock.Anything, "Paris").Return(nil, errors.New("timeout"))
			},
			expectedNames: []string{},
			expectCall:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geocoder := new(MockGeocoder)
			if tt.setupMocks != nil {
				tt.setupMocks(geocoder)
			}
			svc := NewService(geocoder, new(MockForecastSource), testConfig(), zap.NewNop())

			resp, err := svc.SuggestLocations(context.Background(), tt.req)
			require.NoError(t, err)

			got := make([]string, 0, len(resp.Results))
			for _, r := range resp.Results {
				got = append(got, r.Country)
			}
			assert.Equal(t, tt.expectedNames, got)
			if tt.expectCall {
				geocoder.AssertExpectations(t)
			} else {
				geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
			}
		})
	}
}

func sampleForecast() *model.ForecastResponse {
	resp := &model.ForecastResponse{}
	resp.City.Name = "York"
	resp.City.Country = "GB"
	p := model.ForecastPoint{DtTxt: "2026-10-19 12:00:00"}
	p.Main.Temp = 11.2
	p.Weather = append(p.Weather, struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}{Description: "clear sky", Icon: "01d"})
	resp.List = append(resp.List, p)
	next := p
	next.DtTxt = "2026-10-20 12:00:00"
	resp.List = append(resp.List, next)
	return resp
}

func TestService_Dashboard(t *testing.T) {
	target := model.WeatherTarget{Location: "York,GB"}
	source := new(MockForecastSource)
	source.On("FetchForecast", mock.Anything, target).Return(sampleForecast(), nil).Once()

	svc := NewService(new(MockGeocoder), source, testConfig(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, time.October, 19, 15, 0, 0, 0, time.UTC) }

	view, err := svc.Dashboard(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, "York, GB", view.Today.Location)
	assert.Equal(t, "11°C", view.Today.Temperature)
	assert.Equal(t, "sun", view.Today.Icon)
	require.Len(t, view.Days, 1)
	assert.Equal(t, "Tue", view.Days[0].Weekday)
	source.AssertExpectations(t)
}

func TestService_DashboardFailures(t *testing.T) {
	target := model.WeatherTarget{Location: "Nowhere,GB"}

	t.Run("provider error", func(t *testing.T) {
		source := new(MockForecastSource)
		source.On("FetchForecast", mock.Anything, target).Return(nil, errors.New("boom")).Once()
		svc := NewService(new(MockGeocoder), source, testConfig(), zap.NewNop())

		view, err := svc.Dashboard(context.Background(), target)
		assert.Nil(t, view)
		assert.ErrorContains(t, err, "failed to fetch forecast")
		source.AssertNumberOfCalls(t, "FetchForecast", 1)
	})

	t.Run("malformed payload", func(t *testing.T) {
		source := new(MockForecastSource)
		source.On("FetchForecast", mock.Anything, target).Return(&model.ForecastResponse{}, nil)
		svc := NewService(new(MockGeocoder), source, testConfig(), zap.NewNop())

		view, err := svc.Dashboard(context.Background(), target)
		assert.Nil(t, view)
		assert.ErrorIs(t, err, forecast.ErrMalformed)
	})
}

func TestService_Targets(t *testing.T) {
	svc := NewService(new(MockGeocoder), new(MockForecastSource), testConfig(), zap.NewNop())

	target, err := svc.DefaultTarget()
	require.NoError(t, err)
	assert.Equal(t, "London,GB", target.Location)

	target, err = svc.TargetFromText("Boston,US")
	require.NoError(t, err)
	assert.Equal(t, "Boston,US", target.Location)

	_, err = svc.TargetFromText("")
	assert.ErrorIs(t, err, forecast.ErrEmptyLocation)
}
