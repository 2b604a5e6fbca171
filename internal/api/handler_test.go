package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexivanou/skycast/internal/config"
	"github.com/alexivanou/skycast/internal/forecast"
	"github.com/alexivanou/skycast/internal/model"
	"github.com/alexivanou/skycast/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockService is a mock implementation of ServiceInterface
type MockService struct {
	mock.Mock
}

func (m *MockService) SuggestLocations(ctx context.Context, req model.SuggestRequest) (*model.SuggestResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SuggestResponse), args.Error(1)
}

func (m *MockService) Dashboard(ctx context.Context, target model.WeatherTarget) (*model.DashboardView, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardView), args.Error(1)
}

func (m *MockService) DefaultTarget() (model.WeatherTarget, error) {
	args := m.Called()
	return args.Get(0).(model.WeatherTarget), args.Error(1)
}

func (m *MockService) TargetFromText(text string) (model.WeatherTarget, error) {
	args := m.Called(text)
	return args.Get(0).(model.WeatherTarget), args.Error(1)
}

func testDashboardConfig() config.DashboardConfig {
	return config.DashboardConfig{
		DefaultLocation: "London",
		DefaultCountry:  "GB",
		Debounce:        300 * time.Millisecond,
		MinQueryLength:  4,
		ForecastDays:    5,
	}
}

func newTestHandler(t *testing.T, svc *MockService) *Handler {
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	return NewHandler(svc, renderer, testDashboardConfig(), zap.NewNop())
}

func testView() *model.DashboardView {
	return &model.DashboardView{
		Today: model.TodayPanel{Weekday: "Monday", Date: "19 October 2026", Location: "London, GB", Temperature: "12°C", Icon: "sun"},
		Metrics: []model.Metric{
			{Title: "PRECIPITATION", Value: "0%"},
		},
		Days: []model.ForecastDay{{Weekday: "Tue", Temperature: "13°C"}},
	}
}

func TestHandler_Index(t *testing.T) {
	london := model.WeatherTarget{Location: "London,GB"}

	t.Run("renders default location", func(t *testing.T) {
		ms := new(MockService)
		ms.On("DefaultTarget").Return(london, nil)
		ms.On("Dashboard", mock.Anything, london).Return(testView(), nil).Once()

		rr := httptest.NewRecorder()
		newTestHandler(t, ms).Index(rr, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rr.Body.String(), `class="container visible"`)
		assert.Contains(t, rr.Body.String(), "London, GB")
		ms.AssertExpectations(t)
	})

	t.Run("failure redirects", func(t *testing.T) {
		ms := new(MockService)
		ms.On("DefaultTarget").Return(london, nil)
		ms.On("Dashboard", mock.Anything, london).Return(nil, errors.New("down"))

		rr := httptest.NewRecorder()
		newTestHandler(t, ms).Index(rr, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/not-found", rr.Header().Get("Location"))
	})
}

func TestHandler_Weather(t *testing.T) {
	tests := []struct {
		name             string
		url              string
		mockSetup        func(*MockService)
		expectedStatus   int
		expectedLocation string
	}{
		{
			name: "by location",
			url:  "/weather?location=Boston",
			mockSetup: func(ms *MockService) {
				target := model.WeatherTarget{Location: "Boston,GB"}
				ms.On("TargetFromText", "Boston").Return(target, nil)
				ms.On("Dashboard", mock.Anything, target).Return(testView(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "by coordinates",
			url:  "/weather?lat=51.5085&lon=-0.1257",
			mockSetup: func(ms *MockService) {
				ms.On("Dashboard", mock.Anything, mock.MatchedBy(func(t model.WeatherTarget) bool {
					return t.ByCoordinates() && t.Coordinates.Lat == 51.5085 && t.Coordinates.Lon == -0.1257
				})).Return(testView(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "provider failure",
			url:  "/weather?location=Atlantis",
			mockSetup: func(ms *MockService) {
				target := model.WeatherTarget{Location: "Atlantis,GB"}
				ms.On("TargetFromText", "Atlantis").Return(target, nil)
				ms.On("Dashboard", mock.Anything, target).Return(nil, forecast.ErrMalformed)
			},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/not-found",
		},
		{
			name: "empty location",
			url:  "/weather?location=",
			mockSetup: func(ms *MockService) {
				ms.On("TargetFromText", "").Return(model.WeatherTarget{}, forecast.ErrEmptyLocation)
			},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/not-found",
		},
		{
			name:             "latitude out of range",
			url:              "/weather?lat=91&lon=0",
			expectedStatus:   http.StatusFound,
			expectedLocation: "/not-found",
		},
		{
			name:             "lat without lon",
			url:              "/weather?lat=51",
			expectedStatus:   http.StatusFound,
			expectedLocation: "/not-found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := new(MockService)
			if tt.mockSetup != nil {
				tt.mockSetup(ms)
			}

			rr := httptest.NewRecorder()
			newTestHandler(t, ms).Weather(rr, httptest.NewRequest("GET", tt.url, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
			}
			ms.AssertExpectations(t)
		})
	}
}

func TestHandler_WeatherClearsSearchInput(t *testing.T) {
	ms := new(MockService)
	target := model.WeatherTarget{Location: "Boston,GB"}
	ms.On("TargetFromText", "Boston").Return(target, nil)
	ms.On("Dashboard", mock.Anything, target).Return(testView(), nil)

	rr := httptest.NewRecorder()
	newTestHandler(t, ms).Weather(rr, httptest.NewRequest("GET", "/weather?location=Boston", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `id="search-input" placeholder="Search location">`)
	assert.NotContains(t, rr.Body.String(), `value="Boston"`)
	ms.AssertExpectations(t)
}

func TestHandler_NotFound(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(t, new(MockService)).NotFound(rr, httptest.NewRequest("GET", "/not-found", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Location not found")
}

func TestHandler_SuggestionsPartial(t *testing.T) {
	ms := new(MockService)
	ms.On("SuggestLocations", mock.Anything, model.SuggestRequest{Query: "Lond"}).Return(&model.SuggestResponse{
		Results: []model.LocationSuggestion{{Name: "London", Country: "GB", State: "England"}},
	}, nil)

	rr := httptest.NewRecorder()
	newTestHandler(t, ms).SuggestionsPartial(rr, httptest.NewRequest("GET", "/partials/suggestions?q=Lond", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "London, GB")
	assert.NotContains(t, rr.Body.String(), `class="selected"`)
}

func TestHandler_SuggestionsPartialFailure(t *testing.T) {
	ms := new(MockService)
	ms.On("SuggestLocations", mock.Anything, model.SuggestRequest{Query: "Lond"}).Return(nil, errors.New("db down"))

	rr := httptest.NewRecorder()
	newTestHandler(t, ms).SuggestionsPartial(rr, httptest.NewRequest("GET", "/partials/suggestions?q=Lond", nil))

	// a non-2xx status makes the page script clear the list
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "<li")
}

func TestHandler_SuggestLocations(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		limit          string
		mockSetup      func(*MockService)
		expectedStatus int
		expectedCount  int
	}{
		{
			name:  "successful request",
			query: "Paris",
			limit: "5",
			mockSetup: func(ms *MockService) {
				ms.On("SuggestLocations", mock.Anything, model.SuggestRequest{Query: "Paris", Limit: 5}).Return(&model.SuggestResponse{
					Results: []model.LocationSuggestion{
						{Name: "Paris", Country: "US", State: "Texas"},
						{Name: "Paris", Country: "FR"},
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:  "short query yields empty list",
			query: "Par",
			mockSetup: func(ms *MockService) {
				ms.On("SuggestLocations", mock.Anything, model.SuggestRequest{Query: "Par", Limit: 10}).
					Return(&model.SuggestResponse{Results: []model.LocationSuggestion{}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "missing query parameter",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid limit",
			query:          "Paris",
			limit:          "-1",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := new(MockService)
			if tt.mockSetup != nil {
				tt.mockSetup(ms)
			}

			req, _ := http.NewRequest("GET", "/api/v1/suggest", nil)
			q := req.URL.Query()
			if tt.query != "" {
				q.Add("q", tt.query)
			}
			if tt.limit != "" {
				q.Add("limit", tt.limit)
			}
			req.URL.RawQuery = q.Encode()

			rr := httptest.NewRecorder()
			newTestHandler(t, ms).SuggestLocations(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp model.SuggestResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Len(t, resp.Results, tt.expectedCount)
				assert.NotNil(t, resp.Results)
			}
			ms.AssertExpectations(t)
		})
	}
}

func TestHandler_WeatherView(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ms := new(MockService)
		target := model.WeatherTarget{Location: "London,GB"}
		ms.On("TargetFromText", "London").Return(target, nil)
		ms.On("Dashboard", mock.Anything, target).Return(testView(), nil)

		rr := httptest.NewRecorder()
		newTestHandler(t, ms).WeatherView(rr, httptest.NewRequest("GET", "/api/v1/weather?location=London", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp model.DashboardView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "London, GB", resp.Today.Location)
		assert.Len(t, resp.Days, 1)
	})

	t.Run("failure is bad gateway", func(t *testing.T) {
		ms := new(MockService)
		ms.On("Dashboard", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		rr := httptest.NewRecorder()
		newTestHandler(t, ms).WeatherView(rr, httptest.NewRequest("GET", "/api/v1/weather?lat=1&lon=2", nil))

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		var resp model.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "weather unavailable", resp.Error)
	})

	t.Run("bad coordinates", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newTestHandler(t, new(MockService)).WeatherView(rr, httptest.NewRequest("GET", "/api/v1/weather?lat=x&lon=2", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandler_HealthCheck(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(t, new(MockService)).HealthCheck(rr, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestRequestLogger(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})
	h := requestLogger(zap.NewNop())(next)

	t.Run("generates id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", "/x", nil))

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/x", nil)
		req.Header.Set(RequestIDHeader, "abc")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", rr.Header().Get(RequestIDHeader))
	})
}
