package api

import (
	"github.com/alexivanou/skycast/internal/config"
	"github.com/alexivanou/skycast/internal/provider"
	"github.com/alexivanou/skycast/internal/service"
	"github.com/alexivanou/skycast/internal/stats"
	"github.com/alexivanou/skycast/internal/view"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router. gazetteer is only routed when the
// local geocoder is enabled and may be nil.
func NewRouter(
	service service.ServiceInterface,
	renderer *view.Renderer,
	statsCollector *stats.Collector,
	gazetteer provider.Geocoder,
	cfg config.DashboardConfig,
	logger *zap.Logger,
) *mux.Router {
	handler := NewHandler(service, renderer, cfg, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()
	router.Use(requestLogger(logger))

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Pages
	router.HandleFunc("/", handler.Index).Methods("GET")
	router.HandleFunc("/weather", handler.Weather).Methods("GET")
	router.HandleFunc(notFoundPath, handler.NotFound).Methods("GET")
	router.HandleFunc("/partials/suggestions", handler.SuggestionsPartial).Methods("GET")

	if gazetteer != nil {
		router.HandleFunc("/geocode", NewGeocodeHandler(gazetteer, logger).Geocode).Methods("GET")
	}

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/suggest", handler.SuggestLocations).Methods("GET")
	v1.HandleFunc("/weather", handler.WeatherView).Methods("GET")
	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	return router
}
