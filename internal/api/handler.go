package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexivanou/skycast/internal/config"
	"github.com/alexivanou/skycast/internal/model"
	"github.com/alexivanou/skycast/internal/service"
	"github.com/alexivanou/skycast/internal/suggest"
	"github.com/alexivanou/skycast/internal/view"
	"go.uber.org/zap"
)

const notFoundPath = "/not-found"

var errInvalidTarget = errors.New("invalid weather target")

// Handler handles HTTP requests
type Handler struct {
	service  service.ServiceInterface
	renderer *view.Renderer
	cfg      config.DashboardConfig
	logger   *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, renderer *view.Renderer, cfg config.DashboardConfig, logger *zap.Logger) *Handler {
	return &Handler{service: service, renderer: renderer, cfg: cfg, logger: logger}
}

// Index handles GET / with the default location
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	target, err := h.service.DefaultTarget()
	if err != nil {
		h.logger.Error("Invalid default location", zap.String("location", h.cfg.DefaultLocation), zap.Error(err))
		http.Redirect(w, r, notFoundPath, http.StatusFound)
		return
	}
	h.renderWeather(w, r, target)
}

// Weather handles GET /weather?location= or ?lat=&lon=
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	target, err := h.parseTarget(r)
	if err != nil {
		h.logger.Info("Rejected weather request", zap.String("query", r.URL.RawQuery), zap.Error(err))
		http.Redirect(w, r, notFoundPath, http.StatusFound)
		return
	}
	h.renderWeather(w, r, target)
}

// renderWeather renders the page only after the whole view was built; any
// failure sends the browser to the not-found view instead.
func (h *Handler) renderWeather(w http.ResponseWriter, r *http.Request, target model.WeatherTarget) {
	dashboard, err := h.service.Dashboard(r.Context(), target)
	if err != nil {
		h.logger.Error("Failed to load weather",
			zap.String("location", target.Location),
			zap.Bool("by_coordinates", target.ByCoordinates()),
			zap.Error(err),
		)
		http.Redirect(w, r, notFoundPath, http.StatusFound)
		return
	}

	var buf bytes.Buffer
	page := view.DashboardPage{
		View:           dashboard,
		Debounce:       h.cfg.Debounce,
		MinQueryLength: h.cfg.MinQueryLength,
	}
	if err := h.renderer.RenderDashboard(&buf, page); err != nil {
		h.logger.Error("Error rendering dashboard", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// NotFound handles GET /not-found
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.renderer.RenderNotFound(&buf); err != nil {
		h.logger.Error("Error rendering not-found page", zap.Error(err))
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(buf.Bytes())
}

// SuggestionsPartial handles GET /partials/suggestions?q=
func (h *Handler) SuggestionsPartial(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.SuggestLocations(r.Context(), model.SuggestRequest{
		Query: r.URL.Query().Get("q"),
	})
	if err != nil {
		h.logger.Error("Error suggesting locations", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderSuggestions(&buf, response.Results, suggest.NoSelection); err != nil {
		h.logger.Error("Error rendering suggestions", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// SuggestLocations handles GET /api/v1/suggest
func (h *Handler) SuggestLocations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
	}

	response, err := h.service.SuggestLocations(r.Context(), model.SuggestRequest{Query: query, Limit: limit})
	if err != nil {
		h.logger.Error("Error suggesting locations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, response)
}

// WeatherView handles GET /api/v1/weather
func (h *Handler) WeatherView(w http.ResponseWriter, r *http.Request) {
	target, err := h.parseTarget(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), target)
	if err != nil {
		h.logger.Error("Failed to load weather",
			zap.String("location", target.Location),
			zap.Bool("by_coordinates", target.ByCoordinates()),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, "weather unavailable")
		return
	}

	h.writeJSON(w, http.StatusOK, dashboard)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// parseTarget accepts either lat+lon or location. Coordinates win when both
// are present.
func (h *Handler) parseTarget(r *http.Request) (model.WeatherTarget, error) {
	q := r.URL.Query()
	latStr, lonStr := q.Get("lat"), q.Get("lon")

	if latStr != "" || lonStr != "" {
		if latStr == "" || lonStr == "" {
			return model.WeatherTarget{}, errors.New("parameters 'lat' and 'lon' are required together")
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return model.WeatherTarget{}, errors.New("invalid lat parameter")
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return model.WeatherTarget{}, errors.New("invalid lon parameter")
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return model.WeatherTarget{}, errors.New("invalid coordinates range")
		}
		return model.WeatherTarget{Coordinates: &model.Coordinate{Lat: lat, Lon: lon}}, nil
	}

	target, err := h.service.TargetFromText(q.Get("location"))
	if err != nil {
		return model.WeatherTarget{}, errInvalidTarget
	}
	return target, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Error encoding response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: message})
}
