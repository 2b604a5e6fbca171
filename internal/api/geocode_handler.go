package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alexivanou/skycast/internal/model"
	"github.com/alexivanou/skycast/internal/provider"
	"go.uber.org/zap"
)

// GeocodeHandler serves the local gazetteer in the same wire shape as the
// remote geocoding collaborator: a bare JSON array.
type GeocodeHandler struct {
	geocoder provider.Geocoder
	logger   *zap.Logger
}

// NewGeocodeHandler creates a new geocode handler
func NewGeocodeHandler(geocoder provider.Geocoder, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{geocoder: geocoder, logger: logger}
}

// Geocode handles GET /geocode?q=
func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	results, err := h.geocoder.Geocode(r.Context(), query)
	if err != nil {
		h.logger.Error("Error geocoding", zap.String("query", query), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if results == nil {
		results = []model.LocationSuggestion{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		h.logger.Error("Error encoding response", zap.Error(err))
	}
}
