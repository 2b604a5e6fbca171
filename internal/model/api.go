package model

// SuggestRequest represents the request parameters for a suggestion lookup
type SuggestRequest struct {
	Query string
	Limit int
}

// SuggestResponse represents the response for a suggestion lookup
type SuggestResponse struct {
	Results []LocationSuggestion `json:"results"`
}

// LocationSuggestion is one geocoding candidate shown in the dropdown
type LocationSuggestion struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Coordinate represents geographic coordinates
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Label is the primary text of a dropdown item.
func (s LocationSuggestion) Label() string {
	return s.Name + ", " + s.Country
}

// WeatherTarget identifies what the weather collaborator is asked for:
// either a "name,CC" location or a coordinate pair.
type WeatherTarget struct {
	Location    string      `json:"location,omitempty"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
}

// ByCoordinates reports whether the target is a coordinate pair.
func (t WeatherTarget) ByCoordinates() bool {
	return t.Coordinates != nil
}

// ErrorResponse is the JSON body of API errors
type ErrorResponse struct {
	Error string `json:"error"`
}
