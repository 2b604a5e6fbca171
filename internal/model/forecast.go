package model

import "time"

// ForecastResponse is the weather collaborator's payload. list[0] is the
// current conditions, the rest are 3-hourly forecast points.
type ForecastResponse struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List []ForecastPoint `json:"list"`
}

// ForecastPoint is one raw element of ForecastResponse.List
type ForecastPoint struct {
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Pop float64 `json:"pop"`
}

// ForecastEntry is a parsed forecast point
type ForecastEntry struct {
	Timestamp                time.Time `json:"timestamp"`
	Temperature              float64   `json:"temperature"` // in Celsius
	Humidity                 float64   `json:"humidity"`    // percentage
	WindSpeed                float64   `json:"windSpeed"`
	PrecipitationProbability float64   `json:"precipitationProbability"` // percentage
	IconCode                 string    `json:"iconCode"`
	Description              string    `json:"description"`
}

// DashboardView is everything one successful weather fetch renders.
type DashboardView struct {
	Today   TodayPanel    `json:"today"`
	Metrics []Metric      `json:"metrics"`
	Days    []ForecastDay `json:"days"`
}

// TodayPanel is the large "today" block
type TodayPanel struct {
	Weekday     string `json:"weekday"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Temperature string `json:"temperature"`
	Icon        string `json:"icon,omitempty"`
}

// Metric is a labeled value pair in the metrics row
type Metric struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// ForecastDay is one item of the forecast strip
type ForecastDay struct {
	Weekday     string `json:"weekday"`
	Temperature string `json:"temperature"`
	Icon        string `json:"icon,omitempty"`
}
