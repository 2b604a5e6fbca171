package forecast

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/alexivanou/skycast/internal/model"
)

// ErrMalformed is returned when the provider payload cannot be rendered
var ErrMalformed = errors.New("malformed forecast payload")

const (
	timestampLayout = "2006-01-02 15:04:05"
	weekdayLayout   = "Monday"
	shortDayLayout  = "Mon"
	dateLayout      = "2 January 2006"

	// DefaultDays is the length of the forecast strip
	DefaultDays = 5
)

// Builder turns a provider payload into the dashboard view model
type Builder struct {
	days int
	loc  *time.Location
}

// NewBuilder creates a builder collecting at most days strip entries.
// Provider timestamps are interpreted in loc.
func NewBuilder(days int, loc *time.Location) *Builder {
	if days <= 0 {
		days = DefaultDays
	}
	if loc == nil {
		loc = time.Local
	}
	return &Builder{days: days, loc: loc}
}

// Build renders the today panel, the metrics row and the forecast strip.
// The result is all-or-nothing: any malformed point fails the whole view.
func (b *Builder) Build(resp *model.ForecastResponse, now time.Time) (*model.DashboardView, error) {
	entries, err := ParseEntries(resp, b.loc)
	if err != nil {
		return nil, err
	}

	today := now.In(b.loc)
	current := entries[0]

	view := &model.DashboardView{
		Today: model.TodayPanel{
			Weekday:     today.Format(weekdayLayout),
			Date:        today.Format(dateLayout),
			Location:    fmt.Sprintf("%s, %s", resp.City.Name, resp.City.Country),
			Description: current.Description,
			Temperature: formatTemperature(current.Temperature),
			Icon:        IconName(current.IconCode),
		},
		Metrics: []model.Metric{
			{Title: "PRECIPITATION", Value: formatNumber(roundHalfUp(current.PrecipitationProbability)) + "%"},
			{Title: "HUMIDITY", Value: formatNumber(current.Humidity) + "%"},
			{Title: "WIND SPEED", Value: formatNumber(current.WindSpeed) + " km/h"},
		},
		Days: b.strip(entries[1:], today),
	}
	return view, nil
}

// strip picks one point per later calendar day, in chronological order.
// A weekday abbreviation is only used once.
func (b *Builder) strip(points []model.ForecastEntry, today time.Time) []model.ForecastDay {
	days := make([]model.ForecastDay, 0, b.days)
	seen := make(map[string]bool)

	for _, point := range points {
		if len(days) == b.days {
			break
		}
		ts := point.Timestamp.In(b.loc)
		if sameDay(ts, today) {
			continue
		}
		abbr := ts.Format(shortDayLayout)
		if seen[abbr] {
			continue
		}
		seen[abbr] = true
		days = append(days, model.ForecastDay{
			Weekday:     abbr,
			Temperature: formatTemperature(point.Temperature),
			Icon:        IconName(point.IconCode),
		})
	}
	return days
}

// ParseEntries validates the payload and converts every point. The first
// entry is the current conditions.
func ParseEntries(resp *model.ForecastResponse, loc *time.Location) ([]model.ForecastEntry, error) {
	if resp == nil || len(resp.List) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrMalformed)
	}

	entries := make([]model.ForecastEntry, 0, len(resp.List))
	for i, point := range resp.List {
		if len(point.Weather) == 0 {
			return nil, fmt.Errorf("%w: point %d has no weather", ErrMalformed, i)
		}
		ts, err := time.ParseInLocation(timestampLayout, point.DtTxt, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: point %d: %v", ErrMalformed, i, err)
		}
		entries = append(entries, model.ForecastEntry{
			Timestamp:                ts,
			Temperature:              point.Main.Temp,
			Humidity:                 point.Main.Humidity,
			WindSpeed:                point.Wind.Speed,
			PrecipitationProbability: point.Pop * 100,
			IconCode:                 point.Weather[0].Icon,
			Description:              point.Weather[0].Description,
		})
	}
	return entries, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// roundHalfUp rounds .5 towards positive infinity, so -0.5 becomes 0.
func roundHalfUp(v float64) float64 {
	r := math.Floor(v + 0.5)
	if r == 0 {
		return 0
	}
	return r
}

func formatTemperature(celsius float64) string {
	return formatNumber(roundHalfUp(celsius)) + "°C"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
