package view

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alexivanou/skycast/internal/model"
)

// Console prints the search box and the dashboard as text. It is safe for
// use from the fetcher's timer goroutines.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole creates a console renderer writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// RenderSuggestions prints the dropdown, marking the selected item
func (c *Console) RenderSuggestions(items []model.LocationSuggestion, selected int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(items) == 0 {
		fmt.Fprintln(c.out, "  (no suggestions)")
		return
	}
	for i, item := range items {
		marker := " "
		if i == selected {
			marker = ">"
		}
		line := fmt.Sprintf("%s %d. %s", marker, i+1, item.Label())
		if item.State != "" {
			line += " (" + item.State + ")"
		}
		fmt.Fprintln(c.out, line)
	}
}

// RenderDashboard prints the today panel, metrics and forecast strip
func (c *Console) RenderDashboard(v *model.DashboardView) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := v.Today
	fmt.Fprintf(c.out, "%s, %s\n", t.Weekday, t.Date)
	fmt.Fprintf(c.out, "%s\n", t.Location)
	fmt.Fprintf(c.out, "%s %s %s\n", t.Temperature, t.Description, iconTag(t.Icon))

	metrics := make([]string, 0, len(v.Metrics))
	for _, m := range v.Metrics {
		metrics = append(metrics, m.Title+": "+m.Value)
	}
	fmt.Fprintln(c.out, strings.Join(metrics, " | "))

	days := make([]string, 0, len(v.Days))
	for _, d := range v.Days {
		days = append(days, strings.TrimSpace(d.Weekday+" "+d.Temperature+" "+iconTag(d.Icon)))
	}
	fmt.Fprintln(c.out, strings.Join(days, " | "))
}

// RenderNotFound prints the not-found notice
func (c *Console) RenderNotFound() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "Location not found.")
}

func iconTag(icon string) string {
	if icon == "" {
		return ""
	}
	return "[" + icon + "]"
}
