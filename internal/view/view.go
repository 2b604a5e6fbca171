// Package view renders the dashboard view model as HTML pages and fragments,
// and as plain text for the console host.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/alexivanou/skycast/internal/model"
	"github.com/alexivanou/skycast/internal/suggest"
)

//go:embed templates/*.html
var templateFS embed.FS

// DashboardPage is the data of the full dashboard page. A nil View renders
// the page with the weather container hidden.
type DashboardPage struct {
	Title          string
	View           *model.DashboardView
	Debounce       time.Duration
	MinQueryLength int
}

// DebounceMillis is the suggestion delay handed to the page script
func (p DashboardPage) DebounceMillis() int64 {
	return p.Debounce.Milliseconds()
}

type suggestionsData struct {
	Items    []model.LocationSuggestion
	Selected int
}

// Renderer executes the embedded templates
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("skycast").
		Funcs(template.FuncMap{"iconClass": iconClass}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// RenderDashboard writes the full page
func (r *Renderer) RenderDashboard(w io.Writer, page DashboardPage) error {
	if page.Title == "" {
		page.Title = "Weather"
		if page.View != nil {
			page.Title = "Weather in " + page.View.Today.Location
		}
	}
	if page.MinQueryLength <= 0 {
		page.MinQueryLength = suggest.DefaultMinQueryLength
	}
	if page.Debounce <= 0 {
		page.Debounce = suggest.DefaultDebounce
	}
	return r.templates.ExecuteTemplate(w, "dashboard", page)
}

// RenderSuggestions writes the dropdown fragment. selected is an item index
// or suggest.NoSelection. An empty list renders nothing.
func (r *Renderer) RenderSuggestions(w io.Writer, items []model.LocationSuggestion, selected int) error {
	return r.templates.ExecuteTemplate(w, "suggestions", suggestionsData{Items: items, Selected: selected})
}

// RenderNotFound writes the static not-found page
func (r *Renderer) RenderNotFound(w io.Writer) error {
	return r.templates.ExecuteTemplate(w, "notfound", nil)
}

func iconClass(icon string) string {
	return "bx bx-" + icon
}
