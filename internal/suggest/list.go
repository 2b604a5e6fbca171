package suggest

import (
	"sync"

	"github.com/alexivanou/skycast/internal/model"
)

// NoSelection is the selected index of a list without a highlighted item
const NoSelection = -1

// Renderer draws the dropdown whenever its items or selection change.
// selected is NoSelection when nothing is highlighted; an empty items
// slice means the dropdown is hidden.
type Renderer interface {
	RenderSuggestions(items []model.LocationSuggestion, selected int)
}

// List is the visible suggestion dropdown with a single selection marker
type List struct {
	mu       sync.Mutex
	items    []model.LocationSuggestion
	selected int
	renderer Renderer
}

// NewList creates an empty list; renderer may be nil
func NewList(renderer Renderer) *List {
	return &List{selected: NoSelection, renderer: renderer}
}

// Show replaces the items and resets the selection
func (l *List) Show(items []model.LocationSuggestion) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]model.LocationSuggestion(nil), items...)
	l.selected = NoSelection
	l.renderLocked()
}

// Clear hides the list
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.items) == 0 && l.selected == NoSelection {
		return
	}
	l.items = nil
	l.selected = NoSelection
	l.renderLocked()
}

// Down moves the selection forward, wrapping to the first item
func (l *List) Down() {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.items)
	if n == 0 {
		return
	}
	if l.selected == NoSelection {
		l.selected = 0
	} else {
		l.selected = (l.selected + 1) % n
	}
	l.renderLocked()
}

// Up moves the selection backward, wrapping to the last item
func (l *List) Up() {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.items)
	if n == 0 {
		return
	}
	if l.selected == NoSelection {
		l.selected = n - 1
	} else {
		l.selected = (l.selected - 1 + n) % n
	}
	l.renderLocked()
}

// Selected returns the highlighted suggestion
func (l *List) Selected() (model.LocationSuggestion, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selected == NoSelection {
		return model.LocationSuggestion{}, false
	}
	return l.items[l.selected], true
}

// At returns the i-th visible suggestion
func (l *List) At(i int) (model.LocationSuggestion, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return model.LocationSuggestion{}, false
	}
	return l.items[i], true
}

// SelectedIndex returns the selection or NoSelection
func (l *List) SelectedIndex() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selected
}

// Items returns a copy of the visible suggestions
func (l *List) Items() []model.LocationSuggestion {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.LocationSuggestion(nil), l.items...)
}

// Visible reports whether the dropdown is shown
func (l *List) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items) > 0
}

func (l *List) renderLocked() {
	if l.renderer == nil {
		return
	}
	l.renderer.RenderSuggestions(append([]model.LocationSuggestion(nil), l.items...), l.selected)
}
