package suggest

import (
	"context"
	"sync"

	"github.com/alexivanou/skycast/internal/forecast"
	"github.com/alexivanou/skycast/internal/model"
	"github.com/alexivanou/skycast/internal/provider"
	"go.uber.org/zap"
)

// NavKey is a keyboard event the search box reacts to
type NavKey string

const (
	KeyDown   NavKey = "ArrowDown"
	KeyUp     NavKey = "ArrowUp"
	KeyEnter  NavKey = "Enter"
	KeyEscape NavKey = "Escape"
)

// Loader starts the weather flow for a target
type Loader interface {
	Load(ctx context.Context, target model.WeatherTarget)
}

// SearchBox ties the text input, the debounced fetcher, the dropdown and the
// weather flow together.
type SearchBox struct {
	fetcher *Fetcher
	list    *List
	loader  Loader
	opts    Options
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	text string
}

// NewSearchBox creates a search box; renderer may be nil
func NewSearchBox(geocoder provider.Geocoder, loader Loader, renderer Renderer, opts Options, logger *zap.Logger) *SearchBox {
	opts = opts.withDefaults()
	list := NewList(renderer)
	ctx, cancel := context.WithCancel(context.Background())
	return &SearchBox{
		fetcher: NewFetcher(geocoder, list, opts, logger),
		list:    list,
		loader:  loader,
		opts:    opts,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// List exposes the dropdown state
func (b *SearchBox) List() *List {
	return b.list
}

// Text returns the current input text
func (b *SearchBox) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Type replaces the input text, as an input event would
func (b *SearchBox) Type(text string) {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
	b.fetcher.Input(text)
}

// Key handles a navigation key and reports whether it was consumed
func (b *SearchBox) Key(key NavKey) bool {
	switch key {
	case KeyDown:
		b.list.Down()
	case KeyUp:
		b.list.Up()
	case KeyEnter:
		if selected, ok := b.list.Selected(); ok {
			b.commit(selected)
			return true
		}
		b.Submit()
	case KeyEscape:
		b.hide()
	default:
		return false
	}
	return true
}

// Pick commits the i-th visible suggestion, as a click on it would
func (b *SearchBox) Pick(i int) bool {
	selected, ok := b.list.At(i)
	if !ok {
		return false
	}
	b.commit(selected)
	return true
}

// ClickOutside hides the dropdown
func (b *SearchBox) ClickOutside() {
	b.hide()
}

// Submit searches for the typed text. Blank input is ignored.
func (b *SearchBox) Submit() {
	text := b.Text()
	target, err := forecast.ParseLocation(text, b.opts.DefaultCountry)
	if err != nil {
		return
	}
	b.reset()
	b.loader.Load(b.ctx, target)
}

// Close tears the search box down; it is safe to call more than once
func (b *SearchBox) Close() {
	b.fetcher.Close()
	b.cancel()
}

// commit loads by coordinates, which tell same-named places apart
func (b *SearchBox) commit(selected model.LocationSuggestion) {
	b.logger.Debug("Suggestion selected",
		zap.String("name", selected.Name),
		zap.String("country", selected.Country),
	)
	b.reset()
	b.loader.Load(b.ctx, forecast.AtCoordinates(selected.Lat, selected.Lon))
}

func (b *SearchBox) reset() {
	b.mu.Lock()
	b.text = ""
	b.mu.Unlock()
	b.hide()
}

func (b *SearchBox) hide() {
	b.fetcher.Cancel()
	b.list.Clear()
}
