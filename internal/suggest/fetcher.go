package suggest

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/alexivanou/skycast/internal/model"
	"github.com/alexivanou/skycast/internal/provider"
	"go.uber.org/zap"
)

const (
	DefaultDebounce       = 300 * time.Millisecond
	DefaultMinQueryLength = 4
)

// View is the rendering target of fetched suggestions
type View interface {
	Show(items []model.LocationSuggestion)
	Clear()
}

// Options tune the search box
type Options struct {
	Debounce       time.Duration
	MinQueryLength int
	DefaultCountry string
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.MinQueryLength <= 0 {
		o.MinQueryLength = DefaultMinQueryLength
	}
	return o
}

// Fetcher debounces input and issues geocode lookups. It owns a single
// timer slot and a request sequence number: only the response to the most
// recently issued query may reach the view.
type Fetcher struct {
	geocoder provider.Geocoder
	view     View
	opts     Options
	logger   *zap.Logger

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// NewFetcher creates a fetcher rendering into view
func NewFetcher(geocoder provider.Geocoder, view View, opts Options, logger *zap.Logger) *Fetcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Fetcher{
		geocoder: geocoder,
		view:     view,
		opts:     opts.withDefaults(),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Input handles a change of the search text. Short queries clear the view
// at once; longer ones (re)arm the debounce timer.
func (f *Fetcher) Input(raw string) {
	query := strings.TrimSpace(raw)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}

	seq := f.invalidateLocked()
	if utf8.RuneCountInString(query) < f.opts.MinQueryLength {
		f.view.Clear()
		return
	}
	f.timer = time.AfterFunc(f.opts.Debounce, func() {
		f.fetch(seq, query)
	})
}

// Cancel drops the pending timer and any in-flight response without
// touching the view.
func (f *Fetcher) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidateLocked()
}

// Close stops the fetcher; later calls are no-ops.
func (f *Fetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.invalidateLocked()
	f.closed = true
	f.cancel()
}

func (f *Fetcher) invalidateLocked() uint64 {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.seq++
	return f.seq
}

func (f *Fetcher) current(seq uint64) bool {
	return !f.closed && seq == f.seq
}

func (f *Fetcher) fetch(seq uint64, query string) {
	f.mu.Lock()
	if !f.current(seq) {
		f.mu.Unlock()
		return
	}
	ctx := f.ctx
	f.mu.Unlock()

	locations, err := f.geocoder.Geocode(ctx, query)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.current(seq) {
		f.logger.Debug("Discarding stale suggestions", zap.String("query", query), zap.Uint64("seq", seq))
		return
	}
	if err != nil {
		f.logger.Warn("Failed to fetch location suggestions", zap.String("query", query), zap.Error(err))
		f.view.Clear()
		return
	}

	prepared := Prepare(locations)
	if len(prepared) == 0 {
		f.view.Clear()
		return
	}
	f.view.Show(prepared)
}
