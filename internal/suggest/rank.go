// Package suggest implements the search box: debounced geocode lookups,
// suggestion ranking and keyboard navigation of the dropdown.
package suggest

import (
	"strings"

	"github.com/alexivanou/skycast/internal/model"
)

// Key is the case-insensitive uniqueness key of a suggestion
func Key(s model.LocationSuggestion) string {
	return strings.ToLower(s.Name + "-" + s.Country)
}

// Dedupe drops later suggestions sharing a name and country with an
// earlier one.
func Dedupe(locations []model.LocationSuggestion) []model.LocationSuggestion {
	seen := make(map[string]bool, len(locations))
	unique := make([]model.LocationSuggestion, 0, len(locations))
	for _, location := range locations {
		key := Key(location)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, location)
	}
	return unique
}

// Rank is a stable partition: GB first, then US, then everything else,
// each group keeping its input order.
func Rank(locations []model.LocationSuggestion) []model.LocationSuggestion {
	ranked := make([]model.LocationSuggestion, 0, len(locations))
	for _, tier := range []func(string) bool{
		func(c string) bool { return c == "GB" },
		func(c string) bool { return c == "US" },
		func(c string) bool { return c != "GB" && c != "US" },
	} {
		for _, location := range locations {
			if tier(location.Country) {
				ranked = append(ranked, location)
			}
		}
	}
	return ranked
}

// Prepare is Dedupe followed by Rank
func Prepare(locations []model.LocationSuggestion) []model.LocationSuggestion {
	return Rank(Dedupe(locations))
}
