package model

// City represents a gazetteer row backing the local geocoder
type City struct {
	ID          int     `db:"id"`
	CountryCode string  `db:"country_code"`
	Name        string  `db:"name"`
	Admin1      string  `db:"admin1"`
	Population  int     `db:"population"`
	Lat         float64 `db:"lat"`
	Lon         float64 `db:"lon"`
}

// Suggestion converts the row into the geocoding wire shape.
func (c City) Suggestion() LocationSuggestion {
	return LocationSuggestion{
		Name:    c.Name,
		Country: c.CountryCode,
		State:   c.Admin1,
		Lat:     c.Lat,
		Lon:     c.Lon,
	}
}

// Country represents a country in the gazetteer
type Country struct {
	Code string `db:"code"`
	Name string `db:"name"`
}
