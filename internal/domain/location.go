package domain

import "strings"

// Immutable geographic point with optional city/state labels.
type Location struct {
	Lat   float64
	Lon   float64
	City  string
	State string
}

// Label returns the "City, ST" form used for cache keys and route signatures.
func (l Location) Label() string {
	city := strings.TrimSpace(l.City)
	if city == "" {
		city = "Unknown"
	}
	return city + ", " + strings.TrimSpace(l.State)
}
