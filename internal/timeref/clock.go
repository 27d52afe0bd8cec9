// Package timeref normalizes load timestamps to minute offsets from a single
// reference instant so time-window arithmetic stays integer-only. Every
// comparison between two timestamps in the same search must go through the
// same Clock.
package timeref

import (
	"loadboard-route-service/internal/domain"
	"time"
)

// Fallback reference when no load carries a parseable pickup window.
var defaultEpoch = time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC)

// Offset assumed for timestamps that carry no explicit zone. Load postings
// historically arrive in Pacific local time.
var assumedZone = time.FixedZone("UTC-8", -8*60*60)

// Layouts without a zone designator, tried in assumedZone.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Clock converts ISO-8601 timestamps into minute offsets from Ref.
type Clock struct {
	Ref time.Time
}

// NewClock derives the reference instant for one search: 24 hours before the
// earliest parseable pickup-window-earliest across all loads, or the fixed
// epoch when none parses.
func NewClock(loads []domain.Load) Clock {
	var earliest time.Time
	found := false

	for _, l := range loads {
		t, ok := Parse(l.PickupWindow.Earliest)
		if !ok {
			continue
		}
		if !found || t.Before(earliest) {
			earliest = t
			found = true
		}
	}

	if !found {
		return Clock{Ref: defaultEpoch}
	}
	return Clock{Ref: earliest.Add(-24 * time.Hour).UTC()}
}

// Parse resolves an ISO-8601 timestamp to UTC. Offset-less stamps are assumed
// to be UTC-8. The bool reports whether the input was parseable.
func Parse(iso string) (time.Time, bool) {
	if iso == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t.UTC(), true
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, iso, assumedZone); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

// Minutes returns whole minutes elapsed from the reference instant to the
// given timestamp. Unparseable input yields (0, false): callers must treat a
// zero offset as either "exactly at reference" or "unparseable" and use the
// flag to tell them apart.
func (c Clock) Minutes(iso string) (int, bool) {
	t, ok := Parse(iso)
	if !ok {
		return 0, false
	}
	return int(t.Sub(c.Ref) / time.Minute), true
}
