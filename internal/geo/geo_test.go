package geo

import (
	"math"
	"testing"
)

func TestDistanceMilesAlongMeridian(t *testing.T) {
	// One degree of latitude is about 69.1 miles on a 3959-mile sphere.
	got := DistanceMiles(40, -100, 41, -100)
	if math.Abs(got-69.1) > 0.1 {
		t.Fatalf("expected ~69.1 miles, got %f", got)
	}
}

func TestDistanceMilesZero(t *testing.T) {
	if got := DistanceMiles(47.6, -122.3, 47.6, -122.3); got != 0 {
		t.Fatalf("expected 0 miles for identical points, got %f", got)
	}
}

func TestDistanceMilesSymmetric(t *testing.T) {
	ab := DistanceMiles(47.6062, -122.3321, 45.5152, -122.6784)
	ba := DistanceMiles(45.5152, -122.6784, 47.6062, -122.3321)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %f and %f", ab, ba)
	}
	// Seattle to Portland is roughly 146 great-circle miles.
	if ab < 140 || ab > 152 {
		t.Fatalf("Seattle-Portland distance out of range: %f", ab)
	}
}
