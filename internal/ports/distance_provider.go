package ports

import (
	"context"
	"loadboard-route-service/internal/domain"
)

// Road distance between two locations.
type DistanceResult struct {
	Miles float64
}

// Contract for resolving road distance between two already-geocoded
// locations. Used to fill in loaded-leg mileage when a posting omits it;
// the search itself stays on great-circle arithmetic.
type DistanceProvider interface {
	// Return road miles between two locations.
	GetDistance(ctx context.Context, from, to domain.Location) (DistanceResult, error)
}

// Cache boundary for pre-computed road distances, keyed by location labels.
// The ok result distinguishes a miss from a zero-mile hit.
type DistanceCache interface {
	Get(ctx context.Context, origin, destination string) (DistanceResult, bool, error)
	Put(ctx context.Context, origin, destination string, result DistanceResult) error
}
