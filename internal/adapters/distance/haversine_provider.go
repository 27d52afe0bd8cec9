package distance

import (
	"context"

	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/geo"
	"loadboard-route-service/internal/ports"
)

// HaversineProvider implements DistanceProvider with great-circle math.
// It is the terminal fallback when no pre-computed road distance exists.
type HaversineProvider struct{}

func NewHaversineProvider() *HaversineProvider { return &HaversineProvider{} }

func (p *HaversineProvider) GetDistance(
	_ context.Context,
	from, to domain.Location,
) (ports.DistanceResult, error) {
	miles := geo.DistanceMiles(from.Lat, from.Lon, to.Lat, to.Lon)
	return ports.DistanceResult{Miles: miles}, nil
}
