package ports

import (
	"context"
	"loadboard-route-service/internal/domain"
)

// Port: a boundary for retrieving Load entities from a data source. The
// search core never touches persistence; it operates on the in-memory slice
// this port returns.
type LoadRepository interface {
	// Retrieve all loads available for chaining.
	ListLoads(ctx context.Context) ([]domain.Load, error)
}
