package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"loadboard-route-service/internal/platform/obs"
	"loadboard-route-service/internal/ports"
)

// SQLDistanceCache is a SQL-backed cache for pre-computed road distances,
// keyed by location labels. Driving distances beat great-circle estimates
// when available, so hits are preferred by the cached provider.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// Fetch the cached road distance for one origin/destination label pair.
func (s *SQLDistanceCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.DistanceResult, _ bool, err error) {
	defer obs.Time(ctx, "distance.cache.Get")(&err)

	if s.DB == nil {
		return ports.DistanceResult{}, false, errors.New("distance cache: db is nil")
	}
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return ports.DistanceResult{}, false, errors.New("get distance cache: origin and destination must not be empty")
	}

	q := `
	SELECT miles
	FROM distance_cache
	WHERE origin = ? AND destination = ?;
	`

	var miles float64
	switch err := s.DB.QueryRowContext(ctx, q, origin, destination).Scan(&miles); {
	case errors.Is(err, sql.ErrNoRows):
		return ports.DistanceResult{}, false, nil
	case err != nil:
		return ports.DistanceResult{}, false, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}

	return ports.DistanceResult{Miles: miles}, true, nil
}

// Store a road distance for one origin/destination label pair.
func (s *SQLDistanceCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	result ports.DistanceResult,
) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return errors.New("insert distance cache: origin and destination must not be empty")
	}

	q := `
	INSERT INTO distance_cache (origin, destination, miles)
	VALUES (?, ?, ?)
	ON CONFLICT (origin, destination) DO UPDATE
	SET miles = excluded.miles;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, result.Miles); err != nil {
		return fmt.Errorf("insert distance cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
