package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"loadboard-route-service/internal/domain"
)

// SQLite-backed implementation of the LoadRepository port.
type SqliteLoadRepository struct{ DB *sql.DB }

func NewSqliteLoadRepository(db *sql.DB) *SqliteLoadRepository {
	return &SqliteLoadRepository{DB: db}
}

// Return all load postings stored in the database, ordered by id for
// deterministic search input.
func (s *SqliteLoadRepository) ListLoads(ctx context.Context) ([]domain.Load, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite load repository: DB is nil")
	}

	query := `
	SELECT
		load_id,
		origin_lat, origin_lon, origin_city, origin_state,
		dest_lat, dest_lon, dest_city, dest_state,
		pickup_earliest, pickup_latest,
		delivery_earliest, delivery_latest,
		distance_miles, revenue_amount, rate_per_mile, weight_pounds
	FROM loads
	ORDER BY load_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list loads: query loads table: %w", err)
	}
	defer rows.Close()

	loads := make([]domain.Load, 0, 64)
	for rows.Next() {
		var l domain.Load
		var ratePerMile, weightPounds sql.NullFloat64

		err := rows.Scan(
			&l.ID,
			&l.Origin.Lat, &l.Origin.Lon, &l.Origin.City, &l.Origin.State,
			&l.Destination.Lat, &l.Destination.Lon, &l.Destination.City, &l.Destination.State,
			&l.PickupWindow.Earliest, &l.PickupWindow.Latest,
			&l.DeliveryWindow.Earliest, &l.DeliveryWindow.Latest,
			&l.DistanceMiles, &l.Revenue.Amount, &ratePerMile, &weightPounds,
		)
		if err != nil {
			return nil, fmt.Errorf("list loads: scan row: %w", err)
		}

		if ratePerMile.Valid {
			v := ratePerMile.Float64
			l.Revenue.RatePerMile = &v
		}
		if weightPounds.Valid {
			v := weightPounds.Float64
			l.WeightPounds = &v
		}

		loads = append(loads, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list loads: row iteration: %w", err)
	}

	return loads, nil
}
