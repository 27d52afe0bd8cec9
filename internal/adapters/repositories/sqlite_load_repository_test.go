package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, InitSchema(db))
	return db
}

func insertTestLoad(t *testing.T, db *sql.DB, id string, rate, weight any) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO loads (
			load_id,
			origin_lat, origin_lon, origin_city, origin_state,
			dest_lat, dest_lon, dest_city, dest_state,
			pickup_earliest, pickup_latest,
			delivery_earliest, delivery_latest,
			distance_miles, revenue_amount, rate_per_mile, weight_pounds
		) VALUES (?, 47.6, -122.3, 'Seattle', 'WA', 45.5, -122.7, 'Portland', 'OR',
			'2025-11-21T08:00:00-08:00', '2025-11-21T14:00:00-08:00',
			'2025-11-21T12:00:00-08:00', '2025-11-21T20:00:00-08:00',
			174, 650, ?, ?);`,
		id, rate, weight)
	require.NoError(t, err)
}

func TestListLoadsOrderedByID(t *testing.T) {
	db := newTestDB(t)
	insertTestLoad(t, db, "LD-2", 3.5, 24000.0)
	insertTestLoad(t, db, "LD-1", nil, nil)

	loads, err := NewSqliteLoadRepository(db).ListLoads(context.Background())
	require.NoError(t, err)
	require.Len(t, loads, 2)

	require.Equal(t, "LD-1", loads[0].ID)
	require.Equal(t, "LD-2", loads[1].ID)

	require.Nil(t, loads[0].Revenue.RatePerMile)
	require.Nil(t, loads[0].WeightPounds)

	require.NotNil(t, loads[1].Revenue.RatePerMile)
	require.Equal(t, 3.5, *loads[1].Revenue.RatePerMile)
	require.NotNil(t, loads[1].WeightPounds)
	require.Equal(t, 24000.0, *loads[1].WeightPounds)

	require.Equal(t, "Seattle, WA", loads[0].Origin.Label())
	require.Equal(t, "2025-11-21T08:00:00-08:00", loads[0].PickupWindow.Earliest)
	require.Equal(t, 174.0, loads[0].DistanceMiles)
}

func TestListLoadsEmptyTable(t *testing.T) {
	db := newTestDB(t)
	loads, err := NewSqliteLoadRepository(db).ListLoads(context.Background())
	require.NoError(t, err)
	require.Empty(t, loads)
}

func TestListLoadsNilDB(t *testing.T) {
	_, err := NewSqliteLoadRepository(nil).ListLoads(context.Background())
	require.Error(t, err)
}
