package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLoadsQuery := `
	CREATE TABLE IF NOT EXISTS loads (
		load_id TEXT PRIMARY KEY,
		origin_lat REAL NOT NULL,
		origin_lon REAL NOT NULL,
		origin_city TEXT NOT NULL DEFAULT '',
		origin_state TEXT NOT NULL DEFAULT '',
		dest_lat REAL NOT NULL,
		dest_lon REAL NOT NULL,
		dest_city TEXT NOT NULL DEFAULT '',
		dest_state TEXT NOT NULL DEFAULT '',
		pickup_earliest TEXT NOT NULL,
		pickup_latest TEXT NOT NULL,
		delivery_earliest TEXT NOT NULL,
		delivery_latest TEXT NOT NULL,
		distance_miles REAL NOT NULL DEFAULT 0,
		revenue_amount REAL NOT NULL DEFAULT 0,
		rate_per_mile REAL,
		weight_pounds REAL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		miles REAL NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_loads_origin_state
	ON loads(origin_state, origin_city);
	`

	statements := []string{
		createLoadsQuery,
		createDistanceCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type locationSeed struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	State     string  `json:"state"`
}

type windowSeed struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

type LoadSeed struct {
	ID             string       `json:"id"`
	Origin         locationSeed `json:"origin"`
	Destination    locationSeed `json:"destination"`
	PickupWindow   windowSeed   `json:"pickupWindow"`
	DeliveryWindow windowSeed   `json:"deliveryWindow"`
	DistanceMiles  float64      `json:"distanceMiles"`
	Revenue        struct {
		Amount      float64  `json:"amount"`
		RatePerMile *float64 `json:"rate_per_mile"`
	} `json:"revenue"`
	Requirements struct {
		WeightPounds *float64 `json:"weightPounds"`
	} `json:"requirements"`
}

// Populate the database with load postings from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed loads: read %q: %w", jsonPath, err)
	}

	var data []LoadSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed loads: parse json: %w", err)
	}

	for i, item := range data {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("seed loads: item at index %d: id cannot be empty", i+1)
		}
		if item.PickupWindow.Earliest == "" || item.DeliveryWindow.Latest == "" {
			return fmt.Errorf("seed loads: load %q: time windows cannot be empty", item.ID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed loads: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO loads (
		load_id,
		origin_lat, origin_lon, origin_city, origin_state,
		dest_lat, dest_lon, dest_city, dest_state,
		pickup_earliest, pickup_latest,
		delivery_earliest, delivery_latest,
		distance_miles, revenue_amount, rate_per_mile, weight_pounds
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed loads: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range data {
		_, err := stmt.Exec(
			l.ID,
			l.Origin.Latitude, l.Origin.Longitude, l.Origin.City, l.Origin.State,
			l.Destination.Latitude, l.Destination.Longitude, l.Destination.City, l.Destination.State,
			l.PickupWindow.Earliest, l.PickupWindow.Latest,
			l.DeliveryWindow.Earliest, l.DeliveryWindow.Latest,
			l.DistanceMiles, l.Revenue.Amount, l.Revenue.RatePerMile, l.Requirements.WeightPounds,
		)
		if err != nil {
			return fmt.Errorf("seed loads: insert load_id=%q: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed loads: commit tx: %w", err)
	}

	return nil
}
