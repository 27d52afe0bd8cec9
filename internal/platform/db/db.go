// Package db opens the postgres handle used by the seeding tool.
package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Modest pool: the seeding tool runs one statement stream at a time, and a
// shared load board rarely sees more than a handful of writers.
const (
	maxOpenConns    = 10
	maxIdleConns    = 10
	connMaxLifetime = 30 * time.Minute
)

func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("open postgres: verify connection: %w", err)
	}

	return db, nil
}
