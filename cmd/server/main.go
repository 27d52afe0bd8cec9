package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"loadboard-route-service/internal/adapters/cache"
	"loadboard-route-service/internal/adapters/distance"
	"loadboard-route-service/internal/adapters/narrative"
	"loadboard-route-service/internal/adapters/repositories"
	"loadboard-route-service/internal/adapters/solver"
	"loadboard-route-service/internal/api"
	"loadboard-route-service/internal/config"
	"loadboard-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, remote solver) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/loads.json")
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo loads on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	// Distance lookups go through a persistent cache; Redis when configured,
	// otherwise the SQLite table, with great-circle estimates on misses.
	var distanceCache ports.DistanceCache = cache.NewSQLDistanceCache(db)
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		distanceCache = cache.NewRedisDistanceCache(client)
		log.Printf("distance cache backend=redis addr=%s", addr)
	}
	provider, err := distance.NewCachedProvider(distanceCache, distance.NewHaversineProvider())
	if err != nil {
		log.Fatal(err)
	}

	deps := api.Deps{
		Repo:     repositories.NewSqliteLoadRepository(db),
		Provider: provider,
		Tuning:   config.TuningFromEnv(),
	}

	if url := strings.TrimSpace(os.Getenv("SOLVER_URL")); url != "" {
		deps.Solver, err = solver.NewHTTPClient(url)
		if err != nil {
			log.Fatal(err)
		}
	}
	if url := strings.TrimSpace(os.Getenv("PLANNER_URL")); url != "" {
		deps.Planner, err = narrative.NewHTTPTripPlanner(url)
		if err != nil {
			log.Fatal(err)
		}
	}

	router := api.NewRouter(deps)

	// The write timeout covers worst-case relaxed searches on large boards.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
