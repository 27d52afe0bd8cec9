package api

import (
	"net/http"

	"loadboard-route-service/internal/api/handlers"
	"loadboard-route-service/internal/ports"
	"loadboard-route-service/internal/services"
)

// Deps carries the collaborators the HTTP surface needs. Planner and Solver
// are optional; their endpoints degrade when unset.
type Deps struct {
	Repo     ports.LoadRepository
	Provider ports.DistanceProvider
	Planner  ports.TripPlanner
	Solver   ports.Solver
	Tuning   services.Tuning
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		Repo:     deps.Repo,
		Provider: deps.Provider,
		Planner:  deps.Planner,
		Tuning:   deps.Tuning,
	}
	loadHandler := &handlers.LoadHandler{Repo: deps.Repo}
	solverHandler := &handlers.SolverHandler{Repo: deps.Repo, Solver: deps.Solver}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/loads", loadHandler.List)
	mux.HandleFunc("/routes/search", routeHandler.Search)
	mux.HandleFunc("/solver/input", solverHandler.BuildInput)

	return loggingMiddleware(mux)
}
