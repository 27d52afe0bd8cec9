package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"loadboard-route-service/internal/api/dto"
	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/ports"
	"loadboard-route-service/internal/services"
	"loadboard-route-service/internal/timeref"
)

// SolverHandler assembles VRPTW solver input from a load set and, when a
// solver is wired, can submit it in the same call.
type SolverHandler struct {
	Repo   ports.LoadRepository
	Solver ports.Solver
}

// BuildInput handles POST /solver/input. With ?solve=true and a configured
// solver the assembled problem is also submitted and the solution attached.
func (h *SolverHandler) BuildInput(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SearchRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	criteria, err := toDomainCriteria(req.SearchCriteria)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var loads []domain.Load
	if len(req.Loads) > 0 {
		loads, err = toDomainLoads(req.Loads)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	} else if h.Repo != nil {
		loads, err = h.Repo.ListLoads(r.Context())
		if err != nil {
			log.Printf("list loads failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	clock := timeref.NewClock(loads)
	input, nodes, err := services.BuildSolverInput(criteria, loads, clock)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("build solver input failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.SolverInputResponse{Input: input, Nodes: nodes}

	if r.URL.Query().Get("solve") == "true" {
		if h.Solver == nil {
			writeError(w, r, http.StatusBadRequest, "no solver configured")
			return
		}
		solution, err := h.Solver.Solve(r.Context(), input)
		if err != nil {
			log.Printf("solve failed: %v", err)
			writeError(w, r, http.StatusBadGateway, "solver unavailable")
			return
		}
		res.Solution = &solution
	}

	writeJSON(w, r, http.StatusOK, res)
}
