package dto

import (
	"loadboard-route-service/internal/ports"
	"loadboard-route-service/internal/services"
)

// SolverInputResponse is the body of POST /solver/input: the assembled
// request, the node legend for mapping stop indexes back to places, and the
// external solver's solution when one was requested and a solver is wired.
type SolverInputResponse struct {
	Input    ports.SolveRequest    `json:"input"`
	Nodes    []services.SolverNode `json:"nodes"`
	Solution *ports.Solution       `json:"solution,omitempty"`
}
