package services

import (
	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/timeref"
)

// chainEdge is a directed edge: the load at Next can follow the edge's owner,
// at the cost of Deadhead repositioning miles.
type chainEdge struct {
	Next     int
	Deadhead float64
}

// ChainGraph is the directed adjacency structure over a load slice. Edge
// order follows the nested index iteration of the build and must be
// preserved; downstream dedup relies on first-occurrence order.
type ChainGraph struct {
	Edges [][]chainEdge
}

// BuildChainGraph runs the chainability evaluator over every ordered pair of
// distinct loads. O(n^2); the dominant fixed cost of each search iteration.
func BuildChainGraph(loads []domain.Load, maxDeadheadMiles float64, clock timeref.Clock) ChainGraph {
	edges := make([][]chainEdge, len(loads))

	for i := range loads {
		for j := range loads {
			if i == j {
				continue
			}
			check := CanChain(loads[i], loads[j], maxDeadheadMiles, clock)
			if check.OK {
				edges[i] = append(edges[i], chainEdge{Next: j, Deadhead: check.DeadheadMiles})
			}
		}
	}

	return ChainGraph{Edges: edges}
}

// EdgeCount returns the number of directed edges, for diagnostics.
func (g ChainGraph) EdgeCount() int {
	n := 0
	for _, e := range g.Edges {
		n += len(e)
	}
	return n
}
