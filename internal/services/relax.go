package services

import (
	"fmt"
	"log"
	"math"

	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/timeref"
)

// Tuning holds the relaxation-loop and load-count tiering parameters. These
// are configuration, not constants: cmd wiring may override any of them from
// the environment.
type Tuning struct {
	DeadheadStepMiles    float64 // tolerance increment per relaxation iteration
	MaxIterations        int     // relaxation iteration cap
	DeadheadCeilingMiles float64 // absolute deadhead tolerance ceiling
	TargetRouteCount     int     // minimum useful yield before relaxing stops

	// Tiering by load count, to bound combinatorial cost on large boards.
	MediumLoadThreshold    int     // loads above this get the medium tier
	LargeLoadThreshold     int     // loads above this get the large tier
	MediumMaxDeadheadRatio float64 // ratio ceiling floor for the medium tier
	LargeMaxDeadheadRatio  float64 // ratio ceiling floor for the large tier
	TieredMaxChainLength   int     // chain-length cap for medium and large tiers

	EnforceDutyLimits bool // reject (rather than log) duty-hours violations
	DutyLimits        DutyLimits
}

func DefaultTuning() Tuning {
	return Tuning{
		DeadheadStepMiles:      50,
		MaxIterations:          10,
		DeadheadCeilingMiles:   500,
		TargetRouteCount:       10,
		MediumLoadThreshold:    50,
		LargeLoadThreshold:     100,
		MediumMaxDeadheadRatio: 0.8,
		LargeMaxDeadheadRatio:  0.85,
		TieredMaxChainLength:   3,
		EnforceDutyLimits:      false,
		DutyLimits:             DefaultDutyLimits(),
	}
}

// SearchResult is the outcome of one full search: the ranked, capped route
// list plus the tolerances the accepted iteration used. An empty Routes slice
// with a message is a normal outcome.
type SearchResult struct {
	Routes                   []domain.RouteOption
	Message                  string
	Iterations               int
	OriginDeadheadMiles      float64
	DestinationDeadheadMiles float64
}

// FindRoutes runs the full pipeline under the adaptive relaxation controller:
// per iteration it rebuilds the chain graph, runs the DFS, dedups, filters
// and ranks, and returns as soon as the yield meets the target. Otherwise
// both deadhead tolerances grow by the fixed step and the iteration retries,
// remembering the largest route set seen, until the iteration cap or the
// deadhead ceiling is reached.
func FindRoutes(criteria domain.SearchCriteria, loads []domain.Load, tuning Tuning) SearchResult {
	criteria = criteria.Normalize()
	opts := criteria.Options

	// Tier adjustments scale filter looseness with input size. Loosening
	// never tightens a caller-supplied value.
	maxRatio := opts.MaxDeadheadRatio
	maxChain := opts.MaxChainLength
	switch {
	case len(loads) > tuning.LargeLoadThreshold:
		maxRatio = math.Max(maxRatio, tuning.LargeMaxDeadheadRatio)
		maxChain = minInt(maxChain, tuning.TieredMaxChainLength)
	case len(loads) > tuning.MediumLoadThreshold:
		maxRatio = math.Max(maxRatio, tuning.MediumMaxDeadheadRatio)
		maxChain = minInt(maxChain, tuning.TieredMaxChainLength)
	}

	logUnparseableWindows(loads)

	// One reference instant per search: every iteration shares the clock.
	clock := timeref.NewClock(loads)

	originTol := opts.MaxOriginDeadheadMiles
	destTol := opts.MaxDestinationDeadheadMiles

	var best SearchResult

	for iter := 1; iter <= tuning.MaxIterations; iter++ {
		graph := BuildChainGraph(loads, originTol, clock)

		candidates := runSearch(loads, graph, clock, criteria, searchParams{
			OriginToleranceMiles:      originTol,
			DestinationToleranceMiles: destTol,
			MaxChainLength:            maxChain,
			EnforceDutyLimits:         tuning.EnforceDutyLimits,
			DutyLimits:                tuning.DutyLimits,
		})

		routes := DedupRoutes(candidates)
		routes = ApplyQualityFilters(routes, opts.MinRevenue, maxRatio, tuning.TargetRouteCount)
		RankRoutes(routes)
		routes = CapAndNumber(routes, opts.MaxRoutes)

		log.Printf("route search iteration=%d origin_tolerance=%.0fmi edges=%d candidates=%d routes=%d",
			iter, originTol, graph.EdgeCount(), len(candidates), len(routes))

		if len(routes) >= tuning.TargetRouteCount {
			return SearchResult{
				Routes:                   routes,
				Message:                  fmt.Sprintf("found %d route options", len(routes)),
				Iterations:               iter,
				OriginDeadheadMiles:      originTol,
				DestinationDeadheadMiles: destTol,
			}
		}

		if len(routes) > len(best.Routes) || best.Iterations == 0 {
			best = SearchResult{
				Routes:                   routes,
				Iterations:               iter,
				OriginDeadheadMiles:      originTol,
				DestinationDeadheadMiles: destTol,
			}
		}

		if originTol >= tuning.DeadheadCeilingMiles {
			break
		}
		originTol = math.Min(originTol+tuning.DeadheadStepMiles, tuning.DeadheadCeilingMiles)
		destTol = math.Min(destTol+tuning.DeadheadStepMiles, tuning.DeadheadCeilingMiles)
	}

	if len(best.Routes) == 0 {
		best.Message = "no feasible route chains found within search limits"
	} else {
		best.Message = fmt.Sprintf("found %d route options after relaxed search", len(best.Routes))
	}
	return best
}

// logUnparseableWindows reports every window bound that will degrade to the
// reference instant during the search. The search stays permissive; this is
// the operational signal for it.
func logUnparseableWindows(loads []domain.Load) {
	for _, l := range loads {
		bounds := [...]struct{ name, value string }{
			{"pickup_earliest", l.PickupWindow.Earliest},
			{"pickup_latest", l.PickupWindow.Latest},
			{"delivery_earliest", l.DeliveryWindow.Earliest},
			{"delivery_latest", l.DeliveryWindow.Latest},
		}
		for _, b := range bounds {
			if _, ok := timeref.Parse(b.value); !ok {
				log.Printf("window parse failed: load_id=%s bound=%s value=%q", l.ID, b.name, b.value)
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
