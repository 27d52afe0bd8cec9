package services

import (
	"log"
	"sort"
	"strings"

	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/geo"
	"loadboard-route-service/internal/timeref"
)

// Anti-backtracking thresholds, evaluated once a chain has at least two legs.
const (
	// Reject extensions that move more than this much farther from the
	// search destination than the previous leg did.
	maxAwayFromTargetMiles = 100
	// Reject extensions that double back toward the search origin by more
	// than this much versus the previous leg.
	maxBackTowardOriginMiles = 50
)

// ChainLeg is one load in a chain plus the deadhead miles driven to reach it.
type ChainLeg struct {
	Load           domain.Load
	DeadheadBefore float64
}

// searchParams are the per-iteration knobs the relaxation controller adjusts.
type searchParams struct {
	OriginToleranceMiles      float64
	DestinationToleranceMiles float64
	MaxChainLength            int
	EnforceDutyLimits         bool
	DutyLimits                DutyLimits
}

// searchContext owns all mutable state of one DFS invocation. Nothing here
// outlives the search call, keeping concurrent invocations independent.
type searchContext struct {
	loads    []domain.Load
	graph    ChainGraph
	clock    timeref.Clock
	criteria domain.SearchCriteria
	params   searchParams

	processed map[string]struct{}
	results   []domain.RouteOption
}

// runSearch enumerates candidate chains: a depth-bounded DFS from every load
// reachable from the search origin, plus an independent single-load pass so
// direct options survive any chain-extension pruning. Seed order (ascending
// origin deadhead) and edge order are deterministic; first occurrence of a
// signature wins.
func runSearch(
	loads []domain.Load,
	graph ChainGraph,
	clock timeref.Clock,
	criteria domain.SearchCriteria,
	params searchParams,
) []domain.RouteOption {
	ctx := &searchContext{
		loads:     loads,
		graph:     graph,
		clock:     clock,
		criteria:  criteria,
		params:    params,
		processed: make(map[string]struct{}),
	}

	type seed struct {
		index    int
		deadhead float64
	}

	seeds := make([]seed, 0, len(loads))
	for i, l := range loads {
		d := geo.DistanceMiles(criteria.Origin.Lat, criteria.Origin.Lon, l.Origin.Lat, l.Origin.Lon)
		if d <= params.OriginToleranceMiles {
			seeds = append(seeds, seed{index: i, deadhead: d})
		}
	}
	// Stable sort keeps input order for equal deadheads (determinism).
	sort.SliceStable(seeds, func(a, b int) bool { return seeds[a].deadhead < seeds[b].deadhead })

	for _, s := range seeds {
		chain := []ChainLeg{{Load: loads[s.index], DeadheadBefore: s.deadhead}}
		ctx.record(chain)
		ctx.extend(chain, s.index)
	}

	// Single-load fallback: every in-tolerance load is a candidate route even
	// when DFS pruning discarded the prefix. Signature dedup makes repeats a
	// no-op.
	for _, s := range seeds {
		ctx.record([]ChainLeg{{Load: loads[s.index], DeadheadBefore: s.deadhead}})
	}

	return ctx.results
}

// extend tries every outgoing edge of the chain's last load, applying the
// depth cap and geographic anti-backtracking pruning, and recurses. Depth is
// bounded by MaxChainLength so recursion depth stays trivially small.
func (c *searchContext) extend(chain []ChainLeg, lastIndex int) {
	if len(chain) >= c.params.MaxChainLength {
		return
	}

	prevDest := chain[len(chain)-1].Load.Destination

	for _, edge := range c.graph.Edges[lastIndex] {
		next := c.loads[edge.Next]

		if chainContains(chain, next.ID) {
			continue
		}
		if c.backtracks(chain, prevDest, next) {
			continue
		}

		grown := make([]ChainLeg, len(chain), len(chain)+1)
		copy(grown, chain)
		grown = append(grown, ChainLeg{Load: next, DeadheadBefore: edge.Deadhead})

		c.record(grown)
		c.extend(grown, edge.Next)
	}
}

// backtracks applies the geographic pruning rules to a proposed extension:
// no destination state may repeat, the chain must not drift more than 100
// miles farther from the target than its previous leg, and it must not fall
// back more than 50 miles toward the origin.
func (c *searchContext) backtracks(chain []ChainLeg, prevDest domain.Location, next domain.Load) bool {
	nextState := strings.TrimSpace(next.Destination.State)
	if nextState != "" {
		for _, leg := range chain {
			if strings.TrimSpace(leg.Load.Destination.State) == nextState {
				return true
			}
		}
	}

	if dest := c.criteria.Destination; dest != nil {
		prevToTarget := geo.DistanceMiles(prevDest.Lat, prevDest.Lon, dest.Lat, dest.Lon)
		nextToTarget := geo.DistanceMiles(next.Destination.Lat, next.Destination.Lon, dest.Lat, dest.Lon)
		if nextToTarget > prevToTarget+maxAwayFromTargetMiles {
			return true
		}
	}

	origin := c.criteria.Origin
	prevFromOrigin := geo.DistanceMiles(prevDest.Lat, prevDest.Lon, origin.Lat, origin.Lon)
	nextFromOrigin := geo.DistanceMiles(next.Destination.Lat, next.Destination.Lon, origin.Lat, origin.Lon)

	return nextFromOrigin < prevFromOrigin-maxBackTowardOriginMiles
}

// record validates a chain and, if structurally feasible, appends it as a
// candidate route. Each load-ID signature is processed at most once. The
// duty-time check is advisory unless enforcement is configured.
func (c *searchContext) record(chain []ChainLeg) {
	sig := chainSignature(chain)
	if _, seen := c.processed[sig]; seen {
		return
	}
	c.processed[sig] = struct{}{}

	for i := 1; i < len(chain); i++ {
		check := CanChain(chain[i-1].Load, chain[i].Load, c.params.OriginToleranceMiles, c.clock)
		if !check.OK {
			return
		}
	}

	if duty := c.validateDuty(chain); !duty.Valid {
		log.Printf("duty check failed: chain=%s reason=%q", sig, duty.Reason)
		if c.params.EnforceDutyLimits {
			return
		}
	}

	c.results = append(c.results, c.buildRoute(chain))
}

// validateDuty starts the simulated clock so the vehicle reaches the first
// pickup exactly at its earliest bound.
func (c *searchContext) validateDuty(chain []ChainLeg) DutyCheck {
	first := chain[0]
	start := 0
	if earliest, ok := c.clock.Minutes(first.Load.PickupWindow.Earliest); ok {
		start = earliest - travelMinutes(first.DeadheadBefore)
	}
	return ValidateDutyTime(chain, start, c.params.DutyLimits, c.clock)
}

func (c *searchContext) buildRoute(chain []ChainLeg) domain.RouteOption {
	route := domain.RouteOption{Segments: make([]domain.RouteSegment, 0, len(chain))}

	for _, leg := range chain {
		l := leg.Load
		route.Segments = append(route.Segments, domain.RouteSegment{
			LoadID:         l.ID,
			Origin:         l.Origin.Label(),
			Destination:    l.Destination.Label(),
			DistanceMiles:  l.DistanceMiles,
			Revenue:        l.Revenue.Amount,
			RatePerMile:    l.Revenue.RatePerMile,
			PickupWindow:   l.PickupWindow,
			DeliveryWindow: l.DeliveryWindow,
			WeightPounds:   l.WeightPounds,
			DeadheadBefore: leg.DeadheadBefore,
		})
		route.TotalDistance += l.DistanceMiles
		route.TotalRevenue += l.Revenue.Amount
		route.TotalDeadhead += leg.DeadheadBefore
	}

	// Destination proximity is an annotation, never a filter: chains are
	// returned whether or not they end near the stated destination.
	if dest := c.criteria.Destination; dest != nil {
		last := chain[len(chain)-1].Load.Destination
		final := geo.DistanceMiles(last.Lat, last.Lon, dest.Lat, dest.Lon)
		route.FinalDistanceToDest = &final
		route.EndsNearDestination = final <= c.params.DestinationToleranceMiles
	}

	return route
}

func chainContains(chain []ChainLeg, loadID string) bool {
	for _, leg := range chain {
		if leg.Load.ID == loadID {
			return true
		}
	}
	return false
}

func chainSignature(chain []ChainLeg) string {
	ids := make([]string, 0, len(chain))
	for _, leg := range chain {
		ids = append(ids, leg.Load.ID)
	}
	return strings.Join(ids, "|")
}
