package services

import (
	"math"
	"sort"

	"loadboard-route-service/internal/domain"
)

// Per-segment penalty applied to chains of three or more legs, relative to
// two-leg chains.
const chainLengthPenaltyMiles = 50

// DedupRoutes collapses candidates with identical ordered origin->destination
// label sequences, keeping the first occurrence.
func DedupRoutes(routes []domain.RouteOption) []domain.RouteOption {
	seen := make(map[string]struct{}, len(routes))
	unique := make([]domain.RouteOption, 0, len(routes))

	for _, r := range routes {
		sig := r.SignatureByLabels()
		if _, ok := seen[sig]; ok {
			continue
		}
		seen[sig] = struct{}{}
		unique = append(unique, r)
	}

	return unique
}

// filterRoutes keeps routes meeting the revenue floor and, when maxRatio is
// positive, the deadhead-ratio ceiling. A non-positive maxRatio disables the
// ratio filter.
func filterRoutes(routes []domain.RouteOption, minRevenue, maxRatio float64) []domain.RouteOption {
	kept := make([]domain.RouteOption, 0, len(routes))
	for _, r := range routes {
		if r.TotalRevenue < minRevenue {
			continue
		}
		if maxRatio > 0 && r.DeadheadRatio() > maxRatio {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// ApplyQualityFilters runs the revenue and deadhead-ratio filters, then
// relaxes in stages while the yield is under target: first the ratio ceiling
// is widened to min(0.95, configured+0.2), then dropped entirely, keeping the
// revenue floor. A relaxation step is accepted only when it yields at least
// as many routes as the prior stage.
func ApplyQualityFilters(routes []domain.RouteOption, minRevenue, maxRatio float64, targetCount int) []domain.RouteOption {
	kept := filterRoutes(routes, minRevenue, maxRatio)
	if len(kept) >= targetCount || len(kept) == len(routes) {
		return kept
	}

	relaxedRatio := math.Min(0.95, maxRatio+0.2)
	if relaxed := filterRoutes(routes, minRevenue, relaxedRatio); len(relaxed) >= len(kept) {
		kept = relaxed
	}
	if len(kept) >= targetCount {
		return kept
	}

	if relaxed := filterRoutes(routes, minRevenue, 0); len(relaxed) >= len(kept) {
		kept = relaxed
	}
	return kept
}

// lengthPenalty is 50 miles per segment beyond two; one- and two-leg chains
// carry no penalty.
func lengthPenalty(r domain.RouteOption) float64 {
	if len(r.Segments) < 3 {
		return 0
	}
	return chainLengthPenaltyMiles * float64(len(r.Segments)-2)
}

func loadedRatio(r domain.RouteOption) float64 {
	total := r.TotalDistance + r.TotalDeadhead
	if total <= 0 {
		return 0
	}
	return r.TotalDistance / total
}

// compareRoutes is the explicit ranking comparator. Field priority:
//  1. loaded miles, higher first
//  2. loaded-to-total miles ratio, higher first
//  3. total miles (loaded + deadhead), lower first
//  4. deadhead miles, lower first
//  5. chain-length penalty, lower first
//
// Returns <0 when a ranks before b.
func compareRoutes(a, b domain.RouteOption) int {
	if a.TotalDistance != b.TotalDistance {
		if a.TotalDistance > b.TotalDistance {
			return -1
		}
		return 1
	}

	ra, rb := loadedRatio(a), loadedRatio(b)
	if ra != rb {
		if ra > rb {
			return -1
		}
		return 1
	}

	ta := a.TotalDistance + a.TotalDeadhead
	tb := b.TotalDistance + b.TotalDeadhead
	if ta != tb {
		if ta < tb {
			return -1
		}
		return 1
	}

	if a.TotalDeadhead != b.TotalDeadhead {
		if a.TotalDeadhead < b.TotalDeadhead {
			return -1
		}
		return 1
	}

	pa, pb := lengthPenalty(a), lengthPenalty(b)
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	default:
		return 0
	}
}

// RankRoutes sorts routes by the composite quality key. The sort is stable:
// candidates that compare equal keep their discovery order, so identical
// inputs always produce identical orderings.
func RankRoutes(routes []domain.RouteOption) {
	sort.SliceStable(routes, func(i, j int) bool {
		return compareRoutes(routes[i], routes[j]) < 0
	})
}

// CapAndNumber truncates to the route limit and reassigns route ids 1..N in
// final order.
func CapAndNumber(routes []domain.RouteOption, maxRoutes int) []domain.RouteOption {
	if maxRoutes > 0 && len(routes) > maxRoutes {
		routes = routes[:maxRoutes]
	}
	for i := range routes {
		routes[i].RouteID = i + 1
	}
	return routes
}
