package services

import (
	"fmt"
	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/geo"
	"loadboard-route-service/internal/ports"
	"loadboard-route-service/internal/timeref"
)

// Solver input defaults: a single vehicle, a typical dry-van payload and a
// generous planning horizon keep the external solver's problem feasible.
const (
	solverVehicleCapacityLbs = 45000
	solverHorizonMinutes     = 1440 * 20
	solverWindowLeadMinutes  = 60
	solverWindowLagMinutes   = 1440
)

// SolverNode describes one matrix node for callers that need to map stop
// sequences back to places.
type SolverNode struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Kind string  `json:"kind"` // depot, pickup or delivery
	City string  `json:"city"`
}

// BuildSolverInput assembles the travel-time matrix, demand vector and
// minute-offset time windows the external VRPTW solver consumes. Node 0 is
// the depot (the search origin); pickup and delivery nodes are deduplicated
// by coordinates. Travel times are great-circle estimates at 50 mph unless a
// load provides a direct leg between two nodes.
func BuildSolverInput(criteria domain.SearchCriteria, loads []domain.Load, clock timeref.Clock) (ports.SolveRequest, []SolverNode, error) {
	if len(loads) == 0 {
		return ports.SolveRequest{}, nil, fmt.Errorf("%w: no loads to solve", domain.ErrValidation)
	}

	type coordKey struct{ lat, lon float64 }

	nodes := []SolverNode{{
		Lat:  criteria.Origin.Lat,
		Lon:  criteria.Origin.Lon,
		Kind: "depot",
		City: criteria.Origin.City,
	}}
	index := map[coordKey]int{{criteria.Origin.Lat, criteria.Origin.Lon}: 0}

	intern := func(loc domain.Location, kind string) int {
		key := coordKey{loc.Lat, loc.Lon}
		if i, ok := index[key]; ok {
			return i
		}
		i := len(nodes)
		index[key] = i
		nodes = append(nodes, SolverNode{Lat: loc.Lat, Lon: loc.Lon, Kind: kind, City: loc.City})
		return i
	}

	type legInfo struct {
		pickup, delivery int
		load             domain.Load
	}

	pairs := make([][2]int, 0, len(loads))
	legs := make([]legInfo, 0, len(loads))
	for _, l := range loads {
		p := intern(l.Origin, "pickup")
		d := intern(l.Destination, "delivery")
		if p == d {
			return ports.SolveRequest{}, nil, fmt.Errorf("%w: load %q has identical pickup and delivery coordinates", domain.ErrValidation, l.ID)
		}
		pairs = append(pairs, [2]int{p, d})
		legs = append(legs, legInfo{pickup: p, delivery: d, load: l})
	}

	n := len(nodes)

	// Direct loaded legs override the haversine estimate for their node pair.
	direct := make(map[[2]int]int, len(legs))
	for _, leg := range legs {
		if leg.load.DistanceMiles > 0 {
			direct[[2]int{leg.pickup, leg.delivery}] = loadedTravelMinutes(leg.load.DistanceMiles)
		}
	}

	matrix := make([][]int, n)
	for i := 0; i < n; i++ {
		row := make([]int, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if m, ok := direct[[2]int{i, j}]; ok && m > 0 {
				row[j] = m
				continue
			}
			miles := geo.DistanceMiles(nodes[i].Lat, nodes[i].Lon, nodes[j].Lat, nodes[j].Lon)
			row[j] = loadedTravelMinutes(miles)
		}
		matrix[i] = row
	}

	demands := make([]int, n)
	for _, leg := range legs {
		w := 0
		if leg.load.WeightPounds != nil {
			w = int(*leg.load.WeightPounds)
		}
		demands[leg.pickup] += w
		demands[leg.delivery] -= w
	}

	// Per node, the union of every window touching it, widened by a lead and
	// lag buffer; nodes with no parseable window span the whole horizon.
	windows := make([][2]int, n)
	windows[0] = [2]int{0, solverHorizonMinutes}
	for i := 1; i < n; i++ {
		earliest, latest, found := 0, 0, false
		consider := func(w domain.TimeWindow) {
			e, okE := clock.Minutes(w.Earliest)
			l, okL := clock.Minutes(w.Latest)
			if !okE || !okL {
				return
			}
			if !found || e < earliest {
				earliest = e
			}
			if !found || l > latest {
				latest = l
			}
			found = true
		}
		for _, leg := range legs {
			if leg.pickup == i {
				consider(leg.load.PickupWindow)
			}
			if leg.delivery == i {
				consider(leg.load.DeliveryWindow)
			}
		}
		if found {
			earliest -= solverWindowLeadMinutes
			if earliest < 0 {
				earliest = 0
			}
			windows[i] = [2]int{earliest, latest + solverWindowLagMinutes}
		} else {
			windows[i] = [2]int{0, solverHorizonMinutes}
		}
	}

	req := ports.SolveRequest{
		TimeMatrix:        matrix,
		PickupsDeliveries: pairs,
		Demands:           demands,
		TimeWindows:       windows,
		NumVehicles:       1,
		VehicleCapacity:   solverVehicleCapacityLbs,
		MaxRouteTime:      solverHorizonMinutes,
		DepotIndex:        0,
	}
	return req, nodes, nil
}
