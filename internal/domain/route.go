package domain

// RouteSegment mirrors one load inside a chained route, plus the deadhead
// miles driven to reach its pickup.
type RouteSegment struct {
	LoadID         string
	Origin         string
	Destination    string
	DistanceMiles  float64
	Revenue        float64
	RatePerMile    *float64
	PickupWindow   TimeWindow
	DeliveryWindow TimeWindow
	WeightPounds   *float64
	DeadheadBefore float64
}

// RouteOption is one ranked chain of loads. RouteID is assigned after the
// final sort; EndsNearDestination is informational and never filters results.
type RouteOption struct {
	RouteID             int
	Segments            []RouteSegment
	TotalDistance       float64
	TotalRevenue        float64
	TotalDeadhead       float64
	EndsNearDestination bool
	FinalDistanceToDest *float64
}

// SignatureByLabels is the geographic identity of a route: the ordered
// origin->destination labels of its segments. Two chains built from different
// load IDs but identical legs collapse to one.
func (r RouteOption) SignatureByLabels() string {
	sig := ""
	for _, s := range r.Segments {
		sig += s.Origin + ">" + s.Destination + ";"
	}
	return sig
}

// DeadheadRatio is deadhead miles over total miles driven (loaded + deadhead).
func (r RouteOption) DeadheadRatio() float64 {
	total := r.TotalDistance + r.TotalDeadhead
	if total <= 0 {
		return 0
	}
	return r.TotalDeadhead / total
}
