package domain

// TimeWindow holds raw ISO-8601 bounds. Bounds stay as strings; all arithmetic
// happens on minute offsets produced by timeref.Clock so that every comparison
// in one search shares a single reference instant.
type TimeWindow struct {
	Earliest string
	Latest   string
}

// Revenue for a single load. RatePerMile is nil when the posting omitted it.
type Revenue struct {
	Amount      float64
	RatePerMile *float64
}

// Load is a single posted load. Immutable for the duration of a search.
type Load struct {
	ID             string
	Origin         Location
	Destination    Location
	PickupWindow   TimeWindow
	DeliveryWindow TimeWindow
	DistanceMiles  float64
	Revenue        Revenue
	WeightPounds   *float64
}
