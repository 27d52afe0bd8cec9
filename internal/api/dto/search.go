// Package dto defines the wire shapes of the HTTP API. Inbound payloads use
// the load-board's camelCase conventions; outbound payloads use snake_case.
package dto

// LocationRequest is one place in an inbound payload.
type LocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	State     string  `json:"state"`
}

// TimeWindowRequest carries raw ISO-8601 bounds. Parsing is deferred to the
// search so unparseable bounds degrade instead of rejecting the request.
type TimeWindowRequest struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// LoadRequest is one posted load in an inbound payload. The shape matches the
// board's export format, which is also the seed-file format.
type LoadRequest struct {
	ID             string            `json:"id"`
	Origin         LocationRequest   `json:"origin"`
	Destination    LocationRequest   `json:"destination"`
	PickupWindow   TimeWindowRequest `json:"pickupWindow"`
	DeliveryWindow TimeWindowRequest `json:"deliveryWindow"`
	DistanceMiles  float64           `json:"distanceMiles"`
	Revenue        struct {
		Amount      float64  `json:"amount"`
		RatePerMile *float64 `json:"rate_per_mile"`
	} `json:"revenue"`
	Requirements struct {
		WeightPounds *float64 `json:"weightPounds"`
	} `json:"requirements"`
}

// CriteriaRequest holds the search origin, optional destination and option
// overrides. Zero-valued options fall back to server defaults.
type CriteriaRequest struct {
	Origin                      *LocationRequest `json:"origin"`
	Destination                 *LocationRequest `json:"destination"`
	MaxOriginDeadheadMiles      float64          `json:"maxOriginDeadheadMiles"`
	MaxDestinationDeadheadMiles float64          `json:"maxDestinationDeadheadMiles"`
	MaxRoutes                   int              `json:"maxRoutes"`
	MinRevenue                  float64          `json:"minRevenue"`
	MaxDeadheadRatio            float64          `json:"maxDeadheadRatio"`
	MaxChainLength              int              `json:"maxChainLength"`
}

// SearchRequest is the body of POST /routes/search. Loads may be inlined;
// when absent the server searches its stored load board instead.
type SearchRequest struct {
	SearchCriteria CriteriaRequest `json:"searchCriteria"`
	Loads          []LoadRequest   `json:"loads"`
}

type TimeWindowResponse struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

type SegmentResponse struct {
	LoadID         string             `json:"load_id"`
	Origin         string             `json:"origin"`
	Destination    string             `json:"destination"`
	DistanceMiles  float64            `json:"distance_miles"`
	Revenue        float64            `json:"revenue"`
	RatePerMile    *float64           `json:"rate_per_mile,omitempty"`
	PickupWindow   TimeWindowResponse `json:"pickup_window"`
	DeliveryWindow TimeWindowResponse `json:"delivery_window"`
	WeightPounds   *float64           `json:"weight_pounds,omitempty"`
	DeadheadBefore float64            `json:"deadhead_before"`
}

type RouteResponse struct {
	RouteID             int               `json:"route_id"`
	Segments            []SegmentResponse `json:"segments"`
	TotalDistance       float64           `json:"total_distance"`
	TotalRevenue        float64           `json:"total_revenue"`
	TotalDeadhead       float64           `json:"total_deadhead"`
	DeadheadRatio       float64           `json:"deadhead_ratio"`
	EndsNearDestination bool              `json:"ends_near_destination"`
	FinalDistanceToDest *float64          `json:"final_distance_to_dest,omitempty"`
	TripPlan            *TripPlanResponse `json:"trip_plan,omitempty"`
}

type TripPlanResponse struct {
	Summary      string `json:"summary"`
	DetailedPlan string `json:"detailed_plan"`
}

type PaginationResponse struct {
	Page            int  `json:"page"`
	PageSize        int  `json:"page_size"`
	TotalPages      int  `json:"total_pages"`
	TotalRoutes     int  `json:"total_routes"`
	RoutesOnPage    int  `json:"routes_on_page"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
	NextPage        *int `json:"next_page"`
	PreviousPage    *int `json:"previous_page"`
}

// SearchStatsResponse reports what the relaxation controller settled on.
type SearchStatsResponse struct {
	Iterations               int     `json:"iterations"`
	OriginDeadheadMiles      float64 `json:"origin_deadhead_miles"`
	DestinationDeadheadMiles float64 `json:"destination_deadhead_miles"`
}

type SearchResponse struct {
	Message     string              `json:"message"`
	TotalRoutes int                 `json:"total_routes"`
	Routes      []RouteResponse     `json:"routes"`
	Pagination  PaginationResponse  `json:"pagination"`
	Search      SearchStatsResponse `json:"search"`
}
