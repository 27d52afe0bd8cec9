package dto

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	State     string  `json:"state"`
}

type LoadResponse struct {
	ID             string             `json:"id"`
	Origin         LocationResponse   `json:"origin"`
	Destination    LocationResponse   `json:"destination"`
	PickupWindow   TimeWindowResponse `json:"pickup_window"`
	DeliveryWindow TimeWindowResponse `json:"delivery_window"`
	DistanceMiles  float64            `json:"distance_miles"`
	RevenueAmount  float64            `json:"revenue_amount"`
	RatePerMile    *float64           `json:"rate_per_mile,omitempty"`
	WeightPounds   *float64           `json:"weight_pounds,omitempty"`
}

type ListLoadsResponse struct {
	Loads []LoadResponse `json:"loads"`
}
