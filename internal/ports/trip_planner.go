package ports

import (
	"context"
	"loadboard-route-service/internal/domain"
)

// TripPlan is human-readable prose for one ranked route, produced by an
// external generative service downstream of the search.
type TripPlan struct {
	RouteID      int    `json:"route_id"`
	Summary      string `json:"summary"`
	DetailedPlan string `json:"detailed_plan"`
}

// Contract for the narrative trip-plan generator.
type TripPlanner interface {
	PlanTrip(ctx context.Context, route domain.RouteOption, criteria domain.SearchCriteria) (TripPlan, error)
}
