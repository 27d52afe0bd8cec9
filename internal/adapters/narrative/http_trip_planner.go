// Package narrative talks to the external trip-plan generation service,
// which turns a ranked route into human-readable prose. Strictly downstream
// of the search; failures here never affect route results.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/platform/obs"
	"loadboard-route-service/internal/ports"
)

// HTTPTripPlanner implements the TripPlanner port against a remote
// generative-text service.
type HTTPTripPlanner struct {
	session *http.Client
	baseURL string
}

func NewHTTPTripPlanner(baseURL string) (*HTTPTripPlanner, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("trip planner base URL is empty")
	}

	return &HTTPTripPlanner{
		session: &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
	}, nil
}

type planRequest struct {
	RouteID       int     `json:"route_id"`
	OriginCity    string  `json:"origin_city"`
	OriginState   string  `json:"origin_state"`
	DestCity      string  `json:"dest_city,omitempty"`
	DestState     string  `json:"dest_state,omitempty"`
	TotalDistance float64 `json:"total_distance"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalDeadhead float64 `json:"total_deadhead"`
	Segments      []struct {
		Origin         string  `json:"origin"`
		Destination    string  `json:"destination"`
		DistanceMiles  float64 `json:"distance_miles"`
		DeadheadBefore float64 `json:"deadhead_before"`
	} `json:"segments"`
}

// PlanTrip asks the narrative service for a prose plan for one ranked route.
func (p *HTTPTripPlanner) PlanTrip(
	ctx context.Context,
	route domain.RouteOption,
	criteria domain.SearchCriteria,
) (_ ports.TripPlan, err error) {
	defer obs.Time(ctx, "narrative.PlanTrip")(&err)

	req := planRequest{
		RouteID:       route.RouteID,
		OriginCity:    criteria.Origin.City,
		OriginState:   criteria.Origin.State,
		TotalDistance: route.TotalDistance,
		TotalRevenue:  route.TotalRevenue,
		TotalDeadhead: route.TotalDeadhead,
	}
	if criteria.Destination != nil {
		req.DestCity = criteria.Destination.City
		req.DestState = criteria.Destination.State
	}
	for _, s := range route.Segments {
		req.Segments = append(req.Segments, struct {
			Origin         string  `json:"origin"`
			Destination    string  `json:"destination"`
			DistanceMiles  float64 `json:"distance_miles"`
			DeadheadBefore float64 `json:"deadhead_before"`
		}{s.Origin, s.Destination, s.DistanceMiles, s.DeadheadBefore})
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return ports.TripPlan{}, fmt.Errorf("plan trip: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/trip_plans", bytes.NewReader(payload))
	if err != nil {
		return ports.TripPlan{}, fmt.Errorf("plan trip: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.session.Do(httpReq)
	if err != nil {
		return ports.TripPlan{}, fmt.Errorf("plan trip: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.TripPlan{}, fmt.Errorf("plan trip: unexpected status: %d", resp.StatusCode)
	}

	var plan ports.TripPlan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return ports.TripPlan{}, fmt.Errorf("plan trip: decode response: %w", err)
	}
	plan.RouteID = route.RouteID

	return plan, nil
}
