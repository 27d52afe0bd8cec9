package handlers

import (
	"fmt"
	"strings"

	"loadboard-route-service/internal/api/dto"
	"loadboard-route-service/internal/domain"
)

func toDomainLocation(l dto.LocationRequest) domain.Location {
	return domain.Location{
		Lat:   l.Latitude,
		Lon:   l.Longitude,
		City:  strings.TrimSpace(l.City),
		State: strings.TrimSpace(l.State),
	}
}

// toDomainCriteria validates and converts the inbound criteria. A missing
// origin is the one hard requirement; every option falls back to defaults
// during normalization inside the search.
func toDomainCriteria(c dto.CriteriaRequest) (domain.SearchCriteria, error) {
	if c.Origin == nil {
		return domain.SearchCriteria{}, fmt.Errorf("%w: searchCriteria.origin is required", domain.ErrValidation)
	}

	criteria := domain.SearchCriteria{
		Origin: toDomainLocation(*c.Origin),
		Options: domain.SearchOptions{
			MaxOriginDeadheadMiles:      c.MaxOriginDeadheadMiles,
			MaxDestinationDeadheadMiles: c.MaxDestinationDeadheadMiles,
			MaxRoutes:                   c.MaxRoutes,
			MinRevenue:                  c.MinRevenue,
			MaxDeadheadRatio:            c.MaxDeadheadRatio,
			MaxChainLength:              c.MaxChainLength,
		},
	}
	if c.Destination != nil {
		dest := toDomainLocation(*c.Destination)
		criteria.Destination = &dest
	}

	return criteria, nil
}

// windowComplete reports whether both bounds are present. Presence is a
// structural requirement; whether a present bound parses is left to the
// search, which degrades per bound instead of rejecting the load.
func windowComplete(w dto.TimeWindowRequest) bool {
	return strings.TrimSpace(w.Earliest) != "" && strings.TrimSpace(w.Latest) != ""
}

func toDomainLoads(reqs []dto.LoadRequest) ([]domain.Load, error) {
	loads := make([]domain.Load, 0, len(reqs))
	for i, l := range reqs {
		if strings.TrimSpace(l.ID) == "" {
			return nil, fmt.Errorf("%w: loads[%d]: id is required", domain.ErrValidation, i)
		}
		if !windowComplete(l.PickupWindow) {
			return nil, fmt.Errorf("%w: loads[%d]: pickupWindow must have earliest and latest", domain.ErrValidation, i)
		}
		if !windowComplete(l.DeliveryWindow) {
			return nil, fmt.Errorf("%w: loads[%d]: deliveryWindow must have earliest and latest", domain.ErrValidation, i)
		}
		loads = append(loads, domain.Load{
			ID:          strings.TrimSpace(l.ID),
			Origin:      toDomainLocation(l.Origin),
			Destination: toDomainLocation(l.Destination),
			PickupWindow: domain.TimeWindow{
				Earliest: l.PickupWindow.Earliest,
				Latest:   l.PickupWindow.Latest,
			},
			DeliveryWindow: domain.TimeWindow{
				Earliest: l.DeliveryWindow.Earliest,
				Latest:   l.DeliveryWindow.Latest,
			},
			DistanceMiles: l.DistanceMiles,
			Revenue: domain.Revenue{
				Amount:      l.Revenue.Amount,
				RatePerMile: l.Revenue.RatePerMile,
			},
			WeightPounds: l.Requirements.WeightPounds,
		})
	}
	return loads, nil
}

func toRouteResponse(r domain.RouteOption) dto.RouteResponse {
	segments := make([]dto.SegmentResponse, 0, len(r.Segments))
	for _, s := range r.Segments {
		segments = append(segments, dto.SegmentResponse{
			LoadID:         s.LoadID,
			Origin:         s.Origin,
			Destination:    s.Destination,
			DistanceMiles:  s.DistanceMiles,
			Revenue:        s.Revenue,
			RatePerMile:    s.RatePerMile,
			PickupWindow:   dto.TimeWindowResponse{Earliest: s.PickupWindow.Earliest, Latest: s.PickupWindow.Latest},
			DeliveryWindow: dto.TimeWindowResponse{Earliest: s.DeliveryWindow.Earliest, Latest: s.DeliveryWindow.Latest},
			WeightPounds:   s.WeightPounds,
			DeadheadBefore: s.DeadheadBefore,
		})
	}

	return dto.RouteResponse{
		RouteID:             r.RouteID,
		Segments:            segments,
		TotalDistance:       r.TotalDistance,
		TotalRevenue:        r.TotalRevenue,
		TotalDeadhead:       r.TotalDeadhead,
		DeadheadRatio:       r.DeadheadRatio(),
		EndsNearDestination: r.EndsNearDestination,
		FinalDistanceToDest: r.FinalDistanceToDest,
	}
}
