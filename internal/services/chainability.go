package services

import (
	"fmt"
	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/geo"
	"loadboard-route-service/internal/timeref"
)

const (
	// Minutes reserved for unloading before the vehicle can reposition.
	unloadBufferMinutes = 60
	// Assumed average speed for deadhead and loaded legs.
	averageSpeedMPH = 50
	// Repositioning never takes less than half an hour, however short the hop.
	minRepositionMinutes = 30
)

// ChainCheck is the outcome of a pairwise chainability test. Reason is for
// diagnostics only and must never drive branching elsewhere.
type ChainCheck struct {
	OK            bool
	DeadheadMiles float64
	Reason        string
}

// travelMinutes estimates drive time for a repositioning hop.
func travelMinutes(miles float64) int {
	m := int(miles / averageSpeedMPH * 60)
	if m < minRepositionMinutes {
		return minRepositionMinutes
	}
	return m
}

// loadedTravelMinutes estimates drive time for a loaded leg. No repositioning
// floor applies here.
func loadedTravelMinutes(miles float64) int {
	return int(miles / averageSpeedMPH * 60)
}

// CanChain reports whether load b can legally and physically follow load a:
// the deadhead from a's delivery to b's pickup must be within twice the
// tolerance, and the earliest feasible arrival at b's pickup (a's earliest
// delivery plus the unload buffer plus deadhead travel) must not miss b's
// latest pickup bound.
func CanChain(a, b domain.Load, maxDeadheadMiles float64, clock timeref.Clock) ChainCheck {
	deadhead := geo.DistanceMiles(
		a.Destination.Lat, a.Destination.Lon,
		b.Origin.Lat, b.Origin.Lon,
	)

	if deadhead > 2*maxDeadheadMiles {
		return ChainCheck{
			DeadheadMiles: deadhead,
			Reason:        fmt.Sprintf("deadhead %.1fmi exceeds 2x tolerance %.1fmi", deadhead, maxDeadheadMiles),
		}
	}

	deliveryEarliest, okDelivery := clock.Minutes(a.DeliveryWindow.Earliest)
	pickupLatest, okPickup := clock.Minutes(b.PickupWindow.Latest)
	if !okDelivery {
		return ChainCheck{DeadheadMiles: deadhead, Reason: "unparseable delivery window on first load"}
	}
	if !okPickup {
		return ChainCheck{DeadheadMiles: deadhead, Reason: "unparseable pickup window on next load"}
	}

	arrival := deliveryEarliest + unloadBufferMinutes + travelMinutes(deadhead)
	if arrival > pickupLatest {
		return ChainCheck{
			DeadheadMiles: deadhead,
			Reason:        fmt.Sprintf("earliest arrival %dmin is past pickup latest %dmin", arrival, pickupLatest),
		}
	}

	return ChainCheck{OK: true, DeadheadMiles: deadhead}
}
