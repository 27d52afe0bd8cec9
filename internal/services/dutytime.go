package services

import (
	"fmt"
	"loadboard-route-service/internal/timeref"
)

// DutyLimits is the simplified duty-hours model applied across a chain. It
// approximates, and does not certify, DOT hours-of-service rules.
type DutyLimits struct {
	MaxDrivingMinutes int // continuous driving before a rest
	MaxOnDutyMinutes  int // on-duty time before a rest
	RestMinutes       int // mandatory rest block
}

func DefaultDutyLimits() DutyLimits {
	return DutyLimits{
		MaxDrivingMinutes: 11 * 60,
		MaxOnDutyMinutes:  14 * 60,
		RestMinutes:       10 * 60,
	}
}

// DutyCheck reports chain feasibility under the duty-hours model. Reason is
// leg-indexed when a window is missed.
type DutyCheck struct {
	Valid  bool
	Reason string
}

// dutyState tracks the three running counters of the simulation.
type dutyState struct {
	now              int
	totalDriving     int
	totalOnDuty      int
	consecutiveDrive int
	limits           DutyLimits
}

// drive advances the clock by drive minutes and inserts mandatory rest
// whenever the consecutive-driving or on-duty caps are exceeded. A rest
// restarts the duty clock, so both counters reset.
func (s *dutyState) drive(minutes int) {
	s.now += minutes
	s.totalDriving += minutes
	s.totalOnDuty += minutes
	s.consecutiveDrive += minutes

	for s.consecutiveDrive > s.limits.MaxDrivingMinutes || s.totalOnDuty > s.limits.MaxOnDutyMinutes {
		s.now += s.limits.RestMinutes
		s.consecutiveDrive = 0
		s.totalOnDuty = 0
	}
}

// onDuty advances the clock by non-driving work (load/unload events).
func (s *dutyState) onDuty(minutes int) {
	s.now += minutes
	s.totalOnDuty += minutes

	for s.totalOnDuty > s.limits.MaxOnDutyMinutes {
		s.now += s.limits.RestMinutes
		s.consecutiveDrive = 0
		s.totalOnDuty = 0
	}
}

// ValidateDutyTime walks an ordered chain leg by leg, accumulating deadhead
// drive time, a fixed load event, the loaded drive and a fixed unload event,
// and checks simulated arrival against each leg's latest pickup/delivery
// bound. startMinutes is the minute offset at which the vehicle begins the
// first deadhead hop. Bounds that fail to parse are skipped rather than
// failing the chain.
func ValidateDutyTime(legs []ChainLeg, startMinutes int, limits DutyLimits, clock timeref.Clock) DutyCheck {
	st := dutyState{now: startMinutes, limits: limits}

	for i, leg := range legs {
		st.drive(travelMinutes(leg.DeadheadBefore))

		pickupEarliest, okPE := clock.Minutes(leg.Load.PickupWindow.Earliest)
		pickupLatest, okPL := clock.Minutes(leg.Load.PickupWindow.Latest)
		if okPL && st.now > pickupLatest {
			return DutyCheck{Reason: fmt.Sprintf("leg %d: arrival %dmin after latest pickup %dmin", i+1, st.now, pickupLatest)}
		}
		if okPE && st.now < pickupEarliest {
			st.now = pickupEarliest // wait off duty at the pickup
		}

		st.onDuty(unloadBufferMinutes) // load event

		st.drive(loadedTravelMinutes(leg.Load.DistanceMiles))

		deliveryEarliest, okDE := clock.Minutes(leg.Load.DeliveryWindow.Earliest)
		deliveryLatest, okDL := clock.Minutes(leg.Load.DeliveryWindow.Latest)
		if okDL && st.now > deliveryLatest {
			return DutyCheck{Reason: fmt.Sprintf("leg %d: arrival %dmin after latest delivery %dmin", i+1, st.now, deliveryLatest)}
		}
		if okDE && st.now < deliveryEarliest {
			st.now = deliveryEarliest
		}

		st.onDuty(unloadBufferMinutes) // unload event
	}

	return DutyCheck{Valid: true}
}
