package services

import (
	"strings"
	"testing"
	"time"

	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/timeref"
)

var dutyTestRef = time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)

// minuteStamp renders a timestamp m minutes past the test reference instant.
func minuteStamp(m int) string {
	return dutyTestRef.Add(time.Duration(m) * time.Minute).Format(time.RFC3339)
}

func TestValidateDutyTimeValidChain(t *testing.T) {
	clock := timeref.Clock{Ref: dutyTestRef}
	legs := []ChainLeg{{
		DeadheadBefore: 10,
		Load: domain.Load{
			ID:             "L1",
			DistanceMiles:  300,
			PickupWindow:   domain.TimeWindow{Earliest: minuteStamp(60), Latest: minuteStamp(120)},
			DeliveryWindow: domain.TimeWindow{Earliest: minuteStamp(500), Latest: minuteStamp(600)},
		},
	}}

	check := ValidateDutyTime(legs, 0, DefaultDutyLimits(), clock)
	if !check.Valid {
		t.Fatalf("expected valid chain, got reason %q", check.Reason)
	}
}

func TestValidateDutyTimeRestInsertionMissesWindow(t *testing.T) {
	clock := timeref.Clock{Ref: dutyTestRef}
	// A 600-mile loaded leg is 720 minutes of driving, which trips the 660
	// minute cap and inserts a 600 minute rest. Without the rest the vehicle
	// would arrive at minute 810, comfortably inside the window.
	legs := []ChainLeg{{
		DeadheadBefore: 0,
		Load: domain.Load{
			ID:             "L1",
			DistanceMiles:  600,
			DeliveryWindow: domain.TimeWindow{Latest: minuteStamp(1200)},
		},
	}}

	check := ValidateDutyTime(legs, 0, DefaultDutyLimits(), clock)
	if check.Valid {
		t.Fatal("expected rest insertion to miss the delivery window")
	}
	if !strings.Contains(check.Reason, "leg 1") || !strings.Contains(check.Reason, "after latest delivery") {
		t.Fatalf("unexpected reason %q", check.Reason)
	}
}

func TestValidateDutyTimeMissedPickup(t *testing.T) {
	clock := timeref.Clock{Ref: dutyTestRef}
	legs := []ChainLeg{{
		DeadheadBefore: 10,
		Load: domain.Load{
			ID:           "L1",
			PickupWindow: domain.TimeWindow{Latest: minuteStamp(10)},
		},
	}}

	check := ValidateDutyTime(legs, 0, DefaultDutyLimits(), clock)
	if check.Valid {
		t.Fatal("expected missed pickup")
	}
	if !strings.Contains(check.Reason, "after latest pickup") {
		t.Fatalf("unexpected reason %q", check.Reason)
	}
}

func TestValidateDutyTimeSkipsUnparseableBounds(t *testing.T) {
	clock := timeref.Clock{Ref: dutyTestRef}
	legs := []ChainLeg{{
		DeadheadBefore: 10,
		Load: domain.Load{
			ID:             "L1",
			DistanceMiles:  100,
			PickupWindow:   domain.TimeWindow{Earliest: "bogus", Latest: ""},
			DeliveryWindow: domain.TimeWindow{Earliest: "", Latest: "also bogus"},
		},
	}}

	check := ValidateDutyTime(legs, 0, DefaultDutyLimits(), clock)
	if !check.Valid {
		t.Fatalf("expected unparseable bounds to be skipped, got %q", check.Reason)
	}
}

func TestDutyEnforcementToggle(t *testing.T) {
	// One long load whose delivery window is reachable only without the
	// mandatory rest the duty model inserts.
	load := testLoad("LONG", 40.5, 52.0, "S1",
		"2025-11-21T08:00:00-08:00", "2025-11-21T10:00:00-08:00",
		"2025-11-21T09:00:00-08:00", "2025-11-22T04:00:00-08:00", 800, 2000)
	loads := asLoads(load)

	criteria := domain.SearchCriteria{
		Origin: domain.Location{Lat: 40, Lon: -100, City: "Start", State: "S0"},
	}
	clock := timeref.NewClock(loads)
	graph := BuildChainGraph(loads, 100, clock)

	advisory := defaultTestParams()
	routes := runSearch(loads, graph, clock, criteria, advisory)
	if len(routes) != 1 {
		t.Fatalf("expected advisory mode to keep the route, got %d", len(routes))
	}

	enforced := defaultTestParams()
	enforced.EnforceDutyLimits = true
	routes = runSearch(loads, graph, clock, criteria, enforced)
	if len(routes) != 0 {
		t.Fatalf("expected enforcement to drop the route, got %d", len(routes))
	}
}
