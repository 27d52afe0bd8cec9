package services

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"loadboard-route-service/internal/domain"
)

func TestFindRoutesNoLoadsInReach(t *testing.T) {
	// ~2073 miles from the origin, far past the 500-mile ceiling.
	far := testLoad("FAR", 60, 61, "S1",
		"2025-11-21T08:00:00-08:00", "2025-11-21T14:00:00-08:00",
		"2025-11-21T12:00:00-08:00", "2025-11-21T20:00:00-08:00", 70, 500)

	criteria := domain.SearchCriteria{
		Origin: domain.Location{Lat: 30, Lon: -100, City: "Start", State: "S0"},
	}

	result := FindRoutes(criteria, asLoads(far), DefaultTuning())
	if len(result.Routes) != 0 {
		t.Fatalf("expected zero routes, got %d", len(result.Routes))
	}
	if result.Message != "no feasible route chains found within search limits" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if result.OriginDeadheadMiles > 500 {
		t.Fatalf("tolerance exceeded the ceiling: %f", result.OriginDeadheadMiles)
	}
}

func TestFindRoutesRelaxesTolerance(t *testing.T) {
	// ~110 miles out: beyond the default 100-mile tolerance, inside 150.
	load := testLoad("L1", 31.6, 32.5, "S1",
		"2025-11-21T08:00:00-08:00", "2025-11-21T14:00:00-08:00",
		"2025-11-21T12:00:00-08:00", "2025-11-21T20:00:00-08:00", 62, 480)

	criteria := domain.SearchCriteria{
		Origin: domain.Location{Lat: 30, Lon: -100, City: "Start", State: "S0"},
	}

	result := FindRoutes(criteria, asLoads(load), DefaultTuning())
	if len(result.Routes) != 1 {
		t.Fatalf("expected one route after relaxation, got %d", len(result.Routes))
	}
	if result.Iterations != 2 {
		t.Fatalf("expected the second iteration to find it, got %d", result.Iterations)
	}
	if result.OriginDeadheadMiles != 150 {
		t.Fatalf("expected accepted tolerance 150, got %f", result.OriginDeadheadMiles)
	}
	if !strings.Contains(result.Message, "after relaxed search") {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestFindRoutesStopsAtTarget(t *testing.T) {
	load := testLoad("L1", 30.5, 31.5, "S1",
		"2025-11-21T08:00:00-08:00", "2025-11-21T14:00:00-08:00",
		"2025-11-21T12:00:00-08:00", "2025-11-21T20:00:00-08:00", 70, 500)

	criteria := domain.SearchCriteria{
		Origin: domain.Location{Lat: 30, Lon: -100, City: "Start", State: "S0"},
	}

	tuning := DefaultTuning()
	tuning.TargetRouteCount = 1

	result := FindRoutes(criteria, asLoads(load), tuning)
	if result.Iterations != 1 {
		t.Fatalf("expected the first iteration to satisfy the target, got %d", result.Iterations)
	}
	if result.Message != "found 1 route options" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestFindRoutesTieredChainLengthCap(t *testing.T) {
	a, b := chainableTestPair()
	c := testLoad("C", 42.55, 43.5, "S3",
		"2025-11-22T06:00:00-08:00", "2025-11-22T14:00:00-08:00",
		"2025-11-22T10:00:00-08:00", "2025-11-22T20:00:00-08:00", 66, 650)
	loads := asLoads(a, b, c)

	criteria := domain.SearchCriteria{
		Origin: domain.Location{Lat: 40, Lon: -100, City: "Start", State: "S0"},
	}

	tuning := DefaultTuning()
	tuning.MediumLoadThreshold = 1
	tuning.LargeLoadThreshold = 2
	tuning.TieredMaxChainLength = 2

	result := FindRoutes(criteria, loads, tuning)
	if len(result.Routes) == 0 {
		t.Fatal("expected routes")
	}
	for _, r := range result.Routes {
		if len(r.Segments) > 2 {
			t.Fatalf("tiered cap violated: %d segments", len(r.Segments))
		}
	}
}

func TestFindRoutesLogsUnparseableWindows(t *testing.T) {
	load := testLoad("BADWIN", 30.5, 31.5, "S1",
		"2025-11-21T08:00:00-08:00", "2025-11-21T14:00:00-08:00",
		"not-a-timestamp", "2025-11-21T20:00:00-08:00", 70, 500)

	criteria := domain.SearchCriteria{
		Origin: domain.Location{Lat: 30, Lon: -100, City: "Start", State: "S0"},
	}

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	FindRoutes(criteria, asLoads(load), DefaultTuning())

	out := buf.String()
	if !strings.Contains(out, "window parse failed") ||
		!strings.Contains(out, "load_id=BADWIN") ||
		!strings.Contains(out, "bound=delivery_earliest") {
		t.Fatalf("expected a parse-failure log line, got:\n%s", out)
	}
}

func TestFindRoutesIsDeterministic(t *testing.T) {
	a, b := chainableTestPair()
	c := testLoad("C", 42.55, 43.5, "S3",
		"2025-11-22T06:00:00-08:00", "2025-11-22T14:00:00-08:00",
		"2025-11-22T10:00:00-08:00", "2025-11-22T20:00:00-08:00", 66, 650)
	loads := asLoads(a, b, c)

	criteria := domain.SearchCriteria{
		Origin: domain.Location{Lat: 40, Lon: -100, City: "Start", State: "S0"},
	}

	first := FindRoutes(criteria, loads, DefaultTuning())
	second := FindRoutes(criteria, loads, DefaultTuning())

	if len(first.Routes) != len(second.Routes) {
		t.Fatalf("route counts differ: %d vs %d", len(first.Routes), len(second.Routes))
	}
	for i := range first.Routes {
		if first.Routes[i].SignatureByLabels() != second.Routes[i].SignatureByLabels() {
			t.Fatalf("ordering differs at position %d", i)
		}
		if first.Routes[i].RouteID != second.Routes[i].RouteID {
			t.Fatalf("route ids differ at position %d", i)
		}
	}
}
