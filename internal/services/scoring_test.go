package services

import (
	"testing"

	"loadboard-route-service/internal/domain"
)

func routeWith(loaded, deadhead float64, segments int, labels ...string) domain.RouteOption {
	r := domain.RouteOption{
		TotalDistance: loaded,
		TotalDeadhead: deadhead,
	}
	for i := 0; i < segments; i++ {
		seg := domain.RouteSegment{Origin: "O", Destination: "D"}
		if len(labels) >= 2*(i+1) {
			seg.Origin = labels[2*i]
			seg.Destination = labels[2*i+1]
		}
		r.Segments = append(r.Segments, seg)
	}
	return r
}

func TestDedupRoutesKeepsFirstOccurrence(t *testing.T) {
	first := routeWith(100, 10, 1, "A", "B")
	first.TotalRevenue = 500
	duplicate := routeWith(100, 10, 1, "A", "B")
	duplicate.TotalRevenue = 999
	distinct := routeWith(100, 10, 1, "A", "C")

	unique := DedupRoutes([]domain.RouteOption{first, duplicate, distinct})
	if len(unique) != 2 {
		t.Fatalf("expected 2 unique routes, got %d", len(unique))
	}
	if unique[0].TotalRevenue != 500 {
		t.Fatal("expected the first occurrence to win")
	}
}

func TestApplyQualityFiltersRelaxesInStages(t *testing.T) {
	low := routeWith(100, 50, 1, "A", "B")     // ratio 0.33
	mid := routeWith(100, 233.4, 1, "A", "C")  // ratio ~0.70
	high := routeWith(100, 900, 1, "A", "D")   // ratio 0.90
	low.TotalRevenue, mid.TotalRevenue, high.TotalRevenue = 100, 100, 100
	routes := []domain.RouteOption{low, mid, high}

	// Enough yield at the strict ceiling: no relaxation.
	kept := ApplyQualityFilters(routes, 0, 0.6, 1)
	if len(kept) != 1 {
		t.Fatalf("expected 1 route at strict ratio, got %d", len(kept))
	}

	// Target of 2 forces the first stage (ceiling widened to 0.8).
	kept = ApplyQualityFilters(routes, 0, 0.6, 2)
	if len(kept) != 2 {
		t.Fatalf("expected 2 routes after first relaxation, got %d", len(kept))
	}

	// Target of 3 drops the ratio filter entirely; the revenue floor stays.
	kept = ApplyQualityFilters(routes, 0, 0.6, 3)
	if len(kept) != 3 {
		t.Fatalf("expected 3 routes after full relaxation, got %d", len(kept))
	}

	kept = ApplyQualityFilters(routes, 200, 0.6, 3)
	if len(kept) != 0 {
		t.Fatalf("expected the revenue floor to hold through relaxation, got %d", len(kept))
	}
}

func TestRankRoutesFieldPriority(t *testing.T) {
	moreLoaded := routeWith(300, 100, 1, "A", "B")
	lessLoaded := routeWith(200, 10, 1, "C", "D")
	// Same loaded miles, better ratio wins.
	betterRatio := routeWith(200, 5, 1, "E", "F")
	// Same loaded miles and ratio as lessLoaded but a longer chain.
	penalized := routeWith(200, 10, 3, "G", "H", "I", "J", "K", "L")

	routes := []domain.RouteOption{penalized, lessLoaded, betterRatio, moreLoaded}
	RankRoutes(routes)

	want := []float64{300, 200, 200, 200}
	for i, r := range routes {
		if r.TotalDistance != want[i] {
			t.Fatalf("position %d: expected loaded %v, got %v", i, want[i], r.TotalDistance)
		}
	}
	if routes[1].Segments[0].Origin != "E" {
		t.Fatalf("expected the better-ratio route second, got %q", routes[1].Segments[0].Origin)
	}
	if routes[3].Segments[0].Origin != "G" {
		t.Fatalf("expected the penalized chain last, got %q", routes[3].Segments[0].Origin)
	}
}

func TestRankRoutesIsStable(t *testing.T) {
	a := routeWith(100, 10, 1, "A", "B")
	b := routeWith(100, 10, 1, "C", "D")

	routes := []domain.RouteOption{a, b}
	RankRoutes(routes)
	if routes[0].Segments[0].Origin != "A" {
		t.Fatal("expected equal routes to keep discovery order")
	}
}

func TestCapAndNumber(t *testing.T) {
	routes := []domain.RouteOption{
		routeWith(300, 10, 1, "A", "B"),
		routeWith(200, 10, 1, "C", "D"),
		routeWith(100, 10, 1, "E", "F"),
	}

	capped := CapAndNumber(routes, 2)
	if len(capped) != 2 {
		t.Fatalf("expected cap at 2, got %d", len(capped))
	}
	for i, r := range capped {
		if r.RouteID != i+1 {
			t.Fatalf("expected contiguous ids from 1, got %d at %d", r.RouteID, i)
		}
	}
}
