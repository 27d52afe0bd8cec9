package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"loadboard-route-service/internal/api/dto"
	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/ports"
	"loadboard-route-service/internal/services"
)

type stubRepo struct {
	loads []domain.Load
	err   error
}

func (s *stubRepo) ListLoads(ctx context.Context) ([]domain.Load, error) {
	return s.loads, s.err
}

type stubPlanner struct{}

func (stubPlanner) PlanTrip(ctx context.Context, route domain.RouteOption, criteria domain.SearchCriteria) (ports.TripPlan, error) {
	return ports.TripPlan{
		RouteID:      route.RouteID,
		Summary:      "short haul",
		DetailedPlan: "drive, deliver, repeat",
	}, nil
}

func searchBody(t *testing.T, req dto.SearchRequest) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func validSearchRequest() dto.SearchRequest {
	load := dto.LoadRequest{
		ID:          "L1",
		Origin:      dto.LocationRequest{Latitude: 40.5, Longitude: -100, City: "Alpha", State: "S1"},
		Destination: dto.LocationRequest{Latitude: 41.5, Longitude: -100, City: "Bravo", State: "S2"},
		PickupWindow: dto.TimeWindowRequest{
			Earliest: "2025-11-21T08:00:00-08:00",
			Latest:   "2025-11-21T14:00:00-08:00",
		},
		DeliveryWindow: dto.TimeWindowRequest{
			Earliest: "2025-11-21T12:00:00-08:00",
			Latest:   "2025-11-21T20:00:00-08:00",
		},
		DistanceMiles: 70,
	}
	load.Revenue.Amount = 500

	return dto.SearchRequest{
		SearchCriteria: dto.CriteriaRequest{
			Origin:      &dto.LocationRequest{Latitude: 40, Longitude: -100, City: "Start", State: "S0"},
			Destination: &dto.LocationRequest{Latitude: 41.6, Longitude: -100, City: "Target", State: "S2"},
		},
		Loads: []dto.LoadRequest{load},
	}
}

func newRouteHandler() *RouteHandler {
	return &RouteHandler{Tuning: services.DefaultTuning()}
}

func TestSearchHandlerReturnsRoutes(t *testing.T) {
	h := newRouteHandler()

	req := httptest.NewRequest(http.MethodPost, "/routes/search", searchBody(t, validSearchRequest()))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 1, res.TotalRoutes)
	require.Len(t, res.Routes, 1)
	require.Equal(t, 1, res.Routes[0].RouteID)
	require.Len(t, res.Routes[0].Segments, 1)
	require.True(t, res.Routes[0].EndsNearDestination)
	require.Equal(t, 1, res.Pagination.Page)
	require.Equal(t, 50, res.Pagination.PageSize)
	require.False(t, res.Pagination.HasNextPage)
	require.Nil(t, res.Routes[0].TripPlan)
}

func TestSearchHandlerIncludesTripPlans(t *testing.T) {
	h := newRouteHandler()
	h.Planner = stubPlanner{}

	req := httptest.NewRequest(http.MethodPost,
		"/routes/search?include_trip_plans=true", searchBody(t, validSearchRequest()))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Routes, 1)
	require.NotNil(t, res.Routes[0].TripPlan)
	require.Equal(t, "short haul", res.Routes[0].TripPlan.Summary)
}

func TestSearchHandlerFallsBackToRepository(t *testing.T) {
	body := validSearchRequest()
	repo := &stubRepo{loads: []domain.Load{{
		ID:          "STORED",
		Origin:      domain.Location{Lat: 40.5, Lon: -100, City: "Alpha", State: "S1"},
		Destination: domain.Location{Lat: 41.5, Lon: -100, City: "Bravo", State: "S2"},
		PickupWindow: domain.TimeWindow{
			Earliest: "2025-11-21T08:00:00-08:00",
			Latest:   "2025-11-21T14:00:00-08:00",
		},
		DeliveryWindow: domain.TimeWindow{
			Earliest: "2025-11-21T12:00:00-08:00",
			Latest:   "2025-11-21T20:00:00-08:00",
		},
		DistanceMiles: 70,
		Revenue:       domain.Revenue{Amount: 500},
	}}}
	body.Loads = nil

	h := newRouteHandler()
	h.Repo = repo

	req := httptest.NewRequest(http.MethodPost, "/routes/search", searchBody(t, body))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Routes, 1)
	require.Equal(t, "STORED", res.Routes[0].Segments[0].LoadID)
}

func TestSearchHandlerMissingOrigin(t *testing.T) {
	body := validSearchRequest()
	body.SearchCriteria.Origin = nil

	req := httptest.NewRequest(http.MethodPost, "/routes/search", searchBody(t, body))
	rec := httptest.NewRecorder()
	newRouteHandler().Search(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "origin is required")
}

func TestSearchHandlerRejectsLoadsWithoutWindows(t *testing.T) {
	body := validSearchRequest()
	body.Loads[0].PickupWindow = dto.TimeWindowRequest{}
	body.Loads[0].DeliveryWindow = dto.TimeWindowRequest{}

	req := httptest.NewRequest(http.MethodPost, "/routes/search", searchBody(t, body))
	rec := httptest.NewRecorder()
	newRouteHandler().Search(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "pickupWindow")
}

func TestSearchHandlerRejectsIncompleteWindow(t *testing.T) {
	body := validSearchRequest()
	body.Loads[0].DeliveryWindow.Latest = "  "

	req := httptest.NewRequest(http.MethodPost, "/routes/search", searchBody(t, body))
	rec := httptest.NewRecorder()
	newRouteHandler().Search(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "deliveryWindow")
}

func TestSearchHandlerKeepsUnparseableBounds(t *testing.T) {
	// Present but unparseable bounds are a search-level concern, not a
	// request-level one.
	body := validSearchRequest()
	body.Loads[0].DeliveryWindow.Earliest = "not-a-timestamp"

	req := httptest.NewRequest(http.MethodPost, "/routes/search", searchBody(t, body))
	rec := httptest.NewRecorder()
	newRouteHandler().Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchHandlerNoLoads(t *testing.T) {
	body := validSearchRequest()
	body.Loads = nil

	req := httptest.NewRequest(http.MethodPost, "/routes/search", searchBody(t, body))
	rec := httptest.NewRecorder()
	newRouteHandler().Search(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "no loads to search")
}

func TestSearchHandlerRejectsBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/routes/search", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	newRouteHandler().Search(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchHandlerRejectsBadPageParams(t *testing.T) {
	for _, target := range []string{
		"/routes/search?page=abc",
		"/routes/search?page=0",
		"/routes/search?page_size=0",
		"/routes/search?page_size=abc",
		"/routes/search?page_size=9999",
	} {
		req := httptest.NewRequest(http.MethodPost, target, searchBody(t, validSearchRequest()))
		rec := httptest.NewRecorder()
		newRouteHandler().Search(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestSearchHandlerMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/routes/search", nil)
	rec := httptest.NewRecorder()
	newRouteHandler().Search(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}
