package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"loadboard-route-service/internal/api/dto"
	"loadboard-route-service/internal/domain"
	"loadboard-route-service/internal/ports"
	"loadboard-route-service/internal/services"
)

// Narrative plans are expensive external calls; only the best few routes of a
// page get one.
const maxTripPlansPerPage = 5

// RouteHandler runs the chained-route search. Loads come from the request
// body when inlined, otherwise from the stored load board.
type RouteHandler struct {
	Repo     ports.LoadRepository
	Provider ports.DistanceProvider
	Planner  ports.TripPlanner
	Tuning   services.Tuning
}

// Search handles POST /routes/search. Pagination and trip-plan enrichment are
// controlled by query parameters; the search itself is driven by the body.
func (h *RouteHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SearchRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	page, ok := queryInt(r, "page", 1)
	if !ok || page < 1 {
		writeError(w, r, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	// page_size is optional; when absent the paginator's default applies.
	pageSize := 0
	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			writeError(w, r, http.StatusBadRequest, "page_size must be between 1 and 200")
			return
		}
		pageSize = n
	}
	includePlans := r.URL.Query().Get("include_trip_plans") == "true"

	criteria, err := toDomainCriteria(req.SearchCriteria)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	loads, err := h.resolveLoads(r, req.Loads)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("resolve loads failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(loads) == 0 {
		writeError(w, r, http.StatusBadRequest, "no loads to search")
		return
	}

	result := services.FindRoutes(criteria, loads, h.Tuning)
	pageRoutes, meta := services.Paginate(result.Routes, page, pageSize)

	res := dto.SearchResponse{
		Message:     result.Message,
		TotalRoutes: meta.TotalRoutes,
		Routes:      make([]dto.RouteResponse, 0, len(pageRoutes)),
		Pagination: dto.PaginationResponse{
			Page:            meta.Page,
			PageSize:        meta.PageSize,
			TotalPages:      meta.TotalPages,
			TotalRoutes:     meta.TotalRoutes,
			RoutesOnPage:    meta.RoutesOnPage,
			HasNextPage:     meta.HasNextPage,
			HasPreviousPage: meta.HasPreviousPage,
			NextPage:        meta.NextPage,
			PreviousPage:    meta.PreviousPage,
		},
		Search: dto.SearchStatsResponse{
			Iterations:               result.Iterations,
			OriginDeadheadMiles:      result.OriginDeadheadMiles,
			DestinationDeadheadMiles: result.DestinationDeadheadMiles,
		},
	}

	for i, route := range pageRoutes {
		rr := toRouteResponse(route)
		// Narrative enrichment is best effort and covers at most the top
		// five routes of the requested page; a planner failure never fails
		// the search.
		if includePlans && h.Planner != nil && i < maxTripPlansPerPage {
			plan, err := h.Planner.PlanTrip(r.Context(), route, criteria)
			if err != nil {
				log.Printf("trip plan failed: route_id=%d err=%v", route.RouteID, err)
			} else {
				rr.TripPlan = &dto.TripPlanResponse{
					Summary:      plan.Summary,
					DetailedPlan: plan.DetailedPlan,
				}
			}
		}
		res.Routes = append(res.Routes, rr)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// resolveLoads converts inlined loads, or falls back to the repository when
// the request carries none. Inlined loads without a posted distance get a
// provider estimate so ratio filters and ranking see real loaded miles.
func (h *RouteHandler) resolveLoads(r *http.Request, inline []dto.LoadRequest) ([]domain.Load, error) {
	if len(inline) == 0 {
		if h.Repo == nil {
			return nil, nil
		}
		return h.Repo.ListLoads(r.Context())
	}

	loads, err := toDomainLoads(inline)
	if err != nil {
		return nil, err
	}

	if h.Provider != nil {
		for i := range loads {
			if loads[i].DistanceMiles > 0 {
				continue
			}
			res, err := h.Provider.GetDistance(r.Context(), loads[i].Origin, loads[i].Destination)
			if err != nil {
				log.Printf("distance estimate failed: load_id=%s err=%v", loads[i].ID, err)
				continue
			}
			loads[i].DistanceMiles = res.Miles
		}
	}

	return loads, nil
}

// queryInt parses an optional integer query parameter. The bool result is
// false only when a value is present and malformed.
func queryInt(r *http.Request, key string, fallback int) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
