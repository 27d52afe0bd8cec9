package handlers

import (
	"log"
	"net/http"

	"loadboard-route-service/internal/api/dto"
	"loadboard-route-service/internal/ports"
)

// LoadHandler exposes read-only load-board retrieval endpoints.
type LoadHandler struct {
	Repo ports.LoadRepository
}

func (h *LoadHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	loads, err := h.Repo.ListLoads(r.Context())
	if err != nil {
		log.Printf("list loads failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListLoadsResponse{
		Loads: make([]dto.LoadResponse, 0, len(loads)),
	}
	for _, l := range loads {
		res.Loads = append(res.Loads, dto.LoadResponse{
			ID: l.ID,
			Origin: dto.LocationResponse{
				Latitude:  l.Origin.Lat,
				Longitude: l.Origin.Lon,
				City:      l.Origin.City,
				State:     l.Origin.State,
			},
			Destination: dto.LocationResponse{
				Latitude:  l.Destination.Lat,
				Longitude: l.Destination.Lon,
				City:      l.Destination.City,
				State:     l.Destination.State,
			},
			PickupWindow:   dto.TimeWindowResponse{Earliest: l.PickupWindow.Earliest, Latest: l.PickupWindow.Latest},
			DeliveryWindow: dto.TimeWindowResponse{Earliest: l.DeliveryWindow.Earliest, Latest: l.DeliveryWindow.Latest},
			DistanceMiles:  l.DistanceMiles,
			RevenueAmount:  l.Revenue.Amount,
			RatePerMile:    l.Revenue.RatePerMile,
			WeightPounds:   l.WeightPounds,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
