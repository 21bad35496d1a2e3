package handlers

import (
	"net/http"

	"shipment-tracking-service/internal/api/dto"
	"shipment-tracking-service/internal/ports"
)

// DirectoryHandler exposes the read-only route/vehicle/center listings
// the assignment and intake forms populate their selects from.
type DirectoryHandler struct {
	Routes   ports.RouteDirectory
	Vehicles ports.VehicleDirectory
	Centers  ports.CenterDirectory
}

func (h *DirectoryHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	routes, err := h.Routes.ListRoutes(r.Context(), sentinel(r.URL.Query().Get("center")))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromRoutes(routes))
}

func (h *DirectoryHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	vehicles, err := h.Vehicles.ListVehicles(r.Context(), sentinel(r.URL.Query().Get("center")))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromVehicles(vehicles))
}

func (h *DirectoryHandler) ListCenters(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	centers, err := h.Centers.ListCenters(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromCenters(centers))
}
