package handlers

import (
	"net/http"
	"strings"

	"shipment-tracking-service/internal/api/dto"
	"shipment-tracking-service/internal/domain"
	"shipment-tracking-service/internal/services"
)

// ShipmentHandler exposes shipment search, dashboard views and intake.
type ShipmentHandler struct {
	Search *services.SearchService
	Intake *services.IntakeService
}

// List answers the history/search view. Query params compose with AND
// semantics; absent or empty params (and the UI's "todos" sentinel)
// filter nothing.
func (h *ShipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	criteria := services.SearchCriteria{
		Text:     q.Get("q"),
		Status:   domain.Status(sentinel(q.Get("status"))),
		CenterID: sentinel(q.Get("center")),
		Date:     q.Get("date"),
	}

	if criteria.Status != "" {
		switch criteria.Status {
		case domain.StatusPending, domain.StatusInTransit, domain.StatusDelivered, domain.StatusFailed:
		default:
			writeError(w, r, http.StatusBadRequest, "unknown status filter")
			return
		}
	}

	shipments, err := h.Search.Search(r.Context(), criteria)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListShipmentsResponse{Shipments: dto.FromShipments(shipments)})
}

// Recent serves the dashboard's most-recent window.
func (h *ShipmentHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	shipments, err := h.Search.Recent(r.Context(), sentinel(r.URL.Query().Get("center")))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListShipmentsResponse{Shipments: dto.FromShipments(shipments)})
}

// Stats serves the dashboard's per-status counters.
func (h *ShipmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	counts, err := h.Search.Stats(r.Context(), sentinel(r.URL.Query().Get("center")))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.StatsResponse{
		Pending:   counts[domain.StatusPending],
		InTransit: counts[domain.StatusInTransit],
		Delivered: counts[domain.StatusDelivered],
		Failed:    counts[domain.StatusFailed],
	}
	res.Total = res.Pending + res.InTransit + res.Delivered + res.Failed

	writeJSON(w, r, http.StatusOK, res)
}

// Create registers a new shipment from the intake form.
func (h *ShipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CreateShipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.Intake.Register(r.Context(), req.Customer, req.Address, req.Weight, req.CenterID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.FromShipment(s))
}

// sentinel maps the UI's "all" values to the engine's zero value.
func sentinel(v string) string {
	if strings.EqualFold(v, "todos") || strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
