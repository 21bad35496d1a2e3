package handlers

import (
	"net/http"
	"strings"

	"shipment-tracking-service/internal/api/dto"
	"shipment-tracking-service/internal/domain"
	"shipment-tracking-service/internal/services"
)

// DeliveryHandler exposes outcome recording and the QR/manual-entry
// tracking validation flow.
type DeliveryHandler struct {
	Deliveries *services.DeliveryService
}

func (h *DeliveryHandler) Record(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RecordDeliveryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	outcome := domain.Outcome(req.Outcome)
	if outcome != domain.OutcomeDelivered && outcome != domain.OutcomeFailed {
		writeError(w, r, http.StatusBadRequest, "outcome must be delivered or failed")
		return
	}

	s, err := h.Deliveries.RecordDelivery(r.Context(), req.ShipmentID, outcome, req.Notes)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromShipment(s))
}

// Validate checks that a tracking code belongs to an in-transit
// shipment before the courier records an outcome for it.
func (h *DeliveryHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ValidateTrackingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	code := strings.TrimSpace(req.TrackingCode)
	if code == "" {
		writeError(w, r, http.StatusBadRequest, "tracking_code is required")
		return
	}

	s, err := h.Deliveries.FindInTransitByTracking(r.Context(), code)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromShipment(s))
}
