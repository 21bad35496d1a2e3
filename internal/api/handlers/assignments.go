package handlers

import (
	"net/http"

	"shipment-tracking-service/internal/api/dto"
	"shipment-tracking-service/internal/services"
)

// AssignmentHandler exposes the batch route/vehicle assignment flow.
type AssignmentHandler struct {
	Assignments *services.AssignmentService
}

func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.AssignBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	count, err := h.Assignments.AssignBatch(r.Context(), req.ShipmentIDs, req.RouteID, req.VehicleID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AssignBatchResponse{AssignedCount: count})
}
