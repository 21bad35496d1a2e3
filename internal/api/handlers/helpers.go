package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"shipment-tracking-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps error kinds onto HTTP statuses. Unknown errors
// log and report 500 without leaking internals.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation  *domain.ValidationError
		notFound    *domain.NotFoundError
		duplicate   *domain.DuplicateIDError
		transition  *domain.InvalidTransitionError
		batchState  *domain.InvalidBatchStateError
		routeUnav   *domain.RouteUnavailableError
		vehicleUnav *domain.VehicleUnavailableError
		collab      *domain.CollaboratorUnavailableError
	)

	switch {
	case errors.As(err, &validation):
		writeError(w, r, http.StatusBadRequest, validation.Error())
	case errors.As(err, &notFound):
		writeError(w, r, http.StatusNotFound, notFound.Error())
	case errors.As(err, &duplicate):
		writeError(w, r, http.StatusConflict, duplicate.Error())
	case errors.As(err, &transition):
		writeError(w, r, http.StatusConflict, transition.Error())
	case errors.As(err, &batchState):
		writeError(w, r, http.StatusConflict, batchState.Error())
	case errors.As(err, &routeUnav):
		writeError(w, r, http.StatusUnprocessableEntity, routeUnav.Error())
	case errors.As(err, &vehicleUnav):
		writeError(w, r, http.StatusUnprocessableEntity, vehicleUnav.Error())
	case errors.As(err, &collab):
		writeError(w, r, http.StatusBadGateway, "upstream collection service unavailable")
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON enforces a single, strictly-shaped JSON object body.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}
