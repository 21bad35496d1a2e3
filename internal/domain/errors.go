package domain

import "fmt"

// Entity kinds used in lookup errors.
const (
	KindShipment = "shipment"
	KindRoute    = "route"
	KindVehicle  = "vehicle"
	KindCenter   = "center"
)

// ValidationError reports malformed input (non-positive weight, too-short
// free-text fields, unknown enum values).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an id that does not resolve to an entity.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// DuplicateIDError reports an insert with an already-present identity.
type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.ID)
}

// InvalidTransitionError reports a state machine rule violation.
type InvalidTransitionError struct {
	ShipmentID string
	From       Status
	To         Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("shipment %q: illegal transition %s -> %s", e.ShipmentID, e.From, e.To)
}

// InvalidBatchStateError reports a batch member outside the expected
// source state. The whole batch fails; nothing is applied.
type InvalidBatchStateError struct {
	ShipmentID string
	Status     Status
}

func (e *InvalidBatchStateError) Error() string {
	return fmt.Sprintf("shipment %q is %s, batch requires %s", e.ShipmentID, e.Status, StatusPending)
}

// RouteUnavailableError reports a route id that is missing or inactive.
type RouteUnavailableError struct {
	RouteID string
}

func (e *RouteUnavailableError) Error() string {
	return fmt.Sprintf("route %q is not assignable", e.RouteID)
}

// VehicleUnavailableError reports a vehicle id that is missing or not
// available.
type VehicleUnavailableError struct {
	VehicleID string
}

func (e *VehicleUnavailableError) Error() string {
	return fmt.Sprintf("vehicle %q is not assignable", e.VehicleID)
}

// CollaboratorUnavailableError reports a failed fetch from the remote
// collection service. Local state is never modified when it is returned.
type CollaboratorUnavailableError struct {
	Endpoint string
	Err      error
}

func (e *CollaboratorUnavailableError) Error() string {
	return fmt.Sprintf("collaborator unavailable: %s: %v", e.Endpoint, e.Err)
}

func (e *CollaboratorUnavailableError) Unwrap() error { return e.Err }
