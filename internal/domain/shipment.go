package domain

import (
	"fmt"
	"strings"
	"time"
)

// Shipment lifecycle states. A shipment is created Pending, moves to
// InTransit through batch assignment, and ends Delivered or Failed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

// Terminal outcome recorded for an in-transit shipment.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
)

// Assignment is stamped onto a shipment when it enters transit and is
// kept through the terminal states for audit.
type Assignment struct {
	RouteID   string
	VehicleID string
}

// DeliveryRecord is stamped onto a shipment when an outcome is recorded.
// ProofRef points at an externally stored proof-of-delivery capture.
type DeliveryRecord struct {
	Outcome     Outcome
	DeliveredAt time.Time
	Notes       string
	ProofRef    string
}

// Shipment aggregate. Assignment and Delivery are populated only by the
// lifecycle methods below; their presence is tied to Status (see
// ValidateState), so a well-formed record cannot carry fields its state
// does not allow.
type Shipment struct {
	ID           string
	TrackingCode string
	Customer     string
	Address      string
	Weight       float64
	CenterID     string
	CreatedAt    time.Time
	Status       Status
	Assignment   *Assignment
	Delivery     *DeliveryRecord
}

// NewShipment builds a Pending shipment with no route or vehicle.
func NewShipment(
	id string,
	trackingCode string,
	customer string,
	address string,
	weight float64,
	centerID string,
	createdAt time.Time,
) (*Shipment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &ValidationError{Field: "id", Reason: "must be non-empty"}
	}
	if strings.TrimSpace(trackingCode) == "" {
		return nil, &ValidationError{Field: "tracking_code", Reason: "must be non-empty"}
	}
	if len(strings.TrimSpace(customer)) < 3 {
		return nil, &ValidationError{Field: "customer", Reason: "must be at least 3 characters"}
	}
	if len(strings.TrimSpace(address)) < 3 {
		return nil, &ValidationError{Field: "address", Reason: "must be at least 3 characters"}
	}
	if weight <= 0 {
		return nil, &ValidationError{Field: "weight", Reason: "must be positive"}
	}
	if strings.TrimSpace(centerID) == "" {
		return nil, &ValidationError{Field: "center_id", Reason: "must be non-empty"}
	}

	return &Shipment{
		ID:           id,
		TrackingCode: trackingCode,
		Customer:     strings.TrimSpace(customer),
		Address:      strings.TrimSpace(address),
		Weight:       weight,
		CenterID:     centerID,
		CreatedAt:    createdAt,
		Status:       StatusPending,
	}, nil
}

// Assign transitions Pending -> InTransit, stamping the chosen route and
// vehicle. Eligibility of the route/vehicle is the coordinator's concern;
// this method only enforces the state machine.
func (s *Shipment) Assign(routeID, vehicleID string) error {
	if s.Status != StatusPending {
		return &InvalidTransitionError{ShipmentID: s.ID, From: s.Status, To: StatusInTransit}
	}
	if routeID == "" || vehicleID == "" {
		return &ValidationError{Field: "assignment", Reason: "route and vehicle ids must be non-empty"}
	}

	s.Status = StatusInTransit
	s.Assignment = &Assignment{RouteID: routeID, VehicleID: vehicleID}
	return nil
}

// RecordOutcome transitions InTransit -> Delivered/Failed, stamping the
// delivery time and notes. The assignment stays in place for audit.
func (s *Shipment) RecordOutcome(outcome Outcome, notes string, proofRef string, at time.Time) error {
	target, err := outcome.status()
	if err != nil {
		return err
	}

	if s.Status != StatusInTransit {
		return &InvalidTransitionError{ShipmentID: s.ID, From: s.Status, To: target}
	}
	if at.Before(s.CreatedAt) {
		return &ValidationError{Field: "delivered_at", Reason: "must not precede shipment creation"}
	}

	s.Status = target
	s.Delivery = &DeliveryRecord{
		Outcome:     outcome,
		DeliveredAt: at,
		Notes:       notes,
		ProofRef:    proofRef,
	}
	return nil
}

func (o Outcome) status() (Status, error) {
	switch o {
	case OutcomeDelivered:
		return StatusDelivered, nil
	case OutcomeFailed:
		return StatusFailed, nil
	default:
		return "", &ValidationError{Field: "outcome", Reason: fmt.Sprintf("unknown outcome %q", string(o))}
	}
}

// ValidateState checks that the record shape matches its status:
// assignment present iff in transit or terminal, delivery record present
// iff terminal, delivery time never before creation. Stores run this on
// every write.
func (s *Shipment) ValidateState() error {
	switch s.Status {
	case StatusPending:
		if s.Assignment != nil {
			return &ValidationError{Field: "assignment", Reason: "pending shipment must not carry an assignment"}
		}
		if s.Delivery != nil {
			return &ValidationError{Field: "delivery", Reason: "pending shipment must not carry a delivery record"}
		}
	case StatusInTransit:
		if s.Assignment == nil {
			return &ValidationError{Field: "assignment", Reason: "in-transit shipment must carry an assignment"}
		}
		if s.Delivery != nil {
			return &ValidationError{Field: "delivery", Reason: "in-transit shipment must not carry a delivery record"}
		}
	case StatusDelivered, StatusFailed:
		if s.Assignment == nil {
			return &ValidationError{Field: "assignment", Reason: "terminal shipment must carry an assignment"}
		}
		if s.Delivery == nil {
			return &ValidationError{Field: "delivery", Reason: "terminal shipment must carry a delivery record"}
		}
		if s.Delivery.DeliveredAt.Before(s.CreatedAt) {
			return &ValidationError{Field: "delivered_at", Reason: "must not precede shipment creation"}
		}
	default:
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", string(s.Status))}
	}

	return nil
}

// Clone returns an independent copy so stores never hand out shared
// mutable state.
func (s *Shipment) Clone() *Shipment {
	out := *s
	if s.Assignment != nil {
		a := *s.Assignment
		out.Assignment = &a
	}
	if s.Delivery != nil {
		d := *s.Delivery
		out.Delivery = &d
	}
	return &out
}
