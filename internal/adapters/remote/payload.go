package remote

import (
	"fmt"
	"time"

	"shipment-tracking-service/internal/domain"
)

// Wire shapes for the collection service. Shipments arrive flat with
// optional fields; toDomain rebuilds the status-tied record shape and
// rejects combinations the lifecycle cannot produce.

type shipmentPayload struct {
	ID              string     `json:"id"`
	TrackingCode    string     `json:"tracking_code"`
	Customer        string     `json:"customer"`
	Address         string     `json:"address"`
	Weight          float64    `json:"weight"`
	Status          string     `json:"status"`
	CenterID        string     `json:"center_id"`
	CreatedAt       time.Time  `json:"created_at"`
	AssignedRoute   string     `json:"assigned_route,omitempty"`
	AssignedVehicle string     `json:"assigned_vehicle,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
	DeliveryNotes   string     `json:"delivery_notes,omitempty"`
	ProofRef        string     `json:"proof_ref,omitempty"`
}

type routePayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Zone     string `json:"zone"`
	CenterID string `json:"center_id"`
	Active   bool   `json:"active"`
}

type vehiclePayload struct {
	ID        string  `json:"id"`
	Plate     string  `json:"plate"`
	Type      string  `json:"type"`
	CenterID  string  `json:"center_id"`
	Capacity  float64 `json:"capacity"`
	Available bool    `json:"available"`
}

func (p shipmentPayload) toDomain() (*domain.Shipment, error) {
	s := &domain.Shipment{
		ID:           p.ID,
		TrackingCode: p.TrackingCode,
		Customer:     p.Customer,
		Address:      p.Address,
		Weight:       p.Weight,
		CenterID:     p.CenterID,
		CreatedAt:    p.CreatedAt,
		Status:       domain.Status(p.Status),
	}

	if p.AssignedRoute != "" || p.AssignedVehicle != "" {
		s.Assignment = &domain.Assignment{
			RouteID:   p.AssignedRoute,
			VehicleID: p.AssignedVehicle,
		}
	}

	if p.DeliveredAt != nil {
		outcome := domain.OutcomeDelivered
		if s.Status == domain.StatusFailed {
			outcome = domain.OutcomeFailed
		}
		s.Delivery = &domain.DeliveryRecord{
			Outcome:     outcome,
			DeliveredAt: *p.DeliveredAt,
			Notes:       p.DeliveryNotes,
			ProofRef:    p.ProofRef,
		}
	}

	if err := s.ValidateState(); err != nil {
		return nil, fmt.Errorf("inconsistent record: %w", err)
	}
	return s, nil
}
