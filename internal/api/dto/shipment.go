package dto

import (
	"time"

	"shipment-tracking-service/internal/domain"
)

type ShipmentResponse struct {
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
	Outcome         string     `json:"outcome,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
	DeliveryNotes   string     `json:"delivery_notes,omitempty"`
	ProofRef        string     `json:"proof_ref,omitempty"`
}

func FromShipment(s *domain.Shipment) ShipmentResponse {
	res := ShipmentResponse{
		ID:           s.ID,
		TrackingCode: s.TrackingCode,
		Customer:     s.Customer,
		Address:      s.Address,
		Weight:       s.Weight,
		Status:       string(s.Status),
		CenterID:     s.CenterID,
		CreatedAt:    s.CreatedAt,
	}

	if s.Assignment != nil {
		res.AssignedRoute = s.Assignment.RouteID
		res.AssignedVehicle = s.Assignment.VehicleID
	}
	if s.Delivery != nil {
		at := s.Delivery.DeliveredAt
		res.Outcome = string(s.Delivery.Outcome)
		res.DeliveredAt = &at
		res.DeliveryNotes = s.Delivery.Notes
		res.ProofRef = s.Delivery.ProofRef
	}
	return res
}

func FromShipments(shipments []*domain.Shipment) []ShipmentResponse {
	out := make([]ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, FromShipment(s))
	}
	return out
}

type ListShipmentsResponse struct {
	Shipments []ShipmentResponse `json:"shipments"`
}

type CreateShipmentRequest struct {
	Customer string  `json:"customer"`
	Address  string  `json:"address"`
	Weight   float64 `json:"weight"`
	CenterID string  `json:"center_id"`
}

type StatsResponse struct {
	Pending   int `json:"pending"`
	InTransit int `json:"in_transit"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}
