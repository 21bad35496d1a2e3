package services

import (
	"context"
	"fmt"

	"shipment-tracking-service/internal/domain"
	"shipment-tracking-service/internal/ports"
)

// AssignmentService moves batches of pending shipments into transit
// under one route and vehicle.
type AssignmentService struct {
	Shipments ports.ShipmentStore
	Routes    ports.RouteDirectory
	Vehicles  ports.VehicleDirectory
}

// AssignBatch validates the whole request before applying anything:
// every shipment must be Pending, the route active, the vehicle
// available. The store's batch update keeps the apply step atomic, so a
// failure anywhere leaves every shipment untouched. Returns the number
// of shipments transitioned.
func (a *AssignmentService) AssignBatch(
	ctx context.Context,
	shipmentIDs []string,
	routeID string,
	vehicleID string,
) (int, error) {
	ids := dedupe(shipmentIDs)
	if len(ids) == 0 {
		return 0, &domain.ValidationError{Field: "shipment_ids", Reason: "must not be empty"}
	}

	route, err := a.Routes.GetRoute(ctx, routeID)
	if err != nil {
		return 0, &domain.RouteUnavailableError{RouteID: routeID}
	}
	if !route.Active {
		return 0, &domain.RouteUnavailableError{RouteID: routeID}
	}

	vehicle, err := a.Vehicles.GetVehicle(ctx, vehicleID)
	if err != nil {
		return 0, &domain.VehicleUnavailableError{VehicleID: vehicleID}
	}
	if !vehicle.Available {
		return 0, &domain.VehicleUnavailableError{VehicleID: vehicleID}
	}

	batch := make([]*domain.Shipment, 0, len(ids))
	for _, id := range ids {
		s, err := a.Shipments.GetShipment(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("assign batch: %w", err)
		}
		if s.Status != domain.StatusPending {
			return 0, &domain.InvalidBatchStateError{ShipmentID: s.ID, Status: s.Status}
		}
		batch = append(batch, s)
	}

	for _, s := range batch {
		if err := s.Assign(route.ID, vehicle.ID); err != nil {
			return 0, fmt.Errorf("assign batch: shipment %q: %w", s.ID, err)
		}
	}

	if err := a.Shipments.UpdateShipments(ctx, batch); err != nil {
		return 0, fmt.Errorf("assign batch: apply updates: %w", err)
	}

	return len(batch), nil
}

// dedupe drops repeated ids while keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
