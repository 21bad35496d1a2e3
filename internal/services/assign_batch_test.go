package services

import (
	"context"
	"errors"
	"testing"

	"shipment-tracking-service/internal/domain"
	"shipment-tracking-service/internal/adapters/memory"
)

func assignmentService(t *testing.T) (*AssignmentService, *memory.Store) {
	t.Helper()

	st := seededStore(t)
	return &AssignmentService{Shipments: st, Routes: st, Vehicles: st}, st
}

func TestAssignBatchTransitionsPendingShipments(t *testing.T) {
	ctx := context.Background()
	svc, st := assignmentService(t)

	count, err := svc.AssignBatch(ctx, []string{"1"}, "R-001", "V-002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	s, err := st.GetShipment(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != domain.StatusInTransit {
		t.Fatalf("status = %s, want %s", s.Status, domain.StatusInTransit)
	}
	if s.Assignment == nil || s.Assignment.RouteID != "R-001" || s.Assignment.VehicleID != "V-002" {
		t.Fatalf("assignment = %+v, want R-001/V-002", s.Assignment)
	}
}

func TestAssignBatchMultipleShipments(t *testing.T) {
	ctx := context.Background()
	svc, st := assignmentService(t)

	count, err := svc.AssignBatch(ctx, []string{"1", "6", "6"}, "R-002", "V-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2 (duplicate id collapsed)", count)
	}

	for _, id := range []string{"1", "6"} {
		s, err := st.GetShipment(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Status != domain.StatusInTransit {
			t.Errorf("shipment %s status = %s", id, s.Status)
		}
	}
}

func TestAssignBatchEmptySelection(t *testing.T) {
	svc, _ := assignmentService(t)

	_, err := svc.AssignBatch(context.Background(), nil, "R-001", "V-001")

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestAssignBatchMixedStateFailsWholesale(t *testing.T) {
	ctx := context.Background()
	svc, st := assignmentService(t)

	// Shipment 2 is already in transit.
	_, err := svc.AssignBatch(ctx, []string{"1", "2"}, "R-001", "V-001")

	var ibe *domain.InvalidBatchStateError
	if !errors.As(err, &ibe) {
		t.Fatalf("err = %v, want InvalidBatchStateError", err)
	}
	if ibe.ShipmentID != "2" || ibe.Status != domain.StatusInTransit {
		t.Errorf("batch error = %+v", ibe)
	}

	// The pending member must not have been touched.
	s, err := st.GetShipment(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != domain.StatusPending || s.Assignment != nil {
		t.Fatalf("partial application: %+v", s)
	}
}

func TestAssignBatchUnknownShipment(t *testing.T) {
	svc, _ := assignmentService(t)

	_, err := svc.AssignBatch(context.Background(), []string{"404"}, "R-001", "V-001")

	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestAssignBatchRouteMustBeActive(t *testing.T) {
	svc, st := assignmentService(t)

	cases := []struct {
		name    string
		routeID string
	}{
		{"inactive route", "R-004"},
		{"missing route", "R-999"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AssignBatch(context.Background(), []string{"1"}, tc.routeID, "V-001")

			var rue *domain.RouteUnavailableError
			if !errors.As(err, &rue) {
				t.Fatalf("err = %v, want RouteUnavailableError", err)
			}
		})
	}

	s, err := st.GetShipment(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != domain.StatusPending {
		t.Fatalf("failed assignment mutated shipment: %s", s.Status)
	}
}

func TestAssignBatchVehicleMustBeAvailable(t *testing.T) {
	svc, _ := assignmentService(t)

	cases := []struct {
		name      string
		vehicleID string
	}{
		{"unavailable vehicle", "V-004"},
		{"missing vehicle", "V-999"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AssignBatch(context.Background(), []string{"1"}, "R-001", tc.vehicleID)

			var vue *domain.VehicleUnavailableError
			if !errors.As(err, &vue) {
				t.Fatalf("err = %v, want VehicleUnavailableError", err)
			}
		})
	}
}
