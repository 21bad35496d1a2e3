package domain

import (
	"errors"
	"testing"
	"time"
)

func newPendingShipment(t *testing.T) *Shipment {
	t.Helper()

	created := time.Date(2023, 5, 15, 9, 0, 0, 0, time.UTC)
	s, err := NewShipment("1", "ENV-001-2023", "María González", "Calle Principal 123, Ciudad", 2.5, "CD-001", created)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestNewShipmentStartsPending(t *testing.T) {
	s := newPendingShipment(t)

	if s.Status != StatusPending {
		t.Fatalf("status = %s, want %s", s.Status, StatusPending)
	}
	if s.Assignment != nil || s.Delivery != nil {
		t.Fatalf("new shipment must not carry assignment or delivery data")
	}
	if err := s.ValidateState(); err != nil {
		t.Fatalf("state invalid: %v", err)
	}
}

func TestNewShipmentValidation(t *testing.T) {
	created := time.Date(2023, 5, 15, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		customer string
		address  string
		weight   float64
		field    string
	}{
		{"non-positive weight", "María González", "Calle Principal 123", 0, "weight"},
		{"negative weight", "María González", "Calle Principal 123", -1.5, "weight"},
		{"short customer", "Ma", "Calle Principal 123", 2.5, "customer"},
		{"short address", "María González", "xy", 2.5, "address"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewShipment("1", "ENV-001-2023", tc.customer, tc.address, tc.weight, "CD-001", created)

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if ve.Field != tc.field {
				t.Errorf("field = %q, want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestAssignStampsRouteAndVehicle(t *testing.T) {
	s := newPendingShipment(t)

	if err := s.Assign("R-001", "V-002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Status != StatusInTransit {
		t.Fatalf("status = %s, want %s", s.Status, StatusInTransit)
	}
	if s.Assignment == nil || s.Assignment.RouteID != "R-001" || s.Assignment.VehicleID != "V-002" {
		t.Fatalf("assignment = %+v, want R-001/V-002", s.Assignment)
	}
	if err := s.ValidateState(); err != nil {
		t.Fatalf("state invalid: %v", err)
	}
}

func TestAssignRequiresPending(t *testing.T) {
	s := newPendingShipment(t)
	if err := s.Assign("R-001", "V-002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := s.Assign("R-002", "V-001")

	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("err = %v, want InvalidTransitionError", err)
	}
	if ite.From != StatusInTransit || ite.To != StatusInTransit {
		t.Errorf("transition = %s -> %s, want in_transit -> in_transit", ite.From, ite.To)
	}
	if s.Assignment.RouteID != "R-001" {
		t.Errorf("failed transition mutated assignment: %+v", s.Assignment)
	}
}

func TestRecordOutcomeDelivered(t *testing.T) {
	s := newPendingShipment(t)
	if err := s.Assign("R-001", "V-002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	at := s.CreatedAt.Add(24 * time.Hour)
	if err := s.RecordOutcome(OutcomeDelivered, "left at door", "pod-1", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Status != StatusDelivered {
		t.Fatalf("status = %s, want %s", s.Status, StatusDelivered)
	}
	if s.Delivery == nil || s.Delivery.Notes != "left at door" || !s.Delivery.DeliveredAt.Equal(at) {
		t.Fatalf("delivery record = %+v", s.Delivery)
	}
	// Assignment stays for audit.
	if s.Assignment == nil || s.Assignment.RouteID != "R-001" {
		t.Fatalf("assignment lost after delivery: %+v", s.Assignment)
	}
	if err := s.ValidateState(); err != nil {
		t.Fatalf("state invalid: %v", err)
	}
}

func TestRecordOutcomeFailed(t *testing.T) {
	s := newPendingShipment(t)
	if err := s.Assign("R-001", "V-003"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	at := s.CreatedAt.Add(time.Hour)
	if err := s.RecordOutcome(OutcomeFailed, "dirección incorrecta", "", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Status != StatusFailed {
		t.Fatalf("status = %s, want %s", s.Status, StatusFailed)
	}
	if err := s.ValidateState(); err != nil {
		t.Fatalf("state invalid: %v", err)
	}
}

func TestRecordOutcomeRequiresInTransit(t *testing.T) {
	s := newPendingShipment(t)

	err := s.RecordOutcome(OutcomeDelivered, "", "", s.CreatedAt.Add(time.Hour))

	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("err = %v, want InvalidTransitionError", err)
	}
	if s.Status != StatusPending || s.Delivery != nil {
		t.Fatalf("failed transition mutated shipment: status=%s delivery=%+v", s.Status, s.Delivery)
	}
}

func TestTerminalStatesAreFinal(t *testing.T) {
	s := newPendingShipment(t)
	if err := s.Assign("R-001", "V-002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.RecordOutcome(OutcomeDelivered, "", "", s.CreatedAt.Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.RecordOutcome(OutcomeFailed, "", "", s.CreatedAt.Add(2*time.Hour)); err == nil {
		t.Fatal("expected error recording outcome on delivered shipment")
	}
	if err := s.Assign("R-002", "V-001"); err == nil {
		t.Fatal("expected error assigning delivered shipment")
	}
}

func TestRecordOutcomeRejectsTimeBeforeCreation(t *testing.T) {
	s := newPendingShipment(t)
	if err := s.Assign("R-001", "V-002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := s.RecordOutcome(OutcomeDelivered, "", "", s.CreatedAt.Add(-time.Minute))

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if s.Status != StatusInTransit {
		t.Fatalf("failed transition mutated status: %s", s.Status)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := newPendingShipment(t)
	if err := s.Assign("R-001", "V-002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := s.Clone()
	c.Assignment.RouteID = "R-999"
	c.Status = StatusFailed

	if s.Assignment.RouteID != "R-001" || s.Status != StatusInTransit {
		t.Fatalf("mutating clone leaked into original: %+v", s)
	}
}
