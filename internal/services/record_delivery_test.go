package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"shipment-tracking-service/internal/domain"
)

func TestRecordDeliveryDelivered(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	now := day(t, "2023-05-16")
	svc := &DeliveryService{Shipments: st, Now: func() time.Time { return now }}

	// Shipment 2 is in transit.
	got, err := svc.RecordDelivery(ctx, "2", domain.OutcomeDelivered, "left at door")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Status != domain.StatusDelivered {
		t.Fatalf("status = %s, want %s", got.Status, domain.StatusDelivered)
	}
	if got.Delivery == nil || got.Delivery.Notes != "left at door" {
		t.Fatalf("delivery = %+v", got.Delivery)
	}
	if !got.Delivery.DeliveredAt.Equal(now) {
		t.Errorf("delivered at = %v, want %v", got.Delivery.DeliveredAt, now)
	}
	if !strings.HasPrefix(got.Delivery.ProofRef, "pod-") {
		t.Errorf("proof ref = %q, want pod- prefix", got.Delivery.ProofRef)
	}

	// The mutation must have reached the store.
	stored, err := st.GetShipment(ctx, "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.StatusDelivered {
		t.Fatalf("stored status = %s", stored.Status)
	}
}

func TestRecordDeliveryFailedKeepsAssignmentNoProof(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	svc := &DeliveryService{Shipments: st, Now: func() time.Time { return day(t, "2023-05-16") }}

	got, err := svc.RecordDelivery(ctx, "8", domain.OutcomeFailed, "nadie en casa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Status != domain.StatusFailed {
		t.Fatalf("status = %s, want %s", got.Status, domain.StatusFailed)
	}
	if got.Assignment == nil || got.Assignment.RouteID != "R-002" {
		t.Fatalf("assignment lost: %+v", got.Assignment)
	}
	if got.Delivery.ProofRef != "" {
		t.Errorf("failed outcome got proof ref %q", got.Delivery.ProofRef)
	}
}

func TestRecordDeliveryRequiresInTransit(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	svc := &DeliveryService{Shipments: st}

	// Shipment 1 is pending.
	_, err := svc.RecordDelivery(ctx, "1", domain.OutcomeDelivered, "")

	var ite *domain.InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("err = %v, want InvalidTransitionError", err)
	}

	stored, err := st.GetShipment(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.StatusPending || stored.Delivery != nil {
		t.Fatalf("failed recording mutated shipment: %+v", stored)
	}
}

func TestRecordDeliveryUnknownShipment(t *testing.T) {
	svc := &DeliveryService{Shipments: seededStore(t)}

	_, err := svc.RecordDelivery(context.Background(), "404", domain.OutcomeDelivered, "")

	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestFindInTransitByTracking(t *testing.T) {
	ctx := context.Background()
	svc := &DeliveryService{Shipments: seededStore(t)}

	got, err := svc.FindInTransitByTracking(ctx, "ENV-002-2023")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "2" {
		t.Fatalf("id = %s, want 2", got.ID)
	}
}

func TestFindInTransitByTrackingIgnoresOtherStates(t *testing.T) {
	ctx := context.Background()
	svc := &DeliveryService{Shipments: seededStore(t)}

	// ENV-003-2023 exists but is already delivered: the readiness check
	// must miss.
	_, err := svc.FindInTransitByTracking(ctx, "ENV-003-2023")

	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}
