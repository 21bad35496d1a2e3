package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"shipment-tracking-service/internal/domain"
)

func TestRegisterInsertsPendingShipment(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	now := day(t, "2023-05-16")
	svc := &IntakeService{Shipments: st, Centers: st, Now: func() time.Time { return now }}

	got, err := svc.Register(ctx, "Pedro Ramírez", "Calle Luna 11, Ciudad", 2.1, "CD-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Status != domain.StatusPending {
		t.Fatalf("status = %s, want %s", got.Status, domain.StatusPending)
	}
	// Eight shipments are seeded, so the new code is number nine.
	if got.TrackingCode != "ENV-009-2023" {
		t.Fatalf("tracking code = %q, want ENV-009-2023", got.TrackingCode)
	}
	if got.ID == "" {
		t.Fatal("id must be generated")
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("created at = %v, want %v", got.CreatedAt, now)
	}

	stored, err := st.GetShipment(ctx, got.ID)
	if err != nil {
		t.Fatalf("registered shipment not stored: %v", err)
	}
	if stored.CenterID != "CD-001" {
		t.Errorf("center = %q", stored.CenterID)
	}
}

func TestRegisterValidation(t *testing.T) {
	st := seededStore(t)
	svc := &IntakeService{Shipments: st, Centers: st}

	cases := []struct {
		name     string
		customer string
		address  string
		weight   float64
	}{
		{"zero weight", "Pedro Ramírez", "Calle Luna 11", 0},
		{"negative weight", "Pedro Ramírez", "Calle Luna 11", -2},
		{"short customer", "P", "Calle Luna 11", 1},
		{"short address", "Pedro Ramírez", "x", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.customer, tc.address, tc.weight, "CD-001")

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestRegisterRequiresKnownCenter(t *testing.T) {
	st := seededStore(t)
	svc := &IntakeService{Shipments: st, Centers: st}

	_, err := svc.Register(context.Background(), "Pedro Ramírez", "Calle Luna 11", 1, "CD-404")

	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if nf.Kind != domain.KindCenter {
		t.Errorf("kind = %q, want center", nf.Kind)
	}
}
