package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shipment-tracking-service/internal/domain"
	"shipment-tracking-service/internal/ports"
)

// DeliveryService records terminal outcomes for in-transit shipments.
type DeliveryService struct {
	Shipments ports.ShipmentStore
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (d *DeliveryService) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}

// RecordDelivery transitions one in-transit shipment to Delivered or
// Failed, stamping the delivery time and notes. Delivered outcomes get
// a generated proof-of-delivery reference (the capture itself lives in
// the presentation layer). Returns the updated record.
func (d *DeliveryService) RecordDelivery(
	ctx context.Context,
	shipmentID string,
	outcome domain.Outcome,
	notes string,
) (*domain.Shipment, error) {
	s, err := d.Shipments.GetShipment(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("record delivery: %w", err)
	}

	proofRef := ""
	if outcome == domain.OutcomeDelivered {
		proofRef = "pod-" + uuid.NewString()
	}

	if err := s.RecordOutcome(outcome, notes, proofRef, d.now()); err != nil {
		return nil, err
	}

	if err := d.Shipments.UpdateShipment(ctx, s); err != nil {
		return nil, fmt.Errorf("record delivery: apply update: %w", err)
	}

	return s, nil
}

// FindInTransitByTracking resolves a tracking code within the current
// in-transit subset only. A shipment that exists in another state still
// misses: the caller is validating delivery-readiness, not existence.
func (d *DeliveryService) FindInTransitByTracking(ctx context.Context, trackingCode string) (*domain.Shipment, error) {
	all, err := d.Shipments.ListShipments(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("find in-transit shipment: %w", err)
	}

	for _, s := range all {
		if s.Status == domain.StatusInTransit && s.TrackingCode == trackingCode {
			return s, nil
		}
	}

	return nil, &domain.NotFoundError{Kind: domain.KindShipment, ID: trackingCode}
}
