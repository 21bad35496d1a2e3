package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shipment-tracking-service/internal/domain"
	"shipment-tracking-service/internal/ports"
)

// IntakeService registers new shipments in Pending state.
type IntakeService struct {
	Shipments ports.ShipmentStore
	Centers   ports.CenterDirectory
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (i *IntakeService) now() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now().UTC()
}

// Register validates the intake form, resolves the owning center, and
// inserts a Pending shipment with a generated id and tracking code.
func (i *IntakeService) Register(
	ctx context.Context,
	customer string,
	address string,
	weight float64,
	centerID string,
) (*domain.Shipment, error) {
	if _, err := i.Centers.GetCenter(ctx, centerID); err != nil {
		return nil, fmt.Errorf("register shipment: %w", err)
	}

	createdAt := i.now()
	code, err := i.nextTrackingCode(ctx, createdAt)
	if err != nil {
		return nil, fmt.Errorf("register shipment: %w", err)
	}

	s, err := domain.NewShipment(uuid.NewString(), code, customer, address, weight, centerID, createdAt)
	if err != nil {
		return nil, err
	}

	if err := i.Shipments.InsertShipment(ctx, s); err != nil {
		return nil, fmt.Errorf("register shipment: %w", err)
	}

	return s, nil
}

// Tracking codes follow the ENV-NNN-YYYY scheme, numbered after the
// current collection size. Callers serialize mutations, so the count is
// stable between read and insert.
func (i *IntakeService) nextTrackingCode(ctx context.Context, at time.Time) (string, error) {
	all, err := i.Shipments.ListShipments(ctx, "")
	if err != nil {
		return "", fmt.Errorf("next tracking code: %w", err)
	}
	return fmt.Sprintf("ENV-%03d-%d", len(all)+1, at.Year()), nil
}
