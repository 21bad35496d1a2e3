package ports

import (
	"context"
	"shipment-tracking-service/internal/domain"
)

// Port: boundary for storing and retrieving Shipment entities.
// Implementations must reject duplicate ids on insert, return
// domain.NotFoundError for unresolved ids, and validate state shape on
// every write.
type ShipmentStore interface {
	// Insert a new shipment; domain.DuplicateIDError if the id exists.
	InsertShipment(ctx context.Context, s *domain.Shipment) error
	// Retrieve one shipment by id.
	GetShipment(ctx context.Context, id string) (*domain.Shipment, error)
	// List all shipments in insertion order; centerID "" means unscoped.
	ListShipments(ctx context.Context, centerID string) ([]*domain.Shipment, error)
	// Replace an existing shipment.
	UpdateShipment(ctx context.Context, s *domain.Shipment) error
	// Replace a set of shipments atomically: either every update is
	// applied or none are.
	UpdateShipments(ctx context.Context, batch []*domain.Shipment) error
}
