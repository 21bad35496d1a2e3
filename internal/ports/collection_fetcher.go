package ports

import (
	"context"
	"shipment-tracking-service/internal/domain"
)

// Port: retrieval of entity collections from the remote collaborator,
// scoped by logistics center. Failures surface as
// domain.CollaboratorUnavailableError and must never corrupt local
// state.
type CollectionFetcher interface {
	FetchShipments(ctx context.Context, centerID string) ([]*domain.Shipment, error)
	FetchRoutes(ctx context.Context, centerID string) ([]*domain.Route, error)
	FetchVehicles(ctx context.Context, centerID string) ([]*domain.Vehicle, error)
}

// Port: atomic replacement target for synchronized collections. The
// implementation applies all three collections or none of them.
type CollectionStore interface {
	ReplaceCollections(
		ctx context.Context,
		shipments []*domain.Shipment,
		routes []*domain.Route,
		vehicles []*domain.Vehicle,
	) error
}
