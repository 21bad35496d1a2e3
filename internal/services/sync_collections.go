package services

import (
	"context"
	"fmt"

	"shipment-tracking-service/internal/ports"
)

// SyncService hydrates the local store from the remote collection
// service for one logistics center. All three collections are fetched
// before the first write, so a collaborator failure surfaces as
// domain.CollaboratorUnavailableError with local state untouched.
type SyncService struct {
	Fetcher ports.CollectionFetcher
	Target  ports.CollectionStore
}

func (s *SyncService) Sync(ctx context.Context, centerID string) error {
	shipments, err := s.Fetcher.FetchShipments(ctx, centerID)
	if err != nil {
		return fmt.Errorf("sync collections: %w", err)
	}

	routes, err := s.Fetcher.FetchRoutes(ctx, centerID)
	if err != nil {
		return fmt.Errorf("sync collections: %w", err)
	}

	vehicles, err := s.Fetcher.FetchVehicles(ctx, centerID)
	if err != nil {
		return fmt.Errorf("sync collections: %w", err)
	}

	if err := s.Target.ReplaceCollections(ctx, shipments, routes, vehicles); err != nil {
		return fmt.Errorf("sync collections: replace: %w", err)
	}

	return nil
}
