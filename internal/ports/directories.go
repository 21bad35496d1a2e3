package ports

import (
	"context"
	"shipment-tracking-service/internal/domain"
)

// Port: read-only access to routes. Route records are managed
// externally; this core never mutates them.
type RouteDirectory interface {
	GetRoute(ctx context.Context, id string) (*domain.Route, error)
	// List routes in insertion order; centerID "" means unscoped.
	ListRoutes(ctx context.Context, centerID string) ([]*domain.Route, error)
}

// Port: read-only access to vehicles.
type VehicleDirectory interface {
	GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, centerID string) ([]*domain.Vehicle, error)
}

// Port: read-only access to logistics centers.
type CenterDirectory interface {
	GetCenter(ctx context.Context, id string) (*domain.LogisticsCenter, error)
	ListCenters(ctx context.Context) ([]*domain.LogisticsCenter, error)
}
