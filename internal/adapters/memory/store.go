package memory

import (
	"context"
	"fmt"
	"sync"

	"shipment-tracking-service/internal/domain"
)

// Store is the in-memory implementation of the entity store ports.
// Listing preserves insertion order, every read hands out copies, and
// every shipment write re-checks state-shape invariants.
//
// A single mutex guards all four collections so batch updates and
// collection replacement stay atomic without coordination between maps.
type Store struct {
	mu sync.Mutex

	shipments     map[string]*domain.Shipment
	shipmentOrder []string

	routes     map[string]*domain.Route
	routeOrder []string

	vehicles     map[string]*domain.Vehicle
	vehicleOrder []string

	centers     map[string]*domain.LogisticsCenter
	centerOrder []string
}

func NewStore() *Store {
	return &Store{
		shipments: map[string]*domain.Shipment{},
		routes:    map[string]*domain.Route{},
		vehicles:  map[string]*domain.Vehicle{},
		centers:   map[string]*domain.LogisticsCenter{},
	}
}

func (st *Store) InsertShipment(ctx context.Context, s *domain.Shipment) error {
	if err := s.ValidateState(); err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.shipments[s.ID]; ok {
		return &domain.DuplicateIDError{Kind: domain.KindShipment, ID: s.ID}
	}

	st.shipments[s.ID] = s.Clone()
	st.shipmentOrder = append(st.shipmentOrder, s.ID)
	return nil
}

func (st *Store) GetShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.shipments[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: domain.KindShipment, ID: id}
	}
	return s.Clone(), nil
}

func (st *Store) ListShipments(ctx context.Context, centerID string) ([]*domain.Shipment, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]*domain.Shipment, 0, len(st.shipmentOrder))
	for _, id := range st.shipmentOrder {
		s := st.shipments[id]
		if centerID != "" && s.CenterID != centerID {
			continue
		}
		out = append(out, s.Clone())
	}
	return out, nil
}

func (st *Store) UpdateShipment(ctx context.Context, s *domain.Shipment) error {
	if err := s.ValidateState(); err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.shipments[s.ID]; !ok {
		return &domain.NotFoundError{Kind: domain.KindShipment, ID: s.ID}
	}

	st.shipments[s.ID] = s.Clone()
	return nil
}

// UpdateShipments validates the whole batch before touching the map, so
// a bad member leaves the store unchanged.
func (st *Store) UpdateShipments(ctx context.Context, batch []*domain.Shipment) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, s := range batch {
		if err := s.ValidateState(); err != nil {
			return fmt.Errorf("update shipments: %w", err)
		}
		if _, ok := st.shipments[s.ID]; !ok {
			return &domain.NotFoundError{Kind: domain.KindShipment, ID: s.ID}
		}
	}

	for _, s := range batch {
		st.shipments[s.ID] = s.Clone()
	}
	return nil
}

func (st *Store) InsertRoute(ctx context.Context, r *domain.Route) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.routes[r.ID]; ok {
		return &domain.DuplicateIDError{Kind: domain.KindRoute, ID: r.ID}
	}

	cp := *r
	st.routes[r.ID] = &cp
	st.routeOrder = append(st.routeOrder, r.ID)
	return nil
}

func (st *Store) GetRoute(ctx context.Context, id string) (*domain.Route, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	r, ok := st.routes[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: domain.KindRoute, ID: id}
	}
	cp := *r
	return &cp, nil
}

func (st *Store) ListRoutes(ctx context.Context, centerID string) ([]*domain.Route, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]*domain.Route, 0, len(st.routeOrder))
	for _, id := range st.routeOrder {
		r := st.routes[id]
		if centerID != "" && r.CenterID != centerID {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (st *Store) InsertVehicle(ctx context.Context, v *domain.Vehicle) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.vehicles[v.ID]; ok {
		return &domain.DuplicateIDError{Kind: domain.KindVehicle, ID: v.ID}
	}

	cp := *v
	st.vehicles[v.ID] = &cp
	st.vehicleOrder = append(st.vehicleOrder, v.ID)
	return nil
}

func (st *Store) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	v, ok := st.vehicles[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: domain.KindVehicle, ID: id}
	}
	cp := *v
	return &cp, nil
}

func (st *Store) ListVehicles(ctx context.Context, centerID string) ([]*domain.Vehicle, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]*domain.Vehicle, 0, len(st.vehicleOrder))
	for _, id := range st.vehicleOrder {
		v := st.vehicles[id]
		if centerID != "" && v.CenterID != centerID {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (st *Store) InsertCenter(ctx context.Context, c *domain.LogisticsCenter) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.centers[c.ID]; ok {
		return &domain.DuplicateIDError{Kind: domain.KindCenter, ID: c.ID}
	}

	cp := *c
	st.centers[c.ID] = &cp
	st.centerOrder = append(st.centerOrder, c.ID)
	return nil
}

func (st *Store) GetCenter(ctx context.Context, id string) (*domain.LogisticsCenter, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	c, ok := st.centers[id]
	if !ok {
		return nil, &domain.NotFoundError{Kind: domain.KindCenter, ID: id}
	}
	cp := *c
	return &cp, nil
}

func (st *Store) ListCenters(ctx context.Context) ([]*domain.LogisticsCenter, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]*domain.LogisticsCenter, 0, len(st.centerOrder))
	for _, id := range st.centerOrder {
		cp := *st.centers[id]
		out = append(out, &cp)
	}
	return out, nil
}

// ReplaceCollections swaps in freshly fetched shipment, route and
// vehicle collections. Everything is validated before the first write;
// centers are untouched (they are the scoping dimension, not synced
// content).
func (st *Store) ReplaceCollections(
	ctx context.Context,
	shipments []*domain.Shipment,
	routes []*domain.Route,
	vehicles []*domain.Vehicle,
) error {
	newShipments := make(map[string]*domain.Shipment, len(shipments))
	shipmentOrder := make([]string, 0, len(shipments))
	for _, s := range shipments {
		if err := s.ValidateState(); err != nil {
			return fmt.Errorf("replace collections: shipment %q: %w", s.ID, err)
		}
		if _, ok := newShipments[s.ID]; ok {
			return &domain.DuplicateIDError{Kind: domain.KindShipment, ID: s.ID}
		}
		newShipments[s.ID] = s.Clone()
		shipmentOrder = append(shipmentOrder, s.ID)
	}

	newRoutes := make(map[string]*domain.Route, len(routes))
	routeOrder := make([]string, 0, len(routes))
	for _, r := range routes {
		if _, ok := newRoutes[r.ID]; ok {
			return &domain.DuplicateIDError{Kind: domain.KindRoute, ID: r.ID}
		}
		cp := *r
		newRoutes[r.ID] = &cp
		routeOrder = append(routeOrder, r.ID)
	}

	newVehicles := make(map[string]*domain.Vehicle, len(vehicles))
	vehicleOrder := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		if _, ok := newVehicles[v.ID]; ok {
			return &domain.DuplicateIDError{Kind: domain.KindVehicle, ID: v.ID}
		}
		cp := *v
		newVehicles[v.ID] = &cp
		vehicleOrder = append(vehicleOrder, v.ID)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.shipments = newShipments
	st.shipmentOrder = shipmentOrder
	st.routes = newRoutes
	st.routeOrder = routeOrder
	st.vehicles = newVehicles
	st.vehicleOrder = vehicleOrder
	return nil
}
