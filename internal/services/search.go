package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"shipment-tracking-service/internal/domain"
	"shipment-tracking-service/internal/ports"
)

// Number of shipments shown in the dashboard's recent view.
const RecentWindow = 5

// SearchCriteria compose with AND semantics across categories; zero
// values mean "no filter on that dimension". Text matches with OR
// semantics across tracking code, customer name and destination
// address, case-insensitively.
type SearchCriteria struct {
	Text     string
	Status   domain.Status
	CenterID string
	Date     string // calendar day, YYYY-MM-DD, UTC
}

// FilterShipments is a pure, stable filter: output order equals input
// order with non-matching elements removed. The input is never mutated.
func FilterShipments(shipments []*domain.Shipment, c SearchCriteria) []*domain.Shipment {
	term := strings.ToLower(strings.TrimSpace(c.Text))

	out := make([]*domain.Shipment, 0, len(shipments))
	for _, s := range shipments {
		if term != "" && !matchesText(s, term) {
			continue
		}
		if c.Status != "" && s.Status != c.Status {
			continue
		}
		if c.CenterID != "" && s.CenterID != c.CenterID {
			continue
		}
		if c.Date != "" && s.CreatedAt.UTC().Format("2006-01-02") != c.Date {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesText(s *domain.Shipment, term string) bool {
	return strings.Contains(strings.ToLower(s.TrackingCode), term) ||
		strings.Contains(strings.ToLower(s.Customer), term) ||
		strings.Contains(strings.ToLower(s.Address), term)
}

// RecentShipments sorts by creation date descending and truncates to n.
// Tracking code breaks date ties so the view is deterministic.
func RecentShipments(shipments []*domain.Shipment, n int) []*domain.Shipment {
	out := slices.Clone(shipments)
	slices.SortStableFunc(out, func(a, b *domain.Shipment) int {
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		if a.CreatedAt.Before(b.CreatedAt) {
			return 1
		}
		return strings.Compare(b.TrackingCode, a.TrackingCode)
	})

	if n < len(out) {
		out = out[:n]
	}
	return out
}

// CountByStatus tallies shipments per lifecycle state for the dashboard
// header cards.
func CountByStatus(shipments []*domain.Shipment) map[domain.Status]int {
	counts := make(map[domain.Status]int, 4)
	for _, s := range shipments {
		counts[s.Status]++
	}
	return counts
}

// SearchService answers the read queries the presentation layer issues.
type SearchService struct {
	Shipments ports.ShipmentStore
}

func (s *SearchService) Search(ctx context.Context, c SearchCriteria) ([]*domain.Shipment, error) {
	all, err := s.Shipments.ListShipments(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("search shipments: %w", err)
	}
	return FilterShipments(all, c), nil
}

func (s *SearchService) Recent(ctx context.Context, centerID string) ([]*domain.Shipment, error) {
	all, err := s.Shipments.ListShipments(ctx, centerID)
	if err != nil {
		return nil, fmt.Errorf("recent shipments: %w", err)
	}
	return RecentShipments(all, RecentWindow), nil
}

func (s *SearchService) Stats(ctx context.Context, centerID string) (map[domain.Status]int, error) {
	all, err := s.Shipments.ListShipments(ctx, centerID)
	if err != nil {
		return nil, fmt.Errorf("shipment stats: %w", err)
	}
	return CountByStatus(all), nil
}
