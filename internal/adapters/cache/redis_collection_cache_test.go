package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"shipment-tracking-service/internal/domain"
)

type countingFetcher struct {
	calls int
	fail  bool
}

func (f *countingFetcher) FetchShipments(ctx context.Context, centerID string) ([]*domain.Shipment, error) {
	f.calls++
	if f.fail {
		return nil, &domain.CollaboratorUnavailableError{Endpoint: "/api/shipments", Err: errors.New("down")}
	}

	created := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	s, err := domain.NewShipment("1", "ENV-001-2023", "María González", "Calle Principal 123", 2.5, centerID, created)
	if err != nil {
		return nil, err
	}
	return []*domain.Shipment{s}, nil
}

func (f *countingFetcher) FetchRoutes(ctx context.Context, centerID string) ([]*domain.Route, error) {
	f.calls++
	return []*domain.Route{{ID: "R-001", Name: "Ruta Norte", Zone: "Zona Norte", Active: true}}, nil
}

func (f *countingFetcher) FetchVehicles(ctx context.Context, centerID string) ([]*domain.Vehicle, error) {
	f.calls++
	return nil, nil
}

func newCache(t *testing.T, next *countingFetcher, ttl time.Duration) (*RedisCollectionCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c, err := NewRedisCollectionCache(rdb, next, ttl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c, mr
}

func TestFetchShipmentsCachesSecondRead(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{}
	c, _ := newCache(t, fetcher, time.Minute)

	first, err := c.FetchShipments(ctx, "CD-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.FetchShipments(ctx, "CD-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetcher.calls != 1 {
		t.Fatalf("fetcher calls = %d, want 1", fetcher.calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].TrackingCode != first[0].TrackingCode {
		t.Fatalf("cached read differs: %v vs %v", first, second)
	}
}

func TestFetchShipmentsScopesKeysByCenter(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{}
	c, _ := newCache(t, fetcher, time.Minute)

	if _, err := c.FetchShipments(ctx, "CD-001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.FetchShipments(ctx, "CD-002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetcher.calls != 2 {
		t.Fatalf("fetcher calls = %d, want 2 (one per center)", fetcher.calls)
	}
}

func TestFetchShipmentsExpiresWithTTL(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{}
	c, mr := newCache(t, fetcher, time.Minute)

	if _, err := c.FetchShipments(ctx, "CD-001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := c.FetchShipments(ctx, "CD-001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("fetcher calls = %d, want 2 after expiry", fetcher.calls)
	}
}

func TestFetcherErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{fail: true}
	c, _ := newCache(t, fetcher, time.Minute)

	_, err := c.FetchShipments(ctx, "CD-001")

	var cue *domain.CollaboratorUnavailableError
	if !errors.As(err, &cue) {
		t.Fatalf("err = %v, want CollaboratorUnavailableError", err)
	}

	fetcher.fail = false
	got, err := c.FetchShipments(ctx, "CD-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if fetcher.calls != 2 {
		t.Fatalf("fetcher calls = %d, want 2", fetcher.calls)
	}
}
