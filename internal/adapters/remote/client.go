package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shipment-tracking-service/internal/domain"
	"shipment-tracking-service/internal/platform/obs"
)

// Client fetches entity collections from the remote collection service.
// Every request carries the scoping center id in the x-node-id header.
// Transient failures are retried with backoff; anything that still
// fails surfaces as domain.CollaboratorUnavailableError so callers know
// local state was not touched.
//
// The client is safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
}

func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("remote client: base URL is empty")
	}

	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}, nil
}

func (c *Client) FetchShipments(ctx context.Context, centerID string) (_ []*domain.Shipment, err error) {
	defer obs.Time(ctx, "remote.FetchShipments")(&err)

	var payload []shipmentPayload
	if err := c.getJSON(ctx, "/api/shipments", centerID, &payload); err != nil {
		return nil, err
	}

	out := make([]*domain.Shipment, 0, len(payload))
	for _, p := range payload {
		s, err := p.toDomain()
		if err != nil {
			return nil, &domain.CollaboratorUnavailableError{
				Endpoint: "/api/shipments",
				Err:      fmt.Errorf("shipment %q: %w", p.ID, err),
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *Client) FetchRoutes(ctx context.Context, centerID string) (_ []*domain.Route, err error) {
	defer obs.Time(ctx, "remote.FetchRoutes")(&err)

	var payload []routePayload
	if err := c.getJSON(ctx, "/api/rutas", centerID, &payload); err != nil {
		return nil, err
	}

	out := make([]*domain.Route, 0, len(payload))
	for _, p := range payload {
		out = append(out, &domain.Route{
			ID:       p.ID,
			Name:     p.Name,
			Zone:     p.Zone,
			CenterID: p.CenterID,
			Active:   p.Active,
		})
	}
	return out, nil
}

func (c *Client) FetchVehicles(ctx context.Context, centerID string) (_ []*domain.Vehicle, err error) {
	defer obs.Time(ctx, "remote.FetchVehicles")(&err)

	var payload []vehiclePayload
	if err := c.getJSON(ctx, "/api/vehiculos", centerID, &payload); err != nil {
		return nil, err
	}

	out := make([]*domain.Vehicle, 0, len(payload))
	for _, p := range payload {
		out = append(out, &domain.Vehicle{
			ID:        p.ID,
			Plate:     p.Plate,
			Type:      p.Type,
			CenterID:  p.CenterID,
			Capacity:  p.Capacity,
			Available: p.Available,
		})
	}
	return out, nil
}

// getJSON performs a scoped GET and decodes the response body, wrapping
// every failure mode in CollaboratorUnavailableError.
func (c *Client) getJSON(ctx context.Context, path string, centerID string, v any) error {
	makeReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("x-node-id", centerID)
		return req, nil
	}

	resp, err := c.doWithRetry(ctx, makeReq)
	if err != nil {
		return &domain.CollaboratorUnavailableError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &domain.CollaboratorUnavailableError{Endpoint: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
