package dto

import "shipment-tracking-service/internal/domain"

type RouteResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Zone     string `json:"zone"`
	CenterID string `json:"center_id"`
	Active   bool   `json:"active"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}

func FromRoutes(routes []*domain.Route) ListRoutesResponse {
	res := ListRoutesResponse{Routes: make([]RouteResponse, 0, len(routes))}
	for _, r := range routes {
		res.Routes = append(res.Routes, RouteResponse{
			ID:       r.ID,
			Name:     r.Name,
			Zone:     r.Zone,
			CenterID: r.CenterID,
			Active:   r.Active,
		})
	}
	return res
}

type VehicleResponse struct {
	ID        string  `json:"id"`
	Plate     string  `json:"plate"`
	Type      string  `json:"type"`
	CenterID  string  `json:"center_id"`
	Capacity  float64 `json:"capacity"`
	Available bool    `json:"available"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

func FromVehicles(vehicles []*domain.Vehicle) ListVehiclesResponse {
	res := ListVehiclesResponse{Vehicles: make([]VehicleResponse, 0, len(vehicles))}
	for _, v := range vehicles {
		res.Vehicles = append(res.Vehicles, VehicleResponse{
			ID:        v.ID,
			Plate:     v.Plate,
			Type:      v.Type,
			CenterID:  v.CenterID,
			Capacity:  v.Capacity,
			Available: v.Available,
		})
	}
	return res
}

type CenterResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type ListCentersResponse struct {
	Centers []CenterResponse `json:"centers"`
}

func FromCenters(centers []*domain.LogisticsCenter) ListCentersResponse {
	res := ListCentersResponse{Centers: make([]CenterResponse, 0, len(centers))}
	for _, c := range centers {
		res.Centers = append(res.Centers, CenterResponse{ID: c.ID, Name: c.Name, Address: c.Address})
	}
	return res
}
