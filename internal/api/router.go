package api

import (
	"net/http"
	"time"

	"shipment-tracking-service/internal/api/handlers"
	"shipment-tracking-service/internal/ports"
	"shipment-tracking-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(shipments ports.ShipmentStore, routes ports.RouteDirectory, vehicles ports.VehicleDirectory, centers ports.CenterDirectory) http.Handler {
	mux := http.NewServeMux()

	shipmentHandler := &handlers.ShipmentHandler{
		Search: &services.SearchService{Shipments: shipments},
		Intake: &services.IntakeService{Shipments: shipments, Centers: centers, Now: time.Now},
	}
	assignmentHandler := &handlers.AssignmentHandler{
		Assignments: &services.AssignmentService{
			Shipments: shipments,
			Routes:    routes,
			Vehicles:  vehicles,
		},
	}
	deliveryHandler := &handlers.DeliveryHandler{
		Deliveries: &services.DeliveryService{Shipments: shipments, Now: time.Now},
	}
	directoryHandler := &handlers.DirectoryHandler{
		Routes:   routes,
		Vehicles: vehicles,
		Centers:  centers,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/shipments", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			shipmentHandler.Create(w, r)
			return
		}
		shipmentHandler.List(w, r)
	})
	mux.HandleFunc("/shipments/recent", shipmentHandler.Recent)
	mux.HandleFunc("/shipments/stats", shipmentHandler.Stats)
	mux.HandleFunc("/assignments", assignmentHandler.Assign)
	mux.HandleFunc("/deliveries", deliveryHandler.Record)
	mux.HandleFunc("/deliveries/validate", deliveryHandler.Validate)
	mux.HandleFunc("/routes", directoryHandler.ListRoutes)
	mux.HandleFunc("/vehicles", directoryHandler.ListVehicles)
	mux.HandleFunc("/centers", directoryHandler.ListCenters)

	return loggingMiddleware(mux)
}
