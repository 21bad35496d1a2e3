package dto

type AssignBatchRequest struct {
	ShipmentIDs []string `json:"shipment_ids"`
	RouteID     string   `json:"route_id"`
	VehicleID   string   `json:"vehicle_id"`
}

type AssignBatchResponse struct {
	AssignedCount int `json:"assigned_count"`
}

type RecordDeliveryRequest struct {
	ShipmentID string `json:"shipment_id"`
	Outcome    string `json:"outcome"`
	Notes      string `json:"notes"`
}

type ValidateTrackingRequest struct {
	TrackingCode string `json:"tracking_code"`
}
