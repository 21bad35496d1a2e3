package domain

// LogisticsCenter is the scoping facility that owns shipments, routes
// and vehicles.
type LogisticsCenter struct {
	ID      string
	Name    string
	Address string
}
