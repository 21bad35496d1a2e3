package domain

// Route is a named delivery path within a zone, owned by a logistics
// center. Routes are managed externally; this core only reads the
// active flag when deciding assignability.
type Route struct {
	ID       string
	Name     string
	Zone     string
	CenterID string
	Active   bool
}

// Vehicle is a transport unit. Only available vehicles are assignable;
// availability is managed externally.
type Vehicle struct {
	ID        string
	Plate     string
	Type      string
	CenterID  string
	Capacity  float64
	Available bool
}
