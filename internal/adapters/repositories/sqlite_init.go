package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shipment-tracking-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createShipmentsQuery := `
	CREATE TABLE IF NOT EXISTS shipments (
		id TEXT PRIMARY KEY,
		tracking_code TEXT NOT NULL UNIQUE,
		customer TEXT NOT NULL,
		address TEXT NOT NULL,
		weight REAL NOT NULL,
		status TEXT NOT NULL,
		center_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		route_id TEXT,
		vehicle_id TEXT,
		outcome TEXT,
		delivered_at TEXT,
		delivery_notes TEXT,
		proof_ref TEXT
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		zone TEXT NOT NULL,
		center_id TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		id TEXT PRIMARY KEY,
		plate TEXT NOT NULL,
		type TEXT NOT NULL,
		center_id TEXT NOT NULL DEFAULT '',
		capacity REAL NOT NULL,
		available INTEGER NOT NULL
	);
	`

	createCentersQuery := `
	CREATE TABLE IF NOT EXISTS centers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_shipments_status_center
	ON shipments(status, center_id);
	`

	statements := []string{
		createShipmentsQuery,
		createRoutesQuery,
		createVehiclesQuery,
		createCentersQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ShipmentSeed struct {
	ID              string  `json:"id"`
	TrackingCode    string  `json:"tracking_code"`
	Customer        string  `json:"customer"`
	Address         string  `json:"address"`
	Weight          float64 `json:"weight"`
	Status          string  `json:"status"`
	CenterID        string  `json:"center_id"`
	CreatedAt       string  `json:"created_at"`
	AssignedRoute   string  `json:"assigned_route,omitempty"`
	AssignedVehicle string  `json:"assigned_vehicle,omitempty"`
	DeliveredAt     string  `json:"delivered_at,omitempty"`
	DeliveryNotes   string  `json:"delivery_notes,omitempty"`
}

type RouteSeed struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Zone     string `json:"zone"`
	CenterID string `json:"center_id"`
	Active   bool   `json:"active"`
}

type VehicleSeed struct {
	ID        string  `json:"id"`
	Plate     string  `json:"plate"`
	Type      string  `json:"type"`
	CenterID  string  `json:"center_id"`
	Capacity  float64 `json:"capacity"`
	Available bool    `json:"available"`
}

type CenterSeed struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Populate the database with demo data from the JSON files in seedDir
// (shipments.json, routes.json, vehicles.json, centers.json). Existing
// rows with the same id are replaced, so re-running is safe.
func SeedFromJSON(db *sql.DB, seedDir string) error {
	shipments, err := readSeedFile[ShipmentSeed](filepath.Join(seedDir, "shipments.json"))
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	routes, err := readSeedFile[RouteSeed](filepath.Join(seedDir, "routes.json"))
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	vehicles, err := readSeedFile[VehicleSeed](filepath.Join(seedDir, "vehicles.json"))
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	centers, err := readSeedFile[CenterSeed](filepath.Join(seedDir, "centers.json"))
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	rows, err := shipmentSeedRows(shipments)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	shipmentStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO shipments (` + shipmentColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare shipment insert: %w", err)
	}
	defer shipmentStmt.Close()

	for _, sh := range rows {
		if _, err := shipmentStmt.Exec(shipmentArgs(sh)...); err != nil {
			return fmt.Errorf("seed: insert shipment id=%s: %w", sh.ID, err)
		}
	}

	for _, r := range routes {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO routes (id, name, zone, center_id, active) VALUES (?, ?, ?, ?, ?);`,
			r.ID, r.Name, r.Zone, r.CenterID, r.Active,
		)
		if err != nil {
			return fmt.Errorf("seed: insert route id=%s: %w", r.ID, err)
		}
	}

	for _, v := range vehicles {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO vehicles (id, plate, type, center_id, capacity, available) VALUES (?, ?, ?, ?, ?, ?);`,
			v.ID, v.Plate, v.Type, v.CenterID, v.Capacity, v.Available,
		)
		if err != nil {
			return fmt.Errorf("seed: insert vehicle id=%s: %w", v.ID, err)
		}
	}

	for _, c := range centers {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO centers (id, name, address) VALUES (?, ?, ?);`,
			c.ID, c.Name, c.Address,
		)
		if err != nil {
			return fmt.Errorf("seed: insert center id=%s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

func readSeedFile[T any](path string) ([]T, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	var data []T
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return data, nil
}

// shipmentSeedRows converts the flat seed records into validated domain
// shipments. Dates accept either a bare day or full RFC 3339.
func shipmentSeedRows(seeds []ShipmentSeed) ([]*domain.Shipment, error) {
	rows := make([]*domain.Shipment, 0, len(seeds))
	for i, item := range seeds {
		if strings.TrimSpace(item.ID) == "" {
			return nil, fmt.Errorf("shipment at index %d: id cannot be empty", i+1)
		}

		createdAt, err := parseSeedTime(item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("shipment id=%s: created_at: %w", item.ID, err)
		}

		sh := &domain.Shipment{
			ID:           item.ID,
			TrackingCode: item.TrackingCode,
			Customer:     item.Customer,
			Address:      item.Address,
			Weight:       item.Weight,
			Status:       domain.Status(item.Status),
			CenterID:     item.CenterID,
			CreatedAt:    createdAt,
		}

		if item.AssignedRoute != "" || item.AssignedVehicle != "" {
			sh.Assignment = &domain.Assignment{
				RouteID:   item.AssignedRoute,
				VehicleID: item.AssignedVehicle,
			}
		}

		if item.DeliveredAt != "" {
			deliveredAt, err := parseSeedTime(item.DeliveredAt)
			if err != nil {
				return nil, fmt.Errorf("shipment id=%s: delivered_at: %w", item.ID, err)
			}
			outcome := domain.OutcomeDelivered
			if sh.Status == domain.StatusFailed {
				outcome = domain.OutcomeFailed
			}
			sh.Delivery = &domain.DeliveryRecord{
				Outcome:     outcome,
				DeliveredAt: deliveredAt,
				Notes:       item.DeliveryNotes,
			}
		}

		if err := sh.ValidateState(); err != nil {
			return nil, fmt.Errorf("shipment id=%s: %w", item.ID, err)
		}
		rows = append(rows, sh)
	}
	return rows, nil
}

func parseSeedTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized time %q", s)
	}
	return t, nil
}
