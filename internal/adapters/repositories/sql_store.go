package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shipment-tracking-service/internal/domain"
)

// Postgres twin of SqliteStore, used when DATABASE_URL points at a
// shared instance. Placeholders and upserts follow pg syntax; a serial
// seq column stands in for sqlite's rowid ordering.
type SQLStore struct{ DB *sql.DB }

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) InsertShipment(ctx context.Context, sh *domain.Shipment) error {
	if s.DB == nil {
		return errors.New("sql store: DB is nil")
	}
	if err := sh.ValidateState(); err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}

	query := `
	INSERT INTO shipments (` + shipmentColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (id) DO NOTHING;
	`
	res, err := s.DB.ExecContext(ctx, query, shipmentArgs(sh)...)
	if err != nil {
		return fmt.Errorf("insert shipment: exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert shipment: rows affected: %w", err)
	}
	if n == 0 {
		return &domain.DuplicateIDError{Kind: domain.KindShipment, ID: sh.ID}
	}
	return nil
}

func (s *SQLStore) GetShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1;`
	sh, err := scanShipment(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: domain.KindShipment, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return sh, nil
}

func (s *SQLStore) ListShipments(ctx context.Context, centerID string) ([]*domain.Shipment, error) {
	if s.DB == nil {
		return nil, errors.New("sql store: DB is nil")
	}

	query := `SELECT ` + shipmentColumns + ` FROM shipments`
	args := []any{}
	if centerID != "" {
		query += ` WHERE center_id = $1`
		args = append(args, centerID)
	}
	query += ` ORDER BY seq;`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: query: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Shipment, 0, 64)
	for rows.Next() {
		sh, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("list shipments: %w", err)
		}
		out = append(out, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: row iteration: %w", err)
	}
	return out, nil
}

func (s *SQLStore) UpdateShipment(ctx context.Context, sh *domain.Shipment) error {
	return s.UpdateShipments(ctx, []*domain.Shipment{sh})
}

func (s *SQLStore) UpdateShipments(ctx context.Context, batch []*domain.Shipment) error {
	if s.DB == nil {
		return errors.New("sql store: DB is nil")
	}

	for _, sh := range batch {
		if err := sh.ValidateState(); err != nil {
			return fmt.Errorf("update shipments: %w", err)
		}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update shipments: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	UPDATE shipments SET
		tracking_code = $2, customer = $3, address = $4, weight = $5,
		status = $6, center_id = $7, created_at = $8, route_id = $9,
		vehicle_id = $10, outcome = $11, delivered_at = $12,
		delivery_notes = $13, proof_ref = $14
	WHERE id = $1;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("update shipments: prepare: %w", err)
	}
	defer stmt.Close()

	for _, sh := range batch {
		res, err := stmt.ExecContext(ctx, shipmentArgs(sh)...)
		if err != nil {
			return fmt.Errorf("update shipments: id=%s: %w", sh.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update shipments: id=%s: rows affected: %w", sh.ID, err)
		}
		if n == 0 {
			return &domain.NotFoundError{Kind: domain.KindShipment, ID: sh.ID}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update shipments: commit tx: %w", err)
	}
	return nil
}

// Initialize the Postgres schema.
func InitSQLSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init sql schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init sql schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS shipments (
			seq BIGSERIAL,
			id TEXT PRIMARY KEY,
			tracking_code TEXT NOT NULL UNIQUE,
			customer TEXT NOT NULL,
			address TEXT NOT NULL,
			weight DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL,
			center_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			route_id TEXT,
			vehicle_id TEXT,
			outcome TEXT,
			delivered_at TEXT,
			delivery_notes TEXT,
			proof_ref TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS routes (
			seq BIGSERIAL,
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			zone TEXT NOT NULL,
			center_id TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS vehicles (
			seq BIGSERIAL,
			id TEXT PRIMARY KEY,
			plate TEXT NOT NULL,
			type TEXT NOT NULL,
			center_id TEXT NOT NULL DEFAULT '',
			capacity DOUBLE PRECISION NOT NULL,
			available BOOLEAN NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS centers (
			seq BIGSERIAL,
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_shipments_status_center
		ON shipments(status, center_id);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init sql schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init sql schema: commit tx: %w", err)
	}
	return nil
}

// Populate a Postgres database from the same seed files the SQLite path
// uses. Upserts keyed by id make reseeding idempotent.
func SeedSQLFromJSON(db *sql.DB, seedDir string) error {
	shipments, err := readSeedFile[ShipmentSeed](seedDir + "/shipments.json")
	if err != nil {
		return fmt.Errorf("seed sql: %w", err)
	}
	routes, err := readSeedFile[RouteSeed](seedDir + "/routes.json")
	if err != nil {
		return fmt.Errorf("seed sql: %w", err)
	}
	vehicles, err := readSeedFile[VehicleSeed](seedDir + "/vehicles.json")
	if err != nil {
		return fmt.Errorf("seed sql: %w", err)
	}
	centers, err := readSeedFile[CenterSeed](seedDir + "/centers.json")
	if err != nil {
		return fmt.Errorf("seed sql: %w", err)
	}

	rows, err := shipmentSeedRows(shipments)
	if err != nil {
		return fmt.Errorf("seed sql: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed sql: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	shipmentQuery := `
	INSERT INTO shipments (` + shipmentColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (id) DO UPDATE SET
		tracking_code = EXCLUDED.tracking_code,
		customer = EXCLUDED.customer,
		address = EXCLUDED.address,
		weight = EXCLUDED.weight,
		status = EXCLUDED.status,
		center_id = EXCLUDED.center_id,
		created_at = EXCLUDED.created_at,
		route_id = EXCLUDED.route_id,
		vehicle_id = EXCLUDED.vehicle_id,
		outcome = EXCLUDED.outcome,
		delivered_at = EXCLUDED.delivered_at,
		delivery_notes = EXCLUDED.delivery_notes,
		proof_ref = EXCLUDED.proof_ref;
	`
	stmt, err := tx.Prepare(shipmentQuery)
	if err != nil {
		return fmt.Errorf("seed sql: prepare shipment insert: %w", err)
	}
	defer stmt.Close()

	for _, sh := range rows {
		if _, err := stmt.Exec(shipmentArgs(sh)...); err != nil {
			return fmt.Errorf("seed sql: insert shipment id=%s: %w", sh.ID, err)
		}
	}

	for _, r := range routes {
		_, err := tx.Exec(`
		INSERT INTO routes (id, name, zone, center_id, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, zone = EXCLUDED.zone,
			center_id = EXCLUDED.center_id, active = EXCLUDED.active;
		`, r.ID, r.Name, r.Zone, r.CenterID, r.Active)
		if err != nil {
			return fmt.Errorf("seed sql: insert route id=%s: %w", r.ID, err)
		}
	}

	for _, v := range vehicles {
		_, err := tx.Exec(`
		INSERT INTO vehicles (id, plate, type, center_id, capacity, available)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			plate = EXCLUDED.plate, type = EXCLUDED.type,
			center_id = EXCLUDED.center_id, capacity = EXCLUDED.capacity,
			available = EXCLUDED.available;
		`, v.ID, v.Plate, v.Type, v.CenterID, v.Capacity, v.Available)
		if err != nil {
			return fmt.Errorf("seed sql: insert vehicle id=%s: %w", v.ID, err)
		}
	}

	for _, c := range centers {
		_, err := tx.Exec(`
		INSERT INTO centers (id, name, address)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, address = EXCLUDED.address;
		`, c.ID, c.Name, c.Address)
		if err != nil {
			return fmt.Errorf("seed sql: insert center id=%s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed sql: commit tx: %w", err)
	}
	return nil
}
