package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shipment-tracking-service/internal/domain"
)

// SQLite-backed implementation of the entity store ports. Listing
// follows rowid, so insertion order is preserved the way the memory
// store preserves it. Timestamps are stored as RFC 3339 text.
type SqliteStore struct{ DB *sql.DB }

func NewSqliteStore(db *sql.DB) *SqliteStore {
	return &SqliteStore{DB: db}
}

const shipmentColumns = `
	id, tracking_code, customer, address, weight, status, center_id,
	created_at, route_id, vehicle_id, outcome, delivered_at,
	delivery_notes, proof_ref
`

func (s *SqliteStore) InsertShipment(ctx context.Context, sh *domain.Shipment) error {
	if s.DB == nil {
		return errors.New("sqlite store: DB is nil")
	}
	if err := sh.ValidateState(); err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}

	var exists int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM shipments WHERE id = ?;`, sh.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("insert shipment: check id: %w", err)
	}
	if exists > 0 {
		return &domain.DuplicateIDError{Kind: domain.KindShipment, ID: sh.ID}
	}

	query := `
	INSERT INTO shipments (` + shipmentColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	args := shipmentArgs(sh)
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert shipment: exec: %w", err)
	}
	return nil
}

func (s *SqliteStore) GetShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite store: DB is nil")
	}

	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = ?;`
	sh, err := scanShipment(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: domain.KindShipment, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return sh, nil
}

func (s *SqliteStore) ListShipments(ctx context.Context, centerID string) ([]*domain.Shipment, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite store: DB is nil")
	}

	query := `SELECT ` + shipmentColumns + ` FROM shipments`
	args := []any{}
	if centerID != "" {
		query += ` WHERE center_id = ?`
		args = append(args, centerID)
	}
	query += ` ORDER BY rowid;`

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

func (s *SqliteStore) UpdateShipment(ctx context.Context, sh *domain.Shipment) error {
	return s.UpdateShipments(ctx, []*domain.Shipment{sh})
}

// UpdateShipments applies the batch inside one transaction so a miss or
// invariant violation rolls every member back.
func (s *SqliteStore) UpdateShipments(ctx context.Context, batch []*domain.Shipment) error {
	if s.DB == nil {
		return errors.New("sqlite store: DB is nil")
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
		tracking_code = ?, customer = ?, address = ?, weight = ?,
		status = ?, center_id = ?, created_at = ?, route_id = ?,
		vehicle_id = ?, outcome = ?, delivered_at = ?,
		delivery_notes = ?, proof_ref = ?
	WHERE id = ?;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("update shipments: prepare: %w", err)
	}
	defer stmt.Close()

	for _, sh := range batch {
		args := shipmentArgs(sh)
		// Rotate id to the WHERE position.
		args = append(args[1:], args[0])

		res, err := stmt.ExecContext(ctx, args...)
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

func (s *SqliteStore) GetRoute(ctx context.Context, id string) (*domain.Route, error) {
	r := &domain.Route{}
	query := `SELECT id, name, zone, center_id, active FROM routes WHERE id = ?;`
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Name, &r.Zone, &r.CenterID, &r.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: domain.KindRoute, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get route: %w", err)
	}
	return r, nil
}

func (s *SqliteStore) ListRoutes(ctx context.Context, centerID string) ([]*domain.Route, error) {
	query := `SELECT id, name, zone, center_id, active FROM routes`
	args := []any{}
	if centerID != "" {
		query += ` WHERE center_id = ?`
		args = append(args, centerID)
	}
	query += ` ORDER BY rowid;`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list routes: query: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Route, 0, 16)
	for rows.Next() {
		r := &domain.Route{}
		if err := rows.Scan(&r.ID, &r.Name, &r.Zone, &r.CenterID, &r.Active); err != nil {
			return nil, fmt.Errorf("list routes: scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}
	return out, nil
}

func (s *SqliteStore) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, plate, type, center_id, capacity, available FROM vehicles WHERE id = ?;`
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Plate, &v.Type, &v.CenterID, &v.Capacity, &v.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: domain.KindVehicle, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

func (s *SqliteStore) ListVehicles(ctx context.Context, centerID string) ([]*domain.Vehicle, error) {
	query := `SELECT id, plate, type, center_id, capacity, available FROM vehicles`
	args := []any{}
	if centerID != "" {
		query += ` WHERE center_id = ?`
		args = append(args, centerID)
	}
	query += ` ORDER BY rowid;`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Vehicle, 0, 16)
	for rows.Next() {
		v := &domain.Vehicle{}
		if err := rows.Scan(&v.ID, &v.Plate, &v.Type, &v.CenterID, &v.Capacity, &v.Available); err != nil {
			return nil, fmt.Errorf("list vehicles: scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}
	return out, nil
}

func (s *SqliteStore) GetCenter(ctx context.Context, id string) (*domain.LogisticsCenter, error) {
	c := &domain.LogisticsCenter{}
	query := `SELECT id, name, address FROM centers WHERE id = ?;`
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: domain.KindCenter, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get center: %w", err)
	}
	return c, nil
}

func (s *SqliteStore) ListCenters(ctx context.Context) ([]*domain.LogisticsCenter, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, address FROM centers ORDER BY rowid;`)
	if err != nil {
		return nil, fmt.Errorf("list centers: query: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.LogisticsCenter, 0, 8)
	for rows.Next() {
		c := &domain.LogisticsCenter{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Address); err != nil {
			return nil, fmt.Errorf("list centers: scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list centers: row iteration: %w", err)
	}
	return out, nil
}

// shipmentArgs flattens a shipment into column order, id first.
func shipmentArgs(sh *domain.Shipment) []any {
	var routeID, vehicleID, outcome, deliveredAt, notes, proofRef sql.NullString
	if sh.Assignment != nil {
		routeID = sql.NullString{String: sh.Assignment.RouteID, Valid: true}
		vehicleID = sql.NullString{String: sh.Assignment.VehicleID, Valid: true}
	}
	if sh.Delivery != nil {
		outcome = sql.NullString{String: string(sh.Delivery.Outcome), Valid: true}
		deliveredAt = sql.NullString{String: sh.Delivery.DeliveredAt.UTC().Format(time.RFC3339), Valid: true}
		notes = sql.NullString{String: sh.Delivery.Notes, Valid: true}
		proofRef = sql.NullString{String: sh.Delivery.ProofRef, Valid: true}
	}

	return []any{
		sh.ID, sh.TrackingCode, sh.Customer, sh.Address, sh.Weight,
		string(sh.Status), sh.CenterID, sh.CreatedAt.UTC().Format(time.RFC3339),
		routeID, vehicleID, outcome, deliveredAt, notes, proofRef,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShipment(row rowScanner) (*domain.Shipment, error) {
	var (
		sh          domain.Shipment
		status      string
		createdAt   string
		routeID     sql.NullString
		vehicleID   sql.NullString
		outcome     sql.NullString
		deliveredAt sql.NullString
		notes       sql.NullString
		proofRef    sql.NullString
	)

	err := row.Scan(
		&sh.ID, &sh.TrackingCode, &sh.Customer, &sh.Address, &sh.Weight,
		&status, &sh.CenterID, &createdAt, &routeID, &vehicleID,
		&outcome, &deliveredAt, &notes, &proofRef,
	)
	if err != nil {
		return nil, err
	}

	sh.Status = domain.Status(status)

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan shipment %q: parse created_at: %w", sh.ID, err)
	}
	sh.CreatedAt = created

	if routeID.Valid {
		sh.Assignment = &domain.Assignment{RouteID: routeID.String, VehicleID: vehicleID.String}
	}
	if deliveredAt.Valid {
		at, err := time.Parse(time.RFC3339, deliveredAt.String)
		if err != nil {
			return nil, fmt.Errorf("scan shipment %q: parse delivered_at: %w", sh.ID, err)
		}
		sh.Delivery = &domain.DeliveryRecord{
			Outcome:     domain.Outcome(outcome.String),
			DeliveredAt: at,
			Notes:       notes.String,
			ProofRef:    proofRef.String,
		}
	}

	return &sh, nil
}
