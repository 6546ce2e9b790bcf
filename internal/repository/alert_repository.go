package repository

import (
	"context"
	"database/sql"

	"github.com/IRX358/RouteSaathi-2.0/internal/model"
)

type AlertRepo struct{ DB *sql.DB }

func NewAlertRepo(db *sql.DB) *AlertRepo { return &AlertRepo{DB: db} }

const alertColumns = "id,created_at,sender,type,priority,message,status,lat,lng,bus_id"

// Insert stores a new alert row.
func (r *AlertRepo) Insert(ctx context.Context, a model.Alert) error {
	var lat, lng any
	if len(a.Location) == 2 {
		lat, lng = a.Location[0], a.Location[1]
	}
	var busID any
	if a.BusID != "" {
		busID = a.BusID
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO alerts (id,created_at,sender,type,priority,message,status,lat,lng,bus_id) VALUES (?,?,?,?,?,?,?,?,?,?)",
		a.ID, a.Timestamp, a.Sender, a.Type, a.Priority, a.Message, a.Status, lat, lng, busID)
	return err
}

// List returns all alerts, newest first.
func (r *AlertRepo) List(ctx context.Context) ([]model.Alert, error) {
	return r.query(ctx, "SELECT "+alertColumns+" FROM alerts ORDER BY created_at DESC")
}

// Recent returns the newest alerts for the dashboard.
func (r *AlertRepo) Recent(ctx context.Context, limit int) ([]model.Alert, error) {
	return r.query(ctx, "SELECT "+alertColumns+" FROM alerts ORDER BY created_at DESC LIMIT ?", limit)
}

// ListByType returns alerts of one type, newest first.
func (r *AlertRepo) ListByType(ctx context.Context, alertType string) ([]model.Alert, error) {
	return r.query(ctx, "SELECT "+alertColumns+" FROM alerts WHERE type=? ORDER BY created_at DESC", alertType)
}

// ListForConductor returns the alerts a conductor should see: fleet
// broadcasts, traffic updates, and anything critical.
func (r *AlertRepo) ListForConductor(ctx context.Context, limit int) ([]model.Alert, error) {
	return r.query(ctx,
		"SELECT "+alertColumns+" FROM alerts WHERE type IN ('BROADCAST','TRAFFIC') OR priority='CRITICAL' ORDER BY created_at DESC LIMIT ?",
		limit)
}

// UpdateStatus transitions an alert (e.g. ACTIVE -> RESOLVED).
func (r *AlertRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE alerts SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Distinguish "no such alert" from a same-status no-op.
		var exists int
		if qerr := r.DB.QueryRowContext(ctx, "SELECT 1 FROM alerts WHERE id=?", id).Scan(&exists); qerr == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}

// Stats returns alert counters for the dashboard header.
func (r *AlertRepo) Stats(ctx context.Context) (total, active int, err error) {
	err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(status='ACTIVE'),0) FROM alerts").Scan(&total, &active)
	return total, active, err
}

func (r *AlertRepo) query(ctx context.Context, q string, args ...any) ([]model.Alert, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Alert
	for rows.Next() {
		var a model.Alert
		var lat, lng sql.NullFloat64
		var busID sql.NullString
		if err := rows.Scan(&a.ID, &a.Timestamp, &a.Sender, &a.Type, &a.Priority, &a.Message, &a.Status, &lat, &lng, &busID); err != nil {
			return nil, err
		}
		if lat.Valid && lng.Valid {
			a.Location = []float64{lat.Float64, lng.Float64}
		}
		a.BusID = busID.String
		out = append(out, a)
	}
	return out, rows.Err()
}
