package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/IRX358/RouteSaathi-2.0/internal/model"
)

type BusRepo struct{ DB *sql.DB }

func NewBusRepo(db *sql.DB) *BusRepo { return &BusRepo{DB: db} }

const busColumns = "id,route_id,status,lat,lng,speed,occupancy_percent,last_stop"

func scanBus(scan func(...any) error) (model.Bus, error) {
	var b model.Bus
	err := scan(&b.ID, &b.RouteID, &b.Status, &b.Lat, &b.Lng, &b.Speed, &b.OccupancyPercent, &b.LastStop)
	return b, err
}

// Get fetches a single bus.
func (r *BusRepo) Get(ctx context.Context, id string) (model.Bus, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+busColumns+" FROM buses WHERE id=? LIMIT 1", id)
	b, err := scanBus(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bus{}, ErrNotFound
	}
	return b, err
}

// List returns the whole fleet.
func (r *BusRepo) List(ctx context.Context) ([]model.Bus, error) {
	return r.query(ctx, "SELECT "+busColumns+" FROM buses ORDER BY id")
}

// ListByRoute returns the buses currently assigned to a route.
func (r *BusRepo) ListByRoute(ctx context.Context, routeID string) ([]model.Bus, error) {
	return r.query(ctx, "SELECT "+busColumns+" FROM buses WHERE route_id=? ORDER BY id", routeID)
}

func (r *BusRepo) query(ctx context.Context, q string, args ...any) ([]model.Bus, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Bus
	for rows.Next() {
		b, err := scanBus(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus sets a bus status.  IDLE and BREAKDOWN imply the bus is
// stationary, so the speed display is zeroed with it.  Callers verify
// the bus exists via Get first; updates do not report matched rows.
func (r *BusRepo) UpdateStatus(ctx context.Context, id, status string) error {
	var err error
	if status == model.BusIdle || status == model.BusBreakdown {
		_, err = r.DB.ExecContext(ctx, "UPDATE buses SET status=?, speed='0km/h' WHERE id=?", status, id)
	} else {
		_, err = r.DB.ExecContext(ctx, "UPDATE buses SET status=? WHERE id=?", status, id)
	}
	return err
}

// UpdateLocation moves a bus; speed is updated only when non-empty.
func (r *BusRepo) UpdateLocation(ctx context.Context, id string, lat, lng float64, speed string) error {
	var err error
	if speed != "" {
		_, err = r.DB.ExecContext(ctx, "UPDATE buses SET lat=?, lng=?, speed=? WHERE id=?", lat, lng, speed, id)
	} else {
		_, err = r.DB.ExecContext(ctx, "UPDATE buses SET lat=?, lng=? WHERE id=?", lat, lng, id)
	}
	return err
}

// UpdateOccupancy sets the passenger load, clamped to 0-100.
func (r *BusRepo) UpdateOccupancy(ctx context.Context, id string, percent int) (int, error) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	_, err := r.DB.ExecContext(ctx, "UPDATE buses SET occupancy_percent=? WHERE id=?", percent, id)
	return percent, err
}

// BumpOccupancy adds delta percentage points, capping at 100.  Used by
// ticket issuance, which assumes each ticket adds roughly 2% load.
func (r *BusRepo) BumpOccupancy(ctx context.Context, id string, delta int) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE buses SET occupancy_percent=LEAST(100, occupancy_percent+?) WHERE id=?", delta, id)
	return err
}
