package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/IRX358/RouteSaathi-2.0/internal/model"
)

type AssignmentRepo struct{ DB *sql.DB }

func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{DB: db} }

// Get fetches today's duty assignment for a conductor.
func (r *AssignmentRepo) Get(ctx context.Context, conductorID string) (model.Assignment, error) {
	var a model.Assignment
	err := r.DB.QueryRowContext(ctx,
		"SELECT conductor_id,bus_number,route_id,route_name,start_time,end_time,status FROM assignments WHERE conductor_id=? LIMIT 1",
		conductorID).Scan(&a.ConductorID, &a.BusNumber, &a.RouteID, &a.RouteName, &a.StartTime, &a.EndTime, &a.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Assignment{}, ErrNotFound
	}
	return a, err
}

// UpdateStatus sets a conductor's duty status (ON_DUTY, ON_BREAK,
// BREAKDOWN).
func (r *AssignmentRepo) UpdateStatus(ctx context.Context, conductorID, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE assignments SET status=? WHERE conductor_id=?", status, conductorID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists int
		if qerr := r.DB.QueryRowContext(ctx, "SELECT 1 FROM assignments WHERE conductor_id=?", conductorID).Scan(&exists); qerr == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}
