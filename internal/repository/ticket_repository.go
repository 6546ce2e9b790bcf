package repository

import (
	"context"
	"database/sql"

	"github.com/IRX358/RouteSaathi-2.0/internal/model"
)

type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

const ticketColumns = "tid,bus_id,route_id,from_stop,to_stop,fare,issued_at"

// Insert records one ticket in the ledger.
func (r *TicketRepo) Insert(ctx context.Context, t model.Ticket) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO tickets (tid,bus_id,route_id,from_stop,to_stop,fare,issued_at) VALUES (?,?,?,?,?,?,?)",
		t.TID, t.BusID, t.RouteID, t.From, t.To, t.Fare, t.IssuedAt)
	return err
}

// ListRecent returns the newest tickets, most recent first.
func (r *TicketRepo) ListRecent(ctx context.Context, limit int) ([]model.Ticket, error) {
	return r.query(ctx, "SELECT "+ticketColumns+" FROM tickets ORDER BY issued_at DESC LIMIT ?", limit)
}

// ListByBus returns the newest tickets issued on one bus.
func (r *TicketRepo) ListByBus(ctx context.Context, busID string, limit int) ([]model.Ticket, error) {
	return r.query(ctx, "SELECT "+ticketColumns+" FROM tickets WHERE bus_id=? ORDER BY issued_at DESC LIMIT ?", busID, limit)
}

// ListByRoute returns the newest tickets sold on one route.
func (r *TicketRepo) ListByRoute(ctx context.Context, routeID string, limit int) ([]model.Ticket, error) {
	return r.query(ctx, "SELECT "+ticketColumns+" FROM tickets WHERE route_id=? ORDER BY issued_at DESC LIMIT ?", routeID, limit)
}

func (r *TicketRepo) query(ctx context.Context, q string, args ...any) ([]model.Ticket, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Ticket
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.TID, &t.BusID, &t.RouteID, &t.From, &t.To, &t.Fare, &t.IssuedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Totals returns the overall ticket count and revenue.
func (r *TicketRepo) Totals(ctx context.Context) (count int, revenue int, err error) {
	err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(fare),0) FROM tickets").Scan(&count, &revenue)
	return count, revenue, err
}

// CountByRoute returns ticket counts per route, the demand signal used
// by route stats and the AI engine.
func (r *TicketRepo) CountByRoute(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT route_id, COUNT(*) FROM tickets GROUP BY route_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var routeID string
		var n int
		if err := rows.Scan(&routeID, &n); err != nil {
			return nil, err
		}
		out[routeID] = n
	}
	return out, rows.Err()
}

// HourlyDemand returns ticket counts per hour of day for one route.
func (r *TicketRepo) HourlyDemand(ctx context.Context, routeID string) (map[int]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT HOUR(issued_at), COUNT(*) FROM tickets WHERE route_id=? GROUP BY HOUR(issued_at)", routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var hour, n int
		if err := rows.Scan(&hour, &n); err != nil {
			return nil, err
		}
		out[hour] = n
	}
	return out, rows.Err()
}
