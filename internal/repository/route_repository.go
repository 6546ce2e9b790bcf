package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/IRX358/RouteSaathi-2.0/internal/model"
)

type RouteRepo struct{ DB *sql.DB }

func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{DB: db} }

// scanRoute unpacks one row; the stops column holds a JSON array.
func scanRoute(scan func(...any) error) (model.Route, error) {
	var rt model.Route
	var stops []byte
	if err := scan(&rt.ID, &rt.Name, &stops); err != nil {
		return model.Route{}, err
	}
	if len(stops) > 0 {
		if err := json.Unmarshal(stops, &rt.Stops); err != nil {
			return model.Route{}, err
		}
	}
	return rt, nil
}

// Get fetches a route with its ordered stop sequence.
func (r *RouteRepo) Get(ctx context.Context, id string) (model.Route, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT id,name,stops FROM routes WHERE id=? LIMIT 1", id)
	rt, err := scanRoute(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Route{}, ErrNotFound
	}
	return rt, err
}

// List returns all routes.
func (r *RouteRepo) List(ctx context.Context) ([]model.Route, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name,stops FROM routes ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Route
	for rows.Next() {
		rt, err := scanRoute(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// Search matches routes whose name or any stop contains the query,
// case-insensitively.  The stop list lives in a JSON column, so
// matching happens here rather than in SQL.
func (r *RouteRepo) Search(ctx context.Context, query string, limit int) ([]model.Route, error) {
	routes, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(query)
	var out []model.Route
	for _, rt := range routes {
		if routeMatches(rt, query) {
			out = append(out, rt)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func routeMatches(rt model.Route, query string) bool {
	if strings.Contains(strings.ToLower(rt.Name), query) {
		return true
	}
	for _, stop := range rt.Stops {
		if strings.Contains(strings.ToLower(stop), query) {
			return true
		}
	}
	return false
}
