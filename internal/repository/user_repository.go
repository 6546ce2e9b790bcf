package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/IRX358/RouteSaathi-2.0/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// GetByEmail fetches a user by normalized email for login.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	var busID, routeID sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,role,bus_id,route_id,created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &busID, &routeID, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	u.BusID, u.RouteID = busID.String, routeID.String
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	var busID, routeID sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,role,bus_id,route_id,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &busID, &routeID, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	u.BusID, u.RouteID = busID.String, routeID.String
	return u, err
}

// List returns all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,email,password_hash,role,bus_id,route_id,created_at FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		var busID, routeID sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &busID, &routeID, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.BusID, u.RouteID = busID.String, routeID.String
		out = append(out, u)
	}
	return out, rows.Err()
}

// ListConductors returns all users with the conductor role, for the
// coordinator's communication panel.
func (r *UserRepo) ListConductors(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,email,password_hash,role,bus_id,route_id,created_at FROM users WHERE role='conductor' ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		var busID, routeID sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &busID, &routeID, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.BusID, u.RouteID = busID.String, routeID.String
		out = append(out, u)
	}
	return out, rows.Err()
}
