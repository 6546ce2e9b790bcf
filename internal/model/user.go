package model

import "time"

// User represents a dashboard user as stored in the `users` table.
// Conductors additionally carry their current bus and route assignment;
// those columns are empty for coordinators and commuters.  Handlers
// define separate response types, so json tags are omitted here.
//
// Fields:
//
//	ID           – user identifier (e.g. "U002").
//	Name         – display name.
//	Email        – unique login email.
//	PasswordHash – bcrypt hashed password.
//	Role         – coordinator, conductor or commuter.
//	BusID        – assigned bus registration (conductors only).
//	RouteID      – assigned route (conductors only).
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           string    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	BusID        string    // users.bus_id (nullable)
	RouteID      string    // users.route_id (nullable)
	CreatedAt    time.Time // users.created_at
}
