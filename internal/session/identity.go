// Package session owns the signed-in identity for a single device session.
// Exactly one identity is active at a time; it is persisted as a single
// JSON value so that a restart of the conductor or passenger app can pick
// the session back up without re-authenticating.
package session

import "strings"

// Role is the access level assigned to a user at login.  The value is
// fixed for the lifetime of the session.
type Role string

const (
	RoleCoordinator Role = "coordinator" // fleet control centre
	RoleConductor   Role = "conductor"   // on-bus ticketing and reporting
	RoleCommuter    Role = "commuter"    // passenger-facing tracking
)

// ParseRole normalizes a raw role string and reports whether it names a
// known role.  Unknown values never become a Role; callers must treat
// them as an invalid session.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleCoordinator:
		return RoleCoordinator, true
	case RoleConductor:
		return RoleConductor, true
	case RoleCommuter:
		return RoleCommuter, true
	}
	return "", false
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Identity is the authenticated user's record for the active session.
// BusID and RouteID are populated for conductors only; they carry the
// current duty assignment returned by the login endpoint.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	BusID   string `json:"bus_id,omitempty"`
	RouteID string `json:"route_id,omitempty"`
}

// valid reports whether the identity is usable as an active session.
func (id Identity) valid() bool {
	return id.ID != "" && id.Role.Valid()
}
