// Package gate is the access-control decision point for role-scoped
// areas of the dashboard.  It is a state machine over the session
// lifecycle: restoring, signed out, or signed in with a fixed role.
// Decisions are deterministic and free of side effects; the caller is
// responsible for acting on the returned redirect, and no network or
// storage access happens inside Authorize.
package gate

import "github.com/IRX358/RouteSaathi-2.0/internal/session"

// State of the gate with respect to the session.
type State int

const (
	// StateLoading means the session restore has not resolved yet.
	// Nothing is granted while loading.
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

// Entry points for each role-scoped area of the dashboard.
const (
	AreaLogin       = "/login"
	AreaCoordinator = "/coordinator"
	AreaConductor   = "/conductor"
	AreaPassenger   = "/passenger"
)

// HomeArea maps a role to its own home area.  A user denied access to
// someone else's area is always sent here, never to another protected
// area.
func HomeArea(r session.Role) string {
	switch r {
	case session.RoleCoordinator:
		return AreaCoordinator
	case session.RoleConductor:
		return AreaConductor
	case session.RoleCommuter:
		return AreaPassenger
	}
	return AreaLogin
}

// Decision is the outcome of an authorization check.  Exactly one of
// the three shapes occurs: Pending (still loading, render a neutral
// waiting view), Granted, or a Redirect target.
type Decision struct {
	Pending  bool
	Granted  bool
	Redirect string
}

// Gate mediates access to role-scoped areas based on the session store.
type Gate struct {
	store    *session.Store
	state    State
	identity session.Identity
}

// New builds a gate in the loading state.  Call Restore to resolve it.
func New(store *session.Store) *Gate {
	return &Gate{store: store, state: StateLoading}
}

// Restore resolves the loading state from the persisted session: a
// valid stored identity authenticates the gate, anything else lands in
// the unauthenticated state.
func (g *Gate) Restore() State {
	if id, ok := g.store.Restore(); ok {
		g.identity = id
		g.state = StateAuthenticated
	} else {
		g.state = StateUnauthenticated
	}
	return g.state
}

// Login records a successful authentication and persists the identity.
func (g *Gate) Login(id session.Identity) error {
	if err := g.store.Login(id); err != nil {
		return err
	}
	g.identity = id
	g.state = StateAuthenticated
	return nil
}

// Logout drops the identity and returns the gate to the
// unauthenticated state.
func (g *Gate) Logout() error {
	g.identity = session.Identity{}
	g.state = StateUnauthenticated
	return g.store.Logout()
}

// State returns the current gate state.
func (g *Gate) State() State { return g.state }

// Identity returns the authenticated identity, if any.
func (g *Gate) Identity() (session.Identity, bool) {
	if g.state != StateAuthenticated {
		return session.Identity{}, false
	}
	return g.identity, true
}

// Home returns the current user's own home area, or the login entry
// point when nobody is signed in.
func (g *Gate) Home() string {
	if g.state != StateAuthenticated {
		return AreaLogin
	}
	return HomeArea(g.identity.Role)
}

// Authorize decides whether the requested area may be rendered for the
// given allowed roles.  An empty allowed set admits any authenticated
// user.  While loading nothing is granted; signed-out users are sent to
// the login entry point; a signed-in user with the wrong role is sent
// to their own home area.
func (g *Gate) Authorize(area string, allowed ...session.Role) Decision {
	switch g.state {
	case StateLoading:
		return Decision{Pending: true}
	case StateUnauthenticated:
		return Decision{Redirect: AreaLogin}
	}
	if len(allowed) > 0 {
		permitted := false
		for _, r := range allowed {
			if r == g.identity.Role {
				permitted = true
				break
			}
		}
		if !permitted {
			return Decision{Redirect: HomeArea(g.identity.Role)}
		}
	}
	return Decision{Granted: true}
}
