package gate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IRX358/RouteSaathi-2.0/internal/session"
)

func newGate(t *testing.T) *Gate {
	t.Helper()
	return New(session.NewFileStore(filepath.Join(t.TempDir(), "session.json")))
}

func TestLoadingGrantsNothing(t *testing.T) {
	g := newGate(t)
	d := g.Authorize(AreaCoordinator, session.RoleCoordinator)
	assert.True(t, d.Pending)
	assert.False(t, d.Granted)
	assert.Empty(t, d.Redirect)
}

func TestRestoreWithoutStoredSession(t *testing.T) {
	g := newGate(t)
	assert.Equal(t, StateUnauthenticated, g.Restore())

	d := g.Authorize(AreaConductor, session.RoleConductor)
	assert.Equal(t, AreaLogin, d.Redirect)
	assert.False(t, d.Granted)
}

func TestRestoreWithStoredSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewFileStore(path)
	require.NoError(t, store.Login(session.Identity{ID: "U001", Role: session.RoleCoordinator}))

	g := New(session.NewFileStore(path))
	assert.Equal(t, StateAuthenticated, g.Restore())
	d := g.Authorize(AreaCoordinator, session.RoleCoordinator)
	assert.True(t, d.Granted)
}

// A signed-in user denied an area is redirected to their own home,
// never to another role's protected area.
func TestDeniedRoleRedirectsToOwnHome(t *testing.T) {
	cases := []struct {
		role      session.Role
		requested string
		allowed   session.Role
		home      string
	}{
		{session.RoleConductor, AreaCoordinator, session.RoleCoordinator, AreaConductor},
		{session.RoleCoordinator, AreaConductor, session.RoleConductor, AreaCoordinator},
		{session.RoleCommuter, AreaCoordinator, session.RoleCoordinator, AreaPassenger},
		{session.RoleCommuter, AreaConductor, session.RoleConductor, AreaPassenger},
	}
	for _, tc := range cases {
		g := newGate(t)
		g.Restore()
		require.NoError(t, g.Login(session.Identity{ID: "U100", Role: tc.role}))

		d := g.Authorize(tc.requested, tc.allowed)
		assert.False(t, d.Granted)
		assert.Equal(t, tc.home, d.Redirect, "role %s requesting %s", tc.role, tc.requested)
		assert.NotEqual(t, tc.requested, d.Redirect)
	}
}

func TestMatchingRoleIsGranted(t *testing.T) {
	g := newGate(t)
	g.Restore()
	require.NoError(t, g.Login(session.Identity{ID: "U002", Role: session.RoleConductor}))

	d := g.Authorize(AreaConductor, session.RoleConductor)
	assert.True(t, d.Granted)
	assert.Empty(t, d.Redirect)

	// An empty allowed set admits any authenticated user.
	assert.True(t, g.Authorize("/profile").Granted)
}

func TestLogoutReturnsToUnauthenticated(t *testing.T) {
	g := newGate(t)
	g.Restore()
	require.NoError(t, g.Login(session.Identity{ID: "U008", Role: session.RoleCommuter}))
	require.NoError(t, g.Logout())

	assert.Equal(t, StateUnauthenticated, g.State())
	d := g.Authorize(AreaPassenger, session.RoleCommuter)
	assert.Equal(t, AreaLogin, d.Redirect)
}

func TestHome(t *testing.T) {
	g := newGate(t)
	g.Restore()
	assert.Equal(t, AreaLogin, g.Home())

	require.NoError(t, g.Login(session.Identity{ID: "U001", Role: session.RoleCoordinator}))
	assert.Equal(t, AreaCoordinator, g.Home())
}
