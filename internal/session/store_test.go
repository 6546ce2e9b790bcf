package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return NewFileStore(path), path
}

func TestRestoreAfterLogin(t *testing.T) {
	store, path := newTestStore(t)
	id := Identity{ID: "U002", Name: "Ganesh Rao", Email: "ganesh@bmtc.gov.in", Role: RoleConductor, BusID: "KA-01-F-4532", RouteID: "335E"}
	require.NoError(t, store.Login(id))

	// A fresh store over the same file models an app restart.
	reopened := NewFileStore(path)
	got, ok := reopened.Restore()
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.True(t, reopened.IsAuthenticated())
}

func TestRestoreNothingStored(t *testing.T) {
	store, _ := newTestStore(t)
	_, ok := store.Restore()
	assert.False(t, ok)
	assert.False(t, store.IsAuthenticated())
}

func TestRestoreCorruptPayloadClearsStorage(t *testing.T) {
	cases := map[string]string{
		"not json":     "{{{",
		"missing id":   `{"name":"x","role":"conductor"}`,
		"unknown role": `{"id":"U001","role":"superadmin"}`,
		"empty object": `{}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			store, path := newTestStore(t)
			require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

			_, ok := store.Restore()
			assert.False(t, ok)
			_, err := os.Stat(path)
			assert.True(t, os.IsNotExist(err), "corrupt value must be cleared")
		})
	}
}

func TestLoginOverwritesPriorIdentity(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Login(Identity{ID: "U001", Role: RoleCoordinator}))
	require.NoError(t, store.Login(Identity{ID: "U008", Role: RoleCommuter}))

	got, ok := NewFileStore(path).Restore()
	require.True(t, ok)
	assert.Equal(t, "U008", got.ID)
	assert.Equal(t, RoleCommuter, got.Role)
}

func TestLogoutClearsBothCopies(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Login(Identity{ID: "U001", Role: RoleCoordinator}))
	require.NoError(t, store.Logout())

	assert.False(t, store.IsAuthenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	// Logout with nothing stored is a no-op, not an error.
	assert.NoError(t, store.Logout())
}

func TestLoginRejectsInvalidIdentity(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Error(t, store.Login(Identity{Name: "no id or role"}))
	assert.False(t, store.IsAuthenticated())
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("  Conductor ")
	require.True(t, ok)
	assert.Equal(t, RoleConductor, r)

	_, ok = ParseRole("driver")
	assert.False(t, ok)
}
