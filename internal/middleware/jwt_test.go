package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IRX358/RouteSaathi-2.0/internal/model"
	"github.com/IRX358/RouteSaathi-2.0/internal/session"
	"github.com/IRX358/RouteSaathi-2.0/internal/utils"
)

const testSecret = "test-secret"

func protectedEcho(t *testing.T, roles ...session.Role) *echo.Echo {
	t.Helper()
	e := echo.New()
	handler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get("user_id"), "role": c.Get("role")})
	}
	mws := []echo.MiddlewareFunc{JWTAuth(testSecret)}
	if len(roles) > 0 {
		mws = append(mws, RequireRole(roles...))
	}
	e.GET("/protected", handler, mws...)
	return e
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, model.User{ID: "U002", Name: "Ganesh Rao", Email: "g@x", Role: role}, 5)
	require.NoError(t, err)
	return tok.Token
}

func TestJWTAuthMissingToken(t *testing.T) {
	e := protectedEcho(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	e := protectedEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenInjectsClaims(t *testing.T) {
	e := protectedEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "conductor"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"U002"`)
	assert.Contains(t, rec.Body.String(), `"role":"conductor"`)
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	e := protectedEcho(t, session.RoleCoordinator)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "conductor"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	e := protectedEcho(t, session.RoleConductor, session.RoleCommuter)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "conductor"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsUnknownRole(t *testing.T) {
	e := protectedEcho(t, session.RoleConductor)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "superadmin"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
