package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/IRX358/RouteSaathi-2.0/internal/session"
)

// RequireRole enforces that the authenticated caller holds one of the
// given roles.  API callers get a plain 403 here; the role-to-home
// redirect behavior belongs to the device-side authorization gate, not
// to the JSON API.  Assumes JWTAuth already stored the role claim
// under "role".
func RequireRole(roles ...session.Role) echo.MiddlewareFunc {
	allowed := make(map[session.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("role").(string)
			role, ok := session.ParseRole(raw)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
