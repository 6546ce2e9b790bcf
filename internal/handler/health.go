package handler // package handler contains the HTTP handlers for the fleet API

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "healthy", "service": "RouteSaathi Backend"})
}

// Root describes the API for anyone hitting the bare origin.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "RouteSaathi API v2.0",
		"status":  "operational",
	})
}
