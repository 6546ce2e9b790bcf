package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/IRX358/RouteSaathi-2.0/internal/repository"
)

// RouteHandler serves the route catalogue and per-route statistics.
type RouteHandler struct {
	Routes  *repository.RouteRepo
	Buses   *repository.BusRepo
	Tickets *repository.TicketRepo
}

func NewRouteHandler(r *repository.RouteRepo, b *repository.BusRepo, t *repository.TicketRepo) *RouteHandler {
	return &RouteHandler{Routes: r, Buses: b, Tickets: t}
}

// List returns all routes with their ordered stop sequences.
func (h *RouteHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	routes, err := h.Routes.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, routes)
}

// Get returns a single route.  Stop order in the response is the
// boarding order used for fare distance.
func (h *RouteHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rt, err := h.Routes.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rt)
}

// Search matches routes by name or stop name (?q=..., optional
// ?limit=, default 10).
func (h *RouteHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q parameter required"})
	}
	limit := 10
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	routes, err := h.Routes.Search(ctx, q, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, routes)
}

// BusesOnRoute returns the fleet currently serving one route.
func (h *RouteHandler) BusesOnRoute(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id := c.Param("id")
	if _, err := h.Routes.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	buses, err := h.Buses.ListByRoute(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, buses)
}

// Stats returns demand and supply counters for one route.
func (h *RouteHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id := c.Param("id")
	rt, err := h.Routes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	buses, err := h.Buses.ListByRoute(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	counts, err := h.Tickets.CountByRoute(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	occupancySum := 0
	for _, b := range buses {
		occupancySum += b.OccupancyPercent
	}
	avgOccupancy := 0.0
	if len(buses) > 0 {
		avgOccupancy = float64(occupancySum) / float64(len(buses))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"route_id":          rt.ID,
		"route_name":        rt.Name,
		"stop_count":        len(rt.Stops),
		"bus_count":         len(buses),
		"tickets_sold":      counts[rt.ID],
		"average_occupancy": round1(avgOccupancy),
	})
}
