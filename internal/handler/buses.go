package handler

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/IRX358/RouteSaathi-2.0/internal/model"
	"github.com/IRX358/RouteSaathi-2.0/internal/repository"
)

// BusHandler serves the live fleet state.
type BusHandler struct {
	Buses *repository.BusRepo
}

func NewBusHandler(b *repository.BusRepo) *BusHandler { return &BusHandler{Buses: b} }

type busStatusUpdate struct {
	Status string `json:"status"` // MOVING, IDLE, STUCK, BREAKDOWN
}

type busLocationUpdate struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Speed string  `json:"speed,omitempty"`
}

type busOccupancyUpdate struct {
	OccupancyPercent int `json:"occupancy_percent"`
}

// List returns all buses with live positions and status.
func (h *BusHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	buses, err := h.Buses.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, buses)
}

// Get returns a single bus.
func (h *BusHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bus, err := h.Buses.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, bus)
}

// ByRoute returns all buses on a specific route.
func (h *BusHandler) ByRoute(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	buses, err := h.Buses.ListByRoute(ctx, c.Param("route_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, buses)
}

// Stats returns fleet counters for the coordinator dashboard.
func (h *BusHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	buses, err := h.Buses.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	var active, idle, stuck, highOccupancy, occupancySum int
	for _, b := range buses {
		switch b.Status {
		case model.BusMoving:
			active++
		case model.BusIdle:
			idle++
		case model.BusStuck:
			stuck++
		}
		occupancySum += b.OccupancyPercent
		if b.OccupancyPercent > 80 {
			highOccupancy++
		}
	}
	avgOccupancy := 0.0
	if len(buses) > 0 {
		avgOccupancy = float64(occupancySum) / float64(len(buses))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_active_buses":   active,
		"total_buses":          len(buses),
		"idle_buses":           idle,
		"stuck_buses":          stuck,
		"average_occupancy":    round1(avgOccupancy),
		"high_occupancy_count": highOccupancy,
	})
}

// UpdateStatus transitions a bus status; IDLE and BREAKDOWN zero the
// speed display as well.
func (h *BusHandler) UpdateStatus(c echo.Context) error {
	var req busStatusUpdate
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id := c.Param("id")
	if _, err := h.Buses.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Buses.UpdateStatus(ctx, id, req.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Bus %s status updated to %s", id, req.Status),
	})
}

// UpdateLocation moves a bus (live tracking feed).
func (h *BusHandler) UpdateLocation(c echo.Context) error {
	var req busLocationUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id := c.Param("id")
	if _, err := h.Buses.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Buses.UpdateLocation(ctx, id, req.Lat, req.Lng, req.Speed); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Location updated"})
}

// UpdateOccupancy reports a new passenger load, clamped to 0-100.
func (h *BusHandler) UpdateOccupancy(c echo.Context) error {
	var req busOccupancyUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id := c.Param("id")
	if _, err := h.Buses.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	applied, err := h.Buses.UpdateOccupancy(ctx, id, req.OccupancyPercent)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Occupancy updated", "new_value": applied})
}

// SimulateMovement jitters every moving bus for demo deployments
// without a live GPS feed.
func (h *BusHandler) SimulateMovement(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	buses, err := h.Buses.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	for _, b := range buses {
		if b.Status != model.BusMoving {
			continue
		}
		lat := b.Lat + (rand.Float64()-0.5)*0.002
		lng := b.Lng + (rand.Float64()-0.5)*0.002
		speed := fmt.Sprintf("%dkm/h", 10+rand.Intn(36))
		if err := h.Buses.UpdateLocation(ctx, b.ID, lat, lng, speed); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
		occ := b.OccupancyPercent + rand.Intn(11) - 5
		if _, err := h.Buses.UpdateOccupancy(ctx, b.ID, occ); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Bus positions simulated"})
}

// round1 rounds to one decimal place for display values.
func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
