package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/IRX358/RouteSaathi-2.0/internal/model"
	"github.com/IRX358/RouteSaathi-2.0/internal/repository"
)

// ConductorHandler serves the conductor device screens: duty
// assignment, the notification feed, and incident reporting.
type ConductorHandler struct {
	Assignments *repository.AssignmentRepo
	Buses       *repository.BusRepo
	Alerts      *repository.AlertRepo
}

func NewConductorHandler(a *repository.AssignmentRepo, b *repository.BusRepo, al *repository.AlertRepo) *ConductorHandler {
	return &ConductorHandler{Assignments: a, Buses: b, Alerts: al}
}

type dutyStatusReq struct {
	Status string `json:"status"` // ON_DUTY, ON_BREAK, BREAKDOWN
}

type breakdownReq struct {
	BusID    string    `json:"bus_id"`
	Message  string    `json:"message"`
	Location []float64 `json:"location,omitempty"`
}

// Assignment returns a conductor's duty for the day, combined with the
// live position of the assigned bus when one is known.
func (h *ConductorHandler) Assignment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Assignments.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Assignment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	resp := echo.Map{
		"conductor_id": a.ConductorID,
		"bus_number":   a.BusNumber,
		"route_id":     a.RouteID,
		"route_name":   a.RouteName,
		"start_time":   a.StartTime,
		"end_time":     a.EndTime,
		"status":       a.Status,
	}
	if bus, err := h.Buses.Get(ctx, a.BusNumber); err == nil {
		resp["tracking"] = echo.Map{
			"current_stop":      bus.LastStop,
			"speed":             bus.Speed,
			"occupancy_percent": bus.OccupancyPercent,
			"bus_status":        bus.Status,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateStatus sets a conductor's duty status.
func (h *ConductorHandler) UpdateStatus(c echo.Context) error {
	var req dutyStatusReq
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Assignments.UpdateStatus(ctx, c.Param("id"), strings.ToUpper(req.Status)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Assignment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Duty status updated"})
}

// alertTitles maps alert types to the headline shown on the device.
var alertTitles = map[string]string{
	model.AlertBroadcast: "Fleet Announcement",
	model.AlertSOS:       "Emergency Alert",
	model.AlertTraffic:   "Traffic Update",
	model.AlertBreakdown: "Breakdown Report",
}

// Notifications returns the conductor-relevant alert feed shaped for
// the device list: a headline per type and a relative timestamp.
func (h *ConductorHandler) Notifications(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	alerts, err := h.Alerts.ListForConductor(ctx, limitParam(c, 20))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	now := time.Now().UTC()
	out := make([]echo.Map, 0, len(alerts))
	for _, a := range alerts {
		title, ok := alertTitles[a.Type]
		if !ok {
			title = "Notification"
		}
		out = append(out, echo.Map{
			"id":       a.ID,
			"title":    title,
			"message":  a.Message,
			"priority": a.Priority,
			"time":     timeAgo(now, a.Timestamp),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Breakdown reports a vehicle failure: the bus is marked BREAKDOWN and
// a HIGH priority alert goes out to the coordinator.
func (h *ConductorHandler) Breakdown(c echo.Context) error {
	var req breakdownReq
	if err := c.Bind(&req); err != nil || req.BusID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bus_id required"})
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		msg = "Breakdown reported on bus " + req.BusID
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Buses.Get(ctx, req.BusID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Buses.UpdateStatus(ctx, req.BusID, model.BusBreakdown); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	a := model.Alert{
		ID:        "A" + strings.ToUpper(uuid.NewString()[:8]),
		Timestamp: time.Now().UTC(),
		Sender:    "Bus " + req.BusID,
		Type:      model.AlertBreakdown,
		Priority:  model.PriorityHigh,
		Message:   msg,
		Status:    model.AlertActive,
		Location:  req.Location,
		BusID:     req.BusID,
	}
	if err := h.Alerts.Insert(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "insert failed"})
	}
	publishAlert(ctx, a)

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"alert_id": a.ID,
		"message":  "Breakdown reported, coordinator notified",
	})
}

// timeAgo renders a coarse relative timestamp for the device feed.
func timeAgo(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hr ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
