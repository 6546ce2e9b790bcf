package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/IRX358/RouteSaathi-2.0/internal/model"
	"github.com/IRX358/RouteSaathi-2.0/internal/queue"
	"github.com/IRX358/RouteSaathi-2.0/internal/repository"
	queuepub "github.com/IRX358/RouteSaathi-2.0/internal/service"
)

// AlertHandler manages the notification stream: coordinator broadcasts
// going out to the fleet and conductor-raised incidents coming back in.
// Every stored alert is also published to the broker for downstream
// consumers; publish failures never fail the request since the database
// row is the source of truth.
type AlertHandler struct {
	Alerts *repository.AlertRepo
}

func NewAlertHandler(a *repository.AlertRepo) *AlertHandler { return &AlertHandler{Alerts: a} }

type broadcastReq struct {
	Message  string `json:"message"`
	Priority string `json:"priority"` // LOW, MEDIUM, HIGH; default MEDIUM
}

type sosReq struct {
	BusID    string    `json:"bus_id"`
	Message  string    `json:"message"`
	Location []float64 `json:"location,omitempty"` // [lat, lng]
}

type trafficReq struct {
	BusID    string    `json:"bus_id"`
	Message  string    `json:"message"`
	Location []float64 `json:"location,omitempty"`
}

// List returns all alerts, newest first.
func (h *AlertHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	alerts, err := h.Alerts.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, alerts)
}

// Recent returns the newest alerts (?limit=, default 20).
func (h *AlertHandler) Recent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	alerts, err := h.Alerts.Recent(ctx, limitParam(c, 20))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, alerts)
}

// ByType filters alerts by type (BROADCAST, SOS, TRAFFIC, BREAKDOWN).
func (h *AlertHandler) ByType(c echo.Context) error {
	alertType := strings.ToUpper(c.Param("type"))
	switch alertType {
	case model.AlertBroadcast, model.AlertSOS, model.AlertTraffic, model.AlertBreakdown:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown alert type"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	alerts, err := h.Alerts.ListByType(ctx, alertType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, alerts)
}

// Broadcast sends a coordinator announcement to the whole fleet.
func (h *AlertHandler) Broadcast(c echo.Context) error {
	var req broadcastReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message required"})
	}
	priority := strings.ToUpper(req.Priority)
	switch priority {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
	default:
		priority = model.PriorityMedium
	}

	a := model.Alert{
		ID:        "A" + strings.ToUpper(uuid.NewString()[:8]),
		Timestamp: time.Now().UTC(),
		Sender:    "Coordinator",
		Type:      model.AlertBroadcast,
		Priority:  priority,
		Message:   strings.TrimSpace(req.Message),
		Status:    model.AlertSent,
	}
	return h.store(c, a, "Broadcast sent to all conductors")
}

// SOS records a conductor emergency.  Always CRITICAL and ACTIVE until
// a coordinator resolves it.
func (h *AlertHandler) SOS(c echo.Context) error {
	var req sosReq
	if err := c.Bind(&req); err != nil || req.BusID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bus_id required"})
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		msg = "Emergency on bus " + req.BusID
	}

	a := model.Alert{
		ID:        "A" + strings.ToUpper(uuid.NewString()[:8]),
		Timestamp: time.Now().UTC(),
		Sender:    "Bus " + req.BusID,
		Type:      model.AlertSOS,
		Priority:  model.PriorityCritical,
		Message:   msg,
		Status:    model.AlertActive,
		Location:  req.Location,
		BusID:     req.BusID,
	}
	return h.store(c, a, "SOS alert raised")
}

// ReportTraffic records a conductor's congestion report.
func (h *AlertHandler) ReportTraffic(c echo.Context) error {
	var req trafficReq
	if err := c.Bind(&req); err != nil || req.BusID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bus_id required"})
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		msg = "Heavy traffic reported by bus " + req.BusID
	}

	a := model.Alert{
		ID:        "A" + strings.ToUpper(uuid.NewString()[:8]),
		Timestamp: time.Now().UTC(),
		Sender:    "Bus " + req.BusID,
		Type:      model.AlertTraffic,
		Priority:  model.PriorityMedium,
		Message:   msg,
		Status:    model.AlertActive,
		Location:  req.Location,
		BusID:     req.BusID,
	}
	return h.store(c, a, "Traffic report recorded")
}

// Resolve marks an alert handled.
func (h *AlertHandler) Resolve(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Alerts.UpdateStatus(ctx, c.Param("id"), model.AlertResolved); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "Alert not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Alert resolved"})
}

// Stats returns alert counters for the dashboard header.
func (h *AlertHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	total, active, err := h.Alerts.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"total_alerts": total, "active_alerts": active})
}

// store persists the alert, publishes it, and writes the success body.
func (h *AlertHandler) store(c echo.Context, a model.Alert, message string) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Alerts.Insert(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "insert failed"})
	}
	publishAlert(ctx, a)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "alert_id": a.ID, "message": message})
}

// publishAlert pushes the alert onto the broker; failures are logged
// only, the stored row is authoritative.
func publishAlert(ctx context.Context, a model.Alert) {
	ev := queue.AlertRaisedEvent{
		AlertID:  a.ID,
		BusID:    a.BusID,
		Type:     a.Type,
		Priority: a.Priority,
		Message:  a.Message,
		Location: a.Location,
		RaisedAt: a.Timestamp.Format(time.RFC3339),
	}
	if err := queuepub.PublishAlertRaised(ctx, ev); err != nil {
		log.Printf("alerts: publish %s failed: %v", a.ID, err)
	}
}
