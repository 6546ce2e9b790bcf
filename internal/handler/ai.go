package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/IRX358/RouteSaathi-2.0/internal/ai"
	"github.com/IRX358/RouteSaathi-2.0/internal/model"
	"github.com/IRX358/RouteSaathi-2.0/internal/repository"
)

// AIHandler assembles demand and supply signals from the ledger and
// the fleet and runs them through the reallocation engine.
type AIHandler struct {
	Routes  *repository.RouteRepo
	Buses   *repository.BusRepo
	Tickets *repository.TicketRepo
	Alerts  *repository.AlertRepo
}

func NewAIHandler(r *repository.RouteRepo, b *repository.BusRepo, t *repository.TicketRepo, a *repository.AlertRepo) *AIHandler {
	return &AIHandler{Routes: r, Buses: b, Tickets: t, Alerts: a}
}

type applyAllocationReq struct {
	RouteID string `json:"route_id"`
	Change  int    `json:"change"`
}

// loads aggregates per-route signals for the engine.
func (h *AIHandler) loads(ctx context.Context) ([]ai.RouteLoad, error) {
	routes, err := h.Routes.List(ctx)
	if err != nil {
		return nil, err
	}
	buses, err := h.Buses.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := h.Tickets.CountByRoute(ctx)
	if err != nil {
		return nil, err
	}

	busCount := make(map[string]int)
	occupancySum := make(map[string]int)
	for _, b := range buses {
		busCount[b.RouteID]++
		occupancySum[b.RouteID] += b.OccupancyPercent
	}

	out := make([]ai.RouteLoad, 0, len(routes))
	for _, rt := range routes {
		avg := 0.0
		if n := busCount[rt.ID]; n > 0 {
			avg = float64(occupancySum[rt.ID]) / float64(n)
		}
		out = append(out, ai.RouteLoad{
			RouteID:          rt.ID,
			RouteName:        rt.Name,
			TicketCount:      counts[rt.ID],
			BusCount:         busCount[rt.ID],
			AverageOccupancy: avg,
		})
	}
	return out, nil
}

// Recommendations returns reallocation suggestions for up to ten
// routes, highest priority first.
func (h *AIHandler) Recommendations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	loads, err := h.loads(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	recs := ai.Recommend(loads)
	if len(recs) > 10 {
		recs = recs[:10]
	}

	var high, low int
	for _, r := range recs {
		switch r.Priority {
		case "HIGH":
			high++
		case "LOW":
			low++
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"recommendations": recs,
		"analysis_summary": fmt.Sprintf(
			"%d routes analyzed: %d need more buses, %d have surplus capacity.",
			len(recs), high, low),
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// HighPriority returns only the routes straining capacity.
func (h *AIHandler) HighPriority(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	loads, err := h.loads(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	var out []ai.Recommendation
	for _, r := range ai.Recommend(loads) {
		if r.Priority == "HIGH" {
			out = append(out, r)
		}
	}
	if out == nil {
		out = []ai.Recommendation{}
	}
	return c.JSON(http.StatusOK, out)
}

// ApplyAllocation acknowledges a coordinator accepting a suggestion
// and broadcasts the change to the fleet.  Actual vehicle reassignment
// is a dispatch operation outside this system.
func (h *AIHandler) ApplyAllocation(c echo.Context) error {
	var req applyAllocationReq
	if err := c.Bind(&req); err != nil || req.RouteID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "route_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rt, err := h.Routes.Get(ctx, req.RouteID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Route not found"})
	}

	verb := "added to"
	n := req.Change
	if n < 0 {
		verb = "released from"
		n = -n
	}
	a := model.Alert{
		ID:        "A" + strings.ToUpper(uuid.NewString()[:8]),
		Timestamp: time.Now().UTC(),
		Sender:    "Coordinator",
		Type:      model.AlertBroadcast,
		Priority:  model.PriorityMedium,
		Message:   fmt.Sprintf("Allocation update: %d bus(es) %s route %s (%s).", n, verb, rt.ID, rt.Name),
		Status:    model.AlertSent,
	}
	if err := h.Alerts.Insert(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "insert failed"})
	}
	publishAlert(ctx, a)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Allocation applied for route %s", rt.ID),
	})
}

// CongestionAlerts flags buses that look stuck or overloaded right now.
func (h *AIHandler) CongestionAlerts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	buses, err := h.Buses.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	var out []echo.Map
	for _, b := range buses {
		switch {
		case b.Status == model.BusStuck:
			out = append(out, echo.Map{
				"bus_id":   b.ID,
				"route_id": b.RouteID,
				"severity": "HIGH",
				"reason":   "Bus reported stuck in traffic",
			})
		case b.OccupancyPercent > 85:
			out = append(out, echo.Map{
				"bus_id":   b.ID,
				"route_id": b.RouteID,
				"severity": "MEDIUM",
				"reason":   fmt.Sprintf("Occupancy at %d%%", b.OccupancyPercent),
			})
		}
	}
	if out == nil {
		out = []echo.Map{}
	}
	return c.JSON(http.StatusOK, out)
}
